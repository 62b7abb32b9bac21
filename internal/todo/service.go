package todo

import (
	"context"
	"errors"
	"strconv"

	"github.com/jaakkopy/todo-backend/internal/shared"
)

// Service enforces ownership and requester-identity consistency on todo
// operations. Every method takes the verified caller identity supplied by
// the identity gate.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, shared.InvalidArgument("id should be a number")
	}
	return id, nil
}

func validateInput(input Input, caller shared.Identity) error {
	if input.OwnerID != caller.ID {
		return shared.Forbidden("need ownership of a todo to handle it")
	}
	if input.Name == "" {
		return shared.InvalidArgument("name is required")
	}
	if !ValidStatus(input.Status) {
		return shared.InvalidArgument("not a valid status")
	}
	return nil
}

// verifyOwner checks that the caller owns the referenced todo. A todo owned
// by someone else and a todo that does not exist yield the same Forbidden
// outcome, so callers cannot probe for the existence of other users' records.
func (s *Service) verifyOwner(ctx context.Context, id int64, caller shared.Identity) error {
	if _, err := s.repo.FindOwned(ctx, id, caller.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return shared.Forbidden("not owner of todo, or todo does not exist")
		}
		return err
	}
	return nil
}

// ListOwn returns all of the caller's todos.
func (s *Service) ListOwn(ctx context.Context, caller shared.Identity) ([]Todo, error) {
	return s.repo.ListByOwner(ctx, caller.ID)
}

// ListByStatus returns the caller's todos in the given state.
func (s *Service) ListByStatus(ctx context.Context, status Status, caller shared.Identity) ([]Todo, error) {
	if !ValidStatus(status) {
		return nil, shared.InvalidArgument("not a valid status")
	}
	return s.repo.ListByOwnerAndStatus(ctx, caller.ID, status)
}

// Create inserts a new todo for the caller and returns the created record.
// The body-declared owner must match the caller: being signed in does not
// permit creating todos on another account.
func (s *Service) Create(ctx context.Context, input Input, caller shared.Identity) (*Todo, error) {
	if err := validateInput(input, caller); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, input); err != nil {
		return nil, err
	}
	return s.repo.LatestOfOwner(ctx, caller.ID)
}

// Update applies the input to the caller's todo and returns the updated
// record.
func (s *Service) Update(ctx context.Context, rawID string, input Input, caller shared.Identity) (*Todo, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := s.verifyOwner(ctx, id, caller); err != nil {
		return nil, err
	}
	if err := validateInput(input, caller); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, caller.ID, input); err != nil {
		return nil, err
	}
	return s.repo.FindOwned(ctx, id, caller.ID)
}

// Delete removes the caller's todo.
func (s *Service) Delete(ctx context.Context, rawID string, caller shared.Identity) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.verifyOwner(ctx, id, caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, caller.ID)
}
