package auth

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaakkopy/todo-backend/internal/shared"
)

// Service wraps account business rules: sign-up, sign-in and password change.
type Service struct {
	repo     Repository
	issuer   *TokenIssuer
	throttle *SignInThrottle
	validate *validator.Validate
}

// NewService constructs a new Service. The throttle may be nil, which
// disables the sign-in lockout.
func NewService(repo Repository, issuer *TokenIssuer, throttle *SignInThrottle) *Service {
	return &Service{
		repo:     repo,
		issuer:   issuer,
		throttle: throttle,
		validate: validator.New(),
	}
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (s *Service) validateArguments(email, password string) error {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return shared.InvalidArgument("email or password is not valid")
	}
	return nil
}

// SignUp registers a new account with a freshly hashed password.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	if err := s.validateArguments(email, password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.CreateUser(ctx, email, string(hash))
}

// SignIn validates credentials and issues a new identity token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	if err := s.validateArguments(email, password); err != nil {
		return "", err
	}
	if s.throttle.Blocked(ctx, email) {
		return "", shared.Forbidden("too many failed sign-in attempts")
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.throttle.RecordFailure(ctx, email)
		return "", shared.Forbidden("incorrect password")
	}
	s.throttle.Reset(ctx, email)
	return s.issuer.Issue(user)
}

// UpdatePassword re-hashes and overwrites the caller's own password. The
// caller identity comes from the verified token, never from the request body.
func (s *Service) UpdatePassword(ctx context.Context, email, newPassword string, caller shared.Identity) error {
	if err := s.validateArguments(email, newPassword); err != nil {
		return err
	}
	if email != caller.Email {
		return shared.Forbidden("can only handle own information")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, email, string(hash))
}
