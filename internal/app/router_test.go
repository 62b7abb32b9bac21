package app_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaakkopy/todo-backend/internal/app"
	"github.com/jaakkopy/todo-backend/internal/auth"
	"github.com/jaakkopy/todo-backend/internal/shared"
	"github.com/jaakkopy/todo-backend/internal/todo"
)

type userRepo struct {
	users  map[string]*auth.User
	nextID int64
}

func (r *userRepo) CreateUser(ctx context.Context, email, passwordHash string) error {
	if _, ok := r.users[email]; ok {
		return shared.InvalidArgument("email already registered")
	}
	r.nextID++
	r.users[email] = &auth.User{ID: r.nextID, Email: email, PasswordHash: passwordHash}
	return nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, shared.NotFound("no such user")
	}
	return user, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if user, ok := r.users[email]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

type todoRepo struct {
	todos  map[int64]todo.Todo
	nextID int64
}

func (r *todoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]todo.Todo, error) {
	var out []todo.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *todoRepo) ListByOwnerAndStatus(ctx context.Context, ownerID int64, status todo.Status) ([]todo.Todo, error) {
	var out []todo.Todo
	for _, t := range r.todos {
		if t.OwnerID == ownerID && t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *todoRepo) Insert(ctx context.Context, input todo.Input) error {
	r.nextID++
	r.todos[r.nextID] = todo.Todo{
		ID:          r.nextID,
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		Status:      input.Status,
	}
	return nil
}

func (r *todoRepo) LatestOfOwner(ctx context.Context, ownerID int64) (*todo.Todo, error) {
	var latest *todo.Todo
	for id := range r.todos {
		t := r.todos[id]
		if t.OwnerID == ownerID && (latest == nil || t.ID > latest.ID) {
			latest = &t
		}
	}
	if latest == nil {
		return nil, todo.ErrNotFound
	}
	return latest, nil
}

func (r *todoRepo) FindOwned(ctx context.Context, id, ownerID int64) (*todo.Todo, error) {
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, todo.ErrNotFound
	}
	return &t, nil
}

func (r *todoRepo) Update(ctx context.Context, id, ownerID int64, input todo.Input) error {
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil
	}
	t.Name = input.Name
	t.Description = input.Description
	t.Status = input.Status
	r.todos[id] = t
	return nil
}

func (r *todoRepo) Delete(ctx context.Context, id, ownerID int64) error {
	if t, ok := r.todos[id]; ok && t.OwnerID == ownerID {
		delete(r.todos, id)
	}
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := auth.NewTokenIssuer("testsecret", time.Hour)

	authService := auth.NewService(&userRepo{users: make(map[string]*auth.User)}, issuer, nil)
	todoService := todo.NewService(&todoRepo{todos: make(map[int64]todo.Todo)})

	return app.NewRouter(app.RouterParams{
		Logger:      logger,
		Config:      &app.Config{AppRequestTimeout: 30 * time.Second},
		AuthHandler: auth.NewHandler(logger, authService),
		TodoHandler: todo.NewHandler(logger, todoService),
		Gate:        auth.Middleware(issuer),
	})
}

func do(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func signUp(t *testing.T, router http.Handler) string {
	t.Helper()
	rr := do(t, router, http.MethodPost, "/api/v1/signup", "", `{"email":"a@b.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestSignUpSignInFlow(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router)

	rr := do(t, router, http.MethodPost, "/api/v1/signin", "", `{"email":"a@b.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "token")

	rr = do(t, router, http.MethodPost, "/api/v1/signin", "", `{"email":"a@b.com","password":"wrong"}`)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/v1/signin", "", `{"email":"wrong@gmail.com","password":"pw"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTodoFlow(t *testing.T) {
	router := newTestRouter(t)
	token := signUp(t, router)

	rr := do(t, router, http.MethodGet, "/api/v1/todos", "", "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, router, http.MethodGet, "/api/v1/todos", "garbage", "")
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/v1/todos", token,
		`{"name":"x","userid":1,"status":"NotStarted"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Contains(t, rr.Body.String(), `"name":"x"`)

	rr = do(t, router, http.MethodGet, "/api/v1/todos?status=NotStarted", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"name":"x"`)

	rr = do(t, router, http.MethodGet, "/api/v1/todos?status=Completed", token, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))

	// Creating on someone else's account is rejected even when signed in.
	rr = do(t, router, http.MethodPost, "/api/v1/todos", token,
		`{"name":"x","userid":2,"status":"NotStarted"}`)
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestChangePasswordFlow(t *testing.T) {
	router := newTestRouter(t)
	token := signUp(t, router)

	rr := do(t, router, http.MethodPut, "/api/v1/changePassword", token,
		`{"email":"wrong@gmail.com","password":"changed"}`)
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, router, http.MethodPut, "/api/v1/changePassword", token,
		`{"email":"a@b.com","password":"changed"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, router, http.MethodPost, "/api/v1/signin", "", `{"email":"a@b.com","password":"changed"}`)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestUnknownEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/api/v1/nope", "", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":"unknown endpoint"}`, rr.Body.String())
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
