package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaakkopy/todo-backend/internal/platform/httpx"
	"github.com/jaakkopy/todo-backend/internal/shared"
)

// Handler wires HTTP endpoints for account flows.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers account routes on the provided router. The gate
// protects the password change route; sign-up and sign-in stay public.
func (h *Handler) MountRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Post("/signup", h.handleSignUp)
	r.Post("/signin", h.handleSignIn)
	r.With(gate).Put("/changePassword", h.handleChangePassword)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.InvalidArgument("invalid request body"))
		return
	}
	if err := h.service.SignUp(r.Context(), req.Email, req.Password); err != nil {
		h.respondError(w, "sign up", err)
		return
	}
	// A fresh account is signed in right away so the client can start
	// calling the protected routes without a second round trip.
	token, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, "sign in after sign up", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.InvalidArgument("invalid request body"))
		return
	}
	token, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, "sign in", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.Unauthenticated("no credential presented"))
		return
	}
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.InvalidArgument("invalid request body"))
		return
	}
	if err := h.service.UpdatePassword(r.Context(), req.Email, req.Password, caller); err != nil {
		h.respondError(w, "change password", err)
		return
	}
	httpx.NoContent(w, http.StatusOK)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if _, ok := shared.Classified(err); !ok {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
