package todo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaakkopy/todo-backend/internal/platform/httpx"
	"github.com/jaakkopy/todo-backend/internal/shared"
)

// Handler wires HTTP endpoints for todo operations. All routes sit behind
// the identity gate.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers todo routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type todoRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OwnerID     int64   `json:"userid"`
	Status      Status  `json:"status"`
}

func (r todoRequest) input() Input {
	return Input{
		Name:        r.Name,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		Status:      r.Status,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.Unauthenticated("no credential presented"))
		return
	}
	var todos []Todo
	var err error
	if status := r.URL.Query().Get("status"); status != "" {
		todos, err = h.service.ListByStatus(r.Context(), Status(status), caller)
	} else {
		todos, err = h.service.ListOwn(r.Context(), caller)
	}
	if err != nil {
		h.respondError(w, "list todos", err)
		return
	}
	if todos == nil {
		todos = []Todo{}
	}
	httpx.JSON(w, http.StatusOK, todos)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.Unauthenticated("no credential presented"))
		return
	}
	var req todoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.InvalidArgument("invalid request body"))
		return
	}
	created, err := h.service.Create(r.Context(), req.input(), caller)
	if err != nil {
		h.respondError(w, "create todo", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.Unauthenticated("no credential presented"))
		return
	}
	var req todoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.InvalidArgument("invalid request body"))
		return
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.input(), caller)
	if err != nil {
		h.respondError(w, "update todo", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.Unauthenticated("no credential presented"))
		return
	}
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), caller); err != nil {
		h.respondError(w, "delete todo", err)
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
