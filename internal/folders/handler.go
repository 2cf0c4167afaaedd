package folders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/filedesk/filevault/pkg/handlers"
	"github.com/filedesk/filevault/pkg/routes"
)

// Handler provides HTTP endpoints for folder operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a folder handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "folders"),
	}
}

// Routes returns the folder endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/folders",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusInternalServerError, "Failed to fetch folders", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	folder, err := h.sys.Create(r.Context(), req.Name)
	if err != nil {
		h.respondFolderError(w, err, "Failed to create folder")
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, folder)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid folder id", err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		h.respondFolderError(w, err, "Failed to delete folder")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Folder and its files deleted"})
}

func (h *Handler) respondFolderError(w http.ResponseWriter, err error, fallback string) {
	status := MapHTTPStatus(err)
	message := fallback
	switch {
	case errors.Is(err, ErrNameMissing):
		message = "Folder name required"
	case errors.Is(err, ErrDuplicate):
		message = "Folder already exists"
	case errors.Is(err, ErrNotFound):
		message = "Folder not found"
	}
	handlers.RespondFailure(w, h.logger, status, message, err)
}
