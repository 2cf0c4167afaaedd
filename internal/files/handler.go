package files

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/filedesk/filevault/internal/storage"
	"github.com/filedesk/filevault/pkg/handlers"
	"github.com/filedesk/filevault/pkg/routes"
)

// Handler provides HTTP endpoints for file operations.
type Handler struct {
	sys           System
	storage       storage.System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a file handler with the specified collaborators.
func NewHandler(sys System, store storage.System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		storage:       store,
		logger:        logger.With("handler", "files"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the file endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/files",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/upload", Handler: h.Upload},
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "PUT", Pattern: "/{id}/folder", Handler: h.SetFolder},
			{Method: "PUT", Pattern: "/{id}/toggle-read", Handler: h.ToggleRead},
			{Method: "PUT", Pattern: "/{id}/tags", Handler: h.SetTags},
		},
	}
}

type fileResponse struct {
	Success bool  `json:"success"`
	File    *File `json:"file"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Upload handles both upload shapes on one route: a multipart binary
// payload, or a JSON body registering an external link.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.uploadLink(w, r)
		return
	}
	h.uploadFile(w, r)
}

type linkRequest struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Folder string `json:"folder"`
	Tags   any    `json:"tags"`
	Read   any    `json:"read"`
	URL    string `json:"url"`
}

func (h *Handler) uploadLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.URL == "" {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "URL required", nil)
		return
	}

	tags, err := ParseTags(req.Tags)
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid tags payload", err)
		return
	}

	name := req.Name
	if name == "" {
		name = req.URL
	}

	kind := KindLink
	if req.Kind != "" {
		kind = Kind(req.Kind)
	}

	cmd := CreateCommand{
		Name:     name,
		Kind:     kind,
		Folder:   req.Folder,
		Tags:     tags,
		Read:     ParseRead(req.Read),
		Location: req.URL,
	}

	f, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusInternalServerError, "File upload failed", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fileResponse{Success: true, File: f})
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error(), err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, ErrInvalidFile.Error(), err)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondFailure(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error(), nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, ErrInvalidFile.Error(), err)
		return
	}

	tags, err := ParseTags(r.FormValue("tags"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid tags payload", err)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)

	kind := DefaultKind(contentType)
	if v := r.FormValue("kind"); v != "" {
		kind = Kind(v)
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	// The blob is written before the metadata record; a later persistence
	// failure leaves it behind rather than attempting a rollback.
	key, err := h.storage.Put(r.Context(), data, header.Filename)
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusInternalServerError, "File upload failed", err)
		return
	}

	var pageCount *int
	if kind == KindPDF && contentType == "application/pdf" {
		pc, err := extractPDFPageCount(data)
		if err != nil {
			h.logger.Warn("failed to extract pdf page count", "error", err)
		} else {
			pageCount = pc
		}
	}

	cmd := CreateCommand{
		Name:      name,
		Kind:      kind,
		Folder:    r.FormValue("folder"),
		Tags:      tags,
		Read:      ParseRead(r.FormValue("read")),
		Location:  UploadPathPrefix + key,
		PageCount: pageCount,
	}

	f, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusInternalServerError, "File upload failed", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fileResponse{Success: true, File: f})
}

// List returns all files, optionally narrowed server-side by the same
// folder/query semantics the client applies locally.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusInternalServerError, "Failed to fetch files", err)
		return
	}

	folder := r.URL.Query().Get("folder")
	query := r.URL.Query().Get("q")
	if folder != "" || query != "" {
		items = Visible(items, folder, query)
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid file id", err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		h.respondFileError(w, err, "Failed to delete file")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, messageResponse{Success: true, Message: "File deleted"})
}

func (h *Handler) SetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid file id", err)
		return
	}

	var req struct {
		Folder string `json:"folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	f, err := h.sys.SetFolder(r.Context(), id, req.Folder)
	if err != nil {
		h.respondFileError(w, err, "Failed to update folder")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fileResponse{Success: true, File: f})
}

func (h *Handler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid file id", err)
		return
	}

	f, err := h.sys.ToggleRead(r.Context(), id)
	if err != nil {
		h.respondFileError(w, err, "Failed to toggle read status")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fileResponse{Success: true, File: f})
}

func (h *Handler) SetTags(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid file id", err)
		return
	}

	var req struct {
		Tags any `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tags, err := ParseTags(req.Tags)
	if err != nil {
		handlers.RespondFailure(w, h.logger, http.StatusBadRequest, "Invalid tags payload", err)
		return
	}

	f, err := h.sys.SetTags(r.Context(), id, tags)
	if err != nil {
		h.respondFileError(w, err, "Failed to update tags")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fileResponse{Success: true, File: f})
}

func (h *Handler) respondFileError(w http.ResponseWriter, err error, fallback string) {
	status := MapHTTPStatus(err)
	message := fallback
	if status == http.StatusNotFound {
		message = "File not found"
	}
	handlers.RespondFailure(w, h.logger, status, message, err)
}

func detectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(data []byte) (*int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	return &count, nil
}
