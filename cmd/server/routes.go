package main

import (
	"errors"
	"net/http"

	"github.com/filedesk/filevault/internal/files"
	"github.com/filedesk/filevault/internal/folders"
	"github.com/filedesk/filevault/internal/storage"
	"github.com/filedesk/filevault/pkg/middleware"
	"github.com/filedesk/filevault/pkg/routes"
)

// routes registers all HTTP endpoints and wraps the result in the
// middleware stack.
func (app *Application) routes() http.Handler {
	r := routes.New()

	fileHandler := files.NewHandler(
		app.files,
		app.storage,
		app.logger,
		app.config.Storage.MaxUploadSizeBytes(),
	)
	r.RegisterGroup(fileHandler.Routes())

	folderHandler := folders.NewHandler(app.folders, app.logger)
	r.RegisterGroup(folderHandler.Routes())

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: files.UploadPathPrefix + "{key}",
		Handler: app.serveUpload,
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
	})

	handler := r.Build()
	handler = middleware.CORS(&app.config.CORS)(handler)
	handler = middleware.Logger(app.logger)(handler)
	handler = middleware.TrimSlash(handler)
	return handler
}

// serveUpload streams a stored blob back to the client.
func (app *Application) serveUpload(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	data, err := app.storage.Retrieve(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			http.NotFound(w, r)
			return
		}
		app.logger.Error("failed to retrieve blob", "key", key, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
