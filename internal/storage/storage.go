// Package storage provides blob storage for uploaded binaries. It defines
// a System interface and includes a filesystem implementation for
// single-node deployments plus an S3-compatible implementation for object
// storage backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/filedesk/filevault/internal/config"
)

// Storage errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("storage: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey indicates the key is malformed or contains invalid characters.
	// This includes empty keys and path traversal attempts.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System defines the blob storage operations.
type System interface {
	// Put persists data under a newly generated key derived from the
	// current time and the original file name. The key is unique within
	// the process lifetime even for repeated identical names.
	Put(ctx context.Context, data []byte, originalName string) (string, error)

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Exists checks if a key is present and accessible.
	Exists(ctx context.Context, key string) (bool, error)

	// Start prepares the backend (directory creation, bucket check).
	Start(ctx context.Context) error
}

// New selects a storage backend from configuration.
func New(cfg *config.StorageConfig, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case config.StorageBackendFilesystem:
		return NewFilesystem(cfg, logger)
	case config.StorageBackendS3:
		return NewS3(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

var keyClock struct {
	mu   sync.Mutex
	last int64
}

// newKey builds a `{millis}-{name}` key. The millisecond prefix is forced
// strictly increasing so two uploads of the same name never collide.
func newKey(originalName string) string {
	keyClock.mu.Lock()
	now := time.Now().UnixMilli()
	if now <= keyClock.last {
		now = keyClock.last + 1
	}
	keyClock.last = now
	keyClock.mu.Unlock()

	return fmt.Sprintf("%d-%s", now, sanitizeName(originalName))
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	name = replacer.Replace(name)
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
