package files

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/filedesk/filevault/internal/storage"
	"github.com/filedesk/filevault/pkg/repository"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a file repository with database and blob storage integration.
func New(db *sql.DB, storage storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: storage,
		logger:  logger.With("system", "files"),
	}
}

func (r *repo) List(ctx context.Context) ([]File, error) {
	q := fmt.Sprintf("SELECT %s FROM files ORDER BY uploaded_at DESC", fileColumns)

	items, err := repository.QueryMany(ctx, r.db, q, nil, scanFile)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*File, error) {
	q := fmt.Sprintf("SELECT %s FROM files WHERE id = $1", fileColumns)

	f, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanFile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

func (r *repo) ListByFolder(ctx context.Context, folder string) ([]File, error) {
	q := fmt.Sprintf("SELECT %s FROM files WHERE folder = $1 ORDER BY uploaded_at DESC", fileColumns)

	items, err := repository.QueryMany(ctx, r.db, q, []any{folder}, scanFile)
	if err != nil {
		return nil, fmt.Errorf("query files by folder: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*File, error) {
	id := uuid.New()

	tags := cmd.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	q := fmt.Sprintf(`INSERT INTO files (id, name, kind, folder, tags, read, location, page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, fileColumns)

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (File, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, cmd.Name, cmd.Kind, cmd.Folder, tagsJSON, cmd.Read, cmd.Location, cmd.PageCount,
		}, scanFile)
	})
	if err != nil {
		// The already-stored blob is deliberately left in place; there is
		// no rollback across the two stores.
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("file created", "id", f.ID, "name", f.Name, "kind", f.Kind)
	return &f, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	r.cleanupBlob(ctx, f)

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM files WHERE id = $1", id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}

	r.logger.Info("file deleted", "id", id)
	return nil
}

func (r *repo) SetFolder(ctx context.Context, id uuid.UUID, folder string) (*File, error) {
	// The target folder's existence is intentionally not checked; files
	// may be filed under a not-yet-created folder name.
	q := fmt.Sprintf("UPDATE files SET folder = $1 WHERE id = $2 RETURNING %s", fileColumns)

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (File, error) {
		return repository.QueryOne(ctx, tx, q, []any{folder, id}, scanFile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("file moved", "id", id, "folder", folder)
	return &f, nil
}

func (r *repo) ToggleRead(ctx context.Context, id uuid.UUID) (*File, error) {
	q := fmt.Sprintf("UPDATE files SET read = NOT read WHERE id = $1 RETURNING %s", fileColumns)

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (File, error) {
		return repository.QueryOne(ctx, tx, q, []any{id}, scanFile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

func (r *repo) SetTags(ctx context.Context, id uuid.UUID, tags []string) (*File, error) {
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	q := fmt.Sprintf("UPDATE files SET tags = $1 WHERE id = $2 RETURNING %s", fileColumns)

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (File, error) {
		return repository.QueryOne(ctx, tx, q, []any{tagsJSON, id}, scanFile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

// cleanupBlob removes the blob backing f when one exists. Missing blobs
// are fine; any other failure is logged and swallowed so the metadata
// delete proceeds regardless.
func (r *repo) cleanupBlob(ctx context.Context, f *File) {
	key, ok := f.BlobKey()
	if !ok {
		return
	}

	if err := r.storage.Delete(ctx, key); err != nil {
		r.logger.Error("blob cleanup failed", "key", key, "error", err)
	}
}
