package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/filedesk/filevault/internal/files"
	"github.com/filedesk/filevault/pkg/repository"
)

type repo struct {
	db     *sql.DB
	files  files.System
	logger *slog.Logger
}

// New creates a folder repository. The files system handles the per-file
// side of cascade deletion, including blob cleanup.
func New(db *sql.DB, files files.System, logger *slog.Logger) System {
	return &repo{
		db:     db,
		files:  files,
		logger: logger.With("system", "folders"),
	}
}

func (r *repo) List(ctx context.Context) ([]Folder, error) {
	q := fmt.Sprintf("SELECT %s FROM folders ORDER BY name", folderColumns)

	items, err := repository.QueryMany(ctx, r.db, q, nil, scanFolder)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Folder, error) {
	q := fmt.Sprintf("SELECT %s FROM folders WHERE id = $1", folderColumns)

	f, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanFolder)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

func (r *repo) Create(ctx context.Context, name string) (*Folder, error) {
	if name == "" {
		return nil, ErrNameMissing
	}

	// Existence check and insert are not atomic against concurrent
	// creators of the same name; there is no unique index backing this.
	var existing uuid.UUID
	err := r.db.QueryRowContext(ctx, "SELECT id FROM folders WHERE name = $1", name).Scan(&existing)
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check folder name: %w", err)
	}

	q := fmt.Sprintf("INSERT INTO folders (id, name) VALUES ($1, $2) RETURNING %s", folderColumns)

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Folder, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), name}, scanFolder)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("folder created", "id", f.ID, "name", f.Name)
	return &f, nil
}

// Delete removes the folder after deleting every file filed under its
// name, each with its backing blob. The cascade is a multi-step,
// non-atomic workflow: a failure partway through can leave files deleted
// and the folder in place, which a retried request then finishes.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	folder, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	removed, err := r.cascade(ctx, folder.Name)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM folders WHERE id = $1", id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	r.logger.Info("folder deleted", "id", id, "name", folder.Name, "files_removed", removed)
	return nil
}

// cascade deletes every file filed under name, metadata and blob both.
// Records another caller already removed are skipped; any other failure
// stops the cascade. Returns the number of files enumerated.
func (r *repo) cascade(ctx context.Context, name string) (int, error) {
	members, err := r.files.ListByFolder(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("enumerate folder files: %w", err)
	}

	for _, f := range members {
		if err := r.files.Delete(ctx, f.ID); err != nil {
			if errors.Is(err, files.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("cascade delete file %s: %w", f.ID, err)
		}
	}
	return len(members), nil
}
