package files

import (
	"context"

	"github.com/google/uuid"
)

// System defines the file lifecycle operations. Implementations keep the
// metadata store and the blob store mutually consistent across deletes.
type System interface {
	List(ctx context.Context) ([]File, error)
	Find(ctx context.Context, id uuid.UUID) (*File, error)
	ListByFolder(ctx context.Context, folder string) ([]File, error)
	Create(ctx context.Context, cmd CreateCommand) (*File, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetFolder(ctx context.Context, id uuid.UUID, folder string) (*File, error)
	ToggleRead(ctx context.Context, id uuid.UUID) (*File, error)
	SetTags(ctx context.Context, id uuid.UUID, tags []string) (*File, error)
}
