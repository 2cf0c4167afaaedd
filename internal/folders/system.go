package folders

import (
	"context"

	"github.com/google/uuid"
)

// System defines the folder lifecycle operations. Delete cascades to
// every file whose folder matches the deleted folder's name.
type System interface {
	List(ctx context.Context) ([]Folder, error)
	Find(ctx context.Context, id uuid.UUID) (*Folder, error)
	Create(ctx context.Context, name string) (*Folder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
