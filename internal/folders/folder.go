// Package folders provides folder grouping: creation with an
// application-level name uniqueness check, and deletion that cascades to
// every file filed under the folder's name.
package folders

import "github.com/google/uuid"

// Folder represents a named grouping of files. Files reference a folder
// by name, not by id; renaming is unsupported.
type Folder struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
