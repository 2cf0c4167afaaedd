// Package files provides the file metadata lifecycle: upload and link
// registration, tagging, read tracking, folder filing, and deletion with
// blob cleanup.
package files

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies how the client renders and opens a file.
type Kind string

// File kinds.
const (
	KindPDF   Kind = "PDF"
	KindImage Kind = "Image"
	KindLink  Kind = "Link"
)

// UploadPathPrefix is the URL prefix under which stored blobs are served.
// A location carrying this prefix references a blob store key; anything
// else is an external link.
const UploadPathPrefix = "/uploads/"

// File represents one organized resource: an uploaded binary or an
// external link, plus its display metadata.
type File struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	Folder     string    `json:"folder"`
	Tags       []string  `json:"tags"`
	Read       bool      `json:"read"`
	Location   string    `json:"location"`
	PageCount  *int      `json:"page_count,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// BlobKey returns the blob store key referenced by the file's location,
// and whether the location points at stored blob at all.
func (f *File) BlobKey() (string, bool) {
	if len(f.Location) > len(UploadPathPrefix) && f.Location[:len(UploadPathPrefix)] == UploadPathPrefix {
		return f.Location[len(UploadPathPrefix):], true
	}
	return "", false
}

// CreateCommand contains the normalized data required to persist a new
// file record. For uploads the blob has already been written by the
// handler; Create only reconciles metadata with the stored key.
type CreateCommand struct {
	Name      string
	Kind      Kind
	Folder    string
	Tags      []string
	Read      bool
	Location  string
	PageCount *int
}
