package files

import (
	"encoding/json"
	"fmt"

	"github.com/filedesk/filevault/pkg/repository"
)

const fileColumns = "id, name, kind, folder, tags, read, location, page_count, uploaded_at"

func scanFile(s repository.Scanner) (File, error) {
	var f File
	var tags []byte

	err := s.Scan(
		&f.ID,
		&f.Name,
		&f.Kind,
		&f.Folder,
		&tags,
		&f.Read,
		&f.Location,
		&f.PageCount,
		&f.UploadedAt,
	)
	if err != nil {
		return f, err
	}

	if err := json.Unmarshal(tags, &f.Tags); err != nil {
		return f, fmt.Errorf("decode tags: %w", err)
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}
	return f, nil
}
