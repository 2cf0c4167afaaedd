package files

import "strings"

// Visible derives the file set a query exposes: an exact, case-sensitive
// folder restriction when folderFilter is non-empty, then a
// case-insensitive substring match of query against the name or any tag.
// An empty query matches everything. Input ordering is preserved.
func Visible(items []File, folderFilter, query string) []File {
	q := strings.ToLower(query)

	visible := make([]File, 0, len(items))
	for _, f := range items {
		if folderFilter != "" && f.Folder != folderFilter {
			continue
		}
		if q != "" && !matches(&f, q) {
			continue
		}
		visible = append(visible, f)
	}
	return visible
}

func matches(f *File, q string) bool {
	if strings.Contains(strings.ToLower(f.Name), q) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
