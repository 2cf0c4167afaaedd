package files

import (
	"encoding/json"
	"strings"
)

// ParseTags normalizes the tags field from either transport shape: a
// string sequence (JSON bodies) or a JSON-encoded string of one
// (multipart form fields). Malformed JSON text is a fatal input error;
// any other shape normalizes to an empty set.
func ParseTags(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return t, nil
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags, nil
	case string:
		if t == "" {
			return []string{}, nil
		}
		var tags []string
		if err := json.Unmarshal([]byte(t), &tags); err != nil {
			return nil, ErrInvalidTags
		}
		if tags == nil {
			tags = []string{}
		}
		return tags, nil
	default:
		return []string{}, nil
	}
}

// ParseRead coerces the read flag: boolean true or the literal string
// "true" are read; anything else is not.
func ParseRead(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}

// DefaultKind derives a file kind from the payload's declared media type:
// Image for image/* payloads, PDF otherwise.
func DefaultKind(contentType string) Kind {
	if strings.HasPrefix(contentType, "image/") {
		return KindImage
	}
	return KindPDF
}
