// Package pathutil extracts and normalizes URL path segments.
package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a path does not contain a valid numeric ID.
var ErrInvalidID = errors.New("invalid ID in path")

// ExtractID parses the numeric ID following prefix in path.
// For example ExtractID("/articles/42", "/articles/") returns 42.
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == path || idStr == "" {
		return 0, ErrInvalidID
	}

	// サブパスは受け付けない
	if strings.Contains(idStr, "/") {
		return 0, ErrInvalidID
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	if id <= 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}
