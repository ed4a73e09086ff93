package storage

import (
	"context"
	"errors"
	"io/fs"
	"strings"
)

// ErrNotFound is returned when an asset does not exist in the source.
var ErrNotFound = errors.New("asset not found")

// Source delivers static site assets by slash-separated relative name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// cleanName rejects names that could escape the source root.
func cleanName(name string) (string, bool) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
