package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LocalSource serves assets from a directory on disk.
type LocalSource struct {
	root string
	fsys fs.FS
}

func NewLocalSource(root string) *LocalSource {
	return &LocalSource{root: root, fsys: os.DirFS(root)}
}

func (s *LocalSource) Fetch(_ context.Context, name string) ([]byte, error) {
	name, ok := cleanName(name)
	if !ok {
		return nil, ErrNotFound
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

var _ Source = (*LocalSource)(nil)
