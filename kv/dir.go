package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dir implements Store with one file per key under a root directory. Keys
// map to file names with path separators and ':' escaped, so the layout
// stays portable and human-inspectable.
type Dir struct {
	root string
}

// NewDir creates a filesystem store rooted at the given directory, creating
// it if needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %q: %w", root, err)
	}
	return &Dir{root: root}, nil
}

var fileEscaper = strings.NewReplacer("/", "%2F", ":", "%3A")
var fileUnescaper = strings.NewReplacer("%2F", "/", "%3A", ":")

func (d *Dir) path(key string) string {
	return filepath.Join(d.root, fileEscaper.Replace(key))
}

func (d *Dir) Get(_ context.Context, key string) ([]byte, error) {
	value, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

func (d *Dir) Put(_ context.Context, key string, value []byte) error {
	// Write-then-rename keeps a crash from leaving a torn value behind.
	path := d.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("committing key %q: %w", key, err)
	}
	return nil
}

func (d *Dir) Delete(_ context.Context, key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

func (d *Dir) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("listing store directory: %w", err)
	}
	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".tmp") {
			continue
		}
		key := fileUnescaper.Replace(entry.Name())
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
