package positions

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	rverrors "github.com/matzehuels/rosview/pkg/errors"
)

// FileName is the layout file written into each scope directory.
const FileName = "layout.json"

// FileStore keeps one layout.json per directory. The scope is the directory.
type FileStore struct{}

// NewFileStore returns a store writing layout.json files.
func NewFileStore() *FileStore { return &FileStore{} }

// Path returns the layout file for a scope.
func (s *FileStore) Path(scope string) string {
	if scope == "" {
		scope = "."
	}
	return filepath.Join(scope, FileName)
}

// Load reads <scope>/layout.json.
func (s *FileStore) Load(_ context.Context, scope string) (Layout, error) {
	path := s.Path(scope)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, rverrors.WrapRead(err, path)
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, rverrors.Wrap(rverrors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return l, nil
}

// Save writes <scope>/layout.json with four-space indentation.
func (s *FileStore) Save(_ context.Context, scope string, l Layout) error {
	data, err := json.MarshalIndent(l, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(scope), append(data, '\n'), 0o644)
}

// Delete removes <scope>/layout.json. A missing file is not an error.
func (s *FileStore) Delete(_ context.Context, scope string) error {
	if err := os.Remove(s.Path(scope)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Close does nothing for file stores.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
