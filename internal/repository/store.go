package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/profilehub/profilehub-go/internal/model"
)

// dataFileMode is the permission of a newly created data file. An existing
// file keeps its own mode across saves.
const dataFileMode os.FileMode = 0o644

// FileStore keeps the whole user collection in a single JSON file.
//
// Every Save rewrites the full document. No lock is taken: two concurrent
// read-modify-write cycles race and the later Save wins.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Init creates the backing file with an empty collection if it does not exist.
func (s *FileStore) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat data file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	slog.Info("initializing data file", "path", s.path)
	return s.Save(ctx, model.Collection{})
}

// Load reads the collection, creating the file first if needed. Empty or
// unparsable content yields an empty collection.
func (s *FileStore) Load(ctx context.Context) (model.Collection, error) {
	if err := s.Init(ctx); err != nil {
		return model.Collection{}, err
	}
	return s.read()
}

// LoadExisting reads the collection without creating anything. A missing
// file yields an empty collection.
func (s *FileStore) LoadExisting(ctx context.Context) (model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return model.Collection{}, err
	}
	return s.read()
}

func (s *FileStore) read() (model.Collection, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return model.Collection{}, fmt.Errorf("read data file: %w", err)
	}

	var c model.Collection
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &c); err != nil {
			slog.Warn("data file is corrupt, treating as empty", "path", s.path, "error", err)
			c = model.Collection{}
		}
	}
	if c.Users == nil {
		c.Users = []model.User{}
	}

	return c, nil
}

// Save overwrites the backing file with c.
// The document is written to a temporary file and renamed into place.
func (s *FileStore) Save(ctx context.Context, c model.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Users == nil {
		c.Users = []model.User{}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".profilehub-*.json")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	defer os.Remove(tmp.Name())

	mode := dataFileMode
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp data file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp data file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}

	return nil
}
