package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Beliver-247/sliit-choir-backend/pkg/config"
)

// LocalStore writes uploads to a directory on disk and serves them over
// the API's static file route.
type LocalStore struct {
	baseDir string
	baseURL string
	maxSize int64
}

func NewLocalStore(cfg *config.Config) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create upload dir: %w", err)
	}
	return &LocalStore{
		baseDir: cfg.Storage.UploadDir,
		baseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
		maxSize: cfg.Storage.MaxUploadSize,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, folder, ext string, r io.Reader) (*SavedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create folder: %w", err)
	}

	ext = strings.TrimPrefix(ext, ".")
	name := uuid.New().String()
	if ext != "" {
		name = name + "." + ext
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create file: %w", err)
	}
	defer f.Close()

	var written int64
	if s.maxSize > 0 {
		written, err = io.Copy(f, io.LimitReader(r, s.maxSize+1))
		if err == nil && written > s.maxSize {
			os.Remove(path)
			return nil, ErrFileTooLarge
		}
	} else {
		written, err = io.Copy(f, r)
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("storage: failed to write file: %w", err)
	}

	key := filepath.ToSlash(filepath.Join(folder, name))
	return &SavedFile{
		Key:  key,
		URL:  fmt.Sprintf("%s/uploads/%s", s.baseURL, key),
		Size: written,
	}, nil
}

func (s *LocalStore) Remove(_ context.Context, key string) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: failed to remove file: %w", err)
	}
	return nil
}
