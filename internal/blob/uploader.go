// Package blob abstracts the document upload collaborator: given a file
// payload and a name it returns a stable retrievable link.
package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/supplier-directory/internal/config"
)

// Uploader stores a payload and returns its link.
type Uploader interface {
	Upload(ctx context.Context, name string, payload []byte) (string, error)
}

// LocalUploader writes payloads under a directory served statically by the
// app. Object keys are random, so links stay stable and names never clash.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates the upload directory when missing.
func NewLocalUploader(cfg config.BlobConfig) (*LocalUploader, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalUploader{dir: cfg.Dir, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}, nil
}

// Dir returns the storage directory for static serving.
func (u *LocalUploader) Dir() string {
	return u.dir
}

func (u *LocalUploader) Upload(_ context.Context, name string, payload []byte) (string, error) {
	key := uuid.NewString()
	if ext := filepath.Ext(name); ext != "" {
		key += ext
	}
	if err := os.WriteFile(filepath.Join(u.dir, key), payload, 0o644); err != nil {
		return "", err
	}
	return u.baseURL + "/" + key, nil
}
