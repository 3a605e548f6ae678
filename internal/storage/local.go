package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader writes uploads under a base directory that the server exposes
// statically at /uploads. Object names may contain slashes; intermediate
// directories are created on demand.
type LocalUploader struct {
	baseDir string
}

func NewLocalUploader(baseDir string) *LocalUploader {
	return &LocalUploader{baseDir: baseDir}
}

func (u *LocalUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	dst := filepath.Join(u.baseDir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return "/uploads/" + objectName, nil
}
