package storage

import (
	"context"
	"io"
)

// Uploader persists an uploaded object and returns the URL (or URL path) the
// stored file is served from.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedURL string, err error)
}
