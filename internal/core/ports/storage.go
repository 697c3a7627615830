// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
)

// ReportArchive stores generated report files in object storage.
type ReportArchive interface {
	// Upload writes body under key and returns the object location.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
