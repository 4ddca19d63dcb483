package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// RemoteStore is a hierarchical file namespace the pipeline reads from.
// Authentication is established before the store is handed to core.
type RemoteStore interface {
	// ListChildren returns the direct children of a folder in the order the
	// store reports them. Children carry IsFolder for sub-folders.
	ListChildren(ctx context.Context, folderID string) ([]domain.FileDescriptor, error)

	// GetBytes streams the raw content of a regular file.
	// The caller must close the returned reader.
	GetBytes(ctx context.Context, fileID string) (io.ReadCloser, error)

	// ExportBytes converts a native document server-side and streams the result.
	// The caller must close the returned reader.
	ExportBytes(ctx context.Context, fileID, targetMIME string) (io.ReadCloser, error)
}
