package services

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// FileFetcher turns a file descriptor into its complete byte content.
// Native documents are exported to a concrete format first. Nothing is cached.
type FileFetcher struct {
	store         driven.RemoteStore
	exportFormats map[string]string
	maxFileSize   int64
}

// NewFileFetcher creates a fetcher using the export table and size limit in settings.
func NewFileFetcher(store driven.RemoteStore, settings domain.IngestSettings) *FileFetcher {
	settings = settings.WithDefaults()
	return &FileFetcher{
		store:         store,
		exportFormats: settings.ExportFormats,
		maxFileSize:   settings.MaxFileSize,
	}
}

// ExportTarget returns the format a native document type is exported to.
func (f *FileFetcher) ExportTarget(mimeType string) (string, bool) {
	target, ok := f.exportFormats[mimeType]
	return target, ok && target != ""
}

// Fetch downloads or exports file. A native type with no export mapping
// returns domain.ErrUnsupportedType. A body larger than the configured limit
// returns domain.ErrPayloadTooLarge, and an interrupted transfer is an error
// rather than a truncated payload.
func (f *FileFetcher) Fetch(ctx context.Context, file domain.FileDescriptor) (*domain.FetchedPayload, error) {
	if file.IsFolder {
		return nil, fmt.Errorf("%w: %s is a folder", domain.ErrInvalidInput, file.Name)
	}

	var (
		body     io.ReadCloser
		mimeType string
		err      error
	)
	if file.IsNative() {
		target, ok := f.ExportTarget(file.MIMEType)
		if !ok {
			return nil, fmt.Errorf("%w: no export format for %s", domain.ErrUnsupportedType, file.MIMEType)
		}
		mimeType = target
		body, err = f.store.ExportBytes(ctx, file.ID, target)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", file.Name, err)
		}
	} else {
		if file.Size > f.maxFileSize {
			return nil, fmt.Errorf("%w: %s is %d bytes", domain.ErrPayloadTooLarge, file.Name, file.Size)
		}
		mimeType = file.MIMEType
		body, err = f.store.GetBytes(ctx, file.ID)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", file.Name, err)
		}
	}
	defer body.Close()

	content, err := io.ReadAll(io.LimitReader(body, f.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Name, err)
	}
	if int64(len(content)) > f.maxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrPayloadTooLarge, file.Name, f.maxFileSize)
	}

	return &domain.FetchedPayload{
		File:     file,
		MIMEType: mimeType,
		Content:  content,
	}, nil
}
