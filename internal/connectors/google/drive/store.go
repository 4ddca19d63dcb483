// Package drive implements the remote store port over the Google Drive v3 API.
package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/persona-cli/internal/connectors/google"
	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// Verify interface compliance.
var _ driven.RemoteStore = (*Store)(nil)

// Store lists and downloads Drive files.
type Store struct {
	svc     *drive.Service
	limiter *google.RateLimiter
	cfg     Config
}

// New creates a Drive store over an authenticated service.
func New(svc *drive.Service, cfg Config) *Store {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &Store{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDrive, cfg.RequestsPerSecond),
		cfg:     cfg,
	}
}

// ListChildren returns every non-trashed child of folderID, following pagination.
func (s *Store) ListChildren(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	if folderID == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		children  []domain.FileDescriptor
		pageToken string
	)
	query := fmt.Sprintf("'%s' in parents and trashed=false", escapeQuery(folderID))

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.Files.List().
			Q(query).
			Fields(listFields).
			PageSize(s.cfg.PageSize).
			SupportsAllDrives(s.cfg.AllDrives).
			IncludeItemsFromAllDrives(s.cfg.AllDrives).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			s.limiter.Observe(err)
			return nil, google.WrapError(err)
		}

		for _, f := range resp.Files {
			children = append(children, toDescriptor(f))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	logger.Debug("drive: %d children in %s", len(children), folderID)
	return children, nil
}

// GetBytes streams the content of a regular file.
func (s *Store) GetBytes(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Files.Get(fileID).
		SupportsAllDrives(s.cfg.AllDrives).
		Context(ctx).
		Download()
	if err != nil {
		s.limiter.Observe(err)
		return nil, google.WrapError(err)
	}
	return resp.Body, nil
}

// ExportBytes converts a native document to targetMIME and streams the result.
func (s *Store) ExportBytes(ctx context.Context, fileID, targetMIME string) (io.ReadCloser, error) {
	if targetMIME == "" {
		return nil, domain.ErrUnsupportedType
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Files.Export(fileID, targetMIME).
		Context(ctx).
		Download()
	if err != nil {
		s.limiter.Observe(err)
		return nil, google.WrapError(err)
	}
	return resp.Body, nil
}

func toDescriptor(f *drive.File) domain.FileDescriptor {
	return domain.FileDescriptor{
		ID:       f.Id,
		Name:     f.Name,
		MIMEType: f.MimeType,
		IsFolder: f.MimeType == domain.MIMETypeFolder,
		Size:     f.Size,
	}
}

// escapeQuery escapes a value for use inside a single-quoted Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
