// Package filesystem implements the remote store port over a local directory
// tree. Folder and file ids are filesystem paths.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// Verify interface compliance.
var _ driven.RemoteStore = (*Store)(nil)

// extensionTypes covers suffixes the platform MIME table often lacks.
var extensionTypes = map[string]string{
	".csv":      domain.MIMETypeCSV,
	".txt":      domain.MIMETypeText,
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".pdf":      domain.MIMETypePDF,
	".docx":     domain.MIMETypeDOCX,
	".xlsx":     domain.MIMETypeXLSX,
	".pptx":     domain.MIMETypePPTX,
	".html":     "text/html",
	".htm":      "text/html",
	".png":      domain.MIMETypePNG,
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
}

const defaultMIMEType = "application/octet-stream"

// Store reads a local directory tree.
type Store struct {
	showHidden bool
}

// Option configures a Store.
type Option func(*Store)

// WithHidden includes dot-prefixed entries in listings.
func WithHidden() Option {
	return func(s *Store) { s.showHidden = true }
}

// New creates a filesystem store.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListChildren returns the entries of the directory at folderID sorted by name.
// Hidden entries are skipped unless WithHidden is set. Symlinked directories
// are reported by their resolved path so the walker can detect loops.
func (s *Store) ListChildren(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if folderID == "" {
		return nil, domain.ErrInvalidInput
	}

	entries, err := os.ReadDir(folderID)
	if err != nil {
		return nil, mapError(err)
	}

	children := make([]domain.FileDescriptor, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !s.showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		id := filepath.Join(folderID, name)
		info, err := os.Stat(id)
		if err != nil {
			logger.Debug("filesystem: skipping %s: %v", id, err)
			continue
		}

		if info.IsDir() {
			if entry.Type()&os.ModeSymlink != 0 {
				if resolved, err := filepath.EvalSymlinks(id); err == nil {
					id = resolved
				}
			}
			children = append(children, domain.FileDescriptor{
				ID:       id,
				Name:     name,
				MIMEType: domain.MIMETypeFolder,
				IsFolder: true,
			})
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		children = append(children, domain.FileDescriptor{
			ID:       id,
			Name:     name,
			MIMEType: DetectMIMEType(name),
			Size:     info.Size(),
		})
	}
	return children, nil
}

// GetBytes opens the file at fileID.
func (s *Store) GetBytes(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(fileID)
	if err != nil {
		return nil, mapError(err)
	}
	return f, nil
}

// ExportBytes always fails: local files have no native document types.
func (s *Store) ExportBytes(_ context.Context, fileID, targetMIME string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("export %s to %s: %w", fileID, targetMIME, domain.ErrUnsupportedType)
}

// DetectMIMEType returns the content type implied by a file name's extension.
func DetectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
		return t
	}
	return defaultMIMEType
}

func mapError(err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}
