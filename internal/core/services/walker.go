package services

import (
	"context"
	"fmt"
	"path"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

// FolderWalker enumerates every leaf file beneath a remote folder.
type FolderWalker struct {
	store    driven.RemoteStore
	maxDepth int
	maxFiles int
}

// NewFolderWalker creates a walker bounded by the depth and file limits in settings.
func NewFolderWalker(store driven.RemoteStore, settings domain.IngestSettings) *FolderWalker {
	settings = settings.WithDefaults()
	return &FolderWalker{
		store:    store,
		maxDepth: settings.MaxDepth,
		maxFiles: settings.MaxFiles,
	}
}

// walkFrame is one folder whose children are being visited.
type walkFrame struct {
	path     string
	depth    int
	children []domain.FileDescriptor
	next     int
}

// Walk lists rootID and every sub-folder beneath it, returning leaf files in
// depth-first order: children in the order the store reports them, with each
// folder fully expanded before its later siblings.
//
// Only a failure to list rootID is returned as an error. Sub-folders that
// cannot be listed, or that are refused by the depth or cycle guards, are
// recorded as diagnostics and traversal continues with their siblings.
func (w *FolderWalker) Walk(ctx context.Context, rootID string) (*domain.WalkResult, error) {
	if rootID == "" {
		return nil, fmt.Errorf("%w: root folder id is required", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	children, err := w.store.ListChildren(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("list root folder %s: %w", rootID, err)
	}

	result := &domain.WalkResult{}
	visited := map[string]bool{rootID: true}
	stack := []walkFrame{{children: children}}

	for len(stack) > 0 {
		top := len(stack) - 1
		frame := &stack[top]
		if frame.next >= len(frame.children) {
			stack = stack[:top]
			continue
		}
		child := frame.children[frame.next]
		frame.next++
		childPath := path.Join(frame.path, child.Name)
		depth := frame.depth + 1

		if !child.IsFolder {
			if len(result.Files) >= w.maxFiles {
				result.Diagnostics = append(result.Diagnostics, domain.WalkDiagnostic{
					FolderID:   child.ID,
					FolderPath: frame.path,
					Err:        fmt.Errorf("%w: stopped at %d files", domain.ErrFileLimit, w.maxFiles),
				})
				logger.Warn("File limit of %d reached, walk stopped", w.maxFiles)
				return result, nil
			}
			child.Path = childPath
			result.Files = append(result.Files, child)
			continue
		}

		if visited[child.ID] {
			w.skip(result, child.ID, childPath, fmt.Errorf("%w: folder %s", domain.ErrCycleDetected, child.ID))
			continue
		}
		visited[child.ID] = true

		if depth > w.maxDepth {
			w.skip(result, child.ID, childPath, fmt.Errorf("%w: depth %d exceeds %d", domain.ErrDepthExceeded, depth, w.maxDepth))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grandchildren, err := w.store.ListChildren(ctx, child.ID)
		if err != nil {
			w.skip(result, child.ID, childPath, err)
			continue
		}

		// frame is invalid after this append.
		stack = append(stack, walkFrame{
			path:     childPath,
			depth:    depth,
			children: grandchildren,
		})
	}

	logger.Debug("Walked %s: %d files, %d skipped folders", rootID, len(result.Files), len(result.Diagnostics))
	return result, nil
}

func (w *FolderWalker) skip(result *domain.WalkResult, folderID, folderPath string, err error) {
	logger.Warn("Skipping folder %s: %v", folderPath, err)
	result.Diagnostics = append(result.Diagnostics, domain.WalkDiagnostic{
		FolderID:   folderID,
		FolderPath: folderPath,
		Err:        err,
	})
}
