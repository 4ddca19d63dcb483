package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
	"github.com/custodia-labs/persona-cli/internal/core/ports/driven"
)

// Ensure RemoteStore implements the interface.
var _ driven.RemoteStore = (*RemoteStore)(nil)

type remoteNode struct {
	file     domain.FileDescriptor
	content  []byte
	exports  map[string][]byte
	children []string
	listErr  error
	readErr  error
}

// RemoteStore is an in-memory folder tree implementing driven.RemoteStore.
// It backs tests and dry runs of the ingestion pipeline.
type RemoteStore struct {
	mu        sync.RWMutex
	nodes     map[string]*remoteNode
	downloads int
	exported  int
}

// NewRemoteStore creates an empty store.
func NewRemoteStore() *RemoteStore {
	return &RemoteStore{
		nodes: make(map[string]*remoteNode),
	}
}

// AddFolder creates a folder. An empty parentID creates a root folder.
func (s *RemoteStore) AddFolder(parentID, id, name string) error {
	return s.add(parentID, &remoteNode{
		file: domain.FileDescriptor{
			ID:       id,
			Name:     name,
			MIMEType: domain.MIMETypeFolder,
			IsFolder: true,
		},
	})
}

// AddFile stores a regular file with its content under parentID.
// Size is taken from content when unset.
func (s *RemoteStore) AddFile(parentID string, file domain.FileDescriptor, content []byte) error {
	file.IsFolder = false
	if file.Size == 0 {
		file.Size = int64(len(content))
	}
	return s.add(parentID, &remoteNode{file: file, content: content})
}

// AddNative stores a native document with its export renditions keyed by target MIME type.
func (s *RemoteStore) AddNative(parentID string, file domain.FileDescriptor, exports map[string][]byte) error {
	file.IsFolder = false
	if exports == nil {
		exports = make(map[string][]byte)
	}
	return s.add(parentID, &remoteNode{file: file, exports: exports})
}

// Link adds an existing node as a child of another folder as well.
// It allows tests to build hierarchies that are not trees.
func (s *RemoteStore) Link(parentID, childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.nodes[parentID]
	if !ok || !parent.file.IsFolder {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, parentID)
	}
	if _, ok := s.nodes[childID]; !ok {
		return fmt.Errorf("%w: node %s", domain.ErrNotFound, childID)
	}
	parent.children = append(parent.children, childID)
	return nil
}

// FailListing makes ListChildren(folderID) return err.
func (s *RemoteStore) FailListing(folderID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[folderID]; ok {
		n.listErr = err
	}
}

// FailReads makes reads of fileID return half of the content followed by err.
func (s *RemoteStore) FailReads(fileID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[fileID]; ok {
		n.readErr = err
	}
}

// Downloads returns the number of GetBytes and ExportBytes calls that succeeded.
func (s *RemoteStore) Downloads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.downloads + s.exported
}

func (s *RemoteStore) add(parentID string, n *remoteNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.file.ID == "" {
		return fmt.Errorf("%w: node id is required", domain.ErrInvalidInput)
	}
	if _, exists := s.nodes[n.file.ID]; exists {
		return fmt.Errorf("%w: duplicate node id %s", domain.ErrInvalidInput, n.file.ID)
	}
	if parentID != "" {
		parent, ok := s.nodes[parentID]
		if !ok || !parent.file.IsFolder {
			return fmt.Errorf("%w: folder %s", domain.ErrNotFound, parentID)
		}
		parent.children = append(parent.children, n.file.ID)
	}
	s.nodes[n.file.ID] = n
	return nil
}

// ListChildren returns the direct children of folderID in insertion order.
func (s *RemoteStore) ListChildren(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	folder, ok := s.nodes[folderID]
	if !ok || !folder.file.IsFolder {
		return nil, fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}
	if folder.listErr != nil {
		return nil, folder.listErr
	}

	children := make([]domain.FileDescriptor, 0, len(folder.children))
	for _, id := range folder.children {
		children = append(children, s.nodes[id].file)
	}
	return children, nil
}

// GetBytes returns the content of a regular file.
func (s *RemoteStore) GetBytes(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[fileID]
	if !ok || n.file.IsFolder {
		return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, fileID)
	}
	if n.file.IsNative() {
		return nil, fmt.Errorf("%w: %s must be exported", domain.ErrUnsupportedType, fileID)
	}
	s.downloads++
	return newBody(n.content, n.readErr), nil
}

// ExportBytes returns the rendition of a native document in targetMIME.
func (s *RemoteStore) ExportBytes(ctx context.Context, fileID, targetMIME string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[fileID]
	if !ok || n.file.IsFolder {
		return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, fileID)
	}
	content, ok := n.exports[targetMIME]
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be exported as %s", domain.ErrUnsupportedType, fileID, targetMIME)
	}
	s.exported++
	return newBody(content, n.readErr), nil
}

func newBody(content []byte, readErr error) io.ReadCloser {
	if readErr == nil {
		return io.NopCloser(bytes.NewReader(content))
	}
	return io.NopCloser(io.MultiReader(
		bytes.NewReader(content[:len(content)/2]),
		&failingReader{err: readErr},
	))
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
