package domain

import (
	"path"
	"strings"
)

// NativeMIMEPrefix marks remote-only document types that have no byte
// representation and must be exported before download.
const NativeMIMEPrefix = "application/vnd.google-apps."

// MIMETypeFolder identifies folders in the remote store.
const MIMETypeFolder = NativeMIMEPrefix + "folder"

// FileDescriptor describes one entry in a remote folder hierarchy.
// Descriptors are produced by the folder walker and never modified afterwards.
type FileDescriptor struct {
	// ID is the opaque remote identifier.
	ID string

	// Name is the display name; it usually carries the extension.
	Name string

	// MIMEType is the type reported by the remote store.
	MIMEType string

	// IsFolder is true for folders. The walker never returns folders.
	IsFolder bool

	// Size is the byte size reported by the store, 0 when unknown.
	Size int64

	// Path is the slash-joined chain of folder names from the walk root,
	// ending with Name.
	Path string
}

// Extension returns the lower-cased file name suffix including the dot,
// or an empty string when the name has none.
func (f FileDescriptor) Extension() string {
	return strings.ToLower(path.Ext(f.Name))
}

// IsNative reports whether the file is a remote-only document type.
func (f FileDescriptor) IsNative() bool {
	return IsNativeMIMEType(f.MIMEType)
}

// IsNativeMIMEType reports whether mimeType names a remote-only document type.
func IsNativeMIMEType(mimeType string) bool {
	return strings.HasPrefix(mimeType, NativeMIMEPrefix) && mimeType != MIMETypeFolder
}

// FetchedPayload holds the bytes fetched for one file.
// It is owned by the orchestration step that requested it and is discarded
// once extraction finishes.
type FetchedPayload struct {
	// File is the descriptor the bytes belong to.
	File FileDescriptor

	// MIMEType is the effective content type: the export target for native
	// documents, otherwise the file's own type.
	MIMEType string

	// Content is the complete downloaded body.
	Content []byte
}

// WalkDiagnostic records a subtree that could not be listed.
type WalkDiagnostic struct {
	// FolderID identifies the folder whose listing failed or was refused.
	FolderID string

	// FolderPath is the folder's path relative to the walk root.
	FolderPath string

	// Err is the listing error or guard error.
	Err error
}

// WalkResult is the output of one folder walk.
type WalkResult struct {
	// Files are the leaf files in traversal order.
	Files []FileDescriptor

	// Diagnostics lists subtrees that were skipped.
	Diagnostics []WalkDiagnostic
}
