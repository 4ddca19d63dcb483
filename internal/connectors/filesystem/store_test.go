package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestStore_ListChildren(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.csv"), "a,b\n1,2")
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	writeFile(t, filepath.Join(root, ".hidden"), "secret")
	writeFile(t, filepath.Join(root, "sub", "deck.pptx"), "zip")

	store := New()
	children, err := store.ListChildren(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, children, 3)

	assert.Equal(t, "a.txt", children[0].Name)
	assert.Equal(t, domain.MIMETypeText, children[0].MIMEType)
	assert.Equal(t, int64(5), children[0].Size)
	assert.Equal(t, filepath.Join(root, "a.txt"), children[0].ID)

	assert.Equal(t, "b.csv", children[1].Name)
	assert.Equal(t, domain.MIMETypeCSV, children[1].MIMEType)

	assert.Equal(t, "sub", children[2].Name)
	assert.True(t, children[2].IsFolder)
	assert.Equal(t, domain.MIMETypeFolder, children[2].MIMEType)
}

func TestStore_ListChildren_WithHidden(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".notes.md"), "x")

	children, err := New(WithHidden()).ListChildren(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "text/markdown", children[0].MIMEType)
}

func TestStore_ListChildren_Missing(t *testing.T) {
	_, err := New().ListChildren(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListChildren_SymlinkLoopResolves(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f.txt"), "x")
	if err := os.Symlink(root, filepath.Join(root, "a", "back")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	children, err := New().ListChildren(context.Background(), filepath.Join(root, "a"))
	require.NoError(t, err)

	var folder domain.FileDescriptor
	for _, c := range children {
		if c.IsFolder {
			folder = c
		}
	}
	require.True(t, folder.IsFolder)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, folder.ID)
}

func TestStore_GetBytes(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "hello")

	rc, err := New().GetBytes(context.Background(), path)
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	_, err = New().GetBytes(context.Background(), filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ExportBytes(t *testing.T) {
	_, err := New().ExportBytes(context.Background(), "x", domain.MIMETypeCSV)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ListChildren(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectMIMEType(t *testing.T) {
	tests := map[string]string{
		"report.PDF":  domain.MIMETypePDF,
		"sheet.xlsx":  domain.MIMETypeXLSX,
		"doc.docx":    domain.MIMETypeDOCX,
		"photo.JPG":   "image/jpeg",
		"noext":       "application/octet-stream",
		"weird.zzzzz": "application/octet-stream",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, DetectMIMEType(name))
		})
	}
}
