package memory

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

func newTestTree(t *testing.T) *RemoteStore {
	t.Helper()
	store := NewRemoteStore()
	require.NoError(t, store.AddFolder("", "root", "Root"))
	require.NoError(t, store.AddFile("root", domain.FileDescriptor{ID: "f1", Name: "a.csv", MIMEType: "text/csv"}, []byte("a,b")))
	require.NoError(t, store.AddFolder("root", "sub", "Sub"))
	require.NoError(t, store.AddNative("sub", domain.FileDescriptor{
		ID:       "doc",
		Name:     "Brief",
		MIMEType: domain.MIMETypeGoogleDoc,
	}, map[string][]byte{domain.MIMETypeText: []byte("hello")}))
	return store
}

func TestRemoteStore_ListChildren(t *testing.T) {
	store := newTestTree(t)

	children, err := store.ListChildren(context.Background(), "root")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "a.csv", children[0].Name)
	assert.Equal(t, int64(3), children[0].Size)
	assert.True(t, children[1].IsFolder)

	_, err = store.ListChildren(context.Background(), "f1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.ListChildren(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoteStore_FailListing(t *testing.T) {
	store := newTestTree(t)
	boom := errors.New("permission denied")
	store.FailListing("sub", boom)

	_, err := store.ListChildren(context.Background(), "sub")
	assert.ErrorIs(t, err, boom)
}

func TestRemoteStore_GetBytes(t *testing.T) {
	store := newTestTree(t)

	body, err := store.GetBytes(context.Background(), "f1")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(data))
	assert.Equal(t, 1, store.Downloads())

	_, err = store.GetBytes(context.Background(), "doc")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRemoteStore_ExportBytes(t *testing.T) {
	store := newTestTree(t)

	body, err := store.ExportBytes(context.Background(), "doc", domain.MIMETypeText)
	require.NoError(t, err)
	data, _ := io.ReadAll(body)
	assert.Equal(t, "hello", string(data))

	_, err = store.ExportBytes(context.Background(), "doc", domain.MIMETypePDF)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRemoteStore_FailReads(t *testing.T) {
	store := newTestTree(t)
	reset := errors.New("connection reset")
	store.FailReads("f1", reset)

	body, err := store.GetBytes(context.Background(), "f1")
	require.NoError(t, err)
	_, err = io.ReadAll(body)
	assert.ErrorIs(t, err, reset)
}

func TestRemoteStore_AddValidation(t *testing.T) {
	store := newTestTree(t)

	assert.ErrorIs(t, store.AddFolder("", "root", "Again"), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.AddFolder("f1", "x", "X"), domain.ErrNotFound)
	assert.ErrorIs(t, store.AddFile("root", domain.FileDescriptor{}, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Link("root", "missing"), domain.ErrNotFound)
}

func TestRemoteStore_Link(t *testing.T) {
	store := newTestTree(t)
	require.NoError(t, store.Link("sub", "root"))

	children, err := store.ListChildren(context.Background(), "sub")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "root", children[1].ID)
}

func TestRemoteStore_CancelledContext(t *testing.T) {
	store := newTestTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListChildren(ctx, "root")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.GetBytes(ctx, "f1")
	assert.ErrorIs(t, err, context.Canceled)
}
