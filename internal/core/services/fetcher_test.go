package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/persona-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

func newFetcherStore(t *testing.T) *memory.RemoteStore {
	t.Helper()
	store := memory.NewRemoteStore()
	require.NoError(t, store.AddFolder("", "root", "Root"))
	require.NoError(t, store.AddFile("root", domain.FileDescriptor{ID: "csv", Name: "x.csv", MIMEType: domain.MIMETypeCSV}, []byte("a,b\n1,2")))
	require.NoError(t, store.AddNative("root", domain.FileDescriptor{
		ID:       "sheet",
		Name:     "Budget",
		MIMEType: domain.MIMETypeGoogleSheet,
	}, map[string][]byte{domain.MIMETypeCSV: []byte("q,r")}))
	return store
}

func TestFileFetcher_Download(t *testing.T) {
	store := newFetcherStore(t)
	fetcher := NewFileFetcher(store, domain.IngestSettings{})
	file := domain.FileDescriptor{ID: "csv", Name: "x.csv", MIMEType: domain.MIMETypeCSV}

	payload, err := fetcher.Fetch(context.Background(), file)

	require.NoError(t, err)
	assert.Equal(t, domain.MIMETypeCSV, payload.MIMEType)
	assert.Equal(t, "a,b\n1,2", string(payload.Content))
	assert.Equal(t, file, payload.File)
}

func TestFileFetcher_ExportNative(t *testing.T) {
	fetcher := NewFileFetcher(newFetcherStore(t), domain.IngestSettings{})

	payload, err := fetcher.Fetch(context.Background(), domain.FileDescriptor{
		ID: "sheet", Name: "Budget", MIMEType: domain.MIMETypeGoogleSheet,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.MIMETypeCSV, payload.MIMEType)
	assert.Equal(t, "q,r", string(payload.Content))
}

func TestFileFetcher_UnmappedNativeType(t *testing.T) {
	store := newFetcherStore(t)
	fetcher := NewFileFetcher(store, domain.IngestSettings{ExportFormats: map[string]string{}})

	_, err := fetcher.Fetch(context.Background(), domain.FileDescriptor{
		ID: "sheet", Name: "Budget", MIMEType: domain.MIMETypeGoogleSheet,
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Zero(t, store.Downloads())
}

func TestFileFetcher_ExportTarget(t *testing.T) {
	fetcher := NewFileFetcher(memory.NewRemoteStore(), domain.IngestSettings{})

	target, ok := fetcher.ExportTarget(domain.MIMETypeGoogleSlides)
	assert.True(t, ok)
	assert.Equal(t, domain.MIMETypePPTX, target)

	_, ok = fetcher.ExportTarget(domain.NativeMIMEPrefix + "form")
	assert.False(t, ok)
}

func TestFileFetcher_TooLarge(t *testing.T) {
	store := newFetcherStore(t)
	fetcher := NewFileFetcher(store, domain.IngestSettings{MaxFileSize: 4})

	t.Run("reported size", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), domain.FileDescriptor{ID: "csv", Name: "x.csv", Size: 7})
		assert.ErrorIs(t, err, domain.ErrPayloadTooLarge)
		assert.Zero(t, store.Downloads())
	})

	t.Run("unknown size", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), domain.FileDescriptor{ID: "csv", Name: "x.csv"})
		assert.ErrorIs(t, err, domain.ErrPayloadTooLarge)
	})
}

func TestFileFetcher_PartialTransferIsError(t *testing.T) {
	store := newFetcherStore(t)
	reset := errors.New("connection reset")
	store.FailReads("csv", reset)

	_, err := NewFileFetcher(store, domain.IngestSettings{}).Fetch(context.Background(), domain.FileDescriptor{ID: "csv", Name: "x.csv"})

	assert.ErrorIs(t, err, reset)
}

func TestFileFetcher_MissingFile(t *testing.T) {
	_, err := NewFileFetcher(newFetcherStore(t), domain.IngestSettings{}).Fetch(context.Background(), domain.FileDescriptor{ID: "gone", Name: "gone.txt"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileFetcher_RejectsFolder(t *testing.T) {
	_, err := NewFileFetcher(newFetcherStore(t), domain.IngestSettings{}).Fetch(context.Background(), domain.FileDescriptor{ID: "root", IsFolder: true})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFileFetcher_NoCaching(t *testing.T) {
	store := newFetcherStore(t)
	fetcher := NewFileFetcher(store, domain.IngestSettings{})
	file := domain.FileDescriptor{ID: "csv", Name: "x.csv"}

	_, err := fetcher.Fetch(context.Background(), file)
	require.NoError(t, err)
	_, err = fetcher.Fetch(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Downloads())
}
