package printing

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTimestamp = time.Date(2026, 10, 19, 14, 30, 5, 0, time.Local)

func newTestStorage(t *testing.T) (*FileSystemStorage, string) {
	t.Helper()
	baseDir := filepath.Join(t.TempDir(), "output_pdfs")
	storage, err := NewFileSystemStorage(&FileSystemStorageConfig{BasePath: baseDir})
	require.NoError(t, err)
	return storage, baseDir
}

func TestNewFileSystemStorage(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		storage, baseDir := newTestStorage(t)

		info, err := os.Stat(baseDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, baseDir, storage.BasePath())
		assert.Equal(t, defaultMaxSequence, storage.config.MaxSequence)
	})

	t.Run("existing directory is reused", func(t *testing.T) {
		baseDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(baseDir, "keep.txt"), []byte("x"), 0644))

		_, err := NewFileSystemStorage(&FileSystemStorageConfig{BasePath: baseDir})
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(baseDir, "keep.txt"))
	})

	t.Run("base path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := NewFileSystemStorage(&FileSystemStorageConfig{BasePath: file})
		assertRenderCode(t, err, ErrCodeStorageFailed)
	})
}

func TestFileSystemStorage_Store(t *testing.T) {
	storage, baseDir := newTestStorage(t)
	pdfData := []byte("%PDF-1.4 test pdf content")

	t.Run("successful store", func(t *testing.T) {
		result, err := storage.Store(context.Background(), &StoreRequest{
			PartNumber: "ABC123",
			Timestamp:  testTimestamp,
			PDFData:    pdfData,
		})
		require.NoError(t, err)

		assert.Equal(t, "label_ABC123-20261019_143005.pdf", result.FileName)
		assert.Equal(t, filepath.Join(baseDir, result.FileName), result.Path)
		assert.Equal(t, int64(len(pdfData)), result.Size)

		content, err := os.ReadFile(result.Path)
		require.NoError(t, err)
		assert.Equal(t, pdfData, content)
	})

	t.Run("same second gets suffix", func(t *testing.T) {
		second, err := storage.Store(context.Background(), &StoreRequest{
			PartNumber: "ABC123",
			Timestamp:  testTimestamp,
			PDFData:    []byte("%PDF second"),
		})
		require.NoError(t, err)
		assert.Equal(t, "label_ABC123-20261019_143005_2.pdf", second.FileName)

		third, err := storage.Store(context.Background(), &StoreRequest{
			PartNumber: "ABC123",
			Timestamp:  testTimestamp,
			PDFData:    []byte("%PDF third"),
		})
		require.NoError(t, err)
		assert.Equal(t, "label_ABC123-20261019_143005_3.pdf", third.FileName)

		first, err := os.ReadFile(filepath.Join(baseDir, "label_ABC123-20261019_143005.pdf"))
		require.NoError(t, err)
		assert.Equal(t, pdfData, first, "earlier file must not be overwritten")
	})

	t.Run("unsafe part number is sanitized", func(t *testing.T) {
		result, err := storage.Store(context.Background(), &StoreRequest{
			PartNumber: "../A/B",
			Timestamp:  testTimestamp,
			PDFData:    pdfData,
		})
		require.NoError(t, err)
		assert.Equal(t, "label_.._A_B-20261019_143005.pdf", result.FileName)
		assert.Equal(t, baseDir, filepath.Dir(result.Path))
	})

	t.Run("invalid requests", func(t *testing.T) {
		_, err := storage.Store(context.Background(), nil)
		assertRenderCode(t, err, ErrCodeStorageFailed)

		_, err = storage.Store(context.Background(), &StoreRequest{PartNumber: " ", PDFData: pdfData})
		assertRenderCode(t, err, ErrCodeStorageFailed)

		_, err = storage.Store(context.Background(), &StoreRequest{PartNumber: "ABC123"})
		assertRenderCode(t, err, ErrCodeStorageFailed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.Store(ctx, &StoreRequest{PartNumber: "ABC123", PDFData: pdfData})
		assertRenderCode(t, err, ErrCodeStorageFailed)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestFileSystemStorage_StoreSequenceExhausted(t *testing.T) {
	baseDir := t.TempDir()
	storage, err := NewFileSystemStorage(&FileSystemStorageConfig{BasePath: baseDir, MaxSequence: 2})
	require.NoError(t, err)

	req := &StoreRequest{PartNumber: "P1", Timestamp: testTimestamp, PDFData: []byte("%PDF")}
	_, err = storage.Store(context.Background(), req)
	require.NoError(t, err)
	_, err = storage.Store(context.Background(), req)
	require.NoError(t, err)

	_, err = storage.Store(context.Background(), req)
	assertRenderCode(t, err, ErrCodeStorageFailed)
}

func TestFileSystemStorage_Open(t *testing.T) {
	storage, _ := newTestStorage(t)

	stored, err := storage.Store(context.Background(), &StoreRequest{
		PartNumber: "ABC123",
		Timestamp:  testTimestamp,
		PDFData:    []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	t.Run("existing file", func(t *testing.T) {
		rc, err := storage.Open(context.Background(), stored.FileName)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := storage.Open(context.Background(), "label_missing-20261019_143005.pdf")
		assertRenderCode(t, err, ErrCodeStorageFailed)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("path traversal blocked", func(t *testing.T) {
		for _, name := range []string{"../label_x.pdf", "sub/label_x.pdf", `..\label_x.pdf`, "secret.txt"} {
			_, err := storage.Open(context.Background(), name)
			assertRenderCode(t, err, ErrCodeStorageFailed)
		}
	})
}

func TestFileSystemStorage_CleanupOlderThan(t *testing.T) {
	storage, baseDir := newTestStorage(t)

	oldLabel := filepath.Join(baseDir, "label_OLD-20200101_000000.pdf")
	newLabel := filepath.Join(baseDir, "label_NEW-20261019_143005.pdf")
	otherPDF := filepath.Join(baseDir, "manual.pdf")
	for _, path := range []string{oldLabel, newLabel, otherPDF} {
		require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))
	}

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldLabel, past, past))
	require.NoError(t, os.Chtimes(otherPDF, past, past))

	deleted, err := storage.CleanupOlderThan(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, deleted)
	assert.NoFileExists(t, oldLabel)
	assert.FileExists(t, newLabel)
	assert.FileExists(t, otherPDF)
}
