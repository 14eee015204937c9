package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/karolis-jablonskis/label-printer/internal/domain/label"
)

// DefaultOutputDir is the folder generated labels are written to
const DefaultOutputDir = "output_pdfs"

const defaultMaxSequence = 1000

// LabelStorage defines the interface for storing generated label PDFs
type LabelStorage interface {
	// EnsureDir creates the output directory if it does not exist
	EnsureDir() error
	// Store writes a PDF under a collision-free file name
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// Open returns a stored PDF by file name
	Open(ctx context.Context, fileName string) (io.ReadCloser, error)
	// CleanupOlderThan removes label files older than the specified duration
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// StoreRequest contains the parameters for storing a label PDF
type StoreRequest struct {
	// PartNumber is embedded in the file name
	PartNumber string
	// Timestamp is embedded in the file name at second granularity
	Timestamp time.Time
	// PDFData is the raw PDF content
	PDFData []byte
}

// StoreResult contains the result of storing a label PDF
type StoreResult struct {
	// Path is the file path including the output directory
	Path string
	// FileName is the base name of the file
	FileName string
	// Size is the file size in bytes
	Size int64
}

// FileSystemStorageConfig contains configuration for file system storage
type FileSystemStorageConfig struct {
	// BasePath is the output directory
	// Default: output_pdfs
	BasePath string
	// MaxSequence bounds the _N suffixes tried for one second
	MaxSequence int
	// Logger for operations
	Logger *zap.Logger
}

// FileSystemStorage stores label PDFs on the local file system
type FileSystemStorage struct {
	config *FileSystemStorageConfig
	logger *zap.Logger
}

// NewFileSystemStorage creates a new file system based label storage
// and makes sure its output directory exists.
func NewFileSystemStorage(config *FileSystemStorageConfig) (*FileSystemStorage, error) {
	if config == nil {
		config = &FileSystemStorageConfig{}
	}

	if config.BasePath == "" {
		config.BasePath = DefaultOutputDir
	}
	if config.MaxSequence <= 0 {
		config.MaxSequence = defaultMaxSequence
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &FileSystemStorage{
		config: config,
		logger: logger,
	}
	if err := s.EnsureDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// BasePath returns the output directory
func (s *FileSystemStorage) BasePath() string {
	return s.config.BasePath
}

// EnsureDir creates the output directory if it does not exist
func (s *FileSystemStorage) EnsureDir() error {
	if err := os.MkdirAll(s.config.BasePath, 0755); err != nil {
		return NewRenderError(ErrCodeStorageFailed,
			fmt.Sprintf("failed to create output directory: %s", s.config.BasePath), err)
	}
	return nil
}

// Store writes the PDF to {base}/label_<pn>-<YYYYMMDD_HHMMSS>.pdf.
// Files are created exclusively; when the name is taken a _2, _3, ... suffix is added.
func (s *FileSystemStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	select {
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	if req == nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "store request is nil", nil)
	}
	if strings.TrimSpace(req.PartNumber) == "" {
		return nil, NewRenderError(ErrCodeStorageFailed, "part number is required", nil)
	}
	if len(req.PDFData) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	for seq := 1; seq <= s.config.MaxSequence; seq++ {
		fileName := label.FileNameWithSeq(req.PartNumber, timestamp, seq)
		filePath := filepath.Join(s.config.BasePath, fileName)

		file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, NewRenderError(ErrCodeStorageFailed, "failed to create PDF file", err)
		}

		if err := writeAndClose(file, req.PDFData); err != nil {
			_ = os.Remove(filePath)
			return nil, NewRenderError(ErrCodeStorageFailed, "failed to write PDF file", err)
		}

		s.logger.Info("PDF stored",
			zap.String("path", filePath),
			zap.Int("size", len(req.PDFData)),
			zap.Int("seq", seq))

		return &StoreResult{
			Path:     filePath,
			FileName: fileName,
			Size:     int64(len(req.PDFData)),
		}, nil
	}

	return nil, NewRenderError(ErrCodeStorageFailed,
		fmt.Sprintf("no free file name for %s after %d attempts",
			label.FileName(req.PartNumber, timestamp), s.config.MaxSequence), nil)
}

func writeAndClose(file *os.File, data []byte) error {
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Open returns a stored label PDF by its base file name
func (s *FileSystemStorage) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeStorageFailed, "operation cancelled", ctx.Err())
	default:
	}

	if !isLabelFileName(fileName) {
		s.logger.Warn("blocked invalid label file name", zap.String("name", fileName))
		return nil, NewRenderError(ErrCodeStorageFailed, "invalid file name", nil)
	}

	file, err := os.Open(filepath.Join(s.config.BasePath, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewRenderError(ErrCodeStorageFailed, "PDF not found", err)
		}
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to open PDF file", err)
	}
	return file, nil
}

// CleanupOlderThan removes label_*.pdf files older than the specified duration.
// Other files in the output directory are left alone.
func (s *FileSystemStorage) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	deletedCount := 0

	entries, err := os.ReadDir(s.config.BasePath)
	if err != nil {
		return 0, NewRenderError(ErrCodeStorageFailed, "failed to read output directory", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			break
		}
		if entry.IsDir() || !isLabelFileName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.config.BasePath, entry.Name())
			if err := os.Remove(path); err == nil {
				deletedCount++
				s.logger.Debug("deleted old PDF", zap.String("path", path))
			}
		}
	}

	s.logger.Info("cleanup completed",
		zap.Int("deleted", deletedCount),
		zap.Duration("age", age))

	return deletedCount, nil
}

// isLabelFileName reports whether name is a bare label_*.pdf file name
func isLabelFileName(name string) bool {
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return false
	}
	return strings.HasPrefix(name, "label_") && strings.HasSuffix(name, ".pdf")
}

// Ensure FileSystemStorage implements LabelStorage
var _ LabelStorage = (*FileSystemStorage)(nil)
