package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/config"
	"go.uber.org/zap"
)

var (
	// ErrObjectNotFound is returned when a stored plan does not exist
	ErrObjectNotFound = errors.New("stored object not found")

	// ErrTooLarge is returned when an upload exceeds the configured limit
	ErrTooLarge = errors.New("upload exceeds maximum size")
)

// Storage stores uploaded plan files. Paths returned by Upload are opaque,
// slash-separated and only meaningful to the same backend.
type Storage interface {
	Upload(ctx context.Context, folder, filename, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

// NewStorage creates the backend selected by cfg.Mode
func NewStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalStorage(cfg.LocalBasePath, cfg.MaxUploadBytes())
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, cfg.MaxUploadBytes(), logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// objectName builds a collision-free name under folder that keeps the original extension
func objectName(folder, filename string) string {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}

// limitedReader fails with ErrTooLarge once more than max bytes have been read
type limitedReader struct {
	r     io.Reader
	max   int64
	count int64
}

func newLimitedReader(r io.Reader, max int64) *limitedReader {
	return &limitedReader{r: r, max: max}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.count += int64(n)
	if l.max > 0 && l.count > l.max {
		return n, ErrTooLarge
	}
	return n, err
}

// LocalStorage keeps plans on the local filesystem
type LocalStorage struct {
	basePath string
	maxBytes int64
}

// NewLocalStorage creates basePath if needed. maxBytes <= 0 disables the size limit.
func NewLocalStorage(basePath string, maxBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, maxBytes: maxBytes}, nil
}

func (s *LocalStorage) fullPath(storagePath string) (string, error) {
	clean := path.Clean("/" + storagePath)
	if clean == "/" {
		return "", ErrObjectNotFound
	}
	return filepath.Join(s.basePath, filepath.FromSlash(clean)), nil
}

// Upload writes data to a new file under folder
func (s *LocalStorage) Upload(ctx context.Context, folder, filename, contentType string, data io.Reader) (string, int64, error) {
	storagePath := objectName(folder, filename)
	fullPath, err := s.fullPath(storagePath)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, newLimitedReader(data, s.maxBytes))
	if err != nil {
		_ = os.Remove(fullPath)
		if errors.Is(err, ErrTooLarge) {
			return "", 0, err
		}
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return storagePath, size, nil
}

// Download opens a stored plan
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	fullPath, err := s.fullPath(storagePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a stored plan. Deleting a missing plan is not an error.
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	fullPath, err := s.fullPath(storagePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
