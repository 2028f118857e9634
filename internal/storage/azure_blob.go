package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// AzureBlobStorage keeps plans in an Azure Blob Storage container
type AzureBlobStorage struct {
	client        *azblob.Client
	containerName string
	maxBytes      int64
	logger        *zap.Logger
}

// NewAzureBlobStorage connects to the account and makes sure the container exists
func NewAzureBlobStorage(connectionString, containerName string, maxBytes int64, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	_, err = client.CreateContainer(context.Background(), containerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	logger.Info("azure blob storage initialized", zap.String("container", containerName))

	return &AzureBlobStorage{
		client:        client,
		containerName: containerName,
		maxBytes:      maxBytes,
		logger:        logger,
	}, nil
}

// Upload streams data to a new blob under folder
func (s *AzureBlobStorage) Upload(ctx context.Context, folder, filename, contentType string, data io.Reader) (string, int64, error) {
	blobName := objectName(folder, filename)
	reader := newLimitedReader(data, s.maxBytes)

	_, err := s.client.UploadStream(ctx, s.containerName, blobName, reader, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			_ = s.Delete(context.WithoutCancel(ctx), blobName)
			return "", 0, ErrTooLarge
		}
		return "", 0, fmt.Errorf("failed to upload blob: %w", err)
	}

	s.logger.Info("plan uploaded",
		zap.String("blobName", blobName),
		zap.String("container", s.containerName),
		zap.String("originalFilename", filename),
		zap.Int64("size", reader.count),
	)

	return blobName, reader.count, nil
}

// Download opens a blob for reading
func (s *AzureBlobStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.containerName, storagePath, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}
	return resp.Body, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *AzureBlobStorage) Delete(ctx context.Context, storagePath string) error {
	_, err := s.client.DeleteBlob(ctx, s.containerName, storagePath, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Info("plan deleted",
		zap.String("blobName", storagePath),
		zap.String("container", s.containerName),
	)
	return nil
}
