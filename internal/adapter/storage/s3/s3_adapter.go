package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3Storage stores listing images and avatars in a MinIO bucket and hands
// back publicly addressable URLs.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucketName, err)
		}
	}

	logger.Info("S3 storage initialized", zap.String("endpoint", endpoint), zap.String("bucket", bucketName))
	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: logger,
	}, nil
}

// Upload stores data under a fresh uuid key, keeping the original extension.
func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	return s.UploadStream(ctx, originalFileName, bytes.NewReader(data), int64(len(data)))
}

// UploadStream is the io.Reader variant used by the client uploader so that
// progress can be observed while bytes flow.
func (s *S3Storage) UploadStream(ctx context.Context, originalFileName string, r io.Reader, size int64) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	info, err := s.client.PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("S3 upload failed",
			zap.String("bucket", s.bucket), zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("S3 upload complete",
		zap.String("key", info.Key), zap.Int64("size", info.Size), zap.String("url", fileURL))
	return fileURL, nil
}
