package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/customer-pulse/pkg/config"
)

// MinIOClient archives recovered transcripts in an S3 compatible bucket
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	if err := client.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket when it does not exist. Transcripts stay private.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadText uploads text content to MinIO
func (m *MinIOClient) UploadText(ctx context.Context, objectName string, content string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader([]byte(content)), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}

// ArchiveTranscript stores a formatted transcript and returns its object name
func (m *MinIOClient) ArchiveTranscript(ctx context.Context, meetingID uuid.UUID, botID, transcript string) (string, error) {
	objectName := TranscriptObjectName(meetingID, botID)
	if err := m.UploadText(ctx, objectName, transcript); err != nil {
		return "", err
	}
	return objectName, nil
}

// TranscriptObjectName is transcripts/<meeting_id>/<bot_id>.txt
func TranscriptObjectName(meetingID uuid.UUID, botID string) string {
	return path.Join("transcripts", meetingID.String(), path.Base("/"+botID)+".txt")
}
