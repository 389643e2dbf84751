package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/notification"

	"github.com/ecstasyholdings/meeting-brain/pkg/config"
)

// MinIOClient wraps MinIO operations across the pipeline buckets
type MinIOClient struct {
	client            *minio.Client
	recordingsBucket  string
	transcriptsBucket string
	enrichedBucket    string
	urlExpiry         time.Duration
}

// NewMinIOClient creates a new MinIO client and ensures the pipeline buckets exist
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:            minioClient,
		recordingsBucket:  cfg.RecordingsBucket,
		transcriptsBucket: cfg.TranscriptsBucket,
		enrichedBucket:    cfg.EnrichedBucket,
		urlExpiry:         cfg.URLExpiry,
	}

	ctx := context.Background()
	for _, bucket := range []string{cfg.RecordingsBucket, cfg.TranscriptsBucket, cfg.EnrichedBucket} {
		if err := client.ensureBucket(ctx, bucket); err != nil {
			return nil, fmt.Errorf("failed to initialize bucket %s: %w", bucket, err)
		}
	}

	return client, nil
}

// ensureBucket creates the bucket if it does not exist yet
func (m *MinIOClient) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadRecording uploads an audio file into the recordings bucket under
// {meetingID}/{filename}. Re-uploading the same object name overwrites the
// previous attempt, so a retried meeting never duplicates storage.
func (m *MinIOClient) UploadRecording(ctx context.Context, meetingID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("%s/%s", meetingID, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.recordingsBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recording: %w", err)
	}
	return objectName, nil
}

// UploadTranscript writes the raw transcript text into the transcripts
// bucket. Objects landing here trigger the enrichment phase.
func (m *MinIOClient) UploadTranscript(ctx context.Context, objectName, content string) error {
	reader := bytes.NewReader([]byte(content))
	_, err := m.client.PutObject(ctx, m.transcriptsBucket, objectName, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return fmt.Errorf("failed to upload transcript: %w", err)
	}
	return nil
}

// GetTranscript reads a transcript object back as text
func (m *MinIOClient) GetTranscript(ctx context.Context, objectName string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.transcriptsBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get transcript: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}

// UploadEnrichedArtifact writes the consolidated enrichment JSON document
func (m *MinIOClient) UploadEnrichedArtifact(ctx context.Context, objectName string, payload []byte) error {
	reader := bytes.NewReader(payload)
	_, err := m.client.PutObject(ctx, m.enrichedBucket, objectName, reader, int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload enriched artifact: %w", err)
	}
	return nil
}

// RecordingURL generates a time-limited read URL for a stored recording.
// Downstream transcription fetches the audio through this URL.
func (m *MinIOClient) RecordingURL(ctx context.Context, objectName string) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.recordingsBucket, objectName, m.urlExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// ListRecordings lists stored recording objects under a prefix
func (m *MinIOClient) ListRecordings(ctx context.Context, prefix string) ([]string, error) {
	var files []string
	objectCh := m.client.ListObjects(ctx, m.recordingsBucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}
	return files, nil
}

// TranscriptEvent describes a transcript object that just landed
type TranscriptEvent struct {
	ObjectName string
}

// ListenTranscripts subscribes to object-created events on the transcripts
// bucket and forwards them until ctx is cancelled. The channel closes when
// the subscription ends.
func (m *MinIOClient) ListenTranscripts(ctx context.Context) <-chan TranscriptEvent {
	events := make(chan TranscriptEvent)
	notifications := m.client.ListenBucketNotification(ctx, m.transcriptsBucket, "", "",
		[]string{string(notification.ObjectCreatedAll)})

	go func() {
		defer close(events)
		for info := range notifications {
			if info.Err != nil {
				continue
			}
			for _, record := range info.Records {
				// Object keys arrive URL-encoded in notification records
				key, err := url.QueryUnescape(record.S3.Object.Key)
				if err != nil {
					key = record.S3.Object.Key
				}
				select {
				case events <- TranscriptEvent{ObjectName: key}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}

// BucketInfo returns connection diagnostics for health reporting
func (m *MinIOClient) BucketInfo(ctx context.Context) (map[string]interface{}, error) {
	info := map[string]interface{}{
		"endpoint": m.client.EndpointURL().String(),
	}
	for name, bucket := range map[string]string{
		"recordings_bucket":  m.recordingsBucket,
		"transcripts_bucket": m.transcriptsBucket,
		"enriched_bucket":    m.enrichedBucket,
	} {
		exists, err := m.client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket: %w", err)
		}
		info[name] = map[string]interface{}{"name": bucket, "exists": exists}
	}
	return info, nil
}
