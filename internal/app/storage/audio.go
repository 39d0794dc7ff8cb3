// Package storage holds pipeline artifacts in object storage: raw
// lecture audio and scraped metadata documents.
package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AudioStoreConfig configures the MinIO-backed artifact store.
type AudioStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AudioStore fetches and publishes per-video artifacts. Objects are
// keyed audio/<video_id>.<ext> and metadata/<video_id>.json.
type AudioStore struct {
	client *minio.Client
	bucket string
}

func NewAudioStore(ctx context.Context, cfg AudioStoreConfig) (*AudioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &AudioStore{client: client, bucket: cfg.Bucket}, nil
}

// FetchAudio downloads a video's audio object to destPath and returns
// destPath for convenience.
func (s *AudioStore) FetchAudio(ctx context.Context, videoID, ext, destPath string) (string, error) {
	key := path.Join("audio", videoID+"."+ext)
	if err := s.client.FGetObject(ctx, s.bucket, key, destPath, minio.GetObjectOptions{}); err != nil {
		return "", fmt.Errorf("failed to fetch audio %s: %w", key, err)
	}
	return destPath, nil
}

// PutAudio uploads an audio file from the local filesystem.
func (s *AudioStore) PutAudio(ctx context.Context, videoID, ext, srcPath string) error {
	key := path.Join("audio", videoID+"."+ext)
	_, err := s.client.FPutObject(ctx, s.bucket, key, srcPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload audio %s: %w", key, err)
	}
	return nil
}

// FetchMetadata downloads a video's scraped metadata document.
func (s *AudioStore) FetchMetadata(ctx context.Context, videoID, destPath string) (string, error) {
	key := path.Join("metadata", videoID+".json")
	if err := s.client.FGetObject(ctx, s.bucket, key, destPath, minio.GetObjectOptions{}); err != nil {
		return "", fmt.Errorf("failed to fetch metadata %s: %w", key, err)
	}
	return destPath, nil
}

// PutMetadata uploads a scraped metadata document.
func (s *AudioStore) PutMetadata(ctx context.Context, videoID, srcPath string) error {
	key := path.Join("metadata", videoID+".json")
	_, err := s.client.FPutObject(ctx, s.bucket, key, srcPath, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload metadata %s: %w", key, err)
	}
	return nil
}
