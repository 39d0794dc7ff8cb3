// Package cache keeps machine transcripts in Redis so re-running the
// pipeline does not pay for transcription twice.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fastsearch/internal/app/transcriber"
)

// TranscriptCache is a read-through cache of whisper output keyed by
// video id.
type TranscriptCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTranscriptCache(addr, password string, db int, ttl time.Duration) *TranscriptCache {
	return &TranscriptCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func key(videoID string) string {
	return "transcript:" + videoID
}

// Get returns the cached transcription, or ok=false on a miss.
func (c *TranscriptCache) Get(ctx context.Context, videoID string) (transcriber.Transcription, bool, error) {
	data, err := c.client.Get(ctx, key(videoID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return transcriber.Transcription{}, false, nil
	}
	if err != nil {
		return transcriber.Transcription{}, false, fmt.Errorf("transcript cache read failed: %w", err)
	}

	var out transcriber.Transcription
	if err := json.Unmarshal(data, &out); err != nil {
		return transcriber.Transcription{}, false, fmt.Errorf("cached transcript is corrupt: %w", err)
	}
	return out, true, nil
}

// Put stores a transcription under the cache TTL.
func (c *TranscriptCache) Put(ctx context.Context, videoID string, t transcriber.Transcription) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	if err := c.client.Set(ctx, key(videoID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("transcript cache write failed: %w", err)
	}
	return nil
}

func (c *TranscriptCache) Close() error {
	return c.client.Close()
}
