package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fastsearch/internal/app/model"
	"fastsearch/internal/app/scraper"
	"fastsearch/internal/app/storage"
)

// StoreMetadata resolves metadata documents from object storage.
type StoreMetadata struct {
	store   *storage.AudioStore
	workDir string
}

func NewStoreMetadata(store *storage.AudioStore, workDir string) *StoreMetadata {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &StoreMetadata{store: store, workDir: workDir}
}

func (s *StoreMetadata) Metadata(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	destPath := filepath.Join(s.workDir, videoID+".info.json")
	path, err := s.store.FetchMetadata(ctx, videoID, destPath)
	if err != nil {
		return model.VideoMetadata{}, err
	}
	defer os.Remove(path)
	return scraper.LoadMetadataFile(path)
}

// DirMetadata resolves metadata documents from a local scrape
// directory laid out as <dir>/<video_id>.info.json.
type DirMetadata struct {
	dir string
}

func NewDirMetadata(dir string) *DirMetadata {
	return &DirMetadata{dir: dir}
}

func (d *DirMetadata) Metadata(_ context.Context, videoID string) (model.VideoMetadata, error) {
	path := filepath.Join(d.dir, videoID+".info.json")
	if _, err := os.Stat(path); err != nil {
		return model.VideoMetadata{}, fmt.Errorf("no metadata document for %s: %w", videoID, err)
	}
	return scraper.LoadMetadataFile(path)
}

// LocalAudio serves audio files already present on disk, for runs that
// skip object storage.
type LocalAudio struct {
	dir string
}

func NewLocalAudio(dir string) *LocalAudio {
	return &LocalAudio{dir: dir}
}

func (l *LocalAudio) FetchAudio(_ context.Context, videoID, ext, _ string) (string, error) {
	path := filepath.Join(l.dir, videoID+"."+ext)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no audio file for %s: %w", videoID, err)
	}
	return path, nil
}
