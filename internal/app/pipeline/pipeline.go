// Package pipeline composes the per-video indexing run: resolve a
// transcript source, merge it into search-sized windows, embed the
// windows and write them to the vector index.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"fastsearch/internal/app/model"
	"fastsearch/internal/app/scraper"
	"fastsearch/internal/app/transcriber"
	"fastsearch/internal/app/transcript"
)

// MetadataSource resolves the scraped metadata document for a video.
type MetadataSource interface {
	Metadata(ctx context.Context, videoID string) (model.VideoMetadata, error)
}

// CaptionFetcher downloads the raw caption document for a track.
type CaptionFetcher interface {
	FetchCaptions(ctx context.Context, track model.Subtitle) (string, error)
}

// AudioFetcher materializes a video's audio file locally.
type AudioFetcher interface {
	FetchAudio(ctx context.Context, videoID, ext, destPath string) (string, error)
}

// TranscriptCache caches whisper output between runs. A nil cache is
// valid and disables caching.
type TranscriptCache interface {
	Get(ctx context.Context, videoID string) (transcriber.Transcription, bool, error)
	Put(ctx context.Context, videoID string, t transcriber.Transcription) error
}

// BatchEmbedder embeds a batch of texts into row-aligned vectors.
type BatchEmbedder interface {
	EmbedBatch(texts []string) ([][]float32, error)
}

// Indexer writes aligned vectors and payloads to the vector index.
type Indexer interface {
	Index(ctx context.Context, vectors [][]float32, payloads []model.SearchPayload) error
}

// RunRecorder persists run bookkeeping. A nil recorder disables it.
type RunRecorder interface {
	RecordRun(ctx context.Context, videoID string, kind model.SegmentKind, segments []model.Segment, finishedAt time.Time) error
}

// Pipeline runs the indexing steps for one video at a time.
type Pipeline struct {
	metadata    MetadataSource
	captions    CaptionFetcher
	audio       AudioFetcher
	transcriber transcriber.Transcriber
	cache       TranscriptCache
	embedder    BatchEmbedder
	indexer     Indexer
	runs        RunRecorder
	catalog     *Catalog
	audioExt    string
	maxDuration int
	workDir     string
	logger      *zap.Logger
}

// Options carries the optional collaborators and tunables.
type Options struct {
	Cache       TranscriptCache
	Runs        RunRecorder
	Catalog     *Catalog
	AudioExt    string
	MaxDuration int
	WorkDir     string
}

func New(metadata MetadataSource, captions CaptionFetcher, audio AudioFetcher, t transcriber.Transcriber, embedder BatchEmbedder, indexer Indexer, opts Options, logger *zap.Logger) *Pipeline {
	if opts.AudioExt == "" {
		opts.AudioExt = "mp3"
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = transcript.DefaultMaxDuration
	}
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog(nil, nil)
	}
	return &Pipeline{
		metadata:    metadata,
		captions:    captions,
		audio:       audio,
		transcriber: t,
		cache:       opts.Cache,
		embedder:    embedder,
		indexer:     indexer,
		runs:        opts.Runs,
		catalog:     opts.Catalog,
		audioExt:    opts.AudioExt,
		maxDuration: opts.MaxDuration,
		workDir:     opts.WorkDir,
		logger:      logger,
	}
}

// RunSummary reports what one pipeline run produced.
type RunSummary struct {
	VideoID  string
	Segments int
	Kind     model.SegmentKind
}

// Run indexes one video end to end. A video that yields no transcript
// is recorded and skipped, not failed.
func (p *Pipeline) Run(ctx context.Context, videoID string) (RunSummary, error) {
	meta, err := p.metadata.Metadata(ctx, videoID)
	if err != nil {
		return RunSummary{}, fmt.Errorf("metadata for %s unavailable: %w", videoID, err)
	}

	captions, err := p.captionSegments(ctx, meta)
	if err != nil {
		return RunSummary{}, err
	}

	// Transcription only runs when no English captions exist; the
	// source selection below then has exactly one non-empty input.
	var machine []model.Segment
	if len(captions) == 0 {
		machine, err = p.machineSegments(ctx, meta)
		if err != nil {
			return RunSummary{}, err
		}
	}

	selected := transcript.SelectSource(captions, machine)
	merged := transcript.Merge(selected, p.maxDuration)
	if len(merged) == 0 {
		p.logger.Warn("video has no usable transcript", zap.String("video_id", videoID))
		summary := RunSummary{VideoID: videoID}
		return summary, p.recordRun(ctx, videoID, model.SegmentKindMachine, nil)
	}
	kind := merged[0].Kind

	texts := lo.Map(merged, func(segment model.Segment, _ int) string { return segment.Text })
	vectors, err := p.embedder.EmbedBatch(texts)
	if err != nil {
		return RunSummary{}, fmt.Errorf("embedding %s failed: %w", videoID, err)
	}

	payloads := p.buildPayloads(meta, merged)
	if err := p.indexer.Index(ctx, vectors, payloads); err != nil {
		return RunSummary{}, fmt.Errorf("indexing %s failed: %w", videoID, err)
	}

	p.logger.Info("video indexed",
		zap.String("video_id", videoID),
		zap.String("kind", string(kind)),
		zap.Int("segments", len(merged)),
	)
	summary := RunSummary{VideoID: videoID, Segments: len(merged), Kind: kind}
	return summary, p.recordRun(ctx, videoID, kind, merged)
}

func (p *Pipeline) recordRun(ctx context.Context, videoID string, kind model.SegmentKind, merged []model.Segment) error {
	if p.runs == nil {
		return nil
	}
	if err := p.runs.RecordRun(ctx, videoID, kind, merged, time.Now()); err != nil {
		return fmt.Errorf("recording run for %s failed: %w", videoID, err)
	}
	return nil
}

// captionSegments downloads and parses English captions, or returns an
// empty map when the video ships none.
func (p *Pipeline) captionSegments(ctx context.Context, meta model.VideoMetadata) (map[string][]model.Segment, error) {
	track, ok := scraper.CaptionTrack(meta, "en")
	if !ok {
		return map[string][]model.Segment{}, nil
	}

	content, err := p.captions.FetchCaptions(ctx, track)
	if err != nil {
		return nil, fmt.Errorf("caption fetch for %s failed: %w", meta.VideoID, err)
	}

	segments, err := transcript.ParseVTT(meta.VideoID, content)
	if err != nil {
		return nil, fmt.Errorf("caption parse for %s failed: %w", meta.VideoID, err)
	}
	return map[string][]model.Segment{"en": segments}, nil
}

// machineSegments produces a whisper transcript, via the cache when one
// is configured. Cache write failures are logged and ignored.
func (p *Pipeline) machineSegments(ctx context.Context, meta model.VideoMetadata) ([]model.Segment, error) {
	if p.cache != nil {
		cached, ok, err := p.cache.Get(ctx, meta.VideoID)
		if err != nil {
			p.logger.Warn("transcript cache read failed", zap.String("video_id", meta.VideoID), zap.Error(err))
		} else if ok {
			return timedToSegments(meta.VideoID, cached.Segments), nil
		}
	}

	destPath := filepath.Join(p.workDir, meta.VideoID+"."+p.audioExt)
	audioPath, err := p.audio.FetchAudio(ctx, meta.VideoID, p.audioExt, destPath)
	if err != nil {
		return nil, fmt.Errorf("audio fetch for %s failed: %w", meta.VideoID, err)
	}
	// a fetcher may hand back a pre-existing local file instead of
	// materializing destPath; only scratch copies are cleaned up
	if audioPath == destPath {
		defer os.Remove(audioPath)
	}

	transcription, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcription of %s failed: %w", meta.VideoID, err)
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, meta.VideoID, transcription); err != nil {
			p.logger.Warn("transcript cache write failed", zap.String("video_id", meta.VideoID), zap.Error(err))
		}
	}
	return timedToSegments(meta.VideoID, transcription.Segments), nil
}

// timedToSegments converts whisper segments to the transcript model,
// truncating fractional offsets to whole seconds.
func timedToSegments(videoID string, timed []transcriber.TimedSegment) []model.Segment {
	segments := make([]model.Segment, 0, len(timed))
	for i, t := range timed {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{
			VideoID:   videoID,
			SegmentID: i,
			Start:     int(t.Start),
			End:       int(t.End),
			Text:      text,
			Kind:      model.SegmentKindMachine,
		})
	}
	return segments
}

// buildPayloads denormalizes lesson and course metadata into each
// segment's payload. Catalogued videos take the lesson name as title.
func (p *Pipeline) buildPayloads(meta model.VideoMetadata, merged []model.Segment) []model.SearchPayload {
	title := meta.Title
	var lessonName, courseName, forumURL *string

	if lesson, ok := p.catalog.Lesson(meta.VideoID); ok {
		title = lesson.Name
		lessonName = &lesson.Name
		if lesson.ForumURL != "" {
			forum := lesson.ForumURL
			forumURL = &forum
		}
		if course, ok := p.catalog.Course(lesson.CourseID); ok {
			name := course.Name
			courseName = &name
		}
	}

	payloads := make([]model.SearchPayload, len(merged))
	for i, segment := range merged {
		payloads[i] = model.SearchPayload{
			VideoID:   meta.VideoID,
			Title:     title,
			Text:      segment.Text,
			Start:     segment.Start,
			Thumbnail: meta.Thumbnail,
			Lesson:    lessonName,
			Course:    courseName,
			Forum:     forumURL,
		}
	}
	return payloads
}
