// Package app wires the service graph from configuration.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"fastsearch/internal/app/cache"
	"fastsearch/internal/app/index"
	"fastsearch/internal/app/inference"
	"fastsearch/internal/app/model"
	"fastsearch/internal/app/pipeline"
	"fastsearch/internal/app/repository"
	"fastsearch/internal/app/repository/pg"
	"fastsearch/internal/app/repository/sqlite"
	"fastsearch/internal/app/scraper"
	"fastsearch/internal/app/search"
	"fastsearch/internal/app/storage"
	"fastsearch/internal/app/transcriber"
	"fastsearch/internal/config"
)

func provideEncoder(cfg *config.Config) (*inference.Encoder, error) {
	return inference.NewEncoder(cfg.EmbedModelDir, cfg.EmbedBatch, cfg.MaxSeqLen)
}

func provideReranker(cfg *config.Config) (*inference.Reranker, error) {
	return inference.NewReranker(cfg.RerankModelDir, cfg.MaxSeqLen)
}

func provideVectorIndex(cfg *config.Config, logger *zap.Logger) (index.VectorIndex, error) {
	return index.NewQdrantIndex(index.QdrantConfig{
		Host:   cfg.QdrantHost,
		Port:   cfg.QdrantPort,
		APIKey: cfg.QdrantAPIKey,
	}, logger)
}

func provideFeedbackDAO(cfg *config.Config) (repository.FeedbackDAO, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN must be set")
	}
	db, err := pg.GetConnection(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	return pg.NewFeedbackDAO(db), nil
}

func provideSearchConfig(cfg *config.Config) search.Config {
	return search.Config{
		Collection:    cfg.Collection,
		NumCandidates: cfg.NumCandidates,
		NumResults:    cfg.NumResults,
	}
}

func provideWriter(idx index.VectorIndex, cfg *config.Config, logger *zap.Logger) *index.Writer {
	return index.NewWriter(idx, cfg.Collection, cfg.UpsertBatch, logger)
}

// provideTranscriber prefers a self-hosted whisper server and falls
// back to the hosted API.
func provideTranscriber(cfg *config.Config) (transcriber.Transcriber, error) {
	if cfg.WhisperServerURL != "" {
		return transcriber.NewWhisperServer(transcriber.WhisperServerConfig{
			BaseURL:  cfg.WhisperServerURL,
			Language: cfg.WhisperLanguage,
		}), nil
	}
	if cfg.OpenAIAPIKey != "" {
		return transcriber.NewOpenAITranscriber(cfg.OpenAIAPIKey, cfg.WhisperLanguage), nil
	}
	return nil, fmt.Errorf("set WHISPER_SERVER_URL or OPENAI_API_KEY to enable transcription")
}

func provideTranscriptCache(cfg *config.Config) pipeline.TranscriptCache {
	if cfg.RedisAddr == "" {
		return nil
	}
	return cache.NewTranscriptCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
}

func provideRunDAO(cfg *config.Config) (*sqlite.RunDAO, error) {
	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	return sqlite.NewRunDAO(db), nil
}

func provideCatalog(cfg *config.Config) (*pipeline.Catalog, error) {
	var (
		lessons []model.Lesson
		courses []model.Course
	)
	if cfg.LessonsCSV != "" {
		file, err := os.Open(cfg.LessonsCSV)
		if err != nil {
			return nil, fmt.Errorf("failed to open lessons table: %w", err)
		}
		defer file.Close()
		lessons, err = scraper.LoadLessons(file)
		if err != nil {
			return nil, err
		}
	}
	if cfg.CoursesCSV != "" {
		file, err := os.Open(cfg.CoursesCSV)
		if err != nil {
			return nil, fmt.Errorf("failed to open courses table: %w", err)
		}
		defer file.Close()
		courses, err = scraper.LoadCourses(file)
		if err != nil {
			return nil, err
		}
	}
	return pipeline.NewCatalog(lessons, courses), nil
}

func provideScraperClient() *scraper.Client {
	return scraper.NewClient(0)
}

func provideStoreMetadata(store *storage.AudioStore, cfg *config.Config) *pipeline.StoreMetadata {
	return pipeline.NewStoreMetadata(store, cfg.WorkDir)
}

func providePipeline(
	metadata *pipeline.StoreMetadata,
	captions *scraper.Client,
	audio *storage.AudioStore,
	t transcriber.Transcriber,
	encoder *inference.Encoder,
	writer *index.Writer,
	transcripts pipeline.TranscriptCache,
	runs *sqlite.RunDAO,
	catalog *pipeline.Catalog,
	cfg *config.Config,
	logger *zap.Logger,
) *pipeline.Pipeline {
	return pipeline.New(metadata, captions, audio, t, encoder, writer, pipeline.Options{
		Cache:       transcripts,
		Runs:        runs,
		Catalog:     catalog,
		MaxDuration: cfg.MaxDuration,
		WorkDir:     cfg.WorkDir,
	}, logger)
}

func provideAudioStore(cfg *config.Config) (*storage.AudioStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return storage.NewAudioStore(ctx, storage.AudioStoreConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
}
