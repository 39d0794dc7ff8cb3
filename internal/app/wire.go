//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"fastsearch/internal/app/inference"
	"fastsearch/internal/app/pipeline"
	"fastsearch/internal/app/search"
	"fastsearch/internal/app/temporal/activities"
	"fastsearch/internal/config"
)

// InitializeSearchService builds the query-time service graph.
func InitializeSearchService(cfg *config.Config, logger *zap.Logger) (*search.Service, error) {
	wire.Build(
		provideEncoder,
		provideReranker,
		provideVectorIndex,
		provideFeedbackDAO,
		provideSearchConfig,
		wire.Bind(new(search.Embedder), new(*inference.Encoder)),
		wire.Bind(new(search.Reranker), new(*inference.Reranker)),
		search.NewService,
	)
	return nil, nil
}

// InitializePipeline builds the indexing pipeline graph.
func InitializePipeline(cfg *config.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	wire.Build(
		provideEncoder,
		provideVectorIndex,
		provideWriter,
		provideTranscriber,
		provideTranscriptCache,
		provideRunDAO,
		provideCatalog,
		provideAudioStore,
		provideScraperClient,
		provideStoreMetadata,
		providePipeline,
	)
	return nil, nil
}

// InitializeIndexActivities builds the Temporal activity bundle.
func InitializeIndexActivities(cfg *config.Config, logger *zap.Logger) (*activities.IndexActivities, error) {
	wire.Build(
		provideEncoder,
		provideVectorIndex,
		provideWriter,
		provideTranscriber,
		provideTranscriptCache,
		provideRunDAO,
		provideCatalog,
		provideAudioStore,
		provideScraperClient,
		provideStoreMetadata,
		providePipeline,
		wire.Bind(new(activities.PipelineRunner), new(*pipeline.Pipeline)),
		activities.NewIndexActivities,
	)
	return nil, nil
}
