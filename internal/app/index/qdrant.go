package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// QdrantIndex implements VectorIndex against a Qdrant instance over
// gRPC. One instance is created at process start and shared.
type QdrantIndex struct {
	client *qdrant.Client
	logger *zap.Logger
}

// QdrantConfig carries connection settings for the Qdrant client.
type QdrantConfig struct {
	Host   string
	Port   int
	APIKey string
}

// NewQdrantIndex dials the Qdrant gRPC endpoint. TLS is enabled exactly
// when an API key is configured, matching hosted Qdrant defaults.
func NewQdrantIndex(cfg QdrantConfig, logger *zap.Logger) (*QdrantIndex, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.APIKey != "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}
	return &QdrantIndex{client: client, logger: logger}, nil
}

// EnsureCollection creates the collection if absent. A lost create race
// (another writer created it first) is tolerated and logged, not
// surfaced as an error.
func (q *QdrantIndex) EnsureCollection(ctx context.Context, name string, dim int) error {
	exists, err := q.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", name, err)
	}
	if exists {
		return nil
	}

	q.logger.Info("collection missing, creating", zap.String("collection", name), zap.Int("dim", dim))
	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			q.logger.Info("lost collection create race, continuing", zap.String("collection", name))
			return nil
		}
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

func (q *QdrantIndex) Upsert(ctx context.Context, name string, points []Point) error {
	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, point := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(point.ID),
			Vectors: qdrant.NewVectors(point.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"video_id":  point.Payload.VideoID,
				"title":     point.Payload.Title,
				"text":      point.Payload.Text,
				"start":     point.Payload.Start,
				"thumbnail": point.Payload.Thumbnail,
				"lesson":    optional(point.Payload.Lesson),
				"course":    optional(point.Payload.Course),
				"forum":     optional(point.Payload.Forum),
			}),
		}
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d points into %s: %w", len(points), name, err)
	}
	return nil
}

func (q *QdrantIndex) Search(ctx context.Context, name string, vector []float32, limit int) ([]Hit, error) {
	scored, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: name,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
		Params: &qdrant.SearchParams{
			HnswEf: qdrant.PtrOf(uint64(len(vector))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", name, err)
	}

	hits := make([]Hit, len(scored))
	for i, point := range scored {
		payload := make(map[string]any, len(point.GetPayload()))
		for key, value := range point.GetPayload() {
			payload[key] = valueToAny(value)
		}
		hits[i] = Hit{
			ID:      point.GetId().GetNum(),
			Score:   point.GetScore(),
			Payload: payload,
		}
	}
	return hits, nil
}

// Close tears down the gRPC connection.
func (q *QdrantIndex) Close() error {
	return q.client.Close()
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// valueToAny unwraps a qdrant payload value into a plain Go value.
func valueToAny(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	default:
		return nil
	}
}
