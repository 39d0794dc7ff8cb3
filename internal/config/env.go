// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration. One struct serves both the
// API server and the indexing pipeline; unused sections stay at their
// defaults.
type Config struct {
	// HTTP API
	ServerPort int

	// vector index
	QdrantHost     string
	QdrantPort     int
	QdrantAPIKey   string
	Collection     string
	UpsertBatch    int
	NumCandidates  int
	NumResults     int

	// local models
	EmbedModelDir  string
	RerankModelDir string
	EmbedBatch     int
	MaxSeqLen      int

	// query and feedback log
	PostgresDSN string

	// pipeline state
	SQLitePath  string
	WorkDir     string
	MaxDuration int

	// object storage
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// transcript cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	// transcription backend
	OpenAIAPIKey     string
	WhisperServerURL string
	WhisperLanguage  string

	// seed tables
	LessonsCSV string
	CoursesCSV string

	// temporal
	TemporalHostPort  string
	TemporalNamespace string
	TemporalTaskQueue string
}

// LoadEnv loads a .env file when one is present. Absence is not an
// error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{".env", ".env.local", "../.env", "../../.env"}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:     envInt("SERVER_PORT", 8000),
		QdrantHost:     envString("QDRANT_HOST", "localhost"),
		QdrantPort:     envInt("QDRANT_PORT", 6334),
		QdrantAPIKey:   os.Getenv("QDRANT_API_KEY"),
		Collection:     envString("COLLECTION_NAME", "lectures"),
		UpsertBatch:    envInt("UPSERT_BATCH_SIZE", 512),
		NumCandidates:  envInt("NUM_CANDIDATES", 50),
		NumResults:     envInt("NUM_RESULTS", 10),
		EmbedModelDir:  envString("EMBED_MODEL_DIR", "models/embed"),
		RerankModelDir: envString("RERANK_MODEL_DIR", "models/rerank"),
		EmbedBatch:     envInt("EMBED_BATCH_SIZE", 32),
		MaxSeqLen:      envInt("MAX_SEQ_LEN", 512),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		SQLitePath:     envString("SQLITE_PATH", "data/fastsearch.db"),
		WorkDir:        envString("WORK_DIR", os.TempDir()),
		MaxDuration:    envInt("MAX_SEGMENT_DURATION", 30),
		MinioEndpoint:  envString("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: envString("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: envString("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    envString("MINIO_BUCKET", "fastsearch-artifacts"),
		MinioUseSSL:    envBool("MINIO_USE_SSL", false),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		RedisTTL:       envDuration("REDIS_TTL", 30*24*time.Hour),

		OpenAIAPIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		WhisperServerURL: os.Getenv("WHISPER_SERVER_URL"),
		WhisperLanguage:  envString("WHISPER_LANGUAGE", "en"),

		LessonsCSV: os.Getenv("LESSONS_CSV"),
		CoursesCSV: os.Getenv("COURSES_CSV"),

		TemporalHostPort:  envString("TEMPORAL_HOST_PORT", "localhost:7233"),
		TemporalNamespace: envString("TEMPORAL_NAMESPACE", "default"),
		TemporalTaskQueue: envString("TEMPORAL_TASK_QUEUE", "fastsearch-indexing"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the cross-field constraints.
func (c *Config) Validate() error {
	if c.NumResults <= 0 {
		return fmt.Errorf("NUM_RESULTS must be positive, got %d", c.NumResults)
	}
	if c.NumCandidates < c.NumResults {
		return fmt.Errorf("NUM_CANDIDATES (%d) must be at least NUM_RESULTS (%d)", c.NumCandidates, c.NumResults)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("MAX_SEGMENT_DURATION must be positive, got %d", c.MaxDuration)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT %d is out of range", c.ServerPort)
	}
	if c.OpenAIAPIKey != "" && !strings.HasPrefix(c.OpenAIAPIKey, "sk-") {
		return fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	return nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value == "true" || value == "1"
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
