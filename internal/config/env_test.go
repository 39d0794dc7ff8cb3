package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "lectures", cfg.Collection)
	assert.Equal(t, 50, cfg.NumCandidates)
	assert.Equal(t, 10, cfg.NumResults)
	assert.Equal(t, 30, cfg.MaxDuration)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QDRANT_HOST", "qdrant.internal")
	t.Setenv("NUM_CANDIDATES", "100")
	t.Setenv("NUM_RESULTS", "25")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REDIS_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "qdrant.internal", cfg.QdrantHost)
	assert.Equal(t, 100, cfg.NumCandidates)
	assert.Equal(t, 25, cfg.NumResults)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, "1h0m0s", cfg.RedisTTL.String())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:          "zero results",
			mutate:        func(c *Config) { c.NumResults = 0 },
			errorContains: "NUM_RESULTS",
		},
		{
			name:          "candidates below results",
			mutate:        func(c *Config) { c.NumCandidates = 5 },
			errorContains: "NUM_CANDIDATES",
		},
		{
			name:          "bad port",
			mutate:        func(c *Config) { c.ServerPort = 70000 },
			errorContains: "SERVER_PORT",
		},
		{
			name:          "malformed api key",
			mutate:        func(c *Config) { c.OpenAIAPIKey = "not-a-key" },
			errorContains: "OPENAI_API_KEY",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tc.mutate(cfg)
			err = cfg.Validate()
			if tc.errorContains == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	assert.Equal(t, 7, envInt("X_INT", 7))

	t.Setenv("X_BOOL", "1")
	assert.True(t, envBool("X_BOOL", false))

	assert.Equal(t, "fallback", envString("X_UNSET_KEY", "fallback"))
}
