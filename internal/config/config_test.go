package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitpatil/director/internal/config"
)

// setEnv is a helper that sets environment variables for a test and restores them after.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
}

// validEnv returns the minimum set of valid environment variables.
func validEnv() map[string]string {
	return map[string]string{
		"REDIS_URL":         "redis://localhost:6379",
		"VIDEOGEN_BASE_URL": "http://127.0.0.1:8002",
		"SCRIPT_PROVIDER":   "gemini",
		"GEMINI_API_KEY":    "test-key",
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	setEnv(t, validEnv())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "file", cfg.Store.Provider)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, "gemini", cfg.ScriptGen.Provider)
	assert.Equal(t, "http://127.0.0.1:8002", cfg.VideoGen.BaseURL)
}

func TestLoad_PipelineDefaults(t *testing.T) {
	setEnv(t, validEnv())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 40*time.Second, cfg.Pipeline.InterSceneDelay)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.PollInterval)
	assert.Equal(t, 15*time.Minute, cfg.Pipeline.PollTimeout)
	assert.Equal(t, 0, cfg.Pipeline.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Pipeline.RetryDelay)
	assert.False(t, cfg.Pipeline.PartialStatus)
}

func TestLoad_PipelineOverrides(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("PIPELINE_INTER_SCENE_DELAY_SECS", "1")
	t.Setenv("PIPELINE_MAX_RETRIES", "2")
	t.Setenv("DIRECTOR_PARTIAL_STATUS", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Pipeline.InterSceneDelay)
	assert.Equal(t, 2, cfg.Pipeline.MaxRetries)
	assert.True(t, cfg.Pipeline.PartialStatus)
}

func TestLoad_MissingRedisURL(t *testing.T) {
	env := validEnv()
	delete(env, "REDIS_URL")
	setEnv(t, env)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_MissingVideoGenURL(t *testing.T) {
	env := validEnv()
	delete(env, "VIDEOGEN_BASE_URL")
	setEnv(t, env)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIDEOGEN_BASE_URL")
}

func TestLoad_BadVideoGenScheme(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("VIDEOGEN_BASE_URL", "127.0.0.1:8002")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http://")
}

func TestLoad_InvalidScriptProvider(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("SCRIPT_PROVIDER", "claude")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCRIPT_PROVIDER")
}

func TestLoad_GeminiRequiresKey(t *testing.T) {
	env := validEnv()
	delete(env, "GEMINI_API_KEY")
	setEnv(t, env)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoad_OpenAIRequiresKey(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("SCRIPT_PROVIDER", "openai")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("STORE_PROVIDER", "postgres")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_InvalidStoreProvider(t *testing.T) {
	setEnv(t, validEnv())
	t.Setenv("STORE_PROVIDER", "mongo")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_PROVIDER")
}
