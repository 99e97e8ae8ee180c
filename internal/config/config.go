package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the Director server.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	Auth      AuthConfig
	ScriptGen ScriptGenConfig
	VideoGen  VideoGenConfig
	Pipeline  PipelineConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// StoreConfig selects the job store backend. "postgres" keeps job documents
// in a JSONB column; "file" keeps them in a single local JSON file.
type StoreConfig struct {
	Provider        string
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	FilePath        string
}

type RedisConfig struct {
	URL string
}

// AuthConfig holds API keys as owner:bcrypt-hash pairs, comma separated.
type AuthConfig struct {
	Keys           string
	RequestsPerMin int
}

type ScriptGenConfig struct {
	Provider     string
	DraftTimeout time.Duration
	Gemini       GeminiConfig
	OpenAI       OpenAIConfig
}

type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type VideoGenConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PipelineConfig carries the production tunables. MaxRetries defaults to zero
// on purpose: every retry burns backend quota, so the operator opts in.
type PipelineConfig struct {
	InterSceneDelay time.Duration
	PollInterval    time.Duration
	PollTimeout     time.Duration
	MaxRetries      int
	RetryDelay      time.Duration

	// PartialStatus marks jobs that finished without a final video as
	// completed_partial instead of completed.
	PartialStatus bool
}

type StorageConfig struct {
	Dir string
}

var validStoreProviders = map[string]bool{
	"postgres": true,
	"file":     true,
}

var validScriptProviders = map[string]bool{
	"gemini": true,
	"openai": true,
}

// Load reads configuration from environment variables and returns a validated Config.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("DIRECTOR_PORT", 8080),
			Env:  envString("DIRECTOR_ENV", "development"),
		},
		Store: StoreConfig{
			Provider:        envString("STORE_PROVIDER", "file"),
			DatabaseURL:     os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
			FilePath:        envString("STORE_FILE_PATH", "jobs.json"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Auth: AuthConfig{
			Keys:           os.Getenv("DIRECTOR_API_KEYS"),
			RequestsPerMin: envInt("DIRECTOR_RATE_LIMIT_PER_MIN", 60),
		},
		ScriptGen: ScriptGenConfig{
			Provider:     envString("SCRIPT_PROVIDER", "gemini"),
			DraftTimeout: envDurationSecs("SCRIPT_DRAFT_TIMEOUT_SECS", 600*time.Second),
			Gemini: GeminiConfig{
				BaseURL: envString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   envString("GEMINI_MODEL", "gemini-3-pro-preview"),
			},
			OpenAI: OpenAIConfig{
				APIKey: os.Getenv("OPENAI_API_KEY"),
				Model:  envString("OPENAI_MODEL", "gpt-4o"),
			},
		},
		VideoGen: VideoGenConfig{
			BaseURL: os.Getenv("VIDEOGEN_BASE_URL"),
			Timeout: envDurationSecs("VIDEOGEN_TIMEOUT_SECS", 300*time.Second),
		},
		Pipeline: PipelineConfig{
			InterSceneDelay: envDurationSecs("PIPELINE_INTER_SCENE_DELAY_SECS", 40*time.Second),
			PollInterval:    envDurationSecs("PIPELINE_POLL_INTERVAL_SECS", 5*time.Second),
			PollTimeout:     envDurationSecs("PIPELINE_POLL_TIMEOUT_SECS", 900*time.Second),
			MaxRetries:      envInt("PIPELINE_MAX_RETRIES", 0),
			RetryDelay:      envDurationSecs("PIPELINE_RETRY_DELAY_SECS", 10*time.Second),
			PartialStatus:   envBool("DIRECTOR_PARTIAL_STATUS", false),
		},
		Storage: StorageConfig{
			Dir: envString("STORAGE_DIR", "generated_videos"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !validStoreProviders[c.Store.Provider] {
		return fmt.Errorf("STORE_PROVIDER must be one of postgres, file; got %q", c.Store.Provider)
	}
	if c.Store.Provider == "postgres" && c.Store.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORE_PROVIDER is postgres")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if !validScriptProviders[c.ScriptGen.Provider] {
		return fmt.Errorf("SCRIPT_PROVIDER must be one of gemini, openai; got %q", c.ScriptGen.Provider)
	}
	if c.ScriptGen.Provider == "gemini" && c.ScriptGen.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when SCRIPT_PROVIDER is gemini")
	}
	if c.ScriptGen.Provider == "openai" && c.ScriptGen.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when SCRIPT_PROVIDER is openai")
	}

	if c.VideoGen.BaseURL == "" {
		return fmt.Errorf("VIDEOGEN_BASE_URL is required")
	}
	if !strings.HasPrefix(c.VideoGen.BaseURL, "http://") && !strings.HasPrefix(c.VideoGen.BaseURL, "https://") {
		return fmt.Errorf("VIDEOGEN_BASE_URL must start with http:// or https://, got %q", c.VideoGen.BaseURL)
	}

	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("PIPELINE_MAX_RETRIES must be >= 0, got %d", c.Pipeline.MaxRetries)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
