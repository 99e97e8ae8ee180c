package scriptgen

import (
	"fmt"

	"github.com/ankitpatil/director/internal/config"
	"github.com/ankitpatil/director/internal/scriptgen/gemini"
	"github.com/ankitpatil/director/internal/scriptgen/openai"
	"github.com/ankitpatil/director/pkg/models"
)

// NewProvider constructs the configured script provider. Called once at
// server startup.
func NewProvider(cfg config.ScriptGenConfig) (models.ScriptProvider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewProvider(cfg.Gemini), nil
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	default:
		return nil, fmt.Errorf("unknown script provider %q: must be one of gemini, openai", cfg.Provider)
	}
}
