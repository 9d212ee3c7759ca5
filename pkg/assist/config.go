package assist

import (
	"os"
	"strings"
)

// DefaultModel is the Gemini model used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIKey         = "GEMINI_API_KEY"
	EnvAPIKeyFallback = "API_KEY"
	EnvModel          = "DOCPROTOCOL_MODEL"
	EnvBaseURL        = "DOCPROTOCOL_GEMINI_URL"
)

// Config is the single configuration shared by every assist call.
type Config struct {
	APIKey  string
	ModelID string
	// BaseURL overrides the Gemini endpoint (proxies, tests). Empty uses
	// the SDK default.
	BaseURL string
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() Config {
	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		key = strings.TrimSpace(os.Getenv(EnvAPIKeyFallback))
	}
	return Config{
		APIKey:  key,
		ModelID: strings.TrimSpace(os.Getenv(EnvModel)),
		BaseURL: strings.TrimSpace(os.Getenv(EnvBaseURL)),
	}.withDefaults()
}

// Validate reports ErrMissingAPIKey when no key is set.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.ModelID == "" {
		c.ModelID = DefaultModel
	}
	return c
}
