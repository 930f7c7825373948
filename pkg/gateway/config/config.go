// Package config loads gateway configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the gateway needs to run.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// AnthropicAPIKey authenticates model calls.
	AnthropicAPIKey string
	// AnthropicBaseURL overrides the model endpoint, for tests.
	AnthropicBaseURL string
	// Model is the chat model identifier.
	Model string

	// BraveAPIKey authenticates web search.
	BraveAPIKey string
	// FirecrawlAPIKey authenticates page scraping.
	FirecrawlAPIKey string
	// ElevenLabsAPIKey authenticates both STT and TTS.
	ElevenLabsAPIKey string

	// TTSVoice selects the synthesis voice.
	TTSVoice string

	// MaxToolRounds caps the tool loop within one user turn.
	MaxToolRounds int
	// MinAudioBytes rejects clips too small to hold speech.
	MinAudioBytes int

	// ModelTimeout bounds one model round trip.
	ModelTimeout time.Duration
	// ToolTimeout bounds one tool invocation.
	ToolTimeout time.Duration
	// TurnTimeout bounds one full voice turn.
	TurnTimeout time.Duration

	// AllowedOrigins whitelists browser origins for CORS and the
	// WebSocket upgrade. Empty means same-origin only; "*" allows all.
	AllowedOrigins []string

	// ShutdownGrace bounds graceful shutdown.
	ShutdownGrace time.Duration
}

// Defaults mirrored by LoadFromEnv.
const (
	DefaultAddr          = ":8000"
	DefaultModel         = "claude-3-5-sonnet-20240620"
	DefaultTTSVoice      = "JBFqnCBsd6RMkjVDRZzb"
	DefaultMaxToolRounds = 8
	DefaultMinAudioBytes = 1000
	DefaultModelTimeout  = 60 * time.Second
	DefaultToolTimeout   = 45 * time.Second
	DefaultTurnTimeout   = 2 * time.Minute
	DefaultShutdownGrace = 10 * time.Second
)

// LoadFromEnv reads configuration from ECHOBUY_* and vendor-standard
// environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Addr:             envOr("ECHOBUY_ADDR", DefaultAddr),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: os.Getenv("ECHOBUY_ANTHROPIC_BASE_URL"),
		Model:            envOr("ECHOBUY_MODEL", DefaultModel),
		BraveAPIKey:      os.Getenv("BRAVE_API_KEY"),
		FirecrawlAPIKey:  os.Getenv("FIRECRAWL_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		TTSVoice:         envOr("ECHOBUY_TTS_VOICE", DefaultTTSVoice),
		MaxToolRounds:    envIntOr("ECHOBUY_MAX_TOOL_ROUNDS", DefaultMaxToolRounds),
		MinAudioBytes:    envIntOr("ECHOBUY_MIN_AUDIO_BYTES", DefaultMinAudioBytes),
		ModelTimeout:     envDurationOr("ECHOBUY_MODEL_TIMEOUT", DefaultModelTimeout),
		ToolTimeout:      envDurationOr("ECHOBUY_TOOL_TIMEOUT", DefaultToolTimeout),
		TurnTimeout:      envDurationOr("ECHOBUY_TURN_TIMEOUT", DefaultTurnTimeout),
		AllowedOrigins:   envList("ECHOBUY_ALLOWED_ORIGINS"),
		ShutdownGrace:    envDurationOr("ECHOBUY_SHUTDOWN_GRACE", DefaultShutdownGrace),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot serve traffic.
func (c *Config) Validate() error {
	var missing []string
	if c.AnthropicAPIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if c.BraveAPIKey == "" {
		missing = append(missing, "BRAVE_API_KEY")
	}
	if c.FirecrawlAPIKey == "" {
		missing = append(missing, "FIRECRAWL_API_KEY")
	}
	if c.ElevenLabsAPIKey == "" {
		missing = append(missing, "ELEVENLABS_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.Addr == "" {
		return fmt.Errorf("config: listen address must not be empty")
	}
	if c.MaxToolRounds <= 0 {
		return fmt.Errorf("config: max tool rounds must be positive, got %d", c.MaxToolRounds)
	}
	if c.MinAudioBytes < 0 {
		return fmt.Errorf("config: min audio bytes must not be negative, got %d", c.MinAudioBytes)
	}
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"model timeout", c.ModelTimeout},
		{"tool timeout", c.ToolTimeout},
		{"turn timeout", c.TurnTimeout},
	} {
		if d.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %s", d.name, d.value)
		}
	}
	return nil
}

// OriginAllowed reports whether a browser origin may connect.
func (c *Config) OriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
