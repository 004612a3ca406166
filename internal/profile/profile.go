package profile

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration shared by the server and the CLI.
type Profile struct {
	// LLM configuration (OpenAI-compatible protocol)
	LLMProvider   string // openai, deepseek, openrouter, siliconflow, ollama
	LLMAPIKey     string // overrides the key saved in Settings when set
	LLMBaseURL    string // optional, has default per provider
	LLMModel      string
	LLMImageModel string
	LLMTimeout    int // LLM request timeout in seconds
	LLMMaxTokens  int

	// Generation throttling
	AIRatePerMinute int
	AIRateBurst     int

	// Output presentation
	RevealEnabled   bool
	RevealSpeed     float64
	FormatCacheSize int

	// Logging
	LogLevel  string
	LogFormat string

	Mode    string
	Addr    string
	Port    int
	Data    string
	Driver  string
	DSN     string
	Version string
}

// Provider default models, used when CUTVERSE_AI_LLM_MODEL is not set.
var llmProviderDefaults = map[string]string{
	"openai":      "gpt-4o",
	"deepseek":    "deepseek-chat",
	"openrouter":  "openai/gpt-4o",
	"siliconflow": "Qwen/Qwen2.5-72B-Instruct",
	"ollama":      "llama3.1",
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// HasEnvAPIKey reports whether the LLM key comes from the environment instead of Settings.
func (p *Profile) HasEnvAPIKey() bool {
	return p.LLMAPIKey != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvOrDefaultFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		slog.Warn("ignoring invalid number setting", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		slog.Warn("ignoring invalid boolean setting", "key", key, "value", value)
	}
	return defaultValue
}

// FromEnv loads the settings that have no command-line flag from environment variables.
func (p *Profile) FromEnv() {
	p.LLMProvider = getEnvOrDefault("CUTVERSE_AI_LLM_PROVIDER", "openai")
	p.LLMAPIKey = getEnvOrDefault("CUTVERSE_AI_LLM_API_KEY", "")
	p.LLMBaseURL = getEnvOrDefault("CUTVERSE_AI_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("CUTVERSE_AI_LLM_MODEL", "")
	p.LLMImageModel = getEnvOrDefault("CUTVERSE_AI_IMAGE_MODEL", "dall-e-3")
	p.LLMTimeout = getEnvOrDefaultInt("CUTVERSE_AI_LLM_TIMEOUT_SECONDS", 120)
	p.LLMMaxTokens = getEnvOrDefaultInt("CUTVERSE_AI_LLM_MAX_TOKENS", 2048)

	if _, ok := llmProviderDefaults[p.LLMProvider]; !ok {
		slog.Info("Using generic OpenAI-compatible provider", "provider", p.LLMProvider)
	}
	if p.LLMModel == "" {
		p.LLMModel = llmProviderDefaults[p.LLMProvider]
	}

	p.AIRatePerMinute = getEnvOrDefaultInt("CUTVERSE_AI_RATE_PER_MINUTE", 20)
	p.AIRateBurst = getEnvOrDefaultInt("CUTVERSE_AI_RATE_BURST", 3)

	p.RevealEnabled = getEnvOrDefaultBool("CUTVERSE_REVEAL_ENABLED", true)
	p.RevealSpeed = getEnvOrDefaultFloat("CUTVERSE_REVEAL_SPEED", 1)
	p.FormatCacheSize = getEnvOrDefaultInt("CUTVERSE_FORMAT_CACHE_SIZE", 256)

	p.LogLevel = getEnvOrDefault("CUTVERSE_LOG_LEVEL", "info")
	p.LogFormat = getEnvOrDefault("CUTVERSE_LOG_FORMAT", "text")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// defaultDataDir returns the per-user config directory for cutverse, creating it.
func defaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate user config directory")
	}
	dir := filepath.Join(base, "cutverse")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", errors.Wrapf(err, "failed to create data directory %s", dir)
	}
	return dir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Data == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return err
		}
		p.Data = dir
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	switch p.Driver {
	case "", "sqlite":
		p.Driver = "sqlite"
		if p.DSN == "" {
			p.DSN = filepath.Join(dataDir, "cutverse_"+p.Mode+".db")
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("postgres driver requires a DSN")
		}
	default:
		return errors.Errorf("unsupported database driver %q", p.Driver)
	}

	if p.RevealSpeed <= 0 {
		slog.Warn("reveal speed must be positive, using 1", "speed", p.RevealSpeed)
		p.RevealSpeed = 1
	}
	if p.AIRatePerMinute < 0 {
		return errors.Errorf("invalid generation rate %d", p.AIRatePerMinute)
	}
	if p.AIRateBurst <= 0 {
		p.AIRateBurst = 1
	}
	if p.FormatCacheSize <= 0 {
		p.FormatCacheSize = 256
	}

	return nil
}
