// In file: cmd/server/config.go
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dileep-u-k/prompt-optimizer/internal/api"
	"github.com/dileep-u-k/prompt-optimizer/internal/llm"
)

const (
	defaultPort       = "8080"
	defaultConfigPath = "config.yaml"
)

// LimitsConfig holds the boundary limits read from config.yaml.
type LimitsConfig struct {
	MaxTextLength     int           `yaml:"max_text_length"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	RewriteTimeout    time.Duration `yaml:"rewrite_timeout"`
}

// fileConfig is the shape of config.yaml.
type fileConfig struct {
	Router *llm.RouterConfig `yaml:"router"`
	Limits LimitsConfig      `yaml:"limits"`
}

// AppConfig holds all configuration for the server, loaded from the environment and config files.
type AppConfig struct {
	Port          string
	RedisAddr     string
	RewriteModels []string
	APIKeys       map[llm.Provider]string
	ModelCosts    map[string]llm.ModelCost
	ModelBudgets  map[string]float64
	RouterConfig  *llm.RouterConfig
	Limits        LimitsConfig
}

// LoadConfig loads all configuration from a .env file, environment variables, and config.yaml.
func LoadConfig() (*AppConfig, error) {
	// In release mode the environment is provided by the container runtime.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Warn("No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Port:      getEnv("PORT", defaultPort),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		APIKeys: map[llm.Provider]string{
			llm.ProviderOpenAI:    os.Getenv("OPENAI_API_KEY"),
			llm.ProviderAnthropic: os.Getenv("ANTHROPIC_API_KEY"),
			llm.ProviderGemini:    os.Getenv("GEMINI_API_KEY"),
			llm.ProviderMistral:   os.Getenv("MISTRAL_API_KEY"),
		},
		ModelCosts:   make(map[string]llm.ModelCost),
		ModelBudgets: make(map[string]float64),
	}

	cfg.RewriteModels = splitList(os.Getenv("REWRITE_MODELS"))
	for _, modelID := range cfg.RewriteModels {
		if cost, ok := modelCostFromEnv(modelID); ok {
			cfg.ModelCosts[modelID] = cost
		}
		if budget, err := strconv.ParseFloat(os.Getenv(envName(modelID, "BUDGET_USD")), 64); err == nil {
			cfg.ModelBudgets[modelID] = budget
		}
	}

	fc, err := loadFileConfig(getEnv("CONFIG_PATH", defaultConfigPath))
	if err != nil {
		return nil, err
	}
	cfg.RouterConfig = fc.Router
	cfg.Limits = fc.Limits
	return cfg, nil
}

// loadFileConfig reads config.yaml. A missing file yields the defaults.
func loadFileConfig(path string) (*fileConfig, error) {
	fc := &fileConfig{}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warnf("⚠️ %s not found, using built-in router and limit defaults.", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, fc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if fc.Router == nil {
		fc.Router = llm.DefaultRouterConfig()
	}
	if fc.Limits.MaxTextLength <= 0 {
		fc.Limits.MaxTextLength = api.DefaultMaxTextLength
	}
	return fc, nil
}

// modelCostFromEnv reads <MODEL>_COST_INPUT and <MODEL>_COST_OUTPUT, both
// quoted per million tokens.
func modelCostFromEnv(modelID string) (llm.ModelCost, bool) {
	in, errI := strconv.ParseFloat(os.Getenv(envName(modelID, "COST_INPUT")), 64)
	out, errO := strconv.ParseFloat(os.Getenv(envName(modelID, "COST_OUTPUT")), 64)
	if errI != nil || errO != nil {
		return llm.ModelCost{}, false
	}
	return llm.ModelCost{Input: in / 1_000_000, Output: out / 1_000_000}, true
}

// envName turns "gpt-4o-mini" and "COST_INPUT" into "GPT_4O_MINI_COST_INPUT".
func envName(modelID, suffix string) string {
	sanitized := strings.NewReplacer("-", "_", ".", "_").Replace(modelID)
	return fmt.Sprintf("%s_%s", strings.ToUpper(sanitized), suffix)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
