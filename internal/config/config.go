// Package config provides configuration loading and structs for kotae.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig locates the embeddings database and the table holding the records.
type StorageConfig struct {
	DatabasePath  string `yaml:"database_path"`
	Table         string `yaml:"table"`
	IDColumn      string `yaml:"id_column"`
	VectorColumn  string `yaml:"vector_column"`
	ContentColumn string `yaml:"content_column"`
}

// EmbeddingConfig holds the embedding service settings.
type EmbeddingConfig struct {
	Provider  string        `yaml:"provider"`
	URL       string        `yaml:"url"`
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"api_key"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cache_size"`
}

// GenerationConfig holds the generative model settings.
type GenerationConfig struct {
	Provider    string        `yaml:"provider"`
	URL         string        `yaml:"url"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	Temperature float64       `yaml:"temperature"`
	Stream      bool          `yaml:"stream"`
	Timeout     time.Duration `yaml:"timeout"`
	PromptStyle string        `yaml:"prompt_style"`
}

// RetrievalConfig holds ranking, search and query memory settings.
type RetrievalConfig struct {
	Ranker              string  `yaml:"ranker"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	NameBoost           float64 `yaml:"name_boost"`
	MemoryLimit         int     `yaml:"memory_limit"`
	Workers             int     `yaml:"workers"`
	ShowDocumentNames   bool    `yaml:"show_document_names"`
}

// Ranking converts the retrieval settings into a ranker configuration.
func (r RetrievalConfig) Ranking() (*ranking.RankingConfig, error) {
	strategy, err := ranking.ParseStrategy(r.Ranker)
	if err != nil {
		return nil, err
	}
	rc := &ranking.RankingConfig{
		Strategy:  strategy,
		NameBoost: r.NameBoost,
		Threshold: r.SimilarityThreshold,
	}
	rc.ApplyDefaults()
	return rc, nil
}

// Load reads and parses the config file at path, applies environment overrides,
// expands paths, applies defaults and validates the result.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	configDir := filepath.Dir(path)
	if err := LoadEnv(filepath.Join(configDir, ".env")); err != nil {
		return nil, err
	}
	ApplyEnv(&cfg)
	ApplyDefaults(&cfg)

	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnv loads variables from a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from KOTAE_* environment variables.
func ApplyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"KOTAE_DATABASE_PATH", &cfg.Storage.DatabasePath},
		{"KOTAE_EMBEDDING_URL", &cfg.Embedding.URL},
		{"KOTAE_EMBEDDING_API_KEY", &cfg.Embedding.APIKey},
		{"KOTAE_GENERATION_URL", &cfg.Generation.URL},
		{"KOTAE_GENERATION_API_KEY", &cfg.Generation.APIKey},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	if _, err := ranking.ParseStrategy(c.Retrieval.Ranker); err != nil {
		return fmt.Errorf("invalid retrieval.ranker: %w", err)
	}
	if c.Retrieval.MemoryLimit <= 0 {
		return fmt.Errorf("retrieval.memory_limit must be positive, got %d", c.Retrieval.MemoryLimit)
	}
	if c.Retrieval.Workers < 0 {
		return fmt.Errorf("retrieval.workers must not be negative, got %d", c.Retrieval.Workers)
	}
	switch c.Embedding.Provider {
	case ProviderOllama, ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("unknown embedding.provider %q", c.Embedding.Provider)
	}
	switch c.Generation.Provider {
	case ProviderOllama, ProviderOpenAI, ProviderEcho:
	default:
		return fmt.Errorf("unknown generation.provider %q", c.Generation.Provider)
	}
	switch c.Generation.PromptStyle {
	case PromptStylePlain, PromptStyleLabeled:
	default:
		return fmt.Errorf("unknown generation.prompt_style %q", c.Generation.PromptStyle)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) || path == ":memory:" {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
