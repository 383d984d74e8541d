package config

import "time"

// Provider names accepted by embedding.provider and generation.provider.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock" // embedding only
	ProviderEcho   = "echo" // generation only
)

// Prompt styles accepted by generation.prompt_style.
const (
	PromptStylePlain   = "plain"
	PromptStyleLabeled = "labeled"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./embeddings.db"
	}
	if cfg.Storage.Table == "" {
		cfg.Storage.Table = "file_info"
	}
	if cfg.Storage.IDColumn == "" {
		cfg.Storage.IDColumn = "nombre"
	}
	if cfg.Storage.VectorColumn == "" {
		cfg.Storage.VectorColumn = "embedding"
	}
	if cfg.Storage.ContentColumn == "" {
		cfg.Storage.ContentColumn = "original_content"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = ProviderOllama
	}
	if cfg.Embedding.URL == "" && cfg.Embedding.Provider == ProviderOllama {
		cfg.Embedding.URL = "http://localhost:11434/api/embeddings"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "mxbai-embed-large"
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 30 * time.Second
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1000
	}
	if cfg.Generation.Provider == "" {
		cfg.Generation.Provider = ProviderOllama
	}
	if cfg.Generation.URL == "" && cfg.Generation.Provider == ProviderOllama {
		cfg.Generation.URL = "http://localhost:11434/api/generate"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "llama3"
	}
	if cfg.Generation.Timeout == 0 {
		cfg.Generation.Timeout = 120 * time.Second
	}
	if cfg.Generation.PromptStyle == "" {
		cfg.Generation.PromptStyle = PromptStyleLabeled
	}
	if cfg.Retrieval.Ranker == "" {
		cfg.Retrieval.Ranker = "plain"
	}
	if cfg.Retrieval.NameBoost == 0 {
		cfg.Retrieval.NameBoost = 0.1
	}
	if cfg.Retrieval.MemoryLimit == 0 {
		cfg.Retrieval.MemoryLimit = 5
	}
	if cfg.Retrieval.Workers == 0 {
		cfg.Retrieval.Workers = 1
	}
}
