// Package file loads and saves the askdocs configuration as a TOML file,
// by default ~/.askdocs/config.toml.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultChunkSize      = 1000
	DefaultOverlap        = 200
	DefaultChunkMethod    = "fixed"
	DefaultTopK           = 5
	DefaultMaxAnswerChars = 1200
)

// Config is the persisted application configuration.
type Config struct {
	// KnowledgeDir holds the source documents.
	KnowledgeDir string `toml:"knowledge_dir"`

	// VectorsDir holds the ingested document records.
	VectorsDir string `toml:"vectors_dir"`

	// ChunkSize is the chunk window in bytes.
	ChunkSize int `toml:"chunk_size"`

	// Overlap is the window overlap in bytes.
	Overlap int `toml:"overlap"`

	// ChunkMethod selects the chunker: "fixed" or "paragraph".
	ChunkMethod string `toml:"chunk_method"`

	// TopK is the default number of matches per question.
	TopK int `toml:"top_k"`

	// MaxAnswerChars bounds the assembled answer length.
	MaxAnswerChars int `toml:"max_answer_chars"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Provider is one of "offline", "ollama", "openai".
	Provider string `toml:"provider"`

	// BaseURL overrides the backend endpoint, where applicable.
	BaseURL string `toml:"base_url,omitempty"`

	// Model is the embedding model name.
	Model string `toml:"model,omitempty"`

	// Dimensions is the vector size; zero lets the provider decide.
	Dimensions int `toml:"dimensions,omitempty"`

	// TimeoutSeconds is the per-request timeout for remote backends.
	TimeoutSeconds int `toml:"timeout_seconds,omitempty"`

	// RequestsPerSecond caps the request rate for remote backends.
	RequestsPerSecond float64 `toml:"requests_per_second,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env,omitempty"`
}

// LLMConfig configures the optional answer summarizer.
type LLMConfig struct {
	// Enabled turns LLM summarization on.
	Enabled bool `toml:"enabled"`

	// Model is the chat model name.
	Model string `toml:"model,omitempty"`

	// BaseURL overrides the backend endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env,omitempty"`
}

// DefaultPath returns the default config file location,
// ~/.askdocs/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".askdocs", "config.toml"), nil
}

// Defaults returns a configuration with every field set to its default,
// anchored at baseDir for the data directories.
func Defaults(baseDir string) *Config {
	return &Config{
		KnowledgeDir:   filepath.Join(baseDir, "knowledge"),
		VectorsDir:     filepath.Join(baseDir, "vectors"),
		ChunkSize:      DefaultChunkSize,
		Overlap:        DefaultOverlap,
		ChunkMethod:    DefaultChunkMethod,
		TopK:           DefaultTopK,
		MaxAnswerChars: DefaultMaxAnswerChars,
		Embedding: EmbeddingConfig{
			Provider:  "offline",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		LLM: LLMConfig{
			Enabled:   false,
			APIKeyEnv: "OPENAI_API_KEY",
		},
	}
}

// Load reads the config at path, creating it with defaults when missing.
// Zero or missing numeric fields fall back to their defaults, so a
// hand-edited partial file still yields a usable configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Defaults(filepath.Dir(path))
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Defaults(filepath.Dir(path))
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyFallbacks(cfg, filepath.Dir(path))
	return cfg, nil
}

// Save writes the config to path, creating the directory when needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func applyFallbacks(cfg *Config, baseDir string) {
	def := Defaults(baseDir)
	if cfg.KnowledgeDir == "" {
		cfg.KnowledgeDir = def.KnowledgeDir
	}
	if cfg.VectorsDir == "" {
		cfg.VectorsDir = def.VectorsDir
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = def.Overlap
	}
	if cfg.ChunkMethod == "" {
		cfg.ChunkMethod = def.ChunkMethod
	}
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.MaxAnswerChars <= 0 {
		cfg.MaxAnswerChars = def.MaxAnswerChars
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = def.Embedding.Provider
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = def.Embedding.APIKeyEnv
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = def.LLM.APIKeyEnv
	}
}
