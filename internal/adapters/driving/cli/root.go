// Package cli implements the askdocs command line interface on top of the
// driving ports.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/askdocs/askdocs-cli/internal/adapters/driven/config/file"
	"github.com/askdocs/askdocs-cli/internal/adapters/driven/embedding/offline"
	"github.com/askdocs/askdocs-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/askdocs/askdocs-cli/internal/adapters/driven/embedding/openai"
	openaillm "github.com/askdocs/askdocs-cli/internal/adapters/driven/llm/openai"
	recordfile "github.com/askdocs/askdocs-cli/internal/adapters/driven/recordstore/file"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driving"
	"github.com/askdocs/askdocs-cli/internal/core/services"
	"github.com/askdocs/askdocs-cli/internal/logger"
	"github.com/askdocs/askdocs-cli/internal/normalisers"
	"github.com/askdocs/askdocs-cli/internal/normalisers/markdown"
	"github.com/askdocs/askdocs-cli/internal/normalisers/pdf"
	"github.com/askdocs/askdocs-cli/internal/normalisers/plaintext"
	"github.com/askdocs/askdocs-cli/internal/postprocessors/chunker"
)

var version = "dev"

var (
	configPath string
	verbose    bool

	ingestService driving.IngestService
	queryService  driving.QueryService

	embeddingBackend driven.EmbeddingService
	llmSummarizer    driven.Summarizer
)

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Ask questions about your local documents",
	Long: `askdocs ingests documents from a knowledge directory, stores them as
embedded chunk records, and answers questions by cosine similarity over
the stored chunks.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.askdocs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	err := rootCmd.Execute()
	closeBackends()
	return err
}

// initServices loads the configuration and wires the core services.
// Services already present (tests inject mocks) are left alone.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if ingestService != nil && queryService != nil {
		return nil
	}

	path := configPath
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("config loaded from %s", path)

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}

	chk, err := chunker.New(cfg.ChunkMethod, cfg.ChunkSize, cfg.Overlap)
	if err != nil {
		return err
	}

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(markdown.New())
	registry.Register(pdf.New())

	store := recordfile.New(cfg.VectorsDir)

	summarizer, err := buildSummarizer(cfg)
	if err != nil {
		return err
	}

	ingestService = services.NewIngestService(
		cfg.KnowledgeDir, registry, chk, embedder, store, cfg.ChunkSize, cfg.Overlap)
	queryService = services.NewQueryService(
		store, embedder, summarizer, cfg.KnowledgeDir, cfg.MaxAnswerChars)

	embeddingBackend = embedder
	llmSummarizer = summarizer
	seedTopK(cfg)
	if verbose {
		warnIfUnreachable(embedder)
	}
	return nil
}

// seedTopK applies the configured default for ask's -k flag unless the
// user passed it explicitly on the command line.
func seedTopK(cfg *configfile.Config) {
	if !askCmd.Flags().Changed("top-k") && cfg.TopK > 0 {
		askTopK = cfg.TopK
	}
}

// warnIfUnreachable pings the embedding backend so a misconfigured remote
// provider surfaces before the first real call. Diagnostic only.
func warnIfUnreachable(embedder driven.EmbeddingService) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := embedder.Ping(ctx); err != nil {
		logger.Warn("embedding backend unreachable: %v", err)
	}
}

// closeBackends releases the provider clients after the command finishes.
func closeBackends() {
	if embeddingBackend != nil {
		_ = embeddingBackend.Close()
		embeddingBackend = nil
	}
	if llmSummarizer != nil {
		_ = llmSummarizer.Close()
		llmSummarizer = nil
	}
}

func buildEmbedder(cfg *configfile.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		key := os.Getenv(cfg.Embedding.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("embedding provider openai needs %s set", cfg.Embedding.APIKeyEnv)
		}
		return openaiembed.New(openaiembed.Config{
			APIKey:            key,
			BaseURL:           cfg.Embedding.BaseURL,
			Model:             cfg.Embedding.Model,
			Dimensions:        cfg.Embedding.Dimensions,
			RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
		})
	case "ollama":
		return ollama.New(ollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Timeout:    time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second,
			Dimensions: cfg.Embedding.Dimensions,
		}), nil
	case "offline", "":
		return offline.New(cfg.Embedding.Dimensions), nil
	default:
		logger.Warn("unknown embedding provider %q, using offline", cfg.Embedding.Provider)
		return offline.New(cfg.Embedding.Dimensions), nil
	}
}

// buildSummarizer returns nil when LLM summarization is disabled or the
// API key is absent; the query service then uses the concatenated answer.
func buildSummarizer(cfg *configfile.Config) (driven.Summarizer, error) {
	if !cfg.LLM.Enabled {
		return nil, nil
	}
	key := os.Getenv(cfg.LLM.APIKeyEnv)
	if key == "" {
		logger.Warn("llm enabled but %s is not set, answers will be concatenated snippets", cfg.LLM.APIKeyEnv)
		return nil, nil
	}
	return openaillm.New(openaillm.Config{
		APIKey:  key,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})
}
