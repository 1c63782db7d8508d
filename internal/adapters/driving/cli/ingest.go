package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

var ingestJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest documents into the vector store",
	Long: `Normalises, chunks and embeds documents from the knowledge directory.
With no arguments every supported document is ingested. A failure on one
document never stops the rest.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	var results []domain.IngestResult
	var err error
	if len(args) == 0 {
		results, err = ingestService.IngestAll(ctx)
	} else {
		results, err = ingestService.Ingest(ctx, args)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No documents to ingest.")
		return nil
	}

	ok := 0
	for _, res := range results {
		switch res.Status {
		case domain.IngestOK:
			ok++
			cmd.Printf("  ok          %s (%d chunks)\n", res.Filename, res.Chunks)
		case domain.IngestError:
			cmd.Printf("  error       %s: %s\n", res.Filename, res.Error)
		default:
			cmd.Printf("  %-11s %s\n", res.Status, res.Filename)
		}
	}
	cmd.Printf("\n%d of %d documents ingested.\n", ok, len(results))
	return nil
}
