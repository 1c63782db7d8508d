package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents in the knowledge directory",
	Args:  cobra.NoArgs,
	RunE:  runDocuments,
}

func init() {
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	names, err := ingestService.ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("listing documents failed: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No documents found.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}
