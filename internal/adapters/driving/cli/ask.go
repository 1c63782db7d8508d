package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

var (
	askTopK int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the ingested documents",
	Long: `Embeds the question, ranks every stored chunk by cosine similarity
and prints the best matches with an assembled answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 5, "number of matches to return")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer, err := queryService.Answer(context.Background(), args[0], askTopK)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputAnswer(cmd, answer)
}

func outputAnswer(cmd *cobra.Command, answer *domain.Answer) error {
	if len(answer.Matches) == 0 {
		cmd.Println("No matches found. Ingest some documents first.")
		return nil
	}

	cmd.Println(answer.Answer)
	cmd.Println()
	cmd.Printf("Sources (%s):\n", answer.Source)
	for i, m := range answer.Matches {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, m.Filename, m.Score)
		cmd.Printf("      %s\n", m.Link)
		if m.RelevanceReason != "" {
			cmd.Printf("      %s\n", m.RelevanceReason)
		}
	}
	return nil
}
