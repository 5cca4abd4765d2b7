// ABOUTME: CLI command to search the research library
// ABOUTME: Embeds the query and ranks entries by cosine similarity
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search researched books",
		Long: `Search the research library with vector similarity.

The query is embedded server-side and compared against every stored
entry; results are ranked by cosine similarity.

Examples:
  bookscout search "slow-burn fantasy with found family"
  bookscout search --limit 10 "hard sci-fi first contact"
  bookscout search --format json "gothic horror"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	query := args[0]

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	model, err := svc.Model()
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	embedding, err := model.GenerateEmbedding(query)
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	matches, err := svc.research.VectorSearch(embedding, searchLimit)
	if err != nil {
		return fmt.Errorf("searching books: %w", err)
	}

	if len(matches) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No books found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), matches)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tTITLE\tAUTHORS\tENTRY ID\n")
	fmt.Fprintf(w, "-----\t-----\t-------\t--------\n")
	for _, match := range matches {
		info := match.Entry.ResearchOutput.Info
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			match.Similarity,
			truncate(info.Title, 35),
			truncate(joinAuthors(info.Authors), 25),
			match.Entry.ID)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(matches))
	}
	return nil
}
