// ABOUTME: CLI command for LLM recommendations over the research library
// ABOUTME: Sends the whole corpus plus criteria in one structured call
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/bookscout/internal/core"
	"github.com/harper/bookscout/internal/models"
)

// NewRecommendCmd creates recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [criteria]",
		Short: "Recommend books from the research library",
		Long: `Get LLM recommendations over every researched book.

The whole library goes into one prompt along with your criteria;
without criteria, the model ranks by overall quality and appeal.

Examples:
  bookscout recommend
  bookscout recommend "something fast-paced for a long flight"
  bookscout recommend --format json "atmospheric, low spice"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRecommend,
	}

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	criteria := ""
	if len(args) > 0 {
		criteria = args[0]
	}

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	entries, err := svc.research.ListAll()
	if err != nil {
		return fmt.Errorf("loading books: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no researched books to recommend from; run \"bookscout research\" first")
	}

	model, err := svc.Model()
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	candidates := make([]models.BookRecord, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, entry.ResearchOutput.Info)
	}

	recommender := core.NewRecommender(model)
	recommends, err := recommender.Recommend(criteria, candidates)
	if err != nil {
		return fmt.Errorf("getting recommendations: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), recommends)
	}

	if len(recommends) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No recommendations returned\n")
		}
		return nil
	}

	for i, rec := range recommends {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s", i+1, rec.Title)
		if rec.Author != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " by %s", rec.Author)
		}
		if rec.Year != 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (%d)", rec.Year)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		if strings.TrimSpace(rec.Reason) != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", rec.Reason)
		}
	}
	return nil
}
