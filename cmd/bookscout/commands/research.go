// ABOUTME: CLI command to research one book synchronously
// ABOUTME: Runs the two-stage pipeline and optionally persists the result
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/bookscout/internal/core"
)

var (
	researchInfo  string
	researchStore bool
)

// NewResearchCmd creates research command
func NewResearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research <title>",
		Short: "Research a book",
		Long: `Research a single book synchronously.

Runs the two-stage pipeline: open web search, then structuring into
the canonical book record. Prints the result; use --store to embed
and persist it to the research library as well.

Examples:
  bookscout research "The Fifth Season"
  bookscout research --info "by N.K. Jemisin, 2015" "The Fifth Season"
  bookscout research --store "Piranesi"`,
		Args: cobra.ExactArgs(1),
		RunE: runResearch,
	}

	cmd.Flags().StringVar(&researchInfo, "info", "", "Additional identifying information (author, year, etc.)")
	cmd.Flags().BoolVar(&researchStore, "store", false, "Embed and persist the result")

	return cmd
}

func runResearch(cmd *cobra.Command, args []string) error {
	title := args[0]

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	model, err := svc.Model()
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Researching %q...\n", title)
	}

	researcher := core.NewResearcher(model)
	output, err := researcher.Research(title, researchInfo)
	if err != nil {
		return fmt.Errorf("researching book: %w", err)
	}

	if researchStore {
		embedding, err := model.GenerateEmbedding(output.Info.AsText())
		if err != nil {
			return fmt.Errorf("generating embedding: %w", err)
		}
		entry, err := svc.research.Insert(title, researchInfo, *output, embedding)
		if err != nil {
			return fmt.Errorf("persisting research: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Stored as %s\n", entry.ID)
		}
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), output)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", output.Info.AsText())
	if len(output.Sources) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Sources:\n")
		for _, src := range output.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%s)\n", src.Name, src.URL)
		}
	}
	return nil
}
