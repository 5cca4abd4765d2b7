// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the bookscout command tree and output format handling
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗  ██████╗  ██████╗ ██╗  ██╗███████╗ ██████╗ ██████╗ ██╗   ██╗████████╗
██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝██╔════╝██╔════╝██╔═══██╗██║   ██║╚══██╔══╝
██████╔╝██║   ██║██║   ██║█████╔╝ ███████╗██║     ██║   ██║██║   ██║   ██║
██╔══██╗██║   ██║██║   ██║██╔═██╗ ╚════██║██║     ██║   ██║██║   ██║   ██║
██████╔╝╚██████╔╝╚██████╔╝██║  ██╗███████║╚██████╗╚██████╔╝╚██████╔╝   ██║
╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚═════╝  ╚═════╝    ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookscout",
		Short: "Book research service backed by LLM web search and vector similarity",
		Long: banner + `
Bookscout researches books with a two-stage LLM pipeline (open web
search, then schema-constrained structuring), embeds the results, and
stores them for vector similarity search and recommendations.

Storage syncs through Charm Cloud, so your research library follows
you across machines.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewResearchCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewTasksCmd())
	cmd.AddCommand(NewBooksCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewRecommendCmd())
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
