// ABOUTME: CLI commands to inspect and manage the research library
// ABOUTME: Supports list, delete, and clear over persisted research entries
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewBooksCmd creates the books command group
func NewBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the research library",
		Long: `Inspect and manage persisted researched books.

Examples:
  bookscout books list
  bookscout books delete 9a31...
  bookscout books clear`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List researched books",
		RunE:  runBooksList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <book-id>",
		Short: "Delete one researched book",
		Args:  cobra.ExactArgs(1),
		RunE:  runBooksDelete,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all researched books",
		RunE:  runBooksClear,
	})

	return cmd
}

func runBooksList(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	entries, err := svc.research.ListAll()
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}

	if len(entries) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No books found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TITLE\tAUTHORS\tYEAR\tENTRY ID\n")
	fmt.Fprintf(w, "-----\t-------\t----\t--------\n")
	for _, entry := range entries {
		info := entry.ResearchOutput.Info
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			truncate(info.Title, 35),
			truncate(joinAuthors(info.Authors), 25),
			info.PublicationYear,
			entry.ID)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d book(s)\n", len(entries))
	}
	return nil
}

func runBooksDelete(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.research.Delete(args[0]); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %s\n", args[0])
	}
	return nil
}

func runBooksClear(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.research.DeleteAll(); err != nil {
		return fmt.Errorf("clearing books: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared all books\n")
	}
	return nil
}
