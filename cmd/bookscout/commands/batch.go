// ABOUTME: CLI command to research multiple books as background tasks
// ABOUTME: Submits a batch, then waits for all tasks and reports terminal status
package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/bookscout/internal/core"
)

var (
	batchFile string
	batchWait bool
)

// NewBatchCmd creates batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [title]...",
		Short: "Research multiple books in the background",
		Long: `Submit a batch of books for background research.

Each title becomes an independent research task; one failure never
affects its siblings. Titles come from arguments or, with --file,
one per line (use "title | extra info" to disambiguate).

By default the command waits for all tasks to finish and reports
their terminal status. With --wait=false it exits after submission
and the tasks can be polled later with "bookscout tasks list".

Examples:
  bookscout batch "The Fifth Season" "The Obelisk Gate" "The Stone Sky"
  bookscout batch --file reading-list.txt
  bookscout batch --wait=false "Piranesi | by Susanna Clarke"`,
		Args: cobra.ArbitraryArgs,
		RunE: runBatch,
	}

	cmd.Flags().StringVar(&batchFile, "file", "", "Read titles from file, one per line")
	cmd.Flags().BoolVar(&batchWait, "wait", true, "Wait for all tasks to finish")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	requests, err := collectRequests(args)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return fmt.Errorf("no books to research; pass titles or --file")
	}

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	model, err := svc.Model()
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	researcher := core.NewResearcher(model)
	scheduler := core.NewScheduler(researcher, model, svc.tasks, svc.research, svc.cfg.MaxConcurrentResearch)

	created, err := scheduler.SubmitBatch(requests)
	if err != nil && len(created) == 0 {
		return fmt.Errorf("submitting batch: %w", err)
	}
	if err != nil && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: some submissions failed: %v\n", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d task(s)\n", len(created))
	}

	if !batchWait {
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), created)
		}
		for _, task := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", task.ID, task.Title)
		}
		return nil
	}

	scheduler.Wait()

	// Re-read the tasks for terminal status
	final := created[:0:0]
	for _, task := range created {
		updated, err := svc.tasks.Get(task.ID)
		if err != nil {
			final = append(final, task)
			continue
		}
		final = append(final, *updated)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), final)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STATUS\tTITLE\tTASK ID\n")
	fmt.Fprintf(w, "------\t-----\t-------\n")
	for _, task := range final {
		fmt.Fprintf(w, "%s\t%s\t%s\n", strings.ToUpper(string(task.Status)), truncate(task.Title, 40), task.ID)
	}
	w.Flush()
	return nil
}

// collectRequests merges CLI args and --file lines into research requests.
// File lines may carry "title | extra info".
func collectRequests(args []string) ([]core.ResearchRequest, error) {
	requests := make([]core.ResearchRequest, 0, len(args))
	for _, title := range args {
		if strings.TrimSpace(title) == "" {
			continue
		}
		requests = append(requests, parseRequestLine(title))
	}

	if batchFile != "" {
		f, err := os.Open(batchFile)
		if err != nil {
			return nil, fmt.Errorf("opening file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			requests = append(requests, parseRequestLine(line))
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
	}

	return requests, nil
}

func parseRequestLine(line string) core.ResearchRequest {
	title, info, found := strings.Cut(line, "|")
	req := core.ResearchRequest{Title: strings.TrimSpace(title)}
	if found {
		req.OtherInfo = strings.TrimSpace(info)
	}
	return req
}
