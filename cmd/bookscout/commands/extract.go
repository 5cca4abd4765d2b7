// ABOUTME: CLI command to extract book identities from text or an image
// ABOUTME: Optionally feeds the extracted books straight into a research batch
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/bookscout/internal/core"
	"github.com/harper/bookscout/internal/models"
)

var (
	extractImage    string
	extractResearch bool
)

// NewExtractCmd creates extract command
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract book identities from text or an image",
		Long: `Extract structured book identities from unstructured input.

Text comes from the argument or stdin; --image reads a JPEG, PNG, or
WebP file instead (book covers, spines, photographed reading lists).
With --research, the extracted books are submitted as a research
batch in one step.

Examples:
  bookscout extract "loved Piranesi and The Fifth Season, also that new Tchaikovsky"
  cat reading-list.txt | bookscout extract
  bookscout extract --image shelf.jpg
  bookscout extract --research --image shelf.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringVar(&extractImage, "image", "", "Extract from an image file instead of text")
	cmd.Flags().BoolVar(&extractResearch, "research", false, "Submit extracted books as a research batch")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	model, err := svc.Model()
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	extractor := core.NewExtractor(model)

	var books []models.ExtractedBook
	if extractImage != "" {
		imageData, err := os.ReadFile(extractImage)
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
		books, err = extractor.FromImage(imageData, mimeTypeForFile(extractImage))
		if err != nil {
			return fmt.Errorf("extracting from image: %w", err)
		}
	} else {
		var text string
		if len(args) > 0 {
			text = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no text to extract from; pass text, pipe stdin, or use --image")
		}
		books, err = extractor.FromText(text)
		if err != nil {
			return fmt.Errorf("extracting from text: %w", err)
		}
	}

	if len(books) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No books found\n")
		}
		return nil
	}

	if extractResearch {
		requests := make([]core.ResearchRequest, 0, len(books))
		for _, book := range books {
			requests = append(requests, core.ResearchRequest{Title: book.Title, OtherInfo: book.OtherInfo})
		}

		researcher := core.NewResearcher(model)
		scheduler := core.NewScheduler(researcher, model, svc.tasks, svc.research, svc.cfg.MaxConcurrentResearch)
		created, err := scheduler.SubmitBatch(requests)
		if err != nil && len(created) == 0 {
			return fmt.Errorf("submitting batch: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d task(s), waiting...\n", len(created))
		}
		scheduler.Wait()
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), books)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TITLE\tOTHER INFO\n")
	fmt.Fprintf(w, "-----\t----------\n")
	for _, book := range books {
		fmt.Fprintf(w, "%s\t%s\n", truncate(book.Title, 40), truncate(book.OtherInfo, 50))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nExtracted %d book(s)\n", len(books))
	}
	return nil
}

func mimeTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
