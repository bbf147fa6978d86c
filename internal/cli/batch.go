package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/copycop/internal/pipeline"
	"github.com/ppiankov/copycop/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Lint the documents listed in a file, in parallel",
	Long: `Batch lints many documents concurrently:
- Read paths from the list file (one per line, # comments allowed)
- Expand listed directories to their documents
- Lint files in parallel with a configurable worker count
- Write one JSON report per document to the output directory

Example:
  copycop batch docs.txt
  copycop batch docs.txt --concurrency 8 --output-dir ./copycop-reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./copycop-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  copycop Batch Lint\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  List file:    %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	paths, err := worker.ReadPathsFromFile(file)
	if err != nil {
		return fmt.Errorf("read list: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	linter, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(linter, cfg.Concurrency.Workers)
	results, err := processor.ProcessPaths(ctx, paths)
	if err != nil {
		return fmt.Errorf("expand paths: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Linted %d document(s) with %d workers\n\n", len(results), cfg.Concurrency.Workers)

	renderer := pipeline.NewRenderer(cfg.Output.Color)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, reportName(result.Path))
		if err := renderer.WriteJSON(jsonPath, result.Report); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d warn, %d info)\n", result.Path, result.Report.Summary.Warn, result.Report.Summary.Info)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d document(s) failed", failureCount, len(results))
	}

	reports, _ := collect(results)
	failed, err := exceeds(cfg.Output.FailOn, reports)
	if err != nil {
		return err
	}
	if failed {
		return ErrThresholdExceeded
	}
	return nil
}

// reportName flattens a document path into a report file name:
// docs/guide/intro.md becomes docs_guide_intro.md-<hash>.json. The hash
// of the cleaned path keeps names unique after flattening and truncation.
func reportName(path string) string {
	clean := filepath.ToSlash(filepath.Clean(path))

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	name := strings.TrimPrefix(replacer.Replace(clean), "_")

	if len(name) > 100 {
		name = name[len(name)-100:]
	}

	sum := sha256.Sum256([]byte(clean))
	return name + "-" + hex.EncodeToString(sum[:4]) + ".json"
}
