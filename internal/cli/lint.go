package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/copycop/internal/model"
	"github.com/ppiankov/copycop/internal/pipeline"
	"github.com/ppiankov/copycop/internal/worker"
)

var outJSON string

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint <path>...",
	Short: "Lint Markdown and HTML documents",
	Long: `Lint checks each document for:
- Sibling headings and list items that differ in voice or tense
- Lone H2s and H3s, H1s after the title, headings deeper than H3
- Colons in headings and headings directly under other headings
- Passive sentences, gerunds and paragraphs that open with a pronoun

Directories are searched for .md, .markdown, .html and .htm files.

Example:
  copycop lint README.md
  copycop lint docs/ --format json
  copycop lint docs/ --fail-on info --json report.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().String("format", "text", "output format (text, json)")
	lintCmd.Flags().String("fail-on", "warn", "exit non-zero on warnings at or above this level (warn, info, none)")
	lintCmd.Flags().StringVar(&outJSON, "json", "", "also write the JSON report to this path")

	_ = viper.BindPFlag("output.format", lintCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.fail_on", lintCmd.Flags().Lookup("fail-on"))
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	linter, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Rules: %s\n", rulesLabel(cfg))
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintln(os.Stderr)
	}

	processor := worker.NewBatchProcessor(linter, cfg.Concurrency.Workers)
	results, err := processor.ProcessPaths(ctx, args)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no documents found in %v", args)
	}

	reports, failures := collect(results)

	if err := renderReports(cmd, cfg, reports); err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) could not be linted", failures, len(results))
	}

	failed, err := exceeds(cfg.Output.FailOn, reports)
	if err != nil {
		return err
	}
	if failed {
		return ErrThresholdExceeded
	}
	return nil
}

// collect splits batch results into reports, printing failures to stderr
func collect(results []*worker.LintResult) ([]*model.Report, int) {
	var reports []*model.Report
	failures := 0

	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		reports = append(reports, result.Report)
	}
	return reports, failures
}

func renderReports(cmd *cobra.Command, cfg *model.Config, reports []*model.Report) error {
	renderer := pipeline.NewRenderer(cfg.Output.Color)
	out := cmd.OutOrStdout()

	if outJSON != "" {
		if err := renderer.WriteJSON(outJSON, jsonValue(reports)); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	switch cfg.Output.Format {
	case "json":
		return renderer.RenderJSON(out, jsonValue(reports))
	case "text", "":
		for _, report := range reports {
			if err := renderer.RenderText(out, report); err != nil {
				return err
			}
		}
		return renderer.RenderSummary(out, reports)
	default:
		return fmt.Errorf("invalid output format %q (want text or json)", cfg.Output.Format)
	}
}

// jsonValue keeps single-file output a plain report
func jsonValue(reports []*model.Report) any {
	if len(reports) == 1 {
		return reports[0]
	}
	return reports
}

func rulesLabel(cfg *model.Config) string {
	if cfg.Rules.Path == "" {
		return "built-in"
	}
	return cfg.Rules.Path
}
