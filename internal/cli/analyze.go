package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/copycop/internal/model"
	"github.com/ppiankov/copycop/internal/pipeline"
)

var analyzeFormat string

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>...",
	Short: "Show how each sentence of a text is classified",
	Long: `Analyze splits the text into sentences and prints, for each one, the
selected mood, tense, person and pronoun kind, its tag sequence before
and after reduction, and the style flags it raises.

Example:
  copycop analyze "The file is deleted when you close it."
  copycop analyze "Fixing a bug: open the log." --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format (text, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// one-off sentences are not worth a disk round trip
	cfg.Cache.Enabled = false

	linter, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	results, err := linter.AnalyzeText(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.Color)
	out := cmd.OutOrStdout()

	switch analyzeFormat {
	case "json":
		return renderer.RenderJSON(out, results)
	case "text":
		for _, result := range results {
			if err := renderer.RenderSentence(out, result); err != nil {
				return err
			}
			if verbose {
				for i, alt := range result.Alternates {
					fmt.Fprintf(out, "  alternate %d:\n", i+1)
					if err := renderer.RenderSentence(out, model.SentenceResult{SentenceVariant: *alt}); err != nil {
						return err
					}
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("invalid output format %q (want text or json)", analyzeFormat)
	}
}
