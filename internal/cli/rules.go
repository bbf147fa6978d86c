package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/copycop/internal/grammar"
)

var rulesOut string

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and build grammar rule tables",
}

var rulesExtractCmd = &cobra.Command{
	Use:   "extract <pcfg-file>",
	Short: "Build a rule table from a probabilistic grammar dump",
	Long: `Extract reads lines of the form

  CLAUSE(-N)? -> TAG TAG ... [probability]

keeps productions with at least two tags, sorts them by descending
probability and writes the rule table. The output format follows the
extension of -o: .yaml/.yml writes YAML, anything else JSON.

Example:
  copycop rules extract grammar.pcfg -o rules.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesExtract,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the active rule table in application order",
	RunE:  runRulesShow,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesExtractCmd)
	rulesCmd.AddCommand(rulesShowCmd)

	rulesExtractCmd.Flags().StringVarP(&rulesOut, "output", "o", "rules.json", "output path")
}

func runRulesExtract(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open grammar: %w", err)
	}
	defer func() { _ = f.Close() }()

	rules, skipped, err := grammar.ParsePCFG(f)
	if err != nil {
		return fmt.Errorf("parse grammar: %w", err)
	}
	if len(rules) == 0 {
		return fmt.Errorf("no rules found in %s", args[0])
	}

	records := grammar.MarshalRules(rules)

	var data []byte
	switch strings.ToLower(filepath.Ext(rulesOut)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(records)
	default:
		data, err = json.MarshalIndent(records, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}

	if err := os.WriteFile(rulesOut, data, 0644); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d rules to %s (%d lines skipped)\n", len(rules), rulesOut, skipped)
	return nil
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	table, err := grammar.Load(cfg.Rules.Path)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source: %s (%d rules, %d skipped)\n\n", table.Source(), table.Len(), table.Skipped())
	fmt.Fprintf(out, "%4s  %-6s %-28s %10s %10s\n", "#", "CLAUSE", "PATTERN", "WEIGHT", "STRENGTH")
	for i, r := range table.Rules() {
		fmt.Fprintf(out, "%4d  %-6s %-28s %10.6f %10.6f\n", i+1, r.Clause, r.Pattern.String(), r.Weight, r.Strength())
	}
	return nil
}
