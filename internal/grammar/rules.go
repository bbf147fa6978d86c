// Package grammar holds the weighted rewrite-rule table and the greedy
// reduction engine that simplifies a sentence's tag sequence with it.
package grammar

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/copycop/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed rules.json
var defaultRules []byte

// ErrMalformedRule marks a rule record that cannot be used
var ErrMalformedRule = errors.New("malformed rule")

var tagPattern = regexp.MustCompile(`^[A-Z$]+$`)

// RuleRecord is the on-disk shape of one rule: {"clause", "subclauses", "prob"}
type RuleRecord struct {
	Clause     string  `yaml:"clause" json:"clause"`
	Subclauses string  `yaml:"subclauses" json:"subclauses"`
	Prob       float64 `yaml:"prob" json:"prob"`
}

// RuleTable is the ordered, read-only rule set: descending weight,
// ties in file order
type RuleTable struct {
	rules   []model.GrammarRule
	skipped int
	source  string
}

// Default returns the embedded rule table
func Default() (*RuleTable, error) {
	return LoadBytes(defaultRules, "embedded")
}

// Load reads a rule table from a JSON or YAML file. An empty path loads the
// embedded table.
func Load(path string) (*RuleTable, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}

	return LoadBytes(data, path)
}

// LoadBytes parses a rule table. Malformed records are skipped and counted;
// only an unparseable document fails.
func LoadBytes(data []byte, source string) (*RuleTable, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parse rule table %s: %w", source, err)
	}

	table := &RuleTable{source: source}
	for i := range nodes {
		var rec RuleRecord
		if err := nodes[i].Decode(&rec); err != nil {
			table.skipped++
			continue
		}
		rule, err := rec.toRule()
		if err != nil {
			table.skipped++
			continue
		}
		table.rules = append(table.rules, rule)
	}

	if len(table.rules) == 0 {
		return nil, fmt.Errorf("rule table %s: no usable rules (%d skipped)", source, table.skipped)
	}

	SortRules(table.rules)
	return table, nil
}

// NewRuleTable builds a table from already-parsed rules, skipping invalid ones
func NewRuleTable(rules []model.GrammarRule) *RuleTable {
	table := &RuleTable{source: "inline"}
	for _, r := range rules {
		if err := validateRule(r); err != nil {
			table.skipped++
			continue
		}
		table.rules = append(table.rules, r)
	}
	SortRules(table.rules)
	return table
}

// SortRules orders rules by descending weight, keeping input order on ties
func SortRules(rules []model.GrammarRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Weight > rules[j].Weight
	})
}

// Rules returns a copy of the ordered rules
func (t *RuleTable) Rules() []model.GrammarRule {
	out := make([]model.GrammarRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of usable rules
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Skipped returns how many records were dropped as malformed
func (t *RuleTable) Skipped() int {
	return t.skipped
}

// Source names where the table was loaded from
func (t *RuleTable) Source() string {
	return t.source
}

// Digest identifies the table by its ordered rules, so two tables that
// reduce alike share a digest whatever file they came from
func (t *RuleTable) Digest() string {
	h := sha256.New()
	for _, r := range t.rules {
		fmt.Fprintf(h, "%s\t%s\t%g\n", r.Clause, r.Pattern, r.Weight)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (rec RuleRecord) toRule() (model.GrammarRule, error) {
	rule := model.GrammarRule{
		Clause:  model.PosTag(strings.TrimSpace(rec.Clause)),
		Pattern: model.ParseTagSequence(rec.Subclauses),
		Weight:  rec.Prob,
	}
	return rule, validateRule(rule)
}

func validateRule(r model.GrammarRule) error {
	if !tagPattern.MatchString(string(r.Clause)) {
		return fmt.Errorf("%w: clause %q", ErrMalformedRule, r.Clause)
	}
	if len(r.Pattern) < 2 {
		return fmt.Errorf("%w: pattern %q needs at least two tags", ErrMalformedRule, r.Pattern.String())
	}
	for _, tag := range r.Pattern {
		if !tagPattern.MatchString(string(tag)) {
			return fmt.Errorf("%w: tag %q", ErrMalformedRule, tag)
		}
	}
	if r.Weight <= 0 || r.Weight > 1 {
		return fmt.Errorf("%w: weight %v outside (0,1]", ErrMalformedRule, r.Weight)
	}
	return nil
}

// MarshalRules renders rules in the on-disk record format
func MarshalRules(rules []model.GrammarRule) []RuleRecord {
	out := make([]RuleRecord, len(rules))
	for i, r := range rules {
		out[i] = RuleRecord{
			Clause:     string(r.Clause),
			Subclauses: r.Pattern.String(),
			Prob:       r.Weight,
		}
	}
	return out
}
