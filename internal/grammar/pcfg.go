package grammar

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/copycop/internal/model"
)

// pcfgLine matches "NP-2 -> DT NN [0.0421]"; numbered clause suffixes are
// dropped and single-tag productions never match
var pcfgLine = regexp.MustCompile(`^([A-Z$]+)(?:-\d+)? -> ([A-Z]+ [A-Z ]+) \[(.+)\]`)

// ParsePCFG extracts rewrite rules from a probabilistic grammar dump, one
// production per line. Lines that do not match are skipped and counted.
// The result is sorted by descending probability.
func ParsePCFG(r io.Reader) ([]model.GrammarRule, int, error) {
	var rules []model.GrammarRule
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		m := pcfgLine.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}

		prob, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			skipped++
			continue
		}

		rule := model.GrammarRule{
			Clause:  model.PosTag(m[1]),
			Pattern: model.ParseTagSequence(m[2]),
			Weight:  prob,
		}
		if validateRule(rule) != nil {
			skipped++
			continue
		}
		rules = append(rules, rule)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scan grammar: %w", err)
	}

	SortRules(rules)
	return rules, skipped, nil
}
