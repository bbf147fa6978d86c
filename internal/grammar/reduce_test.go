package grammar

import (
	"math"
	"testing"

	"github.com/ppiankov/copycop/internal/model"
)

func rule(clause, pattern string, weight float64) model.GrammarRule {
	return model.GrammarRule{
		Clause:  model.PosTag(clause),
		Pattern: model.ParseTagSequence(pattern),
		Weight:  weight,
	}
}

func TestReducer_NoApplicableRule(t *testing.T) {
	reducer := NewReducer(NewRuleTable([]model.GrammarRule{
		rule("NP", "DT NN", 0.5),
	}))

	seq := model.ParseTagSequence("PRP VBD RB")
	result := reducer.Reduce(seq)

	if !result.Reduced.Equal(seq) {
		t.Errorf("Expected sequence unchanged, got %q", result.Reduced.String())
	}
	if result.Strength != 0 {
		t.Errorf("Expected strength 0, got %v", result.Strength)
	}
	if result.Steps != 0 {
		t.Errorf("Expected 0 steps, got %d", result.Steps)
	}
}

func TestReducer_ChainedReduction(t *testing.T) {
	reducer := NewReducer(NewRuleTable([]model.GrammarRule{
		rule("NP", "DT NN", 0.25),
		rule("VP", "VB NP", 0.5),
	}))

	result := reducer.Reduce(model.ParseTagSequence("PRP VB DT NN"))

	if got := result.Reduced.String(); got != "PRP VP" {
		t.Errorf("Expected 'PRP VP', got %q", got)
	}

	// DT NN: 4 * 0.25 = 1, then VB NP: 4 * 0.5 = 2
	if math.Abs(result.Strength-3) > 1e-9 {
		t.Errorf("Expected strength 3, got %v", result.Strength)
	}
	if result.Steps != 2 {
		t.Errorf("Expected 2 steps, got %d", result.Steps)
	}
}

func TestReducer_LongerPatternOutweighsProbability(t *testing.T) {
	// 2^3 * 0.2 = 1.6 beats 2^2 * 0.3 = 1.2
	reducer := NewReducer(NewRuleTable([]model.GrammarRule{
		rule("NP", "DT NN", 0.3),
		rule("NP", "DT JJ NN", 0.2),
	}))

	result := reducer.Reduce(model.ParseTagSequence("DT JJ NN"))

	if got := result.Reduced.String(); got != "NP" {
		t.Errorf("Expected 'NP', got %q", got)
	}
	if math.Abs(result.Strength-1.6) > 1e-9 {
		t.Errorf("Expected strength 1.6, got %v", result.Strength)
	}
}

func TestReducer_TieGoesToLastRule(t *testing.T) {
	reducer := NewReducer(NewRuleTable([]model.GrammarRule{
		rule("AA", "DT NN", 0.5),
		rule("BB", "DT NN", 0.5),
	}))

	result := reducer.Reduce(model.ParseTagSequence("DT NN"))

	if got := result.Reduced.String(); got != "BB" {
		t.Errorf("Expected tie to resolve to the later rule 'BB', got %q", got)
	}
}

func TestReducer_ReplacesFirstOccurrenceOnly(t *testing.T) {
	reducer := NewReducer(NewRuleTable([]model.GrammarRule{
		rule("NP", "DT NN", 0.5),
		rule("XP", "NP DT", 0.1),
	}))

	// First step rewrites only the leading DT NN; the second pair is left
	// for a later step, which the higher-scoring DT NN rule wins again.
	result := reducer.Reduce(model.ParseTagSequence("DT NN DT NN"))

	if got := result.Reduced.String(); got != "NP NP" {
		t.Errorf("Expected 'NP NP', got %q", got)
	}
	if result.Steps != 2 {
		t.Errorf("Expected 2 steps, got %d", result.Steps)
	}
}

func TestReducer_TokenAligned(t *testing.T) {
	reducer := NewReducer(NewRuleTable([]model.GrammarRule{
		rule("NP", "DT NN", 0.5),
	}))

	// DT NN must not match inside DT NNS
	result := reducer.Reduce(model.ParseTagSequence("DT NNS"))

	if got := result.Reduced.String(); got != "DT NNS" {
		t.Errorf("Expected 'DT NNS' unchanged, got %q", got)
	}
}

func TestReducer_DoesNotModifyInput(t *testing.T) {
	reducer := NewReducer(NewRuleTable([]model.GrammarRule{
		rule("NP", "DT NN", 0.5),
	}))

	seq := model.ParseTagSequence("DT NN")
	reducer.Reduce(seq)

	if seq.String() != "DT NN" {
		t.Errorf("Input was modified: %q", seq.String())
	}
}

func TestReducer_TerminationAndIdempotence(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Expected embedded table to load, got %v", err)
	}
	reducer := NewReducer(table)

	sequences := []string{
		"PRP VB DT NN",
		"DT NN VB VBN IN DT JJ NN",
		"VB DT NN",
		"VBG DT NN",
		"PRP VBD TO DT NN",
		"DT VB PRP",
		"NNS",
		"",
		"MD VB DT JJ NNS IN DT NN CC DT NN",
	}

	for _, code := range sequences {
		seq := model.ParseTagSequence(code)
		result := reducer.Reduce(seq)

		if result.Strength < 0 {
			t.Errorf("%q: negative strength %v", code, result.Strength)
		}
		if len(seq) > 0 && result.Steps > len(seq)-1 {
			t.Errorf("%q: %d steps exceeds token bound %d", code, result.Steps, len(seq)-1)
		}
		if len(result.Reduced) > len(seq) {
			t.Errorf("%q: reduced sequence grew to %q", code, result.Reduced.String())
		}

		again := reducer.Reduce(result.Reduced)
		if !again.Reduced.Equal(result.Reduced) {
			t.Errorf("%q: second reduction changed %q to %q", code, result.Reduced.String(), again.Reduced.String())
		}
		if again.Strength != 0 {
			t.Errorf("%q: second reduction added strength %v", code, again.Strength)
		}
	}
}

func TestReducer_StrengthNonDecreasing(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Expected embedded table to load, got %v", err)
	}
	reducer := NewReducer(table)

	// Reducing a prefix of the rewrite chain never scores more than the full chain
	seq := model.ParseTagSequence("DT NN VB DT JJ NN IN DT NN")
	full := reducer.Reduce(seq)

	for _, rule := range reducer.Applicable(seq) {
		if rule.Strength() <= 0 {
			t.Errorf("Rule %s -> %s has non-positive strength", rule.Clause, rule.Pattern.String())
		}
	}
	if full.Steps > 0 && full.Strength <= 0 {
		t.Errorf("Expected positive strength after %d steps, got %v", full.Steps, full.Strength)
	}
}
