package grammar

import "github.com/ppiankov/copycop/internal/model"

// Reducer rewrites tag sequences with a rule table
type Reducer struct {
	table *RuleTable
}

// NewReducer creates a reducer over a loaded table
func NewReducer(table *RuleTable) *Reducer {
	return &Reducer{table: table}
}

// Table returns the reducer's rule table
func (r *Reducer) Table() *RuleTable {
	return r.table
}

// Reduce greedily rewrites seq until no rule applies.
//
// Each step picks the applicable rule with the highest 2^len(pattern)*weight
// (the last one in table order on ties) and replaces the first occurrence of
// its pattern with its clause. Every step shortens the sequence, so the loop
// runs at most len(seq)-1 times. The input is never modified.
func (r *Reducer) Reduce(seq model.TagSequence) model.ReductionResult {
	current := make(model.TagSequence, len(seq))
	copy(current, seq)

	var strength float64
	steps := 0

	for {
		rule, at, ok := r.bestRule(current)
		if !ok {
			break
		}

		next := make(model.TagSequence, 0, len(current)-len(rule.Pattern)+1)
		next = append(next, current[:at]...)
		next = append(next, rule.Clause)
		next = append(next, current[at+len(rule.Pattern):]...)

		current = next
		strength += rule.Strength()
		steps++
	}

	return model.ReductionResult{
		Reduced:  current,
		Strength: strength,
		Steps:    steps,
	}
}

// Applicable returns every rule whose pattern occurs in seq, in table order
func (r *Reducer) Applicable(seq model.TagSequence) []model.GrammarRule {
	var out []model.GrammarRule
	for _, rule := range r.table.rules {
		if seq.Index(rule.Pattern) >= 0 {
			out = append(out, rule)
		}
	}
	return out
}

// bestRule scans the whole table; ties replace the running best
func (r *Reducer) bestRule(seq model.TagSequence) (model.GrammarRule, int, bool) {
	var (
		best    model.GrammarRule
		bestAt  int
		bestStr float64
		found   bool
	)

	for _, rule := range r.table.rules {
		at := seq.Index(rule.Pattern)
		if at < 0 {
			continue
		}
		s := rule.Strength()
		if found && s < bestStr {
			continue
		}
		best, bestAt, bestStr, found = rule, at, s, true
	}

	return best, bestAt, found
}
