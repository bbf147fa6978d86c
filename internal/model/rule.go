package model

import "math"

// GrammarRule is one weighted rewrite rule: Pattern reduces to Clause
type GrammarRule struct {
	Clause  PosTag      `json:"clause" yaml:"clause"`
	Pattern TagSequence `json:"pattern" yaml:"pattern"`
	Weight  float64     `json:"weight" yaml:"weight"`
}

// Strength is the score a rule contributes when applied: 2^len(pattern) * weight
func (r GrammarRule) Strength() float64 {
	return math.Pow(2, float64(len(r.Pattern))) * r.Weight
}

// ReductionResult is the outcome of fully reducing a tag sequence
type ReductionResult struct {
	Reduced  TagSequence `json:"reduced"`
	Strength float64     `json:"strength"`
	Steps    int         `json:"steps"`
}
