// Package analyze turns one sentence into its selected classification:
// tagging, one variant per reading of each ambiguous word, reduction,
// mood and pronoun classification, then a left fold that keeps the
// strongest variant.
package analyze

import (
	"fmt"

	"github.com/ppiankov/copycop/internal/grammar"
	"github.com/ppiankov/copycop/internal/model"
)

// TermTagger tags the words of a sentence
type TermTagger interface {
	Tag(sentence string) []model.Term
}

// Analyzer classifies sentences. It holds only read-only tables and is
// safe for concurrent use.
type Analyzer struct {
	tagger   TermTagger
	resolver *Resolver
}

// New creates an analyzer over a rule table and a tagger
func New(table *grammar.RuleTable, tagger TermTagger) *Analyzer {
	return &Analyzer{
		tagger:   tagger,
		resolver: NewResolver(grammar.NewReducer(table)),
	}
}

// Analyze classifies one sentence
func (a *Analyzer) Analyze(text string) (model.SentenceResult, error) {
	terms := a.tagger.Tag(text)
	variants, err := a.resolver.Resolve(text, terms)
	if err != nil {
		return model.SentenceResult{}, fmt.Errorf("analyze %q: %w", text, err)
	}

	best, err := Select(variants)
	if err != nil {
		return model.SentenceResult{}, fmt.Errorf("analyze %q: %w", text, err)
	}

	return model.SentenceResult{SentenceVariant: *best}, nil
}
