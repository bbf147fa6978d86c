package analyze

import (
	"github.com/ppiankov/copycop/internal/grammar"
	"github.com/ppiankov/copycop/internal/model"
	"github.com/ppiankov/copycop/internal/tagger"
)

// Resolver builds the competing readings of one sentence
type Resolver struct {
	reducer *grammar.Reducer
}

// NewResolver creates a resolver over a reducer
func NewResolver(reducer *grammar.Reducer) *Resolver {
	return &Resolver{reducer: reducer}
}

// Resolve returns the variants of a tagged sentence, or ErrEmptyVariantSet
// when none could be built
func (r *Resolver) Resolve(text string, terms []model.Term) ([]*model.SentenceVariant, error) {
	variants := r.Variants(text, terms)
	if len(variants) == 0 {
		return nil, ErrEmptyVariantSet
	}
	return variants, nil
}

// Variants returns two variants per ambiguous term, one for each reading of
// its switch, with every other term at its default tag. Ambiguous terms are
// resolved one at a time, never as a cross-product. A sentence without
// ambiguous terms yields one variant from its default tagging.
//
// terms is never modified.
func (r *Resolver) Variants(text string, terms []model.Term) []*model.SentenceVariant {
	var variants []*model.SentenceVariant

	for i, term := range terms {
		if !term.Ambiguous() {
			continue
		}
		for _, tag := range term.Switch {
			variants = append(variants, r.Build(text, withTag(terms, i, tag)))
		}
	}

	if len(variants) == 0 {
		variants = append(variants, r.Build(text, terms))
	}
	return variants
}

// Build analyzes one fixed tagging: reduction, phrases, roles and
// classification
func (r *Resolver) Build(text string, terms []model.Term) *model.SentenceVariant {
	tags := tagger.Sequence(terms)
	reduction := r.reducer.Reduce(tags)
	structure := tagger.Parse(terms)

	c := Classify(tags, reduction.Reduced, structure.Phrases, Flags{
		Subject:   structure.HasSubject(),
		Verb:      structure.HasVerb(),
		Predicate: structure.HasPredicate(),
	})

	return &model.SentenceVariant{
		Text:     text,
		Tags:     tags,
		Reduced:  reduction.Reduced,
		Strength: reduction.Strength,
		Phrases:  structure.Phrases,
		Roles:    structure.Roles,
		Tense:    structure.Tense,
		Mood:     c.Mood,
		Passive:  c.Passive,
		Gerund:   c.Gerund,
		Pronoun:  c.Pronoun,
		Person:   c.Person,
		Gendered: c.Gendered,
		Singular: c.Singular,
		Plural:   c.Plural,
	}
}

// withTag returns a copy of terms with term i fixed to tag
func withTag(terms []model.Term, i int, tag model.PosTag) []model.Term {
	out := make([]model.Term, len(terms))
	copy(out, terms)
	out[i].Penn = tag
	return out
}
