package analyze

import (
	"errors"

	"github.com/ppiankov/copycop/internal/model"
)

// ErrEmptyVariantSet means a sentence produced no variants at all
var ErrEmptyVariantSet = errors.New("empty variant set")

// Select folds variants left to right and returns the winner. Variants the
// cascade cannot rank are appended to the winner's Alternates.
//
// The preference is pairwise, not total: with three or more variants that
// tie on strength, the winner depends on fold order, so callers must keep
// variants in resolver order.
func Select(variants []*model.SentenceVariant) (*model.SentenceVariant, error) {
	if len(variants) == 0 {
		return nil, ErrEmptyVariantSet
	}

	var best *model.SentenceVariant
	for _, next := range variants {
		if best == nil {
			best = next
			continue
		}
		best = prefer(best, next)
	}
	return best, nil
}

// prefer applies the first matching rule of the cascade
func prefer(best, next *model.SentenceVariant) *model.SentenceVariant {
	switch {
	case best.Strength == next.Strength && best.Reduced.Equal(next.Reduced):
		return best
	case best.Strength > next.Strength:
		return best
	case best.Strength < next.Strength:
		return next
	case len(best.Reduced) == 0:
		return next
	case best.Mood == model.MoodDeclarative && next.Mood != model.MoodDeclarative:
		return best
	case best.Mood != model.MoodDeclarative && next.Mood == model.MoodDeclarative:
		return next
	case best.Mood == model.MoodImperative && next.Mood != model.MoodImperative:
		return best
	case best.Mood != model.MoodImperative && next.Mood == model.MoodImperative:
		return next
	case best.Pronoun == model.PronounContextualized && next.Pronoun == model.PronounAnonymous:
		return best
	case best.Pronoun == model.PronounAnonymous && next.Pronoun == model.PronounContextualized:
		return next
	}

	best.Alternates = append(best.Alternates, next)
	return best
}
