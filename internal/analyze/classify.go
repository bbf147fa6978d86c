package analyze

import (
	"strings"

	"github.com/ppiankov/copycop/internal/model"
)

// Flags are the role flags found by phrase extraction
type Flags struct {
	Subject   bool
	Verb      bool
	Predicate bool
}

// Classification is the mood and pronoun reading of one variant
type Classification struct {
	Mood     model.Mood
	Passive  bool
	Gerund   bool
	Pronoun  model.PronounKind
	Person   model.Person
	Gendered bool
	Singular bool
	Plural   bool
}

// pronounEntry describes one word of the pronoun lexicon
type pronounEntry struct {
	person   model.Person
	gendered bool
	singular bool
	plural   bool
}

// pronouns is the fixed pronoun lexicon. Object and possessive forms
// other than "your", and "it" and "they", are left out and resolve
// through the noun anchor instead.
var pronouns = map[string]pronounEntry{
	"i":    {person: model.PersonFirst, singular: true},
	"we":   {person: model.PersonFirst, plural: true},
	"you":  {person: model.PersonSecond, singular: true},
	"your": {person: model.PersonSecond, singular: true},
	"he":   {person: model.PersonThird, gendered: true, singular: true},
	"she":  {person: model.PersonThird, gendered: true, singular: true},
}

var passivePattern = model.TagSequence{model.TagVB, model.TagVBN}

// Classify derives mood, voice and pronoun specificity for one variant.
// tags is the unreduced sequence and reduced its reduction.
func Classify(tags, reduced model.TagSequence, phrases []model.PhraseChunk, flags Flags) Classification {
	c := Classification{
		Passive: reduced.Index(passivePattern) >= 0,
		Gerund:  firstVerb(tags) == model.TagVBG,
	}

	c.Mood = mood(flags, c.Passive, c.Gerund)
	if c.Mood == model.MoodImperative {
		c.Person = model.PersonSecond
	}

	classifyPronoun(&c, reduced, phrases)
	return c
}

func mood(flags Flags, passive, gerund bool) model.Mood {
	switch {
	case flags.Subject && flags.Verb && passive:
		return model.MoodPassive
	case flags.Subject && flags.Verb:
		return model.MoodActive
	case flags.Subject:
		return model.MoodNominal
	case flags.Verb && flags.Predicate && gerund:
		return model.MoodGerund
	case flags.Verb && flags.Predicate:
		return model.MoodImperative
	case flags.Verb:
		return model.MoodAction
	case flags.Predicate:
		return model.MoodFragment
	default:
		return model.MoodNone
	}
}

// classifyPronoun looks for a pronoun point in the reduced sequence, then
// reads the lexicon over every term of the sentence
func classifyPronoun(c *Classification, reduced model.TagSequence, phrases []model.PhraseChunk) {
	at := pronounPoint(reduced)
	if at < 0 {
		return
	}
	anchored := hasNounAnchor(reduced[:at])

	for _, phrase := range phrases {
		for _, term := range phrase.Terms {
			key := strings.ToLower(term.Text)
			if term.Implicit != "" {
				key = strings.ToLower(term.Implicit)
			}

			if p, ok := pronouns[key]; ok {
				if c.Pronoun == model.PronounNone {
					c.Pronoun = model.PronounAnonymous
					if p.person == model.PersonFirst || p.person == model.PersonSecond {
						c.Pronoun = model.PronounContextualized
					}
					c.apply(p)
				}
				if c.Person == model.PersonNone {
					c.apply(p)
				}
				continue
			}

			if isDeterminerOrPronoun(term.Penn) && c.Pronoun == model.PronounNone {
				if anchored {
					c.Pronoun = model.PronounContextualized
				} else {
					c.Pronoun = model.PronounAnonymous
				}
			}
		}
	}
}

func (c *Classification) apply(p pronounEntry) {
	c.Person = p.person
	c.Gendered = p.gendered
	c.Singular = p.singular
	c.Plural = p.plural
}

// pronounPoint returns the position of the first personal pronoun, or of a
// determiner directly followed by a verb, or -1
func pronounPoint(reduced model.TagSequence) int {
	for i, tag := range reduced {
		if tag == model.TagPRP || tag == model.TagPRPS {
			return i
		}
	}
	for i := 0; i+1 < len(reduced); i++ {
		if reduced[i] == model.TagDT && reduced[i+1].IsVerb() {
			return i
		}
	}
	return -1
}

// hasNounAnchor reports whether a subject or a short noun-family label
// (NN, NNS, NP, NNP) occurs in the tokens
func hasNounAnchor(tokens model.TagSequence) bool {
	for _, tag := range tokens {
		if tag == "SBJ" {
			return true
		}
		if n := len(tag); n >= 2 && n <= 3 && tag[0] == 'N' {
			return true
		}
	}
	return false
}

func isDeterminerOrPronoun(tag model.PosTag) bool {
	return tag == model.TagDT || tag == model.TagPRP || tag == model.TagPRPS
}

func firstVerb(tags model.TagSequence) model.PosTag {
	for _, tag := range tags {
		if tag.IsVerb() {
			return tag
		}
	}
	return ""
}
