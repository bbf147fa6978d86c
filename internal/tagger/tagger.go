// Package tagger assigns Penn Treebank tags to the words of a sentence and
// groups them into phrase chunks with grammatical roles.
//
// Tagging is two-pass: a lexicon lookup with suffix heuristics for unknown
// words, then a contextual pass that settles noun/verb and past/participle
// readings from the neighbouring tags. Words with two plausible readings
// keep both in Term.Switch so callers can try each.
package tagger

import (
	"strings"

	"github.com/ppiankov/copycop/internal/model"
)

// Tagger tags sentences against a fixed lexicon. It is safe for
// concurrent use.
type Tagger struct {
	lexicon lexicon
}

// New creates a tagger with the built-in lexicon
func New() *Tagger {
	return &Tagger{lexicon: newLexicon()}
}

// Tag returns the terms of sentence with their default Penn tags
func (t *Tagger) Tag(sentence string) []model.Term {
	tokens := tokenize(sentence)
	terms := make([]model.Term, len(tokens))

	// Pass 1: lexicon and suffix heuristics
	for i, tok := range tokens {
		terms[i] = t.baseline(tokens, terms, i)
		terms[i].Text = tok.text
	}

	// Pass 2: context
	for i := range terms {
		t.reinforce(terms, i)
	}

	return terms
}

// Sequence returns the Penn tags of terms in order
func Sequence(terms []model.Term) model.TagSequence {
	seq := make(model.TagSequence, len(terms))
	for i, term := range terms {
		seq[i] = term.Penn
	}
	return seq
}

func (t *Tagger) baseline(tokens []token, terms []model.Term, i int) model.Term {
	tok := tokens[i]

	if tok.clitic {
		var host model.PosTag
		if i > 0 {
			host = terms[i-1].Penn
		}
		return cliticTerm(tok, host)
	}

	key := strings.ToLower(tok.text)
	if tok.implicit != "" {
		key = tok.implicit
	}

	e, ok := t.lexicon[key]
	if !ok {
		e = guess(tok.text, i == 0)
	}

	return model.Term{
		Implicit: tok.implicit,
		Penn:     e.penn,
		Switch:   append([]model.PosTag(nil), e.swtch...),
		Tags:     append([]string(nil), e.labels...),
	}
}

func cliticTerm(tok token, host model.PosTag) model.Term {
	term := model.Term{Implicit: tok.implicit}

	switch strings.ToLower(tok.text) {
	case "n't":
		term.Penn = model.TagRB
		term.Tags = []string{LabelAdverb, LabelContraction}
	case "'s":
		switch host {
		case model.TagPRP, model.TagDT, model.TagEX, model.TagWP, model.TagWRB, model.TagRB:
			term.Penn = model.TagVB
			term.Tags = []string{LabelVerb, LabelCopula, LabelContraction}
		default:
			term.Penn = model.TagPOS
			term.Implicit = ""
		}
	case "'re", "'m":
		term.Penn = model.TagVB
		term.Tags = []string{LabelVerb, LabelCopula, LabelContraction}
	case "'ll", "'d":
		term.Penn = model.TagMD
		term.Tags = []string{LabelVerb, LabelModal, LabelContraction}
	case "'ve":
		term.Penn = model.TagVBP
		term.Tags = []string{LabelVerb, LabelAuxiliary, LabelContraction}
	}

	return term
}

// reinforce settles the reading of term i from the terms before it
func (t *Tagger) reinforce(terms []model.Term, i int) {
	term := &terms[i]
	prev := pennAt(terms, i-1)
	lower := strings.ToLower(term.Text)

	// "there is", "there are"
	if lower == "there" && i+1 < len(terms) && terms[i+1].HasTag(LabelCopula) {
		term.Penn = model.TagEX
		return
	}

	// Particles only follow verbs
	if term.Penn == model.TagRP && !prev.IsVerb() {
		term.Penn = model.TagRB
		return
	}

	if !term.Ambiguous() {
		// "you install": base form after a subject is present tense
		if term.Penn == model.TagVB && !term.HasTag(LabelCopula) && isSubjectTag(prev) {
			term.Penn = model.TagVBP
		}
		return
	}

	switch term.Switch[0] {
	case model.TagNN:
		term.Penn = nounOrVerb(terms, i)
	case model.TagNNS:
		term.Penn = pluralOrVerb(terms, i)
	case model.TagVBN:
		term.Penn = pastOrParticiple(terms, i)
	}
}

// nounOrVerb picks NN or a verb reading for an NN|VB word
func nounOrVerb(terms []model.Term, i int) model.PosTag {
	if i == 0 {
		return model.TagVB
	}

	prev := pennAt(terms, i-1)
	switch prev {
	case model.TagMD, model.TagTO, model.TagUH:
		return model.TagVB
	case model.TagDT, model.TagPDT, model.TagJJ, model.TagJJR, model.TagJJS,
		model.TagPRPS, model.TagPOS, model.TagCD, model.TagIN, model.TagVBG:
		return model.TagNN
	case model.TagPRP, model.TagNNS:
		return model.TagVBP
	case model.TagRB:
		// "always check", "never use"
		before := pennAt(terms, i-2)
		if i == 1 || before == model.TagMD || before == model.TagTO || before.IsVerb() {
			return model.TagVB
		}
	case model.TagCC:
		// "build and test": follow the reading before the conjunction
		if pennAt(terms, i-2).IsVerb() {
			return model.TagVB
		}
	}

	return model.TagNN
}

// pluralOrVerb picks NNS or VBZ for an NNS|VBZ word
func pluralOrVerb(terms []model.Term, i int) model.PosTag {
	if i == 0 {
		return model.TagNNS
	}
	switch pennAt(terms, i-1) {
	case model.TagPRP, model.TagNN, model.TagNNP, model.TagWDT, model.TagWP:
		return model.TagVBZ
	}
	return model.TagNNS
}

// pastOrParticiple picks VBN or VBD for a VBN|VBD word
func pastOrParticiple(terms []model.Term, i int) model.PosTag {
	if i == 0 {
		return model.TagVBN
	}

	// Skip adverbs back to an auxiliary: "was quickly fixed", "has never built"
	for j := i - 1; j >= 0; j-- {
		prev := terms[j]
		if prev.Penn == model.TagRB {
			continue
		}
		if prev.HasTag(LabelCopula) || isHave(prev) {
			return model.TagVBN
		}
		break
	}

	switch pennAt(terms, i-1) {
	case model.TagDT, model.TagJJ, model.TagPRPS, model.TagIN:
		return model.TagVBN
	}
	return model.TagVBD
}

func isHave(term model.Term) bool {
	key := strings.ToLower(term.Text)
	if term.Implicit != "" {
		key = term.Implicit
	}
	switch key {
	case "have", "has", "had", "having":
		return true
	}
	return false
}

func isSubjectTag(tag model.PosTag) bool {
	switch tag {
	case model.TagPRP, model.TagNNS, model.TagNNPS, model.TagEX:
		return true
	}
	return false
}

func pennAt(terms []model.Term, i int) model.PosTag {
	if i < 0 || i >= len(terms) {
		return ""
	}
	return terms[i].Penn
}
