package tagger

import (
	"strings"

	"github.com/ppiankov/copycop/internal/model"
)

// Structure is the phrase-level view of one tagged sentence
type Structure struct {
	Phrases []model.PhraseChunk
	Roles   model.Roles
	Tense   model.Tense
}

// HasSubject reports whether a subject phrase was found
func (s Structure) HasSubject() bool { return s.Roles.Subject != "" }

// HasVerb reports whether a verb phrase was found
func (s Structure) HasVerb() bool { return s.Roles.Verb != "" }

// HasPredicate reports whether anything follows the verb, or stands in for it
func (s Structure) HasPredicate() bool { return s.Roles.Predicate != "" }

// subordinators open a clause rather than a prepositional phrase
var subordinators = map[string]bool{
	"if": true, "because": true, "although": true, "while": true, "since": true,
	"unless": true, "until": true, "whether": true, "as": true, "than": true,
	"before": true, "after": true,
}

// Parse chunks terms into phrases and extracts roles and tense
func Parse(terms []model.Term) Structure {
	phrases := Chunk(terms)
	roles := extractRoles(phrases)
	return Structure{
		Phrases: phrases,
		Roles:   roles,
		Tense:   tenseOf(phrases),
	}
}

// Chunk groups terms into NP, VP, PP, ADJP and other chunks
func Chunk(terms []model.Term) []model.PhraseChunk {
	// Heuristic: chunks are roughly 1/2 of terms
	chunks := make([]model.PhraseChunk, 0, len(terms)/2+1)
	i := 0

	for i < len(terms) {
		// Try patterns in priority order
		if chunk, consumed := tryPrepPhrase(terms, i); consumed > 0 {
			chunks = append(chunks, chunk)
			i += consumed
		} else if chunk, consumed := tryVerbPhrase(terms, i); consumed > 0 {
			chunks = append(chunks, chunk)
			i += consumed
		} else if chunk, consumed := tryNounPhrase(terms, i); consumed > 0 {
			chunks = append(chunks, chunk)
			i += consumed
		} else if chunk, consumed := tryAdjPhrase(terms, i); consumed > 0 {
			chunks = append(chunks, chunk)
			i += consumed
		} else {
			chunks = append(chunks, model.PhraseChunk{Kind: model.ChunkOther, Terms: terms[i : i+1]})
			i++
		}
	}

	return chunks
}

// tryNounPhrase: (DT|PDT|PRP$|CD)* (JJ|VBN)* nominal*, or a lone pronoun
func tryNounPhrase(terms []model.Term, start int) (model.PhraseChunk, int) {
	i := start

	switch pennAt(terms, i) {
	case model.TagPRP, model.TagEX, model.TagWP:
		return model.PhraseChunk{Kind: model.ChunkNoun, Terms: terms[i : i+1]}, 1
	}

	determiners := 0
	for i < len(terms) && isDeterminer(terms[i].Penn) {
		determiners++
		i++
	}

	modStart := i
	for i < len(terms) && isNounModifier(terms, i) {
		i++
	}

	nounStart := i
	for i < len(terms) && isNominal(terms[i].Penn) {
		i++
	}

	switch {
	case i > nounStart:
		return model.PhraseChunk{Kind: model.ChunkNoun, Terms: terms[start:i]}, i - start
	case determiners > 0 && modStart == i:
		// Pronominal determiner: "this is", "all of"
		return model.PhraseChunk{Kind: model.ChunkNoun, Terms: terms[start:i]}, i - start
	}

	return model.PhraseChunk{}, 0
}

// tryVerbPhrase: (MD|RB|TO)* verb+ (RP|RB|verb)*
func tryVerbPhrase(terms []model.Term, start int) (model.PhraseChunk, int) {
	i := start
	for i < len(terms) && (terms[i].Penn == model.TagMD || terms[i].Penn == model.TagTO || terms[i].Penn == model.TagRB) {
		i++
	}

	// Main verb (required), unless a modal carries the phrase
	hasModal := false
	for j := start; j < i; j++ {
		if terms[j].Penn == model.TagMD {
			hasModal = true
		}
	}
	if i >= len(terms) || !terms[i].Penn.IsVerb() {
		if !hasModal {
			return model.PhraseChunk{}, 0
		}
	}

	for i < len(terms) {
		p := terms[i].Penn
		if p.IsVerb() || p == model.TagRP || p == model.TagMD {
			i++
			continue
		}
		// Adverb between verbs: "is not installed", "was quickly fixed"
		if (p == model.TagRB || p == model.TagTO) && i+1 < len(terms) && terms[i+1].Penn.IsVerb() {
			i++
			continue
		}
		break
	}

	// Leading adverbs without a verb stay outside
	for i > start && terms[i-1].Penn == model.TagRB {
		i--
	}
	if i == start {
		return model.PhraseChunk{}, 0
	}

	return model.PhraseChunk{Kind: model.ChunkVerb, Terms: terms[start:i]}, i - start
}

// tryPrepPhrase: IN NP, prepositions only
func tryPrepPhrase(terms []model.Term, start int) (model.PhraseChunk, int) {
	if start >= len(terms) || terms[start].Penn != model.TagIN {
		return model.PhraseChunk{}, 0
	}
	if subordinators[strings.ToLower(terms[start].Text)] {
		return model.PhraseChunk{}, 0
	}

	_, consumed := tryNounPhrase(terms, start+1)
	if consumed == 0 {
		return model.PhraseChunk{}, 0
	}

	end := start + 1 + consumed
	return model.PhraseChunk{Kind: model.ChunkPrep, Terms: terms[start:end]}, end - start
}

// tryAdjPhrase: RB* JJ+
func tryAdjPhrase(terms []model.Term, start int) (model.PhraseChunk, int) {
	i := start
	for i < len(terms) && terms[i].Penn == model.TagRB {
		i++
	}

	adjStart := i
	for i < len(terms) && isAdjective(terms[i].Penn) {
		i++
	}
	if i == adjStart {
		return model.PhraseChunk{}, 0
	}

	return model.PhraseChunk{Kind: model.ChunkAdjective, Terms: terms[start:i]}, i - start
}

// extractRoles finds the subject (noun phrases before the first verb
// phrase), the verb and the predicate (everything after the verb)
func extractRoles(chunks []model.PhraseChunk) model.Roles {
	verbAt := -1
	for i, c := range chunks {
		if c.Kind == model.ChunkVerb && hasVerbTerm(c) {
			verbAt = i
			break
		}
	}

	if verbAt < 0 {
		return nominalRoles(chunks)
	}

	var roles model.Roles
	var subject []string
	for _, c := range chunks[:verbAt] {
		if c.Kind == model.ChunkNoun {
			subject = append(subject, chunkText(c))
		}
	}
	roles.Subject = strings.Join(subject, " ")
	roles.Verb = chunkText(chunks[verbAt])
	roles.Predicate = joinChunks(chunks[verbAt+1:])
	return roles
}

// nominalRoles handles sentences without a verb phrase. A contraction
// with a verb reading supplies the verb when one is present.
func nominalRoles(chunks []model.PhraseChunk) model.Roles {
	var roles model.Roles
	if len(chunks) == 0 {
		return roles
	}

	for _, c := range chunks {
		for _, term := range c.Terms {
			if term.Implicit != "" && term.HasTag(LabelVerb) {
				roles.Verb = term.Implicit
			}
		}
	}

	if chunks[0].Kind == model.ChunkNoun {
		roles.Subject = chunkText(chunks[0])
		roles.Predicate = joinChunks(chunks[1:])
	} else {
		roles.Predicate = joinChunks(chunks)
	}
	return roles
}

// tenseOf reads the tense off the first verb phrase
func tenseOf(chunks []model.PhraseChunk) model.Tense {
	for _, c := range chunks {
		if c.Kind != model.ChunkVerb || !hasVerbTerm(c) {
			continue
		}
		for _, term := range c.Terms {
			if term.Penn == model.TagMD {
				switch canonical(term) {
				case "will", "shall":
					return model.TenseFuture
				case "can", "may", "must":
					return model.TensePresent
				default:
					return model.TenseUnresolved
				}
			}
			if !term.Penn.IsVerb() {
				continue
			}
			if term.Penn == model.TagVBD || term.HasTag(LabelPastTense) {
				return model.TensePast
			}
			return model.TensePresent
		}
	}
	return model.TenseUnresolved
}

func hasVerbTerm(c model.PhraseChunk) bool {
	for _, term := range c.Terms {
		if term.Penn.IsVerb() || term.Penn == model.TagMD {
			return true
		}
	}
	return false
}

func chunkText(c model.PhraseChunk) string {
	words := make([]string, len(c.Terms))
	for i, term := range c.Terms {
		words[i] = term.Text
	}
	return strings.Join(words, " ")
}

func joinChunks(chunks []model.PhraseChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, chunkText(c))
	}
	return strings.Join(parts, " ")
}

func canonical(term model.Term) string {
	if term.Implicit != "" {
		return term.Implicit
	}
	return strings.ToLower(term.Text)
}

func isDeterminer(tag model.PosTag) bool {
	switch tag {
	case model.TagDT, model.TagPDT, model.TagPRPS, model.TagCD, model.TagWDT, model.TagWPS:
		return true
	}
	return false
}

func isAdjective(tag model.PosTag) bool {
	return tag == model.TagJJ || tag == model.TagJJR || tag == model.TagJJS
}

// isNounModifier accepts adjectives, and participles or gerunds directly
// before a noun ("the installed tool", "the running server")
func isNounModifier(terms []model.Term, i int) bool {
	p := terms[i].Penn
	if isAdjective(p) {
		return true
	}
	if (p == model.TagVBN || p == model.TagVBG) && i > 0 && isDeterminer(terms[i-1].Penn) {
		return i+1 < len(terms) && isNominal(terms[i+1].Penn)
	}
	return false
}

func isNominal(tag model.PosTag) bool {
	return tag.IsNoun() || tag == model.TagPOS
}
