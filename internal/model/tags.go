package model

import "strings"

// PosTag is a Penn Treebank part-of-speech code
type PosTag string

// Penn Treebank word-level tags used by the tagger and the rule table
const (
	TagCC   PosTag = "CC"   // Coordinating conjunction
	TagCD   PosTag = "CD"   // Cardinal number
	TagDT   PosTag = "DT"   // Determiner
	TagEX   PosTag = "EX"   // Existential there
	TagFW   PosTag = "FW"   // Foreign word
	TagIN   PosTag = "IN"   // Preposition or subordinating conjunction
	TagJJ   PosTag = "JJ"   // Adjective
	TagJJR  PosTag = "JJR"  // Adjective, comparative
	TagJJS  PosTag = "JJS"  // Adjective, superlative
	TagMD   PosTag = "MD"   // Modal
	TagNN   PosTag = "NN"   // Noun, singular or mass
	TagNNS  PosTag = "NNS"  // Noun, plural
	TagNNP  PosTag = "NNP"  // Proper noun, singular
	TagNNPS PosTag = "NNPS" // Proper noun, plural
	TagPDT  PosTag = "PDT"  // Predeterminer
	TagPOS  PosTag = "POS"  // Possessive ending
	TagPRP  PosTag = "PRP"  // Personal pronoun
	TagPRPS PosTag = "PRP$" // Possessive pronoun
	TagRB   PosTag = "RB"   // Adverb
	TagRBR  PosTag = "RBR"  // Adverb, comparative
	TagRBS  PosTag = "RBS"  // Adverb, superlative
	TagRP   PosTag = "RP"   // Particle
	TagTO   PosTag = "TO"   // to
	TagUH   PosTag = "UH"   // Interjection
	TagVB   PosTag = "VB"   // Verb, base form
	TagVBD  PosTag = "VBD"  // Verb, past tense
	TagVBG  PosTag = "VBG"  // Verb, gerund or present participle
	TagVBN  PosTag = "VBN"  // Verb, past participle
	TagVBP  PosTag = "VBP"  // Verb, non-3rd person singular present
	TagVBZ  PosTag = "VBZ"  // Verb, 3rd person singular present
	TagWDT  PosTag = "WDT"  // Wh-determiner
	TagWP   PosTag = "WP"   // Wh-pronoun
	TagWPS  PosTag = "WP$"  // Possessive wh-pronoun
	TagWRB  PosTag = "WRB"  // Wh-adverb
)

// IsVerb reports whether the tag belongs to the VB* family
func (t PosTag) IsVerb() bool {
	return strings.HasPrefix(string(t), "VB")
}

// IsNoun reports whether the tag belongs to the NN* family
func (t PosTag) IsNoun() bool {
	return strings.HasPrefix(string(t), "NN")
}

// TagSequence is the ordered tag list of one sentence
type TagSequence []PosTag

// String joins the sequence with single spaces, the rule table's pattern format
func (s TagSequence) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

// Equal reports whether two sequences hold the same tags in the same order
func (s TagSequence) Equal(other TagSequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Index returns the position of the first token-aligned occurrence of
// pattern in s, or -1
func (s TagSequence) Index(pattern TagSequence) int {
	if len(pattern) == 0 || len(pattern) > len(s) {
		return -1
	}
outer:
	for i := 0; i+len(pattern) <= len(s); i++ {
		for j := range pattern {
			if s[i+j] != pattern[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

// ParseTagSequence splits a space-joined tag string
func ParseTagSequence(code string) TagSequence {
	fields := strings.Fields(code)
	seq := make(TagSequence, len(fields))
	for i, f := range fields {
		seq[i] = PosTag(f)
	}
	return seq
}
