package model

// Term is one word of a sentence as seen by the tagger
type Term struct {
	Text     string   `json:"text"`
	Tags     []string `json:"tags,omitempty"`     // Coarse labels, e.g. "Noun", "Verb", "PastTense"
	Implicit string   `json:"implicit,omitempty"` // Canonical form for contractions ("'s" -> "is")
	Penn     PosTag   `json:"penn"`               // Tag resolved for this parse
	Switch   []PosTag `json:"switch,omitempty"`   // Two-way alternative tagging, nil when unambiguous
}

// HasTag reports whether the term carries the coarse label
func (t Term) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Ambiguous reports whether the term carries a two-way switch
func (t Term) Ambiguous() bool {
	return len(t.Switch) == 2
}

// ChunkKind classifies a phrase chunk
type ChunkKind string

const (
	ChunkNoun      ChunkKind = "NP"
	ChunkVerb      ChunkKind = "VP"
	ChunkPrep      ChunkKind = "PP"
	ChunkAdjective ChunkKind = "ADJP"
	ChunkOther     ChunkKind = "O"
)

// PhraseChunk is an ordered run of terms forming one phrase
type PhraseChunk struct {
	Kind  ChunkKind `json:"kind"`
	Terms []Term    `json:"terms"`
}

// Mood is the coarse grammatical category of a sentence
type Mood string

const (
	MoodNone        Mood = ""
	MoodPassive     Mood = "passive"
	MoodActive      Mood = "active"
	MoodNominal     Mood = "nominal"
	MoodGerund      Mood = "gerund"
	MoodImperative  Mood = "imperative"
	MoodAction      Mood = "action"
	MoodFragment    Mood = "fragment"
	MoodDeclarative Mood = "declarative" // Never produced by Classify; ranked by the selector when supplied
)

// String renders the mood, "none" when unset
func (m Mood) String() string {
	if m == MoodNone {
		return "none"
	}
	return string(m)
}

// PronounKind says whether a pronoun's referent is locally inferable
type PronounKind string

const (
	PronounNone           PronounKind = ""
	PronounContextualized PronounKind = "contextualized"
	PronounAnonymous      PronounKind = "anonymous"
)

// Person is grammatical person
type Person string

const (
	PersonNone   Person = ""
	PersonFirst  Person = "first"
	PersonSecond Person = "second"
	PersonThird  Person = "third"
)

// Tense is the grammatical tense of the main verb, TenseUnresolved when unknown
type Tense string

const (
	TenseUnresolved Tense = ""
	TensePast       Tense = "past"
	TensePresent    Tense = "present"
	TenseFuture     Tense = "future"
)

// String renders the tense, "tense unclear" when unresolved
func (t Tense) String() string {
	if t == TenseUnresolved {
		return "tense unclear"
	}
	return string(t)
}

// Roles holds the grammatical role phrases found by the chunker
type Roles struct {
	Subject   string `json:"subject,omitempty"`
	Verb      string `json:"verb,omitempty"`
	Predicate string `json:"predicate,omitempty"`
}

// SentenceVariant is one candidate interpretation of a sentence.
// Variants of the same sentence differ only in the tag chosen for one
// ambiguous term.
type SentenceVariant struct {
	Text     string        `json:"text"`
	Tags     TagSequence   `json:"tags"`
	Reduced  TagSequence   `json:"reduced"`
	Strength float64       `json:"strength"`
	Phrases  []PhraseChunk `json:"phrases,omitempty"`
	Roles    Roles         `json:"roles"`
	Tense    Tense         `json:"tense,omitempty"`

	Mood     Mood        `json:"mood,omitempty"`
	Passive  bool        `json:"passive"`
	Gerund   bool        `json:"gerund"`
	Pronoun  PronounKind `json:"pronoun,omitempty"`
	Person   Person      `json:"person,omitempty"`
	Gendered bool        `json:"gendered"`
	Singular bool        `json:"singular,omitempty"`
	Plural   bool        `json:"plural,omitempty"`

	// Alternates are runner-ups the selector could not strictly rank below this one
	Alternates []*SentenceVariant `json:"alternates,omitempty"`
}

// SentenceResult is the selected variant of a sentence
type SentenceResult struct {
	SentenceVariant

	Degraded bool   `json:"degraded,omitempty"` // Analysis failed; classification fields are empty
	Error    string `json:"error,omitempty"`
}

// Heading is an analyzed heading block
type Heading struct {
	SentenceResult
	Raw      string `json:"raw"` // Heading text before sentence splitting
	Depth    int    `json:"depth"`
	Position int    `json:"position"` // Index in the document's heading list
	Line     int    `json:"line,omitempty"`
	Group    int    `json:"group,omitempty"` // Section group id, level-3 headings only
}

// ListItemLead is the first sentence of a list item
type ListItemLead struct {
	SentenceResult
	Position int `json:"position"`
}
