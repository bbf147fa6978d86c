package tagger

import (
	"testing"

	"github.com/ppiankov/copycop/internal/model"
)

func TestTagger_Sequences(t *testing.T) {
	tagger := New()

	tests := []struct {
		sentence string
		expected string
		desc     string
	}{
		{"Fixing a bug", "VBG DT NN", "gerund lead"},
		{"The tool is installed.", "DT NN VB VBN", "copula before participle"},
		{"It's broken", "PRP VB VBN", "contracted copula"},
		{"Don't delete it", "VBP RB VB PRP", "negated auxiliary"},
		{"You install the tool", "PRP VBP DT NN", "present after subject"},
		{"He fixed the bug", "PRP VBD DT NN", "past after subject"},
		{"The bug was quickly fixed", "DT NN VB RB VBN", "adverb before participle"},
		{"There is a file", "EX VB DT NN", "existential there"},
		{"Run the test", "VB DT NN", "noun after determiner"},
		{"Deploy to Kubernetes", "VB TO NNP", "unknown capitalized word"},
		{"You can't", "PRP MD RB", "irregular negated host"},
	}

	for _, tt := range tests {
		got := Sequence(tagger.Tag(tt.sentence)).String()
		if got != tt.expected {
			t.Errorf("%s: expected %q for %q, got %q", tt.desc, tt.expected, tt.sentence, got)
		}
	}
}

func TestTagger_DropsPunctuation(t *testing.T) {
	terms := New().Tag(`Hello, "world"!`)

	if len(terms) != 2 {
		t.Fatalf("Expected 2 terms, got %d", len(terms))
	}
	if terms[0].Text != "Hello" || terms[1].Text != "world" {
		t.Errorf("Expected [Hello world], got [%s %s]", terms[0].Text, terms[1].Text)
	}
}

func TestTagger_Contractions(t *testing.T) {
	terms := New().Tag("It's what we can't do")

	expected := []struct {
		text     string
		implicit string
	}{
		{"It", ""},
		{"'s", "is"},
		{"what", ""},
		{"we", ""},
		{"ca", "can"},
		{"n't", "not"},
		{"do", ""},
	}

	if len(terms) != len(expected) {
		t.Fatalf("Expected %d terms, got %d", len(expected), len(terms))
	}
	for i, e := range expected {
		if terms[i].Text != e.text || terms[i].Implicit != e.implicit {
			t.Errorf("Term %d: expected %q (%q), got %q (%q)", i, e.text, e.implicit, terms[i].Text, terms[i].Implicit)
		}
	}
}

func TestTagger_PossessiveIsNotCopula(t *testing.T) {
	terms := New().Tag("The user's file")

	if len(terms) != 4 {
		t.Fatalf("Expected 4 terms, got %d", len(terms))
	}
	if terms[2].Penn != model.TagPOS {
		t.Errorf("Expected POS, got %s", terms[2].Penn)
	}
	if terms[2].Implicit != "" {
		t.Errorf("Expected no implicit form on possessive, got %q", terms[2].Implicit)
	}
}

func TestTagger_Switches(t *testing.T) {
	tagger := New()

	tests := []struct {
		sentence string
		index    int
		expected []model.PosTag
		desc     string
	}{
		{"Test the tool", 0, []model.PosTag{model.TagNN, model.TagVB}, "noun/verb word"},
		{"The tool was installed", 3, []model.PosTag{model.TagVBN, model.TagVBD}, "regular -ed word"},
		{"The tool frobnicated", 2, []model.PosTag{model.TagVBN, model.TagVBD}, "unknown -ed word"},
		{"The tests pass", 1, []model.PosTag{model.TagNNS, model.TagVBZ}, "plural noun/verb word"},
	}

	for _, tt := range tests {
		terms := tagger.Tag(tt.sentence)
		if tt.index >= len(terms) {
			t.Fatalf("%s: expected at least %d terms, got %d", tt.desc, tt.index+1, len(terms))
		}
		got := terms[tt.index].Switch
		if len(got) != 2 || got[0] != tt.expected[0] || got[1] != tt.expected[1] {
			t.Errorf("%s: expected switch %v, got %v", tt.desc, tt.expected, got)
		}
	}

	// Unambiguous words carry no switch
	for _, term := range tagger.Tag("the configuration") {
		if term.Ambiguous() {
			t.Errorf("Expected %q unambiguous, got switch %v", term.Text, term.Switch)
		}
	}
}

func TestTagger_DoesNotShareLexiconSlices(t *testing.T) {
	tagger := New()

	first := tagger.Tag("test")
	first[0].Switch[0] = model.TagJJ
	first[0].Tags[0] = "Mutated"

	second := tagger.Tag("test")
	if second[0].Switch[0] != model.TagNN {
		t.Errorf("Expected lexicon switch untouched, got %v", second[0].Switch)
	}
	if second[0].Tags[0] == "Mutated" {
		t.Error("Expected lexicon labels untouched")
	}
}

func TestInflections(t *testing.T) {
	tests := []struct {
		base, third, past, gerund string
	}{
		{"install", "installs", "installed", "installing"},
		{"query", "queries", "queried", "querying"},
		{"fix", "fixes", "fixed", "fixing"},
		{"stop", "stops", "stopped", "stopping"},
		{"configure", "configures", "configured", "configuring"},
		{"play", "plays", "played", "playing"},
	}

	for _, tt := range tests {
		if got := thirdPerson(tt.base); got != tt.third {
			t.Errorf("thirdPerson(%q): expected %q, got %q", tt.base, tt.third, got)
		}
		if got := pastTense(tt.base); got != tt.past {
			t.Errorf("pastTense(%q): expected %q, got %q", tt.base, tt.past, got)
		}
		if got := presentParticiple(tt.base); got != tt.gerund {
			t.Errorf("presentParticiple(%q): expected %q, got %q", tt.base, tt.gerund, got)
		}
	}
}
