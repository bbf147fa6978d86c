package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/copycop/internal/cache"
	"github.com/ppiankov/copycop/internal/model"
)

// stubAnalyzer classifies every sentence as active present unless told
// otherwise, and counts calls
type stubAnalyzer struct {
	mu      sync.Mutex
	calls   map[string]int
	moods   map[string]model.Mood
	panicOn string
	failOn  string
}

func newStub() *stubAnalyzer {
	return &stubAnalyzer{calls: make(map[string]int), moods: make(map[string]model.Mood)}
}

func (s *stubAnalyzer) Analyze(text string) (model.SentenceResult, error) {
	s.mu.Lock()
	s.calls[text]++
	mood, ok := s.moods[text]
	s.mu.Unlock()

	if text == s.panicOn {
		panic("tagger blew up")
	}
	if text == s.failOn {
		return model.SentenceResult{}, errors.New("no variants")
	}
	if !ok {
		mood = model.MoodActive
	}
	return model.SentenceResult{SentenceVariant: model.SentenceVariant{
		Text:    text,
		Mood:    mood,
		Tense:   model.TensePresent,
		Reduced: model.TagSequence{"S"},
	}}, nil
}

func kinds(report *model.Report) map[model.WarningKind]int {
	out := make(map[model.WarningKind]int)
	for _, w := range report.Warnings {
		out[w.Kind]++
	}
	return out
}

const guide = `# Guide

Intro text.

## Install the tool

The tool is installed. Run it.

### First step

### Second step

- Open the file
- Save the file
`

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"README.md", FormatMarkdown},
		{"notes.markdown", FormatMarkdown},
		{"index.HTML", FormatHTML},
		{"page.htm", FormatHTML},
		{"CHANGELOG", FormatMarkdown},
	}

	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.expected {
			t.Errorf("FormatOf(%q) = %s, expected %s", tt.path, got, tt.expected)
		}
	}
}

func TestLinter_LintBytes(t *testing.T) {
	stub := newStub()
	stub.moods["The tool is installed."] = model.MoodPassive
	linter := NewLinter(stub, nil, model.ChecksConfig{})

	report, err := linter.LintBytes(context.Background(), "guide.md", []byte(guide), FormatMarkdown)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := kinds(report)
	if got[model.KindSingletonH2] != 1 {
		t.Errorf("Expected singleton H2, got %v", got)
	}
	if got[model.KindImmediateHeadings] != 1 {
		t.Errorf("Expected one immediate sibling heading warning, got %v", got)
	}
	if got[model.KindPassive] != 1 {
		t.Errorf("Expected one passive warning, got %v", got)
	}

	if len(report.Headings) != 4 {
		t.Fatalf("Expected 4 headings, got %d", len(report.Headings))
	}
	last := report.Headings[3]
	if last.Position != 3 || last.Group != 2 || last.Depth != 3 {
		t.Errorf("Expected position 3, group 2, depth 3, got %+v", last)
	}

	// Intro text, two paragraph sentences, two list leads
	if len(report.Sentences) != 5 {
		t.Errorf("Expected 5 sentences, got %d", len(report.Sentences))
	}
	if report.Summary.Sentences != 9 {
		t.Errorf("Expected 9 analyzed sentences in summary, got %d", report.Summary.Sentences)
	}
}

func TestLinter_FailureIsPerSentence(t *testing.T) {
	stub := newStub()
	stub.panicOn = "Run it."
	stub.failOn = "Intro text."
	linter := NewLinter(stub, nil, model.ChecksConfig{})

	report, err := linter.LintBytes(context.Background(), "guide.md", []byte(guide), FormatMarkdown)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := kinds(report)[model.KindUnanalyzed]; got != 2 {
		t.Errorf("Expected 2 unanalyzed warnings, got %d", got)
	}
	if report.Summary.Degraded != 2 {
		t.Errorf("Expected 2 degraded sentences, got %d", report.Summary.Degraded)
	}

	for _, s := range report.Sentences {
		if s.Text == "Run it." && (!s.Degraded || s.Mood != model.MoodNone || !strings.Contains(s.Error, "panic")) {
			t.Errorf("Expected degraded result with panic error, got %+v", s)
		}
		if s.Text == "The tool is installed." && s.Degraded {
			t.Error("Expected sibling sentence to be analyzed")
		}
	}
}

func TestLinter_DisabledChecks(t *testing.T) {
	checks := model.ChecksConfig{Disabled: []string{"singleton-h2", "immediate-sibling-headings"}}
	linter := NewLinter(newStub(), nil, checks)

	report, err := linter.LintBytes(context.Background(), "guide.md", []byte(guide), FormatMarkdown)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := kinds(report)
	if got[model.KindSingletonH2] != 0 || got[model.KindImmediateHeadings] != 0 {
		t.Errorf("Expected disabled kinds to be dropped, got %v", got)
	}
}

func TestLinter_UnknownFormat(t *testing.T) {
	linter := NewLinter(newStub(), nil, model.ChecksConfig{})

	_, err := linter.LintBytes(context.Background(), "x", []byte("x"), "rst")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestLinter_LintFileMissing(t *testing.T) {
	linter := NewLinter(newStub(), nil, model.ChecksConfig{})

	if _, err := linter.LintFile(context.Background(), filepath.Join(t.TempDir(), "none.md")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLinter_Cancelled(t *testing.T) {
	linter := NewLinter(newStub(), nil, model.ChecksConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := linter.LintBytes(ctx, "guide.md", []byte(guide), FormatMarkdown); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLinter_UsesCache(t *testing.T) {
	stub := newStub()
	results := cache.NewResults(cache.NewMemoryCache(time.Minute, time.Minute), "", 0)
	linter := NewLinter(stub, results, model.ChecksConfig{})

	for i := 0; i < 2; i++ {
		if _, err := linter.LintBytes(context.Background(), "guide.md", []byte(guide), FormatMarkdown); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	if n := stub.calls["Run it."]; n != 1 {
		t.Errorf("Expected one analyzer call per sentence, got %d", n)
	}
}

func TestLinter_HTML(t *testing.T) {
	stub := newStub()
	linter := NewLinter(stub, nil, model.ChecksConfig{})

	src := []byte(`<body><h2>Install</h2><p>Run it.</p><h2>Configure</h2><p>Edit it.</p></body>`)
	report, err := linter.LintBytes(context.Background(), "page.html", src, FormatHTML)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.Format != FormatHTML || len(report.Headings) != 2 {
		t.Errorf("Expected html report with 2 headings, got %s with %d", report.Format, len(report.Headings))
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %+v", report.Warnings)
	}
}

func TestLinter_RealAnalyzer(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false

	linter, err := New(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	report, err := linter.LintBytes(context.Background(), "doc.md", []byte("## Setup\n\nThe tool is installed.\n"), FormatMarkdown)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := kinds(report)
	if got[model.KindSingletonH2] != 1 || got[model.KindPassive] != 1 {
		t.Errorf("Expected singleton H2 and passive warnings, got %v", got)
	}
}

func TestNew_CacheFollowsRuleContents(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.json")

	cfg := model.DefaultConfig()
	cfg.Rules.Path = rules
	cfg.Cache.Dir = filepath.Join(dir, "cache")

	analyzeWith := func(content string, cached bool) model.SentenceResult {
		t.Helper()
		if err := os.WriteFile(rules, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		c := *cfg
		c.Cache.Enabled = cached

		linter, err := New(&c)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		results, err := linter.AnalyzeText(context.Background(), "Open the file.")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Expected 1 sentence, got %d", len(results))
		}
		return results[0]
	}

	rulesA := `[{"clause": "NP", "subclauses": "DT NN", "prob": 0.5}]`
	rulesB := `[{"clause": "VP", "subclauses": "VB DT", "prob": 0.9}]`

	first := analyzeWith(rulesA, true)
	edited := analyzeWith(rulesB, true)
	fresh := analyzeWith(rulesB, false)

	if first.Reduced.Equal(fresh.Reduced) {
		t.Fatalf("Expected the two rule sets to reduce differently, both gave %s", fresh.Reduced)
	}
	if !edited.Reduced.Equal(fresh.Reduced) || edited.Strength != fresh.Strength {
		t.Errorf("Expected edited rules to bypass the old cache entry: got %s %.2f, want %s %.2f",
			edited.Reduced, edited.Strength, fresh.Reduced, fresh.Strength)
	}
}

func TestNew_MissingRules(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Rules.Path = filepath.Join(t.TempDir(), "missing.json")

	if _, err := New(cfg); err == nil {
		t.Error("Expected error for missing rule table")
	}
}

func TestLinter_AnalyzeText(t *testing.T) {
	linter := NewLinter(newStub(), nil, model.ChecksConfig{})

	results, err := linter.AnalyzeText(context.Background(), "Fixing a bug: open the file. Save it.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 sentences, got %d", len(results))
	}
	if results[0].Text != "Fixing a bug" {
		t.Errorf("Expected colon split, got %q", results[0].Text)
	}
}

func TestRenderer_Text(t *testing.T) {
	report := &model.Report{
		Source: "guide.md",
		Warnings: []model.Warning{
			{
				Kind:     model.KindPassive,
				Severity: model.SeverityInfo,
				Message:  "Passive tense",
				Example:  "The tool is installed.",
				Hint:     "Consider rephrasing to active tense.",
				Link:     "https://npmjs.com/package/copycop#define-a-subject",
				Line:     7,
			},
			{
				Kind:     model.KindDivergentHeadings,
				Severity: model.SeverityWarn,
				Message:  "Divergent headings",
				Group: []model.GroupEntry{
					{Text: "Install", Mood: model.MoodImperative, Tense: model.TensePresent},
					{Text: "Configuration", Mood: model.MoodNominal},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := NewRenderer(false).RenderText(&buf, report); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"guide.md:7 info Passive tense:",
		"    - The tool is installed.",
		"  Consider rephrasing to active tense.",
		"guide.md warn Divergent headings:",
		"    - Install (imperative, present)",
		"    - Configuration (nominal, tense unclear)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderer_JSON(t *testing.T) {
	report := &model.Report{Source: "a.md", Warnings: []model.Warning{{Kind: model.KindGerund}}}
	path := filepath.Join(t.TempDir(), "out", "report.json")

	if err := NewRenderer(false).WriteJSON(path, report); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var buf bytes.Buffer
	_ = NewRenderer(false).RenderJSON(&buf, report)

	var decoded model.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if decoded.Source != "a.md" || decoded.Warnings[0].Kind != model.KindGerund {
		t.Errorf("Unexpected decoded report: %+v", decoded)
	}
}

func TestRenderer_Summary(t *testing.T) {
	reports := []*model.Report{
		{Source: "a.md", Summary: model.Summary{Sentences: 3, Warn: 2}},
		{Source: "b.md", Summary: model.Summary{Sentences: 4}},
	}

	var buf bytes.Buffer
	if err := NewRenderer(false).RenderSummary(&buf, reports); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(buf.String(), "2 file(s), 7 sentence(s): 2 warning(s), 0 info") {
		t.Errorf("Unexpected summary:\n%s", buf.String())
	}
}

func TestSentenceFlags(t *testing.T) {
	result := model.SentenceResult{SentenceVariant: model.SentenceVariant{
		Passive:  true,
		Gendered: true,
		Pronoun:  model.PronounAnonymous,
		Person:   model.PersonThird,
	}}

	expected := "gendered language, passive, potentially confusing pronoun, third person"
	if got := strings.Join(SentenceFlags(result), ", "); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}
