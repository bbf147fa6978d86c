// Package pipeline lints whole documents: parse blocks, split sentences,
// analyze each sentence (through the result cache), run the checks and
// render the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/copycop/internal/analyze"
	"github.com/ppiankov/copycop/internal/cache"
	"github.com/ppiankov/copycop/internal/check"
	"github.com/ppiankov/copycop/internal/document"
	"github.com/ppiankov/copycop/internal/grammar"
	"github.com/ppiankov/copycop/internal/model"
	"github.com/ppiankov/copycop/internal/tagger"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ErrUnknownFormat is returned for a format other than markdown or html
var ErrUnknownFormat = errors.New("unknown document format")

// SentenceAnalyzer classifies one sentence
type SentenceAnalyzer interface {
	Analyze(text string) (model.SentenceResult, error)
}

// Linter lints documents. It is safe for concurrent use when its
// analyzer and cache are.
type Linter struct {
	analyzer SentenceAnalyzer
	results  *cache.Results // nil disables memoization
	checks   model.ChecksConfig
	now      func() time.Time
}

// New builds a linter from configuration: rule table, tagger, analyzer
// and, when enabled, the result cache
func New(cfg *model.Config) (*Linter, error) {
	table, err := grammar.Load(cfg.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	var results *cache.Results
	if cfg.Cache.Enabled {
		var store cache.Store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		ttl := cfg.Cache.MemoryTTL
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
			ttl = cfg.Cache.DiskTTL
		}
		results = cache.NewResults(store, table.Digest(), ttl)
	}

	return NewLinter(analyze.New(table, tagger.New()), results, cfg.Checks), nil
}

// NewLinter assembles a linter from its parts; results may be nil
func NewLinter(analyzer SentenceAnalyzer, results *cache.Results, checks model.ChecksConfig) *Linter {
	return &Linter{
		analyzer: analyzer,
		results:  results,
		checks:   checks,
		now:      time.Now,
	}
}

// FormatOf picks the document format from a file extension; anything
// that is not HTML is read as Markdown
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatMarkdown
	}
}

// LintFile reads and lints one file
func (l *Linter) LintFile(ctx context.Context, path string) (*model.Report, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l.LintBytes(ctx, path, src, FormatOf(path))
}

// LintBytes lints a document held in memory. name only labels the report.
func (l *Linter) LintBytes(ctx context.Context, name string, src []byte, format string) (*model.Report, error) {
	doc, err := parse(src, format)
	if err != nil {
		return nil, fmt.Errorf("lint %s: %w", name, err)
	}

	report := &model.Report{
		Source:    name,
		Format:    format,
		CheckedAt: l.now().UTC(),
	}

	blocks, warnings, err := l.analyzeBlocks(ctx, doc, report)
	if err != nil {
		return nil, fmt.Errorf("lint %s: %w", name, err)
	}

	warnings = append(warnings, check.CheckDocument(blocks)...)

	// copied after the checks assign positions and groups
	for _, b := range blocks {
		if b.Heading != nil {
			report.Headings = append(report.Headings, *b.Heading)
		}
	}

	report.Warnings = l.filter(warnings)
	report.Summarize()

	return report, nil
}

func parse(src []byte, format string) (*document.Document, error) {
	switch format {
	case FormatMarkdown, "":
		return document.Parse(src)
	case FormatHTML:
		return document.ParseHTML(src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// analyzeBlocks analyzes every sentence the checks need, filling the
// report's heading and sentence lists. It returns the unanalyzed-sentence
// warnings alongside the analyzed blocks.
func (l *Linter) analyzeBlocks(ctx context.Context, doc *document.Document, report *model.Report) ([]check.Block, []model.Warning, error) {
	var warnings []model.Warning

	analyzeAt := func(text string, line int) model.SentenceResult {
		result := l.analyzeSentence(text)
		if result.Degraded {
			warnings = append(warnings, unanalyzed(result, line))
		}
		return result
	}

	blocks := make([]check.Block, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		block := check.Block{Kind: b.Kind(), Line: b.Line()}

		switch v := b.(type) {
		case *document.Heading:
			heading := &model.Heading{
				SentenceResult: analyzeAt(firstSentence(v.Text), v.LineNo),
				Raw:            v.Text,
				Depth:          v.Depth,
				Line:           v.LineNo,
			}
			block.Heading = heading
		case *document.Paragraph:
			for _, s := range document.Sentences(v.Text) {
				block.Sentences = append(block.Sentences, analyzeAt(s, v.LineNo))
			}
			report.Sentences = append(report.Sentences, block.Sentences...)
		case *document.List:
			for i, item := range v.Items {
				lead := model.ListItemLead{
					SentenceResult: analyzeAt(firstSentence(item), v.LineNo),
					Position:       i,
				}
				block.Items = append(block.Items, lead)
				report.Sentences = append(report.Sentences, lead.SentenceResult)
			}
		case *document.Other:
		}

		blocks = append(blocks, block)
	}

	return blocks, warnings, nil
}

// firstSentence returns the first sentence after colon splitting, or the
// whole text when it has none
func firstSentence(text string) string {
	if sentences := document.Sentences(text); len(sentences) > 0 {
		return sentences[0]
	}
	return text
}

// AnalyzeText splits free text into sentences and analyzes each one
func (l *Linter) AnalyzeText(ctx context.Context, text string) ([]model.SentenceResult, error) {
	var results []model.SentenceResult
	for _, s := range document.Sentences(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, l.analyzeSentence(s))
	}
	return results, nil
}

// analyzeSentence consults the cache, then the analyzer. An error or a
// panic inside the analyzer yields a degraded result instead of failing
// the document.
func (l *Linter) analyzeSentence(text string) model.SentenceResult {
	if l.results != nil {
		if result, ok := l.results.Lookup(text); ok {
			return result
		}
	}

	result, err := l.safeAnalyze(text)
	if err != nil {
		return degraded(text, err)
	}

	if l.results != nil {
		// a failed cache write only costs a recomputation
		_ = l.results.Remember(text, result)
	}
	return result
}

func (l *Linter) safeAnalyze(text string) (result model.SentenceResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyze %q: panic: %v", text, r)
		}
	}()
	return l.analyzer.Analyze(text)
}

func degraded(text string, err error) model.SentenceResult {
	return model.SentenceResult{
		SentenceVariant: model.SentenceVariant{Text: text},
		Degraded:        true,
		Error:           err.Error(),
	}
}

func unanalyzed(result model.SentenceResult, line int) model.Warning {
	return model.Warning{
		Kind:     model.KindUnanalyzed,
		Severity: model.SeverityInfo,
		Message:  "Unanalyzed sentence",
		Example:  result.Text,
		Hint:     result.Error,
		Line:     line,
	}
}

// filter drops disabled warning kinds
func (l *Linter) filter(warnings []model.Warning) []model.Warning {
	kept := make([]model.Warning, 0, len(warnings))
	for _, w := range warnings {
		if l.checks.KindEnabled(w.Kind) {
			kept = append(kept, w)
		}
	}
	return kept
}
