package model

import "time"

// Report is the complete lint result for one document
type Report struct {
	Source    string    `json:"source"`     // File path or request name
	Format    string    `json:"format"`     // markdown, html
	CheckedAt time.Time `json:"checked_at"` // When the check ran

	Headings  []Heading        `json:"headings,omitempty"`
	Sentences []SentenceResult `json:"sentences,omitempty"` // Paragraph and list sentences, document order
	Warnings  []Warning        `json:"warnings"`

	Summary Summary `json:"summary"`
}

// Summary counts warnings by severity
type Summary struct {
	Sentences int `json:"sentences"`
	Degraded  int `json:"degraded"`
	Info      int `json:"info"`
	Warn      int `json:"warn"`
}

// Warning is one structured finding
type Warning struct {
	Kind     WarningKind  `json:"kind"`
	Severity Severity     `json:"severity"`
	Message  string       `json:"message"`           // Short title, e.g. "Passive tense"
	Example  string       `json:"example,omitempty"` // Offending text
	Group    []GroupEntry `json:"group,omitempty"`   // Sibling listing for divergence warnings
	Hint     string       `json:"hint,omitempty"`    // How to fix it
	Link     string       `json:"link,omitempty"`    // Style guide anchor
	Line     int          `json:"line,omitempty"`
}

// GroupEntry lists one sibling sentence in a divergence warning
type GroupEntry struct {
	Text  string `json:"text"`
	Mood  Mood   `json:"mood"`
	Tense Tense  `json:"tense"`
}

// WarningKind classifies the finding
type WarningKind string

const (
	KindDivergentHeadings  WarningKind = "divergent-headings"  // Sibling headings differ in mood or tense
	KindDivergentListItems WarningKind = "divergent-list-items" // List items differ in mood or tense
	KindColonHeading       WarningKind = "colon-heading"
	KindSubSubheading      WarningKind = "sub-subheading" // Heading deeper than H3
	KindTitleHeading       WarningKind = "title-heading"  // H1 after the first block
	KindImmediateHeadings  WarningKind = "immediate-sibling-headings"
	KindOrphanHeading      WarningKind = "orphan-heading" // H3 without a parent H2
	KindSingletonH2        WarningKind = "singleton-h2"
	KindSingletonH3        WarningKind = "singleton-h3"
	KindAnonymousPronoun   WarningKind = "anonymous-pronoun"
	KindPassive            WarningKind = "passive"
	KindGerund             WarningKind = "gerund"
	KindUnanalyzed         WarningKind = "unanalyzed-sentence"
)

// AllWarningKinds returns every kind in report order
func AllWarningKinds() []WarningKind {
	return []WarningKind{
		KindDivergentHeadings,
		KindDivergentListItems,
		KindColonHeading,
		KindSubSubheading,
		KindTitleHeading,
		KindImmediateHeadings,
		KindOrphanHeading,
		KindSingletonH2,
		KindSingletonH3,
		KindAnonymousPronoun,
		KindPassive,
		KindGerund,
		KindUnanalyzed,
	}
}

// Severity indicates the importance of the warning
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
)

// Rank orders severities, higher is more severe
func (s Severity) Rank() int {
	switch s {
	case SeverityWarn:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Summarize recounts the summary from the report's contents
func (r *Report) Summarize() {
	summary := Summary{}
	for _, h := range r.Headings {
		summary.Sentences++
		if h.Degraded {
			summary.Degraded++
		}
	}
	for _, s := range r.Sentences {
		summary.Sentences++
		if s.Degraded {
			summary.Degraded++
		}
	}
	for _, w := range r.Warnings {
		switch w.Severity {
		case SeverityWarn:
			summary.Warn++
		case SeverityInfo:
			summary.Info++
		}
	}
	r.Summary = summary
}

// HasSeverity reports whether any warning is at or above the given severity
func (r *Report) HasSeverity(min Severity) bool {
	for _, w := range r.Warnings {
		if w.Severity.Rank() >= min.Rank() {
			return true
		}
	}
	return false
}
