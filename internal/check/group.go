// Package check turns analyzed sentences and document structure into
// warnings: divergent voice or tense among siblings, heading layout, and
// per-sentence style findings.
package check

import (
	"fmt"

	"github.com/ppiankov/copycop/internal/model"
)

const (
	linkBase     = "https://npmjs.com/package/copycop"
	linkParallel = linkBase + "#correlate-parallel-ideas"
	linkSection  = linkBase + "#introduce-each-section"
	linkMultiple = linkBase + "#only-use-headings-in-multiples"
	linkSubject  = linkBase + "#define-a-subject"
)

// CheckGroup compares sibling sentences. Voice is uniform when every mood
// equals the first; tense is uniform when every tense equals the first,
// and is not checked at all when any tense is unresolved. Either failure
// yields one warning listing every sibling. Degraded sentences are left
// out of the comparison.
func CheckGroup(kind model.WarningKind, sentences []model.SentenceResult) []model.Warning {
	var group []model.SentenceResult
	for _, s := range sentences {
		if !s.Degraded {
			group = append(group, s)
		}
	}
	if len(group) < 2 {
		return nil
	}

	if sameVoice(group) && sameTense(group) {
		return nil
	}

	entries := make([]model.GroupEntry, len(group))
	for i, s := range group {
		entries[i] = model.GroupEntry{Text: s.Text, Mood: s.Mood, Tense: s.Tense}
	}

	return []model.Warning{{
		Kind:     kind,
		Severity: model.SeverityWarn,
		Message:  fmt.Sprintf("Divergent %s", groupNoun(kind)),
		Group:    entries,
		Hint:     "Items should all follow the same grammatical tense and voice.",
		Link:     linkParallel,
	}}
}

func sameVoice(group []model.SentenceResult) bool {
	for _, s := range group[1:] {
		if s.Mood != group[0].Mood {
			return false
		}
	}
	return true
}

func sameTense(group []model.SentenceResult) bool {
	for _, s := range group {
		if s.Tense == model.TenseUnresolved {
			return true
		}
	}
	for _, s := range group[1:] {
		if s.Tense != group[0].Tense {
			return false
		}
	}
	return true
}

func groupNoun(kind model.WarningKind) string {
	if kind == model.KindDivergentListItems {
		return "list items"
	}
	return "headings"
}
