package check

import (
	"strings"

	"github.com/ppiankov/copycop/internal/document"
	"github.com/ppiankov/copycop/internal/model"
)

// Block is one analyzed document block. Which field is set follows Kind:
// Heading for headings, Sentences for paragraphs, Items for lists.
type Block struct {
	Kind      document.BlockKind
	Line      int
	Heading   *model.Heading
	Sentences []model.SentenceResult
	Items     []model.ListItemLead
}

// CheckDocument runs every structural and per-sentence check over the
// analyzed blocks of one document. Heading positions and section groups
// are assigned as a side effect.
func CheckDocument(blocks []Block) []model.Warning {
	var headings []*model.Heading
	for _, b := range blocks {
		if b.Kind == document.KindHeading && b.Heading != nil {
			b.Heading.Position = len(headings)
			headings = append(headings, b.Heading)
		}
	}

	var warnings []model.Warning
	for i, b := range blocks {
		if b.Kind == document.KindHeading && b.Heading != nil {
			warnings = append(warnings, checkHeading(blocks, i)...)
		}
	}

	warnings = append(warnings, checkSections(headings)...)

	for _, b := range blocks {
		switch b.Kind {
		case document.KindParagraph:
			warnings = append(warnings, checkParagraph(b)...)
		case document.KindList:
			warnings = append(warnings, checkList(b)...)
		}
	}

	return warnings
}

// checkHeading applies the layout rules to the heading at blocks[i]
func checkHeading(blocks []Block, i int) []model.Warning {
	h := blocks[i].Heading
	line := blocks[i].Line

	var warnings []model.Warning
	if strings.HasSuffix(strings.TrimSpace(h.Raw), ":") {
		warnings = append(warnings, single(model.KindColonHeading, "Colon heading", h.Raw,
			"Headings work without colons.", "", line))
	}
	if h.Depth > 3 {
		warnings = append(warnings, single(model.KindSubSubheading, "Sub-subheading", h.Raw,
			"Only use H2s and H3s.", "", line))
	}
	if h.Depth == 1 && i > 0 {
		warnings = append(warnings, single(model.KindTitleHeading, "Title heading", h.Raw,
			"Only use H2s and H3s.", "", line))
	}

	if h.Depth != 3 {
		return warnings
	}

	if i > 0 && blocks[i-1].Kind == document.KindHeading && blocks[i-1].Heading != nil {
		prev := blocks[i-1].Heading
		warnings = append(warnings, model.Warning{
			Kind:     model.KindImmediateHeadings,
			Severity: model.SeverityWarn,
			Message:  "Immediate sibling headings",
			Example:  prev.Raw + "\n" + h.Raw,
			Hint:     "A heading should follow text, not another heading.",
			Link:     linkSection,
			Line:     line,
		})
	}

	if !hasParent(blocks[:i]) {
		warnings = append(warnings, single(model.KindOrphanHeading, "Orphan heading", h.Raw,
			"Every H3 should have a parent H2.", "", line))
	}

	return warnings
}

func hasParent(before []Block) bool {
	for _, b := range before {
		if b.Kind == document.KindHeading && b.Heading != nil && b.Heading.Depth == 2 {
			return true
		}
	}
	return false
}

// checkSections checks the H2 group and every H3 section for singletons
// and divergence
func checkSections(headings []*model.Heading) []model.Warning {
	var warnings []model.Warning

	var h2s []*model.Heading
	for _, h := range headings {
		if h.Depth == 2 {
			h2s = append(h2s, h)
		}
	}
	if len(h2s) == 1 {
		warnings = append(warnings, single(model.KindSingletonH2, "Singleton H2", h2s[0].Raw,
			"If a section has headings, it should have more than one.", linkMultiple, h2s[0].Line))
	}
	warnings = append(warnings, CheckGroup(model.KindDivergentHeadings, results(h2s))...)

	for _, section := range GroupSections(headings) {
		if len(section) == 1 {
			warnings = append(warnings, single(model.KindSingletonH3, "Singleton H3", section[0].Raw,
				"If a section has subheadings, it should have more than one.", linkMultiple, section[0].Line))
		}
		warnings = append(warnings, CheckGroup(model.KindDivergentHeadings, results(section))...)
	}

	return warnings
}

// checkParagraph flags an anonymous pronoun in the opening sentence, then
// passive and gerund sentences
func checkParagraph(b Block) []model.Warning {
	if len(b.Sentences) == 0 {
		return nil
	}

	var warnings []model.Warning
	if first := b.Sentences[0]; first.Pronoun == model.PronounAnonymous {
		warnings = append(warnings, single(model.KindAnonymousPronoun, "Anonymous pronoun", first.Text,
			"It looks like there is a pronoun near the beginning of this paragraph. Use explicit nouns in the introduction to a paragraph.",
			"", b.Line))
	}

	for _, s := range b.Sentences {
		switch s.Mood {
		case model.MoodPassive:
			w := single(model.KindPassive, "Passive tense", s.Text,
				"Consider rephrasing to active tense.", linkSubject, b.Line)
			w.Severity = model.SeverityInfo
			warnings = append(warnings, w)
		case model.MoodGerund:
			w := single(model.KindGerund, "Gerund", s.Text, "Avoid gerunds.", "", b.Line)
			w.Severity = model.SeverityInfo
			warnings = append(warnings, w)
		}
	}

	return warnings
}

// checkList compares the lead sentences of a list's items
func checkList(b Block) []model.Warning {
	leads := make([]model.SentenceResult, len(b.Items))
	for i, item := range b.Items {
		leads[i] = item.SentenceResult
	}

	warnings := CheckGroup(model.KindDivergentListItems, leads)
	for i := range warnings {
		warnings[i].Line = b.Line
	}
	return warnings
}

func results(headings []*model.Heading) []model.SentenceResult {
	out := make([]model.SentenceResult, len(headings))
	for i, h := range headings {
		out[i] = h.SentenceResult
	}
	return out
}

// single builds a warn-level finding about one piece of text
func single(kind model.WarningKind, message, example, hint, link string, line int) model.Warning {
	return model.Warning{
		Kind:     kind,
		Severity: model.SeverityWarn,
		Message:  message,
		Example:  example,
		Hint:     hint,
		Link:     link,
		Line:     line,
	}
}
