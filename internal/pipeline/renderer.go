package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/copycop/internal/model"
)

var (
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	infoStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	linkStyle   = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#5B8DEF"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50C878"))
)

// Renderer writes reports as styled text or JSON
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer; color false writes plain text
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}

// RenderText writes one block per warning:
//
//	file:line warn Passive tense:
//
//	    - The file is deleted.
//
//	  Consider rephrasing to active tense.
//
//	  https://...
func (r *Renderer) RenderText(w io.Writer, report *model.Report) error {
	var b strings.Builder

	for _, warning := range report.Warnings {
		location := report.Source
		if warning.Line > 0 {
			location = fmt.Sprintf("%s:%d", report.Source, warning.Line)
		}

		style := infoStyle
		if warning.Severity == model.SeverityWarn {
			style = warnStyle
		}

		fmt.Fprintf(&b, "%s %s %s:\n\n",
			r.paint(sourceStyle, location),
			r.paint(style, string(warning.Severity)),
			warning.Message)

		for _, line := range exampleLines(warning) {
			fmt.Fprintf(&b, "    - %s\n", line)
		}
		b.WriteString("\n")

		if warning.Hint != "" {
			fmt.Fprintf(&b, "  %s\n\n", r.paint(hintStyle, warning.Hint))
		}
		if warning.Link != "" {
			fmt.Fprintf(&b, "  %s\n\n", r.paint(linkStyle, warning.Link))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// exampleLines lists the sibling group of a divergence warning, or the
// example text split into lines
func exampleLines(warning model.Warning) []string {
	if len(warning.Group) > 0 {
		lines := make([]string, len(warning.Group))
		for i, entry := range warning.Group {
			lines[i] = fmt.Sprintf("%s (%s, %s)", entry.Text, entry.Mood, entry.Tense)
		}
		return lines
	}
	if warning.Example == "" {
		return nil
	}
	return strings.Split(warning.Example, "\n")
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteJSON writes the report as JSON to path, creating parent directories
func (r *Renderer) WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.RenderJSON(f, v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// RenderSummary writes one line per report and a total line
func (r *Renderer) RenderSummary(w io.Writer, reports []*model.Report) error {
	var b strings.Builder
	var total model.Summary

	for _, report := range reports {
		s := report.Summary
		total.Sentences += s.Sentences
		total.Degraded += s.Degraded
		total.Warn += s.Warn
		total.Info += s.Info

		fmt.Fprintf(&b, "%s  %s\n", r.status(s), r.paint(sourceStyle, report.Source))
	}

	fmt.Fprintf(&b, "\n%d file(s), %d sentence(s): %d warning(s), %d info",
		len(reports), total.Sentences, total.Warn, total.Info)
	if total.Degraded > 0 {
		fmt.Fprintf(&b, ", %d unanalyzed", total.Degraded)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) status(s model.Summary) string {
	switch {
	case s.Warn > 0:
		return r.paint(warnStyle, fmt.Sprintf("%3d warn", s.Warn))
	case s.Info > 0:
		return r.paint(infoStyle, fmt.Sprintf("%3d info", s.Info))
	default:
		return r.paint(okStyle, "     ok")
	}
}

// RenderSentence writes the classification of one sentence with its
// style flags
func (r *Renderer) RenderSentence(w io.Writer, result model.SentenceResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.paint(infoStyle, result.Text))
	if result.Degraded {
		fmt.Fprintf(&b, "  %s %s\n\n", r.paint(warnStyle, "unanalyzed:"), result.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "  %-10s %s\n", label, value)
	}

	row("mood", result.Mood.String())
	row("tense", result.Tense.String())
	row("person", string(result.Person))
	row("pronoun", string(result.Pronoun))
	row("flags", strings.Join(SentenceFlags(result), ", "))
	row("tags", result.Tags.String())
	row("reduced", result.Reduced.String())
	row("strength", fmt.Sprintf("%g", result.Strength))
	if n := len(result.Alternates); n > 0 {
		row("alternates", fmt.Sprintf("%d", n))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SentenceFlags names the style concerns a sentence raises
func SentenceFlags(result model.SentenceResult) []string {
	var flags []string
	if result.Gendered {
		flags = append(flags, "gendered language")
	}
	if result.Passive {
		flags = append(flags, "passive")
	}
	if result.Gerund {
		flags = append(flags, "gerund")
	}
	if result.Pronoun == model.PronounAnonymous {
		flags = append(flags, "potentially confusing pronoun")
	}
	if result.Person != model.PersonNone {
		flags = append(flags, string(result.Person)+" person")
	}
	return flags
}
