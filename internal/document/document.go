// Package document reads Markdown and HTML sources into a flat list of
// blocks and splits block text into sentences.
package document

// BlockKind names one of the closed set of block types
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindList      BlockKind = "list"
	KindOther     BlockKind = "other"
)

// Block is a top-level document block: *Heading, *Paragraph, *List or *Other
type Block interface {
	Kind() BlockKind
	Line() int
	block()
}

// Heading is a section heading; Text has inline markup stripped
type Heading struct {
	Depth  int
	Text   string
	LineNo int
}

// Paragraph is a run of prose
type Paragraph struct {
	Text   string
	LineNo int
}

// List holds the text of each item's first paragraph
type List struct {
	Items   []string
	Ordered bool
	LineNo  int
}

// Other is any block the checks ignore: code, quotes, tables, rules
type Other struct {
	Name   string
	LineNo int
}

func (*Heading) Kind() BlockKind   { return KindHeading }
func (*Paragraph) Kind() BlockKind { return KindParagraph }
func (*List) Kind() BlockKind      { return KindList }
func (*Other) Kind() BlockKind     { return KindOther }

func (h *Heading) Line() int   { return h.LineNo }
func (p *Paragraph) Line() int { return p.LineNo }
func (l *List) Line() int      { return l.LineNo }
func (o *Other) Line() int     { return o.LineNo }

func (*Heading) block()   {}
func (*Paragraph) block() {}
func (*List) block()      {}
func (*Other) block()     {}

// Document is the ordered block list of one source
type Document struct {
	Blocks []Block
}

// Headings returns the heading blocks in document order
func (d *Document) Headings() []*Heading {
	var headings []*Heading
	for _, b := range d.Blocks {
		if h, ok := b.(*Heading); ok {
			headings = append(headings, h)
		}
	}
	return headings
}
