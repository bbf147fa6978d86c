package document

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// Parse reads a Markdown source into top-level blocks
func Parse(src []byte) (*Document, error) {
	root := markdown.Parser().Parse(text.NewReader(src))

	doc := &Document{}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		line := lineOf(n, src)

		switch node := n.(type) {
		case *ast.Heading:
			doc.Blocks = append(doc.Blocks, &Heading{
				Depth:  node.Level,
				Text:   inlineText(node, src),
				LineNo: line,
			})
		case *ast.Paragraph:
			doc.Blocks = append(doc.Blocks, &Paragraph{
				Text:   inlineText(node, src),
				LineNo: line,
			})
		case *ast.List:
			list := &List{Ordered: node.IsOrdered(), LineNo: line}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				list.Items = append(list.Items, itemText(item, src))
			}
			doc.Blocks = append(doc.Blocks, list)
		default:
			doc.Blocks = append(doc.Blocks, &Other{Name: n.Kind().String(), LineNo: line})
		}
	}

	return doc, nil
}

// itemText returns the text of a list item's first paragraph
func itemText(item ast.Node, src []byte) string {
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case ast.KindParagraph, ast.KindTextBlock:
			return inlineText(c, src)
		}
	}
	return ""
}

// inlineText flattens inline markup: emphasis and code spans keep their
// text, links keep their label, images keep their alt text, raw HTML is
// dropped
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			buf.Write(v.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(src))
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(buf.String()), " ")
}

// lineOf returns the 1-based source line of the first text segment under n
func lineOf(n ast.Node, src []byte) int {
	offset := -1

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node.Type() == ast.TypeBlock && node.Lines().Len() > 0 {
			offset = node.Lines().At(0).Start
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if offset < 0 {
		return 0
	}
	return bytes.Count(src[:offset], []byte("\n")) + 1
}
