package document

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are the elements that become blocks, so the only ones whose
// source line is needed
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "ul": true, "ol": true,
	"pre": true, "table": true, "blockquote": true, "hr": true, "figure": true,
}

// ParseHTML reads an HTML page into top-level blocks: h1-h6, p, ul/ol.
// Containers such as body, main, article and div are descended into.
func ParseHTML(src []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	lines := blockLines(root, src)
	doc := &Document{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head", "nav", "footer":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				doc.Blocks = append(doc.Blocks, &Heading{
					Depth:  int(n.Data[1] - '0'),
					Text:   visibleText(n, false),
					LineNo: lines[n],
				})
				return
			case "p":
				doc.Blocks = append(doc.Blocks, &Paragraph{Text: visibleText(n, false), LineNo: lines[n]})
				return
			case "ul", "ol":
				list := &List{Ordered: n.Data == "ol", LineNo: lines[n]}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && c.Data == "li" {
						list.Items = append(list.Items, itemHTMLText(c))
					}
				}
				doc.Blocks = append(doc.Blocks, list)
				return
			case "pre", "table", "blockquote", "hr", "figure":
				doc.Blocks = append(doc.Blocks, &Other{Name: n.Data, LineNo: lines[n]})
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)
	return doc, nil
}

// blockLines maps block elements of the parsed tree to the 1-based line
// of their start tag. The tokenizer's start tags of each name are paired,
// in order, with the tree's elements of that name.
func blockLines(root *html.Node, src []byte) map[*html.Node]int {
	starts := make(map[string][]int)

	z := html.NewTokenizer(bytes.NewReader(src))
	line := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := z.Raw()
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, _ := z.TagName()
			if tag := string(name); blockTags[tag] {
				starts[tag] = append(starts[tag], line)
			}
		}
		line += bytes.Count(raw, []byte("\n"))
	}

	lines := make(map[*html.Node]int)
	seen := make(map[string]int)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && blockTags[n.Data] {
			if i := seen[n.Data]; i < len(starts[n.Data]) {
				lines[n] = starts[n.Data][i]
			}
			seen[n.Data]++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return lines
}

// itemHTMLText returns an item's own text, or its first paragraph when it
// has one
func itemHTMLText(li *html.Node) string {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "p" {
			return visibleText(c, false)
		}
	}
	return visibleText(li, true)
}

// visibleText extracts text nodes, skipping scripts/styles and, when
// skipLists is set, nested lists
func visibleText(n *html.Node, skipLists bool) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "ul", "ol":
				if skipLists {
					return
				}
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}
