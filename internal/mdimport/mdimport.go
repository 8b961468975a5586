// Package mdimport reads inline Markdown into a rich-text tree, so resume
// fragments can be authored by hand in YAML or JSON instead of in the editor.
//
// Supported styling: **strong** (bold), *emphasis* (italic), [links](url)
// and bare URLs. Nesting order becomes mark order, outermost first. Block
// structure is flattened into paragraphs; code renders as plain text.
package mdimport

import (
	"slices"
	"strings"

	"github.com/alnah/go-resume2pdf/richtext"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// Parse converts Markdown source into a rich-text document.
func Parse(src string) *richtext.Document {
	source := []byte(src)
	root := markdown.Parser().Parse(text.NewReader(source))

	b := &builder{src: source}
	return &richtext.Document{Content: b.blocks(root)}
}

type builder struct {
	src []byte
}

func (b *builder) blocks(n ast.Node) []richtext.Node {
	var out []richtext.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			out = append(out, &richtext.Paragraph{Content: b.inlines(nil, c, nil)})
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			out = append(out, &richtext.Paragraph{Content: []richtext.Node{
				&richtext.Text{Text: b.lines(c)},
			}})
		case *ast.ThematicBreak, *ast.HTMLBlock:
			// no textual content
		default:
			// lists, list items, blockquotes
			out = append(out, b.blocks(c)...)
		}
	}
	return out
}

// inlines appends the inline content of n to out, merging spans with equal
// marks across nested inline containers.
func (b *builder) inlines(out []richtext.Node, n ast.Node, marks []richtext.Mark) []richtext.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			s := string(v.Segment.Value(b.src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				s += " "
			}
			out = appendText(out, s, marks)
		case *ast.String:
			out = appendText(out, string(v.Value), marks)
		case *ast.Emphasis:
			var m richtext.Mark = richtext.Italic{}
			if v.Level >= 2 {
				m = richtext.Bold{}
			}
			out = b.inlines(out, v, with(marks, m))
		case *ast.Link:
			out = b.inlines(out, v, with(marks, richtext.Link{Href: string(v.Destination)}))
		case *ast.AutoLink:
			link := richtext.Link{Href: string(v.URL(b.src))}
			out = appendText(out, string(v.Label(b.src)), with(marks, link))
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				out = appendText(out, string(seg.Value(b.src)), marks)
			}
		default:
			// code spans, images (alt text)
			out = b.inlines(out, c, marks)
		}
	}
	return out
}

func (b *builder) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.src))
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// appendText merges s into the previous text node when both carry the same
// marks.
func appendText(out []richtext.Node, s string, marks []richtext.Mark) []richtext.Node {
	if s == "" {
		return out
	}
	if n := len(out); n > 0 {
		if prev, ok := out[n-1].(*richtext.Text); ok && slices.Equal(prev.Marks, marks) {
			prev.Text += s
			return out
		}
	}
	return append(out, &richtext.Text{Text: s, Marks: slices.Clone(marks)})
}

func with(marks []richtext.Mark, m richtext.Mark) []richtext.Mark {
	next := make([]richtext.Mark, 0, len(marks)+1)
	next = append(next, marks...)
	return append(next, m)
}
