// Package richtext defines the tree-shaped rich-text model produced by the
// resume editor.
//
// A tree is built from container nodes (Document, Paragraph) holding ordered
// children, and leaf Text nodes holding a literal string plus an ordered
// sequence of style marks. Only Text nodes carry marks.
//
// Both Node and Mark are closed sets: the unexported marker methods keep
// other packages from adding variants, so consumers can switch over them
// exhaustively and treat anything else as malformed.
package richtext

import (
	"errors"
	"strings"
)

// ErrMalformed indicates a tree whose shape does not match the model:
// an unknown node or mark kind, a container carrying text, a text node
// carrying children, or a mark missing a required attribute.
var ErrMalformed = errors.New("malformed document")

// Node is a rich-text tree node: *Document, *Paragraph or *Text.
type Node interface {
	node()
}

// Mark is a style annotation on a Text node: Bold, Italic, Underline or Link.
type Mark interface {
	mark()
}

// Document is the root container of a fragment.
type Document struct {
	Content []Node
}

// Paragraph is a block container of inline nodes.
type Paragraph struct {
	Content []Node
}

// Text is a leaf holding literal text and its marks in authored order.
type Text struct {
	Text  string
	Marks []Mark
}

func (*Document) node()  {}
func (*Paragraph) node() {}
func (*Text) node()      {}

// Bold renders text with strong emphasis.
type Bold struct{}

// Italic renders text obliquely.
type Italic struct{}

// Underline renders text underlined.
type Underline struct{}

// Link turns text into a hyperlink to Href.
type Link struct {
	Href string
}

func (Bold) mark()      {}
func (Italic) mark()    {}
func (Underline) mark() {}
func (Link) mark()      {}

// Plain returns a one-paragraph document holding s without marks.
// An empty string yields an empty document.
func Plain(s string) *Document {
	if s == "" {
		return &Document{}
	}
	return &Document{Content: []Node{
		&Paragraph{Content: []Node{&Text{Text: s}}},
	}}
}

// PlainText flattens a tree to its literal text, dropping marks.
// Unknown variants contribute nothing.
func PlainText(n Node) string {
	switch v := n.(type) {
	case *Document:
		return joinText(v.Content)
	case *Paragraph:
		return joinText(v.Content)
	case *Text:
		return v.Text
	default:
		return ""
	}
}

func joinText(children []Node) string {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(PlainText(c))
	}
	return b.String()
}
