// Package latex compiles rich-text trees into LaTeX markup.
//
// Compilation is pure and deterministic: the same tree always yields the
// same bytes. Marks are applied as nested wrappers in authored order, the
// first mark of a text node being the outermost wrapper.
package latex

import (
	"fmt"
	"strings"

	"github.com/alnah/go-resume2pdf/richtext"
)

// Compile renders n as LaTeX. Any unrecognised node or mark variant fails
// with richtext.ErrMalformed and no partial output.
func Compile(n richtext.Node) (string, error) {
	var b strings.Builder
	if err := compileNode(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

func compileNode(b *strings.Builder, n richtext.Node) error {
	switch v := n.(type) {
	case *richtext.Document:
		if v == nil {
			return fmt.Errorf("%w: nil document node", richtext.ErrMalformed)
		}
		return compileChildren(b, v.Content)
	case *richtext.Paragraph:
		if v == nil {
			return fmt.Errorf("%w: nil paragraph node", richtext.ErrMalformed)
		}
		return compileChildren(b, v.Content)
	case *richtext.Text:
		if v == nil {
			return fmt.Errorf("%w: nil text node", richtext.ErrMalformed)
		}
		out, err := styleText(Escape(v.Text), v.Marks)
		if err != nil {
			return err
		}
		b.WriteString(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown node %T", richtext.ErrMalformed, n)
	}
}

func compileChildren(b *strings.Builder, children []richtext.Node) error {
	for _, c := range children {
		if err := compileNode(b, c); err != nil {
			return err
		}
	}
	return nil
}

// styleText folds marks right to left: the last mark wraps the text first
// and each preceding mark wraps the result.
func styleText(text string, marks []richtext.Mark) (string, error) {
	out := text
	for i := len(marks) - 1; i >= 0; i-- {
		wrapped, err := wrap(marks[i], out)
		if err != nil {
			return "", err
		}
		out = wrapped
	}
	return out, nil
}

func wrap(m richtext.Mark, inner string) (string, error) {
	switch v := m.(type) {
	case richtext.Bold:
		return `\textbf{` + inner + `}`, nil
	case richtext.Italic:
		return `\textit{` + inner + `}`, nil
	case richtext.Underline:
		return `\underline{` + inner + `}`, nil
	case richtext.Link:
		return `\href{` + EscapeURL(v.Href) + `}{` + inner + `}`, nil
	default:
		return "", fmt.Errorf("%w: unknown mark %T", richtext.ErrMalformed, m)
	}
}
