package richtext

import (
	"encoding/json"
	"fmt"
)

// Wire names used by the editor's JSON document format.
const (
	typeDoc       = "doc"
	typeParagraph = "paragraph"
	typeText      = "text"

	markBold      = "bold"
	markItalic    = "italic"
	markUnderline = "underline"
	markLink      = "link"
)

// Decode parses an editor JSON tree such as
//
//	{"type":"doc","content":[{"type":"paragraph","content":[
//	    {"type":"text","text":"Hi","marks":[{"type":"bold"}]}]}]}
//
// Any deviation from the model fails with ErrMalformed.
func Decode(data []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromValue(v)
}

// FromValue converts a generic JSON value (as produced by encoding/json into
// an any) into a Node.
func FromValue(v any) (Node, error) {
	return decodeNode(v, "$")
}

func decodeNode(v any, path string) (Node, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: node must be an object", ErrMalformed, path)
	}

	kind, _ := obj["type"].(string)
	switch kind {
	case typeDoc, typeParagraph:
		if _, has := obj["text"]; has {
			return nil, fmt.Errorf("%w: %s: %s node cannot carry text", ErrMalformed, path, kind)
		}
		if _, has := obj["marks"]; has {
			return nil, fmt.Errorf("%w: %s: %s node cannot carry marks", ErrMalformed, path, kind)
		}
		children, err := decodeChildren(obj["content"], path)
		if err != nil {
			return nil, err
		}
		if kind == typeDoc {
			return &Document{Content: children}, nil
		}
		return &Paragraph{Content: children}, nil

	case typeText:
		if _, has := obj["content"]; has {
			return nil, fmt.Errorf("%w: %s: text node cannot have children", ErrMalformed, path)
		}
		text, ok := obj["text"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s: text node missing text", ErrMalformed, path)
		}
		marks, err := decodeMarks(obj["marks"], path)
		if err != nil {
			return nil, err
		}
		return &Text{Text: text, Marks: marks}, nil

	default:
		return nil, fmt.Errorf("%w: %s: unknown node type %q", ErrMalformed, path, kind)
	}
}

// decodeChildren accepts a missing or null content key as no children;
// the editor omits it for empty paragraphs.
func decodeChildren(v any, path string) ([]Node, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.content: must be an array", ErrMalformed, path)
	}
	children := make([]Node, 0, len(list))
	for i, item := range list {
		child, err := decodeNode(item, fmt.Sprintf("%s.content[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func decodeMarks(v any, path string) ([]Mark, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.marks: must be an array", ErrMalformed, path)
	}
	marks := make([]Mark, 0, len(list))
	for i, item := range list {
		m, err := decodeMark(item, fmt.Sprintf("%s.marks[%d]", path, i))
		if err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, nil
}

func decodeMark(v any, path string) (Mark, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: mark must be an object", ErrMalformed, path)
	}

	kind, _ := obj["type"].(string)
	switch kind {
	case markBold:
		return Bold{}, nil
	case markItalic:
		return Italic{}, nil
	case markUnderline:
		return Underline{}, nil
	case markLink:
		attrs, _ := obj["attrs"].(map[string]any)
		href, ok := attrs["href"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s: link mark missing attrs.href", ErrMalformed, path)
		}
		return Link{Href: href}, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown mark type %q", ErrMalformed, path, kind)
	}
}
