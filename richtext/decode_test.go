package richtext

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("nested doc with marks", func(t *testing.T) {
		t.Parallel()

		input := `{"type":"doc","content":[{"type":"paragraph","content":[
			{"type":"text","text":"Hi","marks":[{"type":"bold"},{"type":"link","attrs":{"href":"https://x"}}]},
			{"type":"text","text":" there"}]}]}`

		n, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		doc, ok := n.(*Document)
		if !ok {
			t.Fatalf("Decode() = %T, want *Document", n)
		}
		if len(doc.Content) != 1 {
			t.Fatalf("len(doc.Content) = %d, want 1", len(doc.Content))
		}
		para, ok := doc.Content[0].(*Paragraph)
		if !ok {
			t.Fatalf("doc.Content[0] = %T, want *Paragraph", doc.Content[0])
		}
		if len(para.Content) != 2 {
			t.Fatalf("len(para.Content) = %d, want 2", len(para.Content))
		}
		first := para.Content[0].(*Text)
		if first.Text != "Hi" {
			t.Errorf("first.Text = %q, want %q", first.Text, "Hi")
		}
		if len(first.Marks) != 2 {
			t.Fatalf("len(first.Marks) = %d, want 2", len(first.Marks))
		}
		if _, ok := first.Marks[0].(Bold); !ok {
			t.Errorf("first.Marks[0] = %T, want Bold", first.Marks[0])
		}
		if link, ok := first.Marks[1].(Link); !ok || link.Href != "https://x" {
			t.Errorf("first.Marks[1] = %#v, want Link{https://x}", first.Marks[1])
		}
		second := para.Content[1].(*Text)
		if len(second.Marks) != 0 {
			t.Errorf("second.Marks = %v, want none", second.Marks)
		}
	})

	t.Run("empty paragraph without content key", func(t *testing.T) {
		t.Parallel()

		n, err := Decode([]byte(`{"type":"doc","content":[{"type":"paragraph"}]}`))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		para := n.(*Document).Content[0].(*Paragraph)
		if len(para.Content) != 0 {
			t.Errorf("len(para.Content) = %d, want 0", len(para.Content))
		}
	})
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"invalid json", `{"type":`},
		{"not an object", `"hello"`},
		{"unknown node type", `{"type":"heading","content":[]}`},
		{"missing node type", `{"content":[]}`},
		{"container with text", `{"type":"paragraph","text":"x"}`},
		{"container with marks", `{"type":"doc","marks":[]}`},
		{"content not array", `{"type":"doc","content":{}}`},
		{"text with children", `{"type":"text","text":"x","content":[]}`},
		{"text missing text", `{"type":"text"}`},
		{"text not string", `{"type":"text","text":5}`},
		{"unknown mark", `{"type":"text","text":"x","marks":[{"type":"strike"}]}`},
		{"marks not array", `{"type":"text","text":"x","marks":"bold"}`},
		{"link without href", `{"type":"text","text":"x","marks":[{"type":"link"}]}`},
		{"deep unknown mark", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"x","marks":[{"type":"code"}]}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, err := Decode([]byte(tt.input))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%s) error = %v, want ErrMalformed", tt.input, err)
			}
			if n != nil {
				t.Errorf("Decode(%s) returned partial node %#v", tt.input, n)
			}
		})
	}
}

func TestPlain(t *testing.T) {
	t.Parallel()

	if got := PlainText(Plain("New Item")); got != "New Item" {
		t.Errorf("PlainText(Plain()) = %q, want %q", got, "New Item")
	}
	if doc := Plain(""); len(doc.Content) != 0 {
		t.Errorf("Plain(\"\") has %d children, want 0", len(doc.Content))
	}
}
