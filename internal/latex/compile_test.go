package latex

import (
	"errors"
	"testing"

	"github.com/alnah/go-resume2pdf/richtext"
)

// unknownMark is a Mark from outside the closed set, reachable only through
// an embedded interface value.
type unknownMark struct{ richtext.Mark }

func text(s string, marks ...richtext.Mark) *richtext.Text {
	return &richtext.Text{Text: s, Marks: marks}
}

func doc(children ...richtext.Node) *richtext.Document {
	return &richtext.Document{Content: []richtext.Node{&richtext.Paragraph{Content: children}}}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node richtext.Node
		want string
	}{
		{
			name: "empty document",
			node: &richtext.Document{},
			want: "",
		},
		{
			name: "empty paragraph",
			node: &richtext.Document{Content: []richtext.Node{&richtext.Paragraph{}}},
			want: "",
		},
		{
			name: "plain text",
			node: doc(text("Software Engineer")),
			want: "Software Engineer",
		},
		{
			name: "nil marks equals empty marks",
			node: doc(&richtext.Text{Text: "x", Marks: []richtext.Mark{}}),
			want: "x",
		},
		{
			name: "children concatenate without separator",
			node: &richtext.Document{Content: []richtext.Node{
				&richtext.Paragraph{Content: []richtext.Node{text("a"), text("b")}},
				&richtext.Paragraph{Content: []richtext.Node{text("c")}},
			}},
			want: "abc",
		},
		{
			name: "bold",
			node: doc(text("Go", richtext.Bold{})),
			want: `\textbf{Go}`,
		},
		{
			name: "italic",
			node: doc(text("Go", richtext.Italic{})),
			want: `\textit{Go}`,
		},
		{
			name: "underline",
			node: doc(text("Go", richtext.Underline{})),
			want: `\underline{Go}`,
		},
		{
			name: "first mark is outermost",
			node: doc(text("Hi", richtext.Bold{}, richtext.Link{Href: "https://x"})),
			want: `\textbf{\href{https://x}{Hi}}`,
		},
		{
			name: "reverse order reverses nesting",
			node: doc(text("Hi", richtext.Link{Href: "https://x"}, richtext.Bold{})),
			want: `\href{https://x}{\textbf{Hi}}`,
		},
		{
			name: "bold italic",
			node: doc(text("Hi", richtext.Bold{}, richtext.Italic{})),
			want: `\textbf{\textit{Hi}}`,
		},
		{
			name: "duplicate marks are kept",
			node: doc(text("Hi", richtext.Bold{}, richtext.Bold{})),
			want: `\textbf{\textbf{Hi}}`,
		},
		{
			name: "special characters escaped",
			node: doc(text(`R&D 100% #1 $5 a_b {x} ~ ^ \`)),
			want: `R\&D 100\% \#1 \$5 a\_b \{x\} \textasciitilde{} \textasciicircum{} \textbackslash{}`,
		},
		{
			name: "escaped text inside marks",
			node: doc(text("C#", richtext.Italic{})),
			want: `\textit{C\#}`,
		},
		{
			name: "link url escaped",
			node: doc(text("site", richtext.Link{Href: "https://x.dev/a%20b#top"})),
			want: `\href{https://x.dev/a\%20b\#top}{site}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compile(tt.node)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	n := doc(
		text("Led ", richtext.Italic{}),
		text("team", richtext.Bold{}, richtext.Underline{}),
		text(" of 5 & more", richtext.Link{Href: "https://example.com"}),
	)

	first, err := Compile(n)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := Compile(n)
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if got != first {
			t.Fatalf("Compile() run %d = %q, want %q", i, got, first)
		}
	}
}

func TestCompile_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node richtext.Node
	}{
		{"nil node", nil},
		{"nil child", &richtext.Document{Content: []richtext.Node{nil}}},
		{"nil text pointer", doc((*richtext.Text)(nil))},
		{"unknown mark", doc(text("x", richtext.Bold{}, unknownMark{}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compile(tt.node)
			if !errors.Is(err, richtext.ErrMalformed) {
				t.Errorf("Compile() error = %v, want ErrMalformed", err)
			}
			if got != "" {
				t.Errorf("Compile() = %q, want no partial output", got)
			}
		})
	}
}

func TestEscapeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/alice", "https://github.com/alice"},
		{"https://x/~bob", `https://x/\%7Ebob`},
		{"https://x/?a=1&b=2", `https://x/?a=1\&b=2`},
		{`https://x/{y}`, `https://x/\%7By\%7D`},
	}

	for _, tt := range tests {
		if got := EscapeURL(tt.in); got != tt.want {
			t.Errorf("EscapeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
