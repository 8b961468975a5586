// Package resume holds the read-only document snapshot rendered by the
// converter: ordered sections, their items and the items' bullets, each
// carrying an enabled flag and independent rich-text fragments.
package resume

import "github.com/alnah/go-resume2pdf/richtext"

// SectionKind distinguishes tree-compiled sections from raw markup ones.
type SectionKind int

const (
	// KindContent sections compile a heading fragment and hold items.
	KindContent SectionKind = iota
	// KindRaw sections insert their Raw markup verbatim.
	KindRaw
)

// String returns the wire name of the kind.
func (k SectionKind) String() string {
	if k == KindRaw {
		return wireTypeRaw
	}
	return wireTypeSection
}

// Document is an ordered sequence of sections.
type Document struct {
	Sections []Section
}

// Section is either a content section (Heading + Items) or a raw section.
// Disabled sections are skipped at render time, not deleted.
type Section struct {
	ID      string
	Kind    SectionKind
	Enabled bool
	Heading richtext.Node
	Raw     string
	Items   []Item
}

// Item is one entry of a content section, such as a job or a degree.
type Item struct {
	ID           string
	Enabled      bool
	Title        richtext.Node
	Organization richtext.Node
	StartDate    string
	EndDate      string
	Location     string
	Bullets      []Bullet
}

// Bullet is one line of detail under an item.
type Bullet struct {
	ID      string
	Enabled bool
	Body    richtext.Node
}

// DateRange returns "<start>---<end>" when both dates are set, else "".
func (it Item) DateRange() string {
	if it.StartDate == "" || it.EndDate == "" {
		return ""
	}
	return it.StartDate + "---" + it.EndDate
}
