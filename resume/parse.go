package resume

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/alnah/go-resume2pdf/internal/mdimport"
	"github.com/alnah/go-resume2pdf/internal/yamlutil"
	"github.com/alnah/go-resume2pdf/richtext"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Section type names on the wire.
const (
	wireTypeSection = "Section"
	wireTypeRaw     = "LaTeX"
)

//go:embed schema.json
var schemaSource string

var payloadSchema = jsonschema.MustCompileString("resume.schema.json", schemaSource)

// envelope matches the object forms of the editor payload.
type envelope struct {
	SectionsJSON json.RawMessage `json:"sections_json"`
	Sections     json.RawMessage `json:"sections"`
}

type wireBullet struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Status *bool  `json:"status"`
	JSON   any    `json:"json"`
}

type wireItem struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Organization     string       `json:"organization"`
	StartDate        string       `json:"startDate"`
	EndDate          string       `json:"endDate"`
	Location         string       `json:"location"`
	Status           *bool        `json:"status"`
	TitleJSON        any          `json:"titleJSON"`
	OrganizationJSON any          `json:"organizationJSON"`
	BulletPoints     []wireBullet `json:"bulletPoints"`
}

type wireSection struct {
	ID      string     `json:"id"`
	Type    string     `json:"type"`
	Title   string     `json:"title"`
	Content *string    `json:"content"`
	Status  *bool      `json:"status"`
	JSON    any        `json:"json"`
	Items   []wireItem `json:"items"`
}

// Parse decodes an editor payload: a bare array of sections, or an object
// holding it under "sections_json" or "sections". The payload is checked
// against the embedded schema first; every shape problem is reported as
// richtext.ErrMalformed.
func Parse(data []byte) (*Document, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", richtext.ErrMalformed, err)
	}
	if err := payloadSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", richtext.ErrMalformed, err)
	}

	list := json.RawMessage(data)
	if _, isObject := generic.(map[string]any); isObject {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", richtext.ErrMalformed, err)
		}
		list = env.Sections
		if len(env.SectionsJSON) > 0 && string(env.SectionsJSON) != "null" {
			list = env.SectionsJSON
		}
	}

	var sections []wireSection
	if err := json.Unmarshal(list, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", richtext.ErrMalformed, err)
	}
	return toDocument(sections)
}

// ParseYAML converts a YAML resume to JSON and parses it like Parse.
func ParseYAML(data []byte) (*Document, error) {
	jsonData, err := yamlutil.ToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", richtext.ErrMalformed, err)
	}
	return Parse(jsonData)
}

func toDocument(sections []wireSection) (*Document, error) {
	doc := &Document{Sections: make([]Section, 0, len(sections))}
	for i, ws := range sections {
		s, err := toSection(ws)
		if err != nil {
			return nil, fmt.Errorf("sections[%d]: %w", i, err)
		}
		doc.Sections = append(doc.Sections, s)
	}
	return doc, nil
}

func toSection(ws wireSection) (Section, error) {
	s := Section{
		ID:      ws.ID,
		Enabled: enabled(ws.Status),
	}

	if ws.Type == wireTypeRaw {
		s.Kind = KindRaw
		s.Raw = rawContent(ws)
		return s, nil
	}

	heading, err := fragment(ws.JSON, ws.Title)
	if err != nil {
		return Section{}, fmt.Errorf("json: %w", err)
	}
	s.Heading = heading

	s.Items = make([]Item, 0, len(ws.Items))
	for i, wi := range ws.Items {
		it, err := toItem(wi)
		if err != nil {
			return Section{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		s.Items = append(s.Items, it)
	}
	return s, nil
}

// rawContent prefers the editor's content field, then a string stored in
// json, then the title.
func rawContent(ws wireSection) string {
	if ws.Content != nil {
		return *ws.Content
	}
	if s, ok := ws.JSON.(string); ok {
		return s
	}
	return ws.Title
}

func toItem(wi wireItem) (Item, error) {
	title, err := fragment(wi.TitleJSON, wi.Title)
	if err != nil {
		return Item{}, fmt.Errorf("titleJSON: %w", err)
	}
	org, err := fragment(wi.OrganizationJSON, wi.Organization)
	if err != nil {
		return Item{}, fmt.Errorf("organizationJSON: %w", err)
	}

	it := Item{
		ID:           wi.ID,
		Enabled:      enabled(wi.Status),
		Title:        title,
		Organization: org,
		StartDate:    wi.StartDate,
		EndDate:      wi.EndDate,
		Location:     wi.Location,
		Bullets:      make([]Bullet, 0, len(wi.BulletPoints)),
	}

	for i, wb := range wi.BulletPoints {
		body, err := fragment(wb.JSON, wb.Text)
		if err != nil {
			return Item{}, fmt.Errorf("bulletPoints[%d].json: %w", i, err)
		}
		it.Bullets = append(it.Bullets, Bullet{
			ID:      wb.ID,
			Enabled: enabled(wb.Status),
			Body:    body,
		})
	}
	return it, nil
}

// fragment resolves a rich-text field: an editor tree, an inline Markdown
// string, or the plain-text fallback when the tree is absent.
func fragment(v any, fallback string) (richtext.Node, error) {
	switch f := v.(type) {
	case nil:
		return richtext.Plain(fallback), nil
	case string:
		return mdimport.Parse(f), nil
	default:
		return richtext.FromValue(f)
	}
}

// enabled treats a missing status as enabled.
func enabled(status *bool) bool {
	return status == nil || *status
}
