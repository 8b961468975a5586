package assemble

import (
	"fmt"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/resume"
)

// Assembler holds one template, loaded once and only ever read.
type Assembler struct {
	name     string
	template string
}

// New loads the named template from loader. Load failures wrap
// ErrTemplateMissing; a template without the placeholder is rejected here
// with ErrPlaceholderMissing rather than on the first request.
func New(loader assets.TemplateLoader, name string) (*Assembler, error) {
	tmpl, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateMissing, err)
	}
	if !strings.Contains(tmpl, assets.Placeholder) {
		return nil, fmt.Errorf("%w: template %q", ErrPlaceholderMissing, name)
	}
	return &Assembler{name: name, template: tmpl}, nil
}

// Assemble renders doc into the loaded template.
func (a *Assembler) Assemble(doc *resume.Document) (string, error) {
	if doc == nil {
		return Assemble(nil, a.template)
	}
	return Assemble(doc.Sections, a.template)
}

// TemplateName returns the name the template was loaded under.
func (a *Assembler) TemplateName() string {
	return a.name
}
