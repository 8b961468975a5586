// Package assemble composes compiled resume fragments into a complete LaTeX
// document by substituting them into a template's content placeholder.
package assemble

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/latex"
	"github.com/alnah/go-resume2pdf/resume"
	"github.com/alnah/go-resume2pdf/richtext"
)

// Sentinel errors for assembly.
var (
	// ErrTemplateMissing indicates the template resource could not be loaded.
	ErrTemplateMissing = errors.New("template missing")

	// ErrPlaceholderMissing indicates the template has no content placeholder.
	ErrPlaceholderMissing = errors.New("template placeholder missing")
)

// Structural macros defined by the resume template.
const (
	subHeadingListStart = `\resumeSubHeadingListStart`
	subHeadingListEnd   = `\resumeSubHeadingListEnd`
	itemListStart       = `\resumeItemListStart`
	itemListEnd         = `\resumeItemListEnd`
)

// Assemble renders the enabled sections and substitutes them into tmpl.
// Disabled sections, items and bullets contribute nothing, and list markers
// are only emitted around at least one enabled child. The template string is
// never modified.
func Assemble(sections []resume.Section, tmpl string) (string, error) {
	if !strings.Contains(tmpl, assets.Placeholder) {
		return "", ErrPlaceholderMissing
	}
	content, err := Content(sections)
	if err != nil {
		return "", err
	}
	return strings.Replace(tmpl, assets.Placeholder, content, 1), nil
}

// Content renders the enabled sections without a surrounding template.
func Content(sections []resume.Section) (string, error) {
	var sb strings.Builder
	for i, s := range sections {
		if !s.Enabled {
			continue
		}
		if err := writeSection(&sb, s); err != nil {
			return "", fmt.Errorf("sections[%d]: %w", i, err)
		}
	}
	return sb.String(), nil
}

func writeSection(sb *strings.Builder, s resume.Section) error {
	if s.Kind == resume.KindRaw {
		sb.WriteString(s.Raw)
		// A trailing comment in raw markup must not swallow the next section.
		if s.Raw != "" && !strings.HasSuffix(s.Raw, "\n") {
			sb.WriteByte('\n')
		}
		return nil
	}

	heading, err := compile(s.Heading)
	if err != nil {
		return fmt.Errorf("heading: %w", err)
	}
	fmt.Fprintf(sb, "\\section{%s}\n", heading)

	items := enabledItems(s.Items)
	if len(items) == 0 {
		return nil
	}

	sb.WriteString(subHeadingListStart + "\n")
	for _, it := range items {
		if err := writeItem(sb, it); err != nil {
			return fmt.Errorf("item %q: %w", it.ID, err)
		}
	}
	sb.WriteString(subHeadingListEnd + "\n")
	return nil
}

func writeItem(sb *strings.Builder, it resume.Item) error {
	title, err := compile(it.Title)
	if err != nil {
		return fmt.Errorf("title: %w", err)
	}
	org, err := compile(it.Organization)
	if err != nil {
		return fmt.Errorf("organization: %w", err)
	}

	fmt.Fprintf(sb, "\\resumeSubheading{%s}{%s}{%s}{%s}\n",
		title, latex.Escape(it.DateRange()), org, latex.Escape(it.Location))

	var bullets []string
	for _, b := range it.Bullets {
		if !b.Enabled {
			continue
		}
		body, err := compile(b.Body)
		if err != nil {
			return fmt.Errorf("bullet %q: %w", b.ID, err)
		}
		bullets = append(bullets, body)
	}
	if len(bullets) == 0 {
		return nil
	}

	sb.WriteString(itemListStart + "\n")
	for _, body := range bullets {
		fmt.Fprintf(sb, "\\resumeItem{%s}\n", body)
	}
	sb.WriteString(itemListEnd + "\n")
	return nil
}

// compile treats an absent fragment as empty text.
func compile(n richtext.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	return latex.Compile(n)
}

func enabledItems(items []resume.Item) []resume.Item {
	out := make([]resume.Item, 0, len(items))
	for _, it := range items {
		if it.Enabled {
			out = append(out, it)
		}
	}
	return out
}
