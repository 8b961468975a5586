package assets

import "errors"

// Resolver combines custom and embedded loaders. When a custom loader is
// configured it is tried first; only a not-found result falls back to the
// embedded templates.
type Resolver struct {
	custom   TemplateLoader // nil if no custom path configured
	embedded TemplateLoader
}

// NewResolver creates a Resolver. An empty customBasePath uses embedded
// templates only. Returns ErrInvalidBasePath if customBasePath is set but
// unusable.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadTemplate loads a template, trying the custom loader first if available.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Validation and I/O errors are not masked by the fallback.
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return r.embedded.LoadTemplate(name)
}

// HasCustomLoader reports whether a custom template directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ TemplateLoader = (*Resolver)(nil)
