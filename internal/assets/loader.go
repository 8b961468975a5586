package assets

// TemplateLoader defines the contract for loading document templates.
type TemplateLoader interface {
	// LoadTemplate loads a LaTeX template by name (without .tex extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
