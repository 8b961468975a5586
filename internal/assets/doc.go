// Package assets provides the LaTeX document templates the assembler
// substitutes resume content into. Templates can be loaded from embedded
// files or a custom filesystem path.
//
// # Loader Architecture
//
//	TemplateLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default template)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// Resolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the template
// is not found there, so a deployment can override a single template and
// keep the built-in default.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}.tex
//
// Every template must contain the content placeholder exactly once; the
// assembler rejects templates without it.
//
// # Security
//
// Template names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
