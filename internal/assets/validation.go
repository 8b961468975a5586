package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// maxAssetNameLen bounds template names so they stay usable as filenames.
const maxAssetNameLen = 64

// ValidateAssetName checks that a template name is safe for use as a
// filename. Names must be non-empty, at most 64 bytes, and free of path
// separators, dots, whitespace and control characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetNameLen)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	if strings.IndexFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
