// Package pdfinfo reads metadata from compiled PDF artifacts.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable indicates the bytes could not be parsed as a PDF.
var ErrUnreadable = errors.New("unreadable PDF")

// PageCount returns the number of pages in a PDF document.
func PageCount(data []byte) (n int, err error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrUnreadable)
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return r.NumPage(), nil
}
