package texrun

import (
	"sync"
	"unicode/utf8"
)

// outputCapacity bounds captured compiler output to what an excerpt of
// ExcerptLimit runes can need.
const outputCapacity = ExcerptLimit * utf8.UTFMax

// headBuffer keeps the first bytes written to it and counts the rest.
// Writes never fail, so the compiler never sees a broken pipe.
type headBuffer struct {
	mu      sync.Mutex
	buf     []byte
	limit   int
	dropped int64
}

func newHeadBuffer(limit int) *headBuffer {
	return &headBuffer{buf: make([]byte, 0, limit), limit: limit}
}

func (h *headBuffer) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.limit - len(h.buf)
	if room > len(p) {
		room = len(p)
	}
	h.buf = append(h.buf, p[:room]...)
	h.dropped += int64(len(p) - room)
	return len(p), nil
}

func (h *headBuffer) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf = h.buf[:0]
	h.dropped = 0
}

// Excerpt returns the first ExcerptLimit characters, with "..." appended
// when anything was cut.
func (h *headBuffer) Excerpt() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return excerpt(h.buf, h.dropped > 0)
}

func excerpt(b []byte, truncated bool) string {
	s := string(b)
	n := 0
	for i := range s {
		if n == ExcerptLimit {
			return s[:i] + "..."
		}
		n++
	}
	if truncated {
		return s + "..."
	}
	return s
}
