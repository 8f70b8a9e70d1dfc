package article

import "errors"

var (
	// ErrNotHeader means an article does not start with a Markdown header line.
	ErrNotHeader = errors.New("article does not start with a Markdown header")

	// ErrNoCopyright means the lines before the first subheading contain
	// neither a copyright symbol nor an OGL notice.
	ErrNoCopyright = errors.New("article contains no copyright (©) or OGL line")

	// ErrBodyShape is an internal error: chapter bodies must be empty or start
	// with a newline, which Subdivide guarantees.
	ErrBodyShape = errors.New("internal: chapter body must start with a newline")

	// ErrEmptyList is an internal error: a list run is never flushed empty.
	ErrEmptyList = errors.New("internal: list run has no items")
)
