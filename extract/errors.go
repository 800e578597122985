package extract

import "errors"

var (
	// ErrEmptyDocument is returned when a zero-length file is offered.
	ErrEmptyDocument = errors.New("empty document")

	// ErrNoPagesRendered is returned when the renderer produced no page
	// images for the vision fallback.
	ErrNoPagesRendered = errors.New("no pages rendered")
)
