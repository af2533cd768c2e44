package board

import "errors"

// ErrNotFound and related errors describe lookup and import failures.
var (
	ErrNotFound    = errors.New("not found")
	ErrNoDocument  = errors.New("no document loaded")
	ErrInvalidJSON = errors.New("invalid document json")
)
