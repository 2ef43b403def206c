package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoRenderer  = errors.New("no renderer configured")
	ErrNoOutput    = errors.New("no output file (use --output)")
)
