// Package mcppdf generates themed multi-page PDF documents from declarative
// document specifications.
//
// The pipeline resolves the theme into concrete per-role styles, resolves
// the output location, composes every page into a stream of layout
// primitives, renders the stream to a file, and disposes of the temporary
// assets it accumulated along the way.
package mcppdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for fatal generation failures.
var (
	// ErrOutputUnwritable means neither the requested nor the fallback
	// output directory could be written to; there is no further fallback.
	ErrOutputUnwritable = errors.New("mcppdf: output directory is not writable")
)

// GenerateError wraps an error with the pipeline operation it occurred in.
type GenerateError struct {
	Op  string // operation name, e.g. "Validate", "ResolveOutput", "Compose"
	Err error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("mcppdf.%s: %v", e.Op, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

func newGenerateError(op string, err error) *GenerateError {
	return &GenerateError{Op: op, Err: err}
}
