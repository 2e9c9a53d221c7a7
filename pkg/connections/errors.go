package connections

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrSchema means a file lacks the identity columns needed to build names.
	ErrSchema = errors.New("missing required identity columns")

	// ErrPathSafety means a path resolves outside its allowed base directory.
	ErrPathSafety = errors.New("path escapes base directory")
)

// SchemaError reports which identity columns a source is missing.
type SchemaError struct {
	Path    string   // Source file, empty for in-memory tables
	Missing []string // Columns that were required but absent
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	src := e.Path
	if src == "" {
		src = "input"
	}
	return fmt.Sprintf("normalize %s: %v: %s", src, ErrSchema, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrSchema so callers can use errors.Is.
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// PathSafetyError reports a path that resolved outside Base.
type PathSafetyError struct {
	Base string
	Path string
}

// Error implements the error interface.
func (e *PathSafetyError) Error() string {
	return fmt.Sprintf("unsafe path %s: %v %s", e.Path, ErrPathSafety, e.Base)
}

// Unwrap returns ErrPathSafety so callers can use errors.Is.
func (e *PathSafetyError) Unwrap() error {
	return ErrPathSafety
}
