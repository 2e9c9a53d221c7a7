package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrGraphConstruction is matched by every *ConstructionError.
	ErrGraphConstruction = errors.New("graph construction failed")

	// ErrTooFewColumns means source/target columns could not be inferred.
	ErrTooFewColumns = errors.New("need at least two columns to infer source and target")

	// ErrUnknownColumn means an explicitly named column does not exist.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnencodable means a node id, attribute name or value holds text
	// that XML 1.0 cannot represent.
	ErrUnencodable = errors.New("text cannot be encoded in GraphML")
)

// ConstructionError describes why a graph could not be built from a table.
type ConstructionError struct {
	Op      string   // e.g. "infer columns"
	Columns []string // Columns involved
	Cause   error
}

// InvalidSchemaError is the error returned when column inference fails.
type InvalidSchemaError = ConstructionError

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("build graph: %s %v: %v", e.Op, e.Columns, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ConstructionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrGraphConstruction or matches the cause.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrGraphConstruction || errors.Is(e.Cause, target)
}
