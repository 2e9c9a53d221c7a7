package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FieldError is one failed settings check
type FieldError struct {
	Scope   string
	Field   string
	Message string
	Cause   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Scope, e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return e.Cause }

// Errors is every failure from one Checker run
type Errors []*FieldError

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(es), strings.Join(msgs, "; "))
}

// Fields lists the failing field names in check order.
func (es Errors) Fields() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Field
	}
	return out
}

// Checker collects settings failures through a chain of checks and
// reports them together.
type Checker struct {
	scope  string
	failed Errors
}

// NewChecker starts a check chain whose messages are prefixed with scope.
func NewChecker(scope string) *Checker {
	return &Checker{scope: scope}
}

func (c *Checker) fail(field string, cause error, format string, args ...any) {
	c.failed = append(c.failed, &FieldError{
		Scope:   c.scope,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	})
}

// Required fails when value is empty or only whitespace.
func (c *Checker) Required(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		c.fail(field, nil, "must be set")
	}
	return c
}

// Positive fails when value <= 0.
func (c *Checker) Positive(field string, value int) *Checker {
	if value <= 0 {
		c.fail(field, nil, "got %d, must be positive", value)
	}
	return c
}

// NonNegative fails when value < 0.
func (c *Checker) NonNegative(field string, value int) *Checker {
	if value < 0 {
		c.fail(field, nil, "got %d, must not be negative", value)
	}
	return c
}

// Between fails when value is outside [lo, hi].
func (c *Checker) Between(field string, value, lo, hi int) *Checker {
	if value < lo || value > hi {
		c.fail(field, nil, "got %d, must be between %d and %d", value, lo, hi)
	}
	return c
}

// OneOf fails when value is not in allowed.
func (c *Checker) OneOf(field, value string, allowed []string) *Checker {
	if !slices.Contains(allowed, value) {
		c.fail(field, nil, "got %q, must be one of %s", value, strings.Join(allowed, ", "))
	}
	return c
}

// Distinct fails when value equals other, naming otherField.
func (c *Checker) Distinct(field, value, otherField, other string) *Checker {
	if value != "" && value == other {
		c.fail(field, nil, "must differ from %s (both %q)", otherField, value)
	}
	return c
}

// Implies fails when flag is set but requirement is not.
func (c *Checker) Implies(field string, flag bool, requiredField string, requirement bool) *Checker {
	if flag && !requirement {
		c.fail(field, nil, "requires %s", requiredField)
	}
	return c
}

// Check records the error returned by fn, if any.
func (c *Checker) Check(field string, fn func() error) *Checker {
	if err := fn(); err != nil {
		c.fail(field, err, "%v", err)
	}
	return c
}

// Failed reports whether any check failed.
func (c *Checker) Failed() bool {
	return len(c.failed) > 0
}

// Err returns nil, the single failure, or an Errors holding all of them.
func (c *Checker) Err() error {
	switch len(c.failed) {
	case 0:
		return nil
	case 1:
		return c.failed[0]
	default:
		return append(Errors(nil), c.failed...)
	}
}

// AsErrors flattens err into its field failures. It returns nil when err
// did not come from a Checker.
func AsErrors(err error) Errors {
	var many Errors
	if errors.As(err, &many) {
		return many
	}
	var one *FieldError
	if errors.As(err, &one) {
		return Errors{one}
	}
	return nil
}
