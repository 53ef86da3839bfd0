package types

import (
	"errors"
	"fmt"
)

// Error classes for case assembly. Every concrete error below matches its
// class with errors.Is.
var (
	ErrConfiguration   = errors.New("configuration error")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrSchemaViolation = errors.New("schema violation")
	ErrIO              = errors.New("i/o error")
)

// ConfigurationError reports invalid builder or case parameters.
type ConfigurationError struct {
	Op  string
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ShapeMismatchError reports sub-structures that cannot be concatenated.
type ShapeMismatchError struct {
	Op  string
	Msg string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// SchemaViolation names the first array of a case that breaks a shape or
// index-bound invariant.
type SchemaViolation struct {
	Array    string
	Expected string
	Actual   string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation in %s: expected %s, got %s", e.Array, e.Expected, e.Actual)
}

func (e *SchemaViolation) Is(target error) bool { return target == ErrSchemaViolation }

func NewSchemaViolation(array string, expected, actual interface{}) *SchemaViolation {
	return &SchemaViolation{
		Array:    array,
		Expected: fmt.Sprint(expected),
		Actual:   fmt.Sprint(actual),
	}
}

// IOError wraps a failure writing or removing a case artifact.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("artifact %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
