package ml

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelLoad marks a fatal failure to load the model artifact.
var ErrModelLoad = errors.New("model load failed")

// UnknownCategoryError reports a submitted categorical value that is not in
// the feature's vocabulary. The request is rejected; the process continues.
type UnknownCategoryError struct {
	Feature string
	Value   string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q for feature %q", e.Value, e.Feature)
}

// IncompleteInputError reports required fields left blank in a submission.
// It is raised before any encoding is attempted.
type IncompleteInputError struct {
	Fields []string
}

func (e *IncompleteInputError) Error() string {
	return "incomplete input: missing " + strings.Join(e.Fields, ", ")
}

// InvalidValueError reports a numeric field outside its allowed range.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// InferenceError reports a feature vector the model rejected, typically an
// arity mismatch between the vector and the model's expected input.
type InferenceError struct {
	Want int
	Got  int
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("model expects %d features, got %d", e.Want, e.Got)
}
