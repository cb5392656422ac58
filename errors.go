package postcard

import (
	"errors"
	"fmt"
)

// Error variables define render pipeline failures that can be wrapped with
// detailed context for comprehensive error reporting.
var (
	// ErrParse marks malformed component source: block splitting, script,
	// style or template diagnostics, all folded into the wrapping message.
	ErrParse = errors.New("failed to parse component source")

	// ErrComponentNotFound marks a root component that failed to load.
	// Always fatal for the render call.
	ErrComponentNotFound = errors.New("root component not found")

	// ErrSubComponentLoad marks a sub-component that failed to load. Fatal
	// only under the strict policy; otherwise the component is skipped.
	ErrSubComponentLoad = errors.New("failed to load sub-component")

	// ErrLocalization marks a localization engine that could not be
	// constructed from the resolved options. Always fatal.
	ErrLocalization = errors.New("failed to configure localization")

	// ErrSerialization marks a failure while expanding or serializing the
	// component tree. Always fatal.
	ErrSerialization = errors.New("failed to serialize document")
)

// RenderError is the failure returned by Renderer methods: the pipeline
// stage that failed, the component being processed when known, and the
// underlying cause. It always wraps one of the package sentinels, so
// callers can branch with errors.Is while logging the full story.
type RenderError struct {
	// Stage names the pipeline step that failed: "load-root",
	// "load-component", "localization", "render" or "inline-css".
	Stage string

	// Component is the canonical name of the component involved, empty when
	// the failure is not tied to one.
	Component string

	// Err is the underlying cause, wrapping a package sentinel.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("render %s: %s: %v", e.Component, e.Stage, e.Err)
	}
	return fmt.Sprintf("render: %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the cause chain for errors.Is and errors.As.
func (e *RenderError) Unwrap() error {
	return e.Err
}

func renderErr(stage, component string, err error) *RenderError {
	return &RenderError{Stage: stage, Component: component, Err: err}
}
