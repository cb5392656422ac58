package runtime

import "errors"

var (
	// ErrNilDefinition is returned when a render is attempted without a
	// usable root definition.
	ErrNilDefinition = errors.New("component definition is nil")

	// ErrMaxDepthExceeded is returned when component nesting exceeds the
	// configured depth, usually because definitions reference each other in
	// a cycle.
	ErrMaxDepthExceeded = errors.New("component nesting exceeds maximum depth")

	// ErrUnknownComponent is returned in strict mode when a template tag is
	// neither a registered component nor a standard HTML element.
	ErrUnknownComponent = errors.New("unknown component")
)
