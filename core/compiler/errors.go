package compiler

import (
	"errors"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

var (
	// ErrEmptyName is returned when the component name canonicalizes to an
	// empty string.
	ErrEmptyName = errors.New("component name is empty")

	// ErrEmptySource is returned for blank component sources.
	ErrEmptySource = errors.New("component source is empty")

	// ErrMissingTemplate is returned when the source has no template block.
	ErrMissingTemplate = errors.New("component source has no template block")
)

// diagError folds every diagnostic into a single error so a failed compile
// reports all problems at once.
func diagError(diags hcl.Diagnostics) error {
	msgs := make([]string, 0, len(diags))
	for _, diag := range diags {
		msgs = append(msgs, diag.Error())
	}
	return errors.New(strings.Join(msgs, "; "))
}
