// Package validate provides shared validation functions for user supplied
// toast input (composer form fields, script steps and config values).
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/toasty/internal/core/toast"
)

// Message validates a toast message is non-empty after trimming whitespace.
func Message(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

// Variant validates a variant name. Empty selects the default variant.
func Variant(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := toast.ParseVariant(name); !ok {
		return fmt.Errorf("unknown variant %q", name)
	}
	return nil
}

// Position validates an anchor name. Empty selects the store default.
func Position(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := toast.ParsePosition(name); !ok {
		return fmt.Errorf("unknown position %q", name)
	}
	return nil
}

// Duration validates a Go duration string such as "3s". Zero disables
// auto-dismiss; negative values are rejected.
func Duration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

// AnchorPattern validates a glob over anchor names.
func AnchorPattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob %q", pattern)
	}
	return nil
}

// MessageField returns a criterio validator for toast messages.
func MessageField(field, msg string) error {
	return criterio.Run(field, msg, Message)
}

// VariantField returns a criterio validator for variant names.
func VariantField(field, name string) error {
	return criterio.Run(field, name, Variant)
}

// PositionField returns a criterio validator for anchor names.
func PositionField(field, name string) error {
	return criterio.Run(field, name, Position)
}
