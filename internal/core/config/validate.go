package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/toasty/internal/core/styles"
	"github.com/colonyops/toasty/internal/core/validate"
)

const (
	minTickInterval = 10 * time.Millisecond
	minWidth        = 20
)

// Validate checks that the configuration is valid. All problems are reported
// together as criterio field errors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateToasts(),
		c.validateTUI(),
	)
}

func (c *Config) validateToasts() error {
	var errs criterio.FieldErrorsBuilder

	if c.Toasts.DefaultPosition == "" {
		errs = errs.Append("toasts.default_position", fmt.Errorf("position is required"))
	} else if err := validate.Position(c.Toasts.DefaultPosition); err != nil {
		errs = errs.Append("toasts.default_position", err)
	}
	if c.Toasts.MaxNotifications < 1 {
		errs = errs.Append("toasts.max_notifications", fmt.Errorf("must be at least 1"))
	}
	if c.Toasts.DefaultDuration < 0 {
		errs = errs.Append("toasts.default_duration", fmt.Errorf("must not be negative"))
	}
	if c.Toasts.TickInterval < minTickInterval {
		errs = errs.Append("toasts.tick_interval", fmt.Errorf("must be at least %s", minTickInterval))
	}
	if c.Toasts.DefaultDuration > 0 && c.Toasts.DefaultDuration < c.Toasts.TickInterval {
		errs = errs.Append("toasts.default_duration", fmt.Errorf("shorter than tick_interval %s", c.Toasts.TickInterval))
	}

	return errs.ToError()
}

func (c *Config) validateTUI() error {
	var errs criterio.FieldErrorsBuilder

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", fmt.Errorf("unknown theme %q (available: %s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}
	if err := validate.AnchorPattern(c.TUI.Anchors); err != nil {
		errs = errs.Append("tui.anchors", err)
	}
	if c.TUI.Width < minWidth {
		errs = errs.Append("tui.width", fmt.Errorf("must be at least %d", minWidth))
	}

	return errs.ToError()
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.Toasts.TickInterval > time.Second {
		warnings = append(warnings, "toasts.tick_interval above 1s makes progress bars coarse")
	}
	if c.Toasts.MaxNotifications > 20 {
		warnings = append(warnings, "toasts.max_notifications above 20 may not fit on screen")
	}

	return warnings
}
