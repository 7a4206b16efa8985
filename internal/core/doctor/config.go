package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/toasty/internal/core/config"
)

// ConfigCheck loads the config file and reports every validation problem.
type ConfigCheck struct {
	path string
}

func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case err == nil:
		result.add(StatusPass, "config file", c.path)
	case errors.Is(err, os.ErrNotExist):
		result.add(StatusPass, "config file", "not found, using defaults")
	default:
		result.add(StatusFail, "config file", err.Error())
		return result
	}

	cfg, err := config.Load(c.path)
	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.add(StatusFail, fe.Field, fe.Err.Error())
			}
		} else {
			result.add(StatusFail, "parse", err.Error())
		}
		return result
	}

	result.add(StatusPass, "valid", "")
	for _, w := range cfg.Warnings() {
		result.add(StatusWarn, "warning", w)
	}

	return result
}
