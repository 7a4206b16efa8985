// Package script replays a JSON description of toasts through the notify
// bridge. Scripts drive the demo player and make the lifecycle reproducible
// outside of tests.
package script

import (
	"fmt"
	"math"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/toasty/internal/core/toast"
	"github.com/colonyops/toasty/internal/core/validate"
)

// Script is an ordered list of steps.
type Script struct {
	Name  string `json:"name,omitempty"`
	Steps []Step `json:"steps"`

	// MaxConcurrent caps how many promise steps run at once. Zero means 4.
	MaxConcurrent int `json:"max_concurrent,omitempty"`
}

// Step shows one toast, or runs one tracked promise when Promise is set.
type Step struct {
	Message  string `json:"message,omitempty"`
	Title    string `json:"title,omitempty"`
	Variant  string `json:"variant,omitempty"`
	Position string `json:"position,omitempty"`

	// DurationMS overrides the store default. 0 keeps the toast until
	// dismissed.
	DurationMS  *int   `json:"duration_ms,omitempty"`
	DelayMS     int    `json:"delay_ms,omitempty"`
	Dismissible *bool  `json:"dismissible,omitempty"`
	ProgressBar *bool  `json:"progress_bar,omitempty"`
	Icon        string `json:"icon,omitempty"`

	Promise *PromiseStep `json:"promise,omitempty"`
}

// PromiseStep simulates work that takes WorkMS and then succeeds or fails.
type PromiseStep struct {
	Loading string `json:"loading"`
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	WorkMS  int    `json:"work_ms"`
	Fail    bool   `json:"fail,omitempty"`
}

const defaultMaxConcurrent = 4

// maxMS is the largest millisecond value that fits a time.Duration.
const maxMS = math.MaxInt64 / int64(time.Millisecond)

// checkMS reports a negative or out of range millisecond field.
func checkMS(v int) error {
	switch {
	case v < 0:
		return fmt.Errorf("must not be negative")
	case int64(v) > maxMS:
		return fmt.Errorf("must be at most %d", maxMS)
	}
	return nil
}

// Validate reports every invalid step as a criterio field error.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return criterio.NewFieldErrors("steps", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	if s.MaxConcurrent < 0 {
		errs = errs.Append("max_concurrent", fmt.Errorf("must not be negative"))
	}

	for i, step := range s.Steps {
		field := fmt.Sprintf("steps[%d]", i)

		if step.Promise != nil {
			if err := validate.Message(step.Promise.Loading); err != nil {
				errs = errs.Append(field+".promise.loading", err)
			}
			if err := checkMS(step.Promise.WorkMS); err != nil {
				errs = errs.Append(field+".promise.work_ms", err)
			}
		} else if err := validate.Message(step.Message); err != nil {
			errs = errs.Append(field+".message", err)
		}

		if err := validate.Variant(step.Variant); err != nil {
			errs = errs.Append(field+".variant", err)
		}
		if err := validate.Position(step.Position); err != nil {
			errs = errs.Append(field+".position", err)
		}
		if step.DurationMS != nil {
			if err := checkMS(*step.DurationMS); err != nil {
				errs = errs.Append(field+".duration_ms", err)
			}
		}
		if err := checkMS(step.DelayMS); err != nil {
			errs = errs.Append(field+".delay_ms", err)
		}
	}

	return errs.ToError()
}

// Options converts the step into toast options. Unset fields are left to the
// store defaults.
func (st Step) Options() []toast.Option {
	var opts []toast.Option

	if v, ok := toast.ParseVariant(st.Variant); ok {
		opts = append(opts, toast.WithVariant(v))
	}
	if p, ok := toast.ParsePosition(st.Position); ok {
		opts = append(opts, toast.WithPosition(p))
	}
	if st.Title != "" {
		opts = append(opts, toast.WithTitle(st.Title))
	}
	if st.DurationMS != nil {
		opts = append(opts, toast.WithDuration(time.Duration(*st.DurationMS)*time.Millisecond))
	}
	if st.Dismissible != nil {
		opts = append(opts, toast.WithDismissible(*st.Dismissible))
	}
	if st.ProgressBar != nil {
		opts = append(opts, toast.WithProgressBar(*st.ProgressBar))
	}
	if st.Icon != "" {
		opts = append(opts, toast.WithIcon(true, st.Icon))
	}

	return opts
}

// Delay is the pause before the step runs.
func (st Step) Delay() time.Duration {
	return time.Duration(st.DelayMS) * time.Millisecond
}
