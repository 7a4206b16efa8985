package notify

import (
	"context"

	"github.com/colonyops/toasty/internal/core/logging"
	"github.com/colonyops/toasty/internal/core/toast"
)

// Messages configures the toasts shown by Promise. When SuccessFunc or
// ErrorFunc is set it takes precedence over the static message.
type Messages[T any] struct {
	Loading     string
	Success     string
	Error       string
	SuccessFunc func(T) string
	ErrorFunc   func(error) string
}

func (m Messages[T]) success(v T) string {
	if m.SuccessFunc != nil {
		return m.SuccessFunc(v)
	}
	return m.Success
}

func (m Messages[T]) failure(err error) string {
	if m.ErrorFunc != nil {
		return m.ErrorFunc(err)
	}
	if m.Error == "" {
		return err.Error()
	}
	return m.Error
}

// Promise tracks work with toasts. It shows a persistent, non-dismissible
// loading toast, runs work, removes the loading toast and then shows a
// success or error toast. The error returned by work is returned unchanged.
//
// All toasts go to the store that was registered when Promise was called,
// even if another store registers while work runs. Without a registered
// store, work still runs and only a warning is logged.
func Promise[T any](ctx context.Context, work func(context.Context) (T, error), msgs Messages[T], opts ...toast.Option) (T, error) {
	target := current()
	if target == nil {
		warnUnregistered("promise")
		return work(ctx)
	}

	loadingID := target.Add(msgs.Loading, forced(opts,
		toast.WithVariant(toast.VariantInfo),
		toast.WithDuration(0),
		toast.WithDismissible(false),
	)...)

	removed := false
	removeLoading := func() {
		if !removed {
			removed = true
			target.Remove(loadingID)
		}
	}
	// Covers a panicking work function.
	defer removeLoading()

	ctx = logging.WithToastID(logging.WithOperation(ctx, "promise"), loadingID)
	result, err := work(ctx)
	removeLoading()

	if err != nil {
		logging.Component("notify").Debug().Ctx(ctx).Err(err).Msg("tracked work failed")
		target.Add(msgs.failure(err), forced(opts, toast.WithVariant(toast.VariantError))...)
		return result, err
	}

	target.Add(msgs.success(result), forced(opts, toast.WithVariant(toast.VariantSuccess))...)
	return result, nil
}
