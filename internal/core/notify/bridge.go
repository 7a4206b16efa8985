// Package notify is the process-wide entry point for showing toasts from
// code that holds no reference to a store. The active store registers itself
// once it is mounted; calls made before that log a warning and return an
// empty id.
package notify

import (
	"fmt"
	"sync"

	"github.com/colonyops/toasty/internal/core/logging"
	"github.com/colonyops/toasty/internal/core/toast"
)

// Target is the set of store operations the bridge routes to.
// *toast.Store satisfies it.
type Target interface {
	Add(message string, opts ...toast.Option) string
	Remove(id string)
	ClearAll()
}

// binding holds one registration. Unregister compares pointers so a stale
// unregister cannot remove a newer registration.
type binding struct {
	target Target
}

var (
	mu     sync.RWMutex
	active *binding
)

const notRegisteredMsg = "toast store not registered; call notify.Register with the active store"

// Register makes t the target of every bridge call. The most recent
// registration wins. The returned function removes the registration if it is
// still the active one.
func Register(t Target) (unregister func()) {
	b := &binding{target: t}

	mu.Lock()
	active = b
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if active == b {
			active = nil
		}
	}
}

// Registered reports whether a store is bound.
func Registered() bool {
	return current() != nil
}

func current() Target {
	mu.RLock()
	defer mu.RUnlock()
	if active == nil {
		return nil
	}
	return active.target
}

func warnUnregistered(op string) {
	logging.Component("notify").Warn().Str("op", op).Msg(notRegisteredMsg)
}

// Show adds a toast through the active store. Returns "" when no store is
// registered.
func Show(message string, opts ...toast.Option) string {
	t := current()
	if t == nil {
		warnUnregistered("show")
		return ""
	}
	return t.Add(message, opts...)
}

// Custom is Show under the name used for fully configured toasts.
func Custom(message string, opts ...toast.Option) string {
	return Show(message, opts...)
}

// Success shows a success toast. The variant cannot be overridden by opts.
func Success(message string, opts ...toast.Option) string {
	return withVariant(toast.VariantSuccess, message, opts)
}

// Error shows an error toast.
func Error(message string, opts ...toast.Option) string {
	return withVariant(toast.VariantError, message, opts)
}

// Warning shows a warning toast.
func Warning(message string, opts ...toast.Option) string {
	return withVariant(toast.VariantWarning, message, opts)
}

// Info shows an info toast.
func Info(message string, opts ...toast.Option) string {
	return withVariant(toast.VariantInfo, message, opts)
}

// Successf shows a formatted success toast.
func Successf(format string, args ...any) string {
	return Success(fmt.Sprintf(format, args...))
}

// Errorf shows a formatted error toast.
func Errorf(format string, args ...any) string {
	return Error(fmt.Sprintf(format, args...))
}

// Warnf shows a formatted warning toast.
func Warnf(format string, args ...any) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Infof shows a formatted info toast.
func Infof(format string, args ...any) string {
	return Info(fmt.Sprintf(format, args...))
}

// Dismiss removes the toast with id from the active store.
func Dismiss(id string) {
	t := current()
	if t == nil {
		warnUnregistered("dismiss")
		return
	}
	t.Remove(id)
}

// ClearAll removes every toast from the active store.
func ClearAll() {
	t := current()
	if t == nil {
		warnUnregistered("clear")
		return
	}
	t.ClearAll()
}

func withVariant(v toast.Variant, message string, opts []toast.Option) string {
	return Show(message, forced(opts, toast.WithVariant(v))...)
}

// forced returns opts followed by overrides without aliasing the caller's
// backing array.
func forced(opts []toast.Option, overrides ...toast.Option) []toast.Option {
	out := make([]toast.Option, 0, len(opts)+len(overrides))
	out = append(out, opts...)
	return append(out, overrides...)
}
