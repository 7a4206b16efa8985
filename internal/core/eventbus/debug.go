package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers bus hooks that log activity at debug level
// and subscriber panics at error level.
func RegisterDebugLogger[T any](bus *Bus[T], logger zerolog.Logger) {
	bus.OnPublish(func(name string, _ T) {
		logger.Debug().Str("bus", name).Msg("event fired")
	})

	bus.OnSubscribe(func(name string) {
		logger.Debug().Str("bus", name).Msg("subscriber registered")
	})

	bus.OnPanic(func(name string, _ T, recovered any) {
		logger.Error().
			Str("bus", name).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
