// Package logging holds zerolog helpers shared by the toast packages.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a child of the global logger tagged with a component
// name under the "cmp" key. The ContextHook is attached so toast ids carried
// in a context reach the log line.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger().Hook(ContextHook{})
}
