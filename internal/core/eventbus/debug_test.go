package eventbus_test

import (
	"bytes"
	"testing"

	"github.com/colonyops/toasty/internal/core/eventbus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRegisterDebugLogger(t *testing.T) {
	var buf bytes.Buffer
	bus := eventbus.New[string]("debug")
	eventbus.RegisterDebugLogger(bus, zerolog.New(&buf).Level(zerolog.DebugLevel))

	bus.Subscribe(func(string) { panic("boom") })
	bus.Publish("payload")

	out := buf.String()
	assert.Contains(t, out, "subscriber registered")
	assert.Contains(t, out, "event fired")
	assert.Contains(t, out, "subscriber panicked")
	assert.Contains(t, out, "boom")
}
