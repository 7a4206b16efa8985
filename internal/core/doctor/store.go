package doctor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/toasty/internal/core/toast"
)

// StoreCheck runs the configured store through eviction and expiration with
// manual ticks, so no time passes.
type StoreCheck struct {
	cfg toast.Config
}

func NewStoreCheck(cfg toast.Config) *StoreCheck {
	cfg.ManualTicks = true
	return &StoreCheck{cfg: cfg}
}

func (c *StoreCheck) Name() string {
	return "Store"
}

func (c *StoreCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	store := toast.New(c.cfg, toast.WithLogger(zerolog.Nop()))
	defer store.Close()

	limit := store.Config().MaxNotifications
	interval := store.TickInterval()

	first := store.Add("doctor check", toast.WithDuration(0))
	for i := 0; i < limit; i++ {
		store.Add("doctor check", toast.WithDuration(0))
	}
	if _, ok := store.Get(first); ok || store.Len() != limit {
		result.add(StatusFail, "eviction", fmt.Sprintf("holding %d toasts, limit %d", store.Len(), limit))
	} else {
		result.add(StatusPass, "eviction", fmt.Sprintf("oldest dropped past %d", limit))
	}

	store.ClearAll()

	const ticks = 3
	id := store.Add("doctor check", toast.WithDuration(ticks*interval))
	for i := 0; i < ticks; i++ {
		store.Tick()
	}
	if _, ok := store.Get(id); ok {
		result.add(StatusFail, "expiration", fmt.Sprintf("toast still present after %d ticks of %s", ticks, interval))
	} else {
		result.add(StatusPass, "expiration", fmt.Sprintf("%d ticks of %s", ticks, interval))
	}

	return result
}
