package script

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/colonyops/toasty/internal/core/logging"
	"github.com/colonyops/toasty/internal/core/notify"
)

// ErrSimulatedFailure is returned by promise steps marked to fail.
var ErrSimulatedFailure = errors.New("simulated failure")

// Result summarises a finished run.
type Result struct {
	Shown    int // plain toasts shown
	Promises int // promise steps started
	Failed   int // promise steps that failed
}

// Run plays s through the notify bridge. Plain steps run in order, each after
// its delay. Promise steps start in order but run concurrently, bounded by
// MaxConcurrent. Run returns once every step has finished, or with the context
// error when ctx is cancelled. Simulated promise failures are counted, not
// returned.
func Run(ctx context.Context, s Script) (Result, error) {
	logger := logging.Component("script")

	limit := s.MaxConcurrent
	if limit == 0 {
		limit = defaultMaxConcurrent
	}
	sem := semaphore.NewWeighted(int64(limit))

	var (
		res    Result
		failed atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)

	for i, step := range s.Steps {
		if err := sleep(gctx, step.Delay()); err != nil {
			break
		}

		if step.Promise == nil {
			id := notify.Custom(step.Message, step.Options()...)
			logger.Debug().Int("step", i).Str("id", id).Msg("step shown")
			res.Shown++
			continue
		}

		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		res.Promises++

		g.Go(func() error {
			defer sem.Release(1)

			err := runPromise(gctx, step)
			switch {
			case errors.Is(err, ErrSimulatedFailure):
				failed.Add(1)
				return nil
			case err != nil:
				return fmt.Errorf("step %d: %w", i, err)
			}
			return nil
		})
	}

	err := g.Wait()
	res.Failed = int(failed.Load())

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Debug().Err(err).Msg("script interrupted")
		return res, err
	}

	logger.Debug().
		Int("shown", res.Shown).
		Int("promises", res.Promises).
		Int("failed", res.Failed).
		Msg("script finished")

	return res, nil
}

func runPromise(ctx context.Context, step Step) error {
	p := step.Promise

	_, err := notify.Promise(ctx, func(ctx context.Context) (struct{}, error) {
		if err := sleep(ctx, time.Duration(p.WorkMS)*time.Millisecond); err != nil {
			return struct{}{}, err
		}
		if p.Fail {
			return struct{}{}, ErrSimulatedFailure
		}
		return struct{}{}, nil
	}, notify.Messages[struct{}]{
		Loading: p.Loading,
		Success: successMessage(p),
		Error:   p.Error,
	}, step.Options()...)

	return err
}

func successMessage(p *PromiseStep) string {
	if p.Success != "" {
		return p.Success
	}
	return "Done"
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
