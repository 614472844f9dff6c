package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/angeloszaimis/bootconfig/internal/loader"
	"github.com/angeloszaimis/bootconfig/internal/metrics"
	"github.com/angeloszaimis/bootconfig/internal/settings"
)

type resolution struct {
	index    int
	result   loader.Result
	err      error
	duration time.Duration
}

// Run executes all loaders concurrently and waits for every one of them to
// resolve before returning. Patches are folded in registration order, so the
// outcome is deterministic even though loaders complete in any order.
// Run returns exactly once: either the fully resolved settings or the first
// loader error, in which case no settings value is produced at all.
func Run(ctx context.Context, log *slog.Logger, collector *metrics.Collector, loaders ...loader.Loader) (settings.Settings, error) {
	if len(loaders) == 0 {
		return settings.Settings{}, fmt.Errorf("no configuration loaders registered")
	}

	resCh := make(chan resolution, len(loaders))

	for i, l := range loaders {
		go func(index int, l loader.Loader) {
			start := time.Now()
			result, err := l.Load(ctx)
			resCh <- resolution{
				index:    index,
				result:   result,
				err:      err,
				duration: time.Since(start),
			}
		}(i, l)
	}

	patches := make([]settings.Patch, len(loaders))

	for range loaders {
		select {
		case <-ctx.Done():
			return settings.Settings{}, fmt.Errorf("startup configuration interrupted: %w", ctx.Err())

		case res := <-resCh:
			name := loaders[res.index].Name()

			if res.err != nil {
				log.Error("Startup configuration loader failed",
					slog.String("loader", name),
					slog.Any("err", res.err))
				return settings.Settings{}, fmt.Errorf("loader %s: %w", name, res.err)
			}

			log.Info("Startup configuration resolved",
				slog.String("loader", name),
				slog.String("outcome", string(res.result.Outcome)),
				slog.Duration("duration", res.duration))

			emitEvent(collector, metrics.MetricEvent{
				Type:      metrics.EventConfigLoaded,
				Timestamp: time.Now(),
				Source:    name,
				Outcome:   string(res.result.Outcome),
				Duration:  res.duration,
			})

			patches[res.index] = res.result.Patch
		}
	}

	var resolved settings.Settings
	for _, patch := range patches {
		resolved = patch.Apply(resolved)
	}

	return resolved, nil
}

func emitEvent(collector *metrics.Collector, event metrics.MetricEvent) {
	if collector == nil {
		return
	}

	select {
	case collector.EventChannel() <- event:
	default:
	}
}
