package healthcheck

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/angeloszaimis/bootconfig/internal/metrics"
	"github.com/angeloszaimis/bootconfig/internal/upstream"
)

// HealthCheck periodically checks if the upstream is healthy by sending
// HTTP GET requests to its health endpoint. The upstream's health status
// is updated based on the response; status changes are reported to the
// metrics collector when one is provided.
func HealthCheck(
	ctx context.Context,
	up *upstream.Upstream,
	healthPath string,
	interval time.Duration,
	logger *slog.Logger,
	collector *metrics.Collector,
) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Health check stopped",
				slog.String("upstream", up.URL().String()))
			return

		case <-ticker.C:
			healthURL := up.URL().ResolveReference(&url.URL{Path: healthPath})

			req, err := http.NewRequestWithContext(
				ctx, http.MethodGet, healthURL.String(), nil)
			if err != nil {
				continue
			}

			res, err := client.Do(req)
			if err != nil {
				reportChange(up, false, logger, collector)
				continue
			}
			res.Body.Close()

			healthy := res.StatusCode == http.StatusOK
			reportChange(up, healthy, logger, collector)
		}
	}
}

func reportChange(up *upstream.Upstream, healthy bool, logger *slog.Logger, collector *metrics.Collector) {
	if !up.SetHealthy(healthy) {
		return
	}

	if healthy {
		logger.Info("Upstream is back up",
			slog.String("upstream", up.URL().String()))
	} else {
		logger.Warn("Upstream is down",
			slog.String("upstream", up.URL().String()))
	}

	if collector == nil {
		return
	}

	select {
	case collector.EventChannel() <- metrics.MetricEvent{
		Type:      metrics.EventHealthChanged,
		Timestamp: time.Now(),
		Healthy:   healthy,
	}:
	default:
	}
}
