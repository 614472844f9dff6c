package handler

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angeloszaimis/bootconfig/internal/circuitbreaker"
	"github.com/angeloszaimis/bootconfig/internal/metrics"
	"github.com/angeloszaimis/bootconfig/internal/settings"
	"github.com/angeloszaimis/bootconfig/internal/upstream"
)

type GatewayHandler struct {
	logger           *slog.Logger
	settings         settings.Settings
	upstream         *upstream.Upstream
	breaker          *circuitbreaker.CircuitBreaker
	metricsCollector *metrics.Collector
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (gw *GatewayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientIP := extractClientIP(r)

	gw.logger.Info("Received request",
		slog.String("from", clientIP),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("proto", r.Proto),
		slog.String("host", r.Host),
		slog.String("user_agent", r.UserAgent()))

	if gw.breaker != nil && !gw.breaker.Allow() {
		gw.logger.Warn("Upstream circuit open, rejecting request",
			slog.String("client", clientIP),
			slog.String("upstream", gw.upstream.URL().String()))
		http.Error(w, "Upstream temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	gw.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventRequestReceived,
		Timestamp: time.Now(),
	})

	gw.logger.Info("Forwarding to upstream",
		slog.String("client", clientIP),
		slog.String("upstream", gw.upstream.URL().String()))

	w.Header().Set("X-Upstream", gw.upstream.URL().String())

	start := time.Now()
	wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
	gw.upstream.ReverseProxy().ServeHTTP(wrapped, r)

	duration := time.Since(start)
	gw.emitEvent(metrics.MetricEvent{
		Type:       metrics.EventResponseCompleted,
		Timestamp:  time.Now(),
		Duration:   duration,
		StatusCode: wrapped.statusCode,
	})
	gw.upstream.RecordResponse(duration)

	if gw.breaker != nil {
		// The proxy's default error handler answers 502, so transport
		// failures land here as server errors too.
		if wrapped.statusCode >= http.StatusInternalServerError {
			gw.breaker.RecordFailure()
		} else {
			gw.breaker.RecordSuccess()
		}
	}
}

// ServeConfig reports the settings resolved at startup together with the
// upstream's current status. Read-only; the settings never change after
// startup.
func (gw *GatewayHandler) ServeConfig(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Settings settings.Settings `json:"settings"`
		Upstream struct {
			URL          string        `json:"url"`
			Healthy      bool          `json:"healthy"`
			EWMAResponse time.Duration `json:"ewma_response"`
		} `json:"upstream"`
	}{
		Settings: gw.settings,
	}
	response.Upstream.URL = gw.upstream.URL().String()
	response.Upstream.Healthy = gw.upstream.IsHealthy()
	response.Upstream.EWMAResponse = gw.upstream.EWMATime()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func (gw *GatewayHandler) emitEvent(event metrics.MetricEvent) {
	if gw.metricsCollector == nil {
		return
	}

	select {
	case gw.metricsCollector.EventChannel() <- event:
	default:
	}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func NewGatewayHandler(logger *slog.Logger, resolved settings.Settings, up *upstream.Upstream, breaker *circuitbreaker.CircuitBreaker, collector *metrics.Collector) *GatewayHandler {
	return &GatewayHandler{
		logger:           logger,
		settings:         resolved,
		upstream:         up,
		breaker:          breaker,
		metricsCollector: collector,
	}
}
