// Package metrics provides real-time metrics collection for the gateway.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Startup configuration load resolutions (source, outcome, duration)
//   - Proxied request counts
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//   - Upstream health status
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the request path. Events are sent via buffered channels with
// non-blocking semantics and drained on shutdown.
package metrics
