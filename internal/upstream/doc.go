// Package upstream wraps the API origin resolved from the runtime settings.
// It provides health status tracking, response time monitoring, and HTTP
// request forwarding through a single-host reverse proxy.
package upstream
