// Package healthcheck implements periodic health checking for the configured
// upstream. It monitors upstream availability after startup has resolved and
// updates the health status based on HTTP health endpoint responses.
package healthcheck
