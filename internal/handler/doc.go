// Package handler implements the gateway's HTTP request handlers.
// It forwards traffic to the upstream resolved at startup and exposes the
// settings the process resolved.
package handler
