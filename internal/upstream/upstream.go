package upstream

import (
	"net/http/httputil"
	"net/url"
	"sync"
	"time"
)

// Upstream represents the API origin the gateway forwards to, resolved once
// from the startup settings.
type Upstream struct {
	url              *url.URL
	proxy            *httputil.ReverseProxy
	mutex            sync.Mutex
	isHealthy        bool
	ewmaResponseTime time.Duration
	hasEWMA          bool
}

const ewmaAlpha = 0.2

// ReverseProxy returns the HTTP reverse proxy for this upstream.
func (u *Upstream) ReverseProxy() *httputil.ReverseProxy {
	return u.proxy
}

// URL returns the upstream origin URL.
func (u *Upstream) URL() *url.URL {
	return u.url
}

// IsHealthy returns true if the upstream is currently healthy.
func (u *Upstream) IsHealthy() bool {
	u.mutex.Lock()
	defer u.mutex.Unlock()
	return u.isHealthy
}

// SetHealthy updates the upstream's health status.
// Returns true if the status changed, false if it was already in that state.
func (u *Upstream) SetHealthy(healthy bool) (changed bool) {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	if u.isHealthy == healthy {
		return false
	}

	u.isHealthy = healthy
	return true
}

// RecordResponse updates the exponentially weighted moving average (EWMA)
// response time using the latest request duration.
func (u *Upstream) RecordResponse(duration time.Duration) {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	if !u.hasEWMA {
		u.ewmaResponseTime = duration
		u.hasEWMA = true
		return
	}
	//ewma = (1 - α) * ewma + α * latest
	u.ewmaResponseTime = time.Duration((1-ewmaAlpha)*float64(u.ewmaResponseTime) + ewmaAlpha*float64(duration))
}

// EWMATime returns the exponentially weighted moving average response time.
// Returns 0 if no responses have been recorded yet.
func (u *Upstream) EWMATime() time.Duration {
	u.mutex.Lock()
	defer u.mutex.Unlock()

	if !u.hasEWMA {
		return 0
	}

	return u.ewmaResponseTime
}

// New creates a new Upstream for the given origin URL.
// The upstream starts in a healthy state.
func New(origin *url.URL) *Upstream {
	return &Upstream{
		url:       origin,
		proxy:     httputil.NewSingleHostReverseProxy(origin),
		isHealthy: true,
	}
}
