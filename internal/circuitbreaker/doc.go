// Package circuitbreaker implements the circuit breaker pattern for the
// upstream proxy path.
//
// A circuit breaker prevents hammering a failing upstream. It has three states:
//
//   - CLOSED: Normal operation, requests pass through
//   - OPEN: Upstream failing, requests blocked
//   - HALF-OPEN: Testing if the upstream recovered
//
// Usage:
//
//	cb := circuitbreaker.NewCircuitBreaker(5, 30*time.Second)
//	if cb.Allow() {
//	    // Forward request...
//	    if failed {
//	        cb.RecordFailure()
//	    } else {
//	        cb.RecordSuccess()
//	    }
//	}
package circuitbreaker
