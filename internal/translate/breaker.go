package translate

import "time"

const (
	// failureThreshold trips the breaker when reached inside one error window.
	failureThreshold = 7
	// errorWindow is the sliding window over which failures accumulate.
	errorWindow = 60 * time.Second
	// coolDown is how long translation stays disabled after tripping.
	coolDown = 45 * time.Second
	// rateLimitPushback delays the next call after a rate-limit failure.
	rateLimitPushback = 3 * time.Second
	// networkPushback delays the next call after a transport failure.
	networkPushback = 1500 * time.Millisecond
)

// Breaker is a sliding-window circuit breaker for translation calls. All
// methods take the current time explicitly so tests can drive a simulated
// clock; the caller is the single-threaded session loop, so no locking.
type Breaker struct {
	errorCount    int
	windowStart   time.Time
	disabledUntil time.Time
	nextCallAt    time.Time
}

// NewBreaker returns a closed breaker.
func NewBreaker() *Breaker {
	return &Breaker{}
}

// Allow reports whether a translation call may be attempted at now. A tripped
// breaker re-closes once its cool-down expires, clearing the failure window.
func (b *Breaker) Allow(now time.Time) bool {
	if !b.disabledUntil.IsZero() {
		if now.Before(b.disabledUntil) {
			return false
		}
		// Cool-down expired: re-enable and start a fresh window.
		b.disabledUntil = time.Time{}
		b.errorCount = 0
		b.windowStart = time.Time{}
	}
	if !b.nextCallAt.IsZero() && now.Before(b.nextCallAt) {
		return false
	}
	return true
}

// TemporarilyDisabled reports whether the breaker is in its cool-down.
func (b *Breaker) TemporarilyDisabled(now time.Time) bool {
	return !b.disabledUntil.IsZero() && now.Before(b.disabledUntil)
}

// RecordFailure counts a failed call at now and applies the error-specific
// pushback. Crossing the threshold inside one window trips the breaker.
func (b *Breaker) RecordFailure(now time.Time, err error) {
	if b.windowStart.IsZero() || now.Sub(b.windowStart) > errorWindow {
		b.errorCount = 0
		b.windowStart = now
	}
	b.errorCount++

	switch {
	case IsRateLimit(err):
		b.nextCallAt = now.Add(rateLimitPushback)
	case IsNetwork(err):
		b.nextCallAt = now.Add(networkPushback)
	}

	if b.errorCount >= failureThreshold {
		b.disabledUntil = now.Add(coolDown)
	}
}

// RecordSuccess clears the failure window.
func (b *Breaker) RecordSuccess() {
	b.errorCount = 0
	b.windowStart = time.Time{}
}
