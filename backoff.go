package telegram

import "time"

// DefaultBackoffInterval is the delay between failed poll attempts when
// PollConfig.Backoff is left nil.
const DefaultBackoffInterval = 3 * time.Second

// BackoffPolicy decides how long the polling loop waits after a failed
// getUpdates call before the next attempt.
//
// attempt counts consecutive failures starting at 1 and resets to zero
// after any successful call. err is the failure being retried, so a
// policy can vary the wait by cause. Whatever the policy returns, the
// engine stretches the wait to the server's retry_after when the
// server asked for more.
type BackoffPolicy interface {
	Delay(attempt int, err error) time.Duration
}

// FixedBackoff waits the same interval after every failure.
type FixedBackoff struct {
	Interval time.Duration
}

// Delay returns the fixed interval regardless of attempt or cause.
func (b FixedBackoff) Delay(attempt int, err error) time.Duration {
	return b.Interval
}

// ExponentialBackoff doubles the wait after each consecutive failure,
// starting at Base. Max caps the wait; Max <= 0 means no cap.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns Base doubled attempt-1 times, capped at Max.
func (b ExponentialBackoff) Delay(attempt int, err error) time.Duration {
	d := b.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// DefaultBackoff returns the policy used when PollConfig.Backoff is
// nil: a fixed short wait suited to transient network and server
// trouble.
func DefaultBackoff() BackoffPolicy {
	return FixedBackoff{Interval: DefaultBackoffInterval}
}
