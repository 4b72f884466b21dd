package ports

import "context"

// LoginThrottle limits repeated failed logins per username. Implementations
// are best-effort: callers treat backend failures as "allow" so an outage of
// the throttle store never locks everyone out.
type LoginThrottle interface {
	// Allow reports whether a login attempt for username may proceed.
	Allow(ctx context.Context, username string) (bool, error)
	// RecordFailure notes one more failed attempt for username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, username string) error
}
