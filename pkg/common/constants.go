package common

import "time"

const (
	SessionCacheTTL = 5 * time.Minute

	// Default expiry window for per-type violation counters. A type with no
	// new violations inside the window no longer contributes to escalation;
	// the event log keeps the full history.
	DefaultCounterWindow = 1 * time.Hour
)
