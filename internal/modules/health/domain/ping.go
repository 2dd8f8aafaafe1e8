package domain

import "time"

// PingResult represents the result of a liveness check.
type PingResult struct {
	Message   string
	Timestamp time.Time
	Uptime    time.Duration
}

// NewPingResult creates a new PingResult for a process started at startedAt.
func NewPingResult(startedAt, now time.Time) *PingResult {
	return &PingResult{
		Message:   "pong",
		Timestamp: now,
		Uptime:    now.Sub(startedAt),
	}
}
