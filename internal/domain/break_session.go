package domain

import "time"

type UserID string

type BreakSession struct {
	UserID    UserID
	StartedAt time.Time
}

func (s BreakSession) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}
