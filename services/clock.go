package services

import "time"

// Clock supplies the current time so streak and window logic stays
// deterministic in tests.
type Clock interface {
	Now() time.Time
	// Today returns the current UTC calendar date at midnight.
	Today() time.Time
}

type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }

func (UTCClock) Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// FixedClock pins the clock to a single instant. Test helper.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

func (c FixedClock) Today() time.Time { return c.Time.UTC().Truncate(24 * time.Hour) }
