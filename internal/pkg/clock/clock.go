// Package clock abstracts time for deterministic tests.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using system time.
type Real struct{}

// Now returns the current time.
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a real clock.
func New() Clock {
	return &Real{}
}

// Fixed implements Clock with a frozen time, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the frozen time.
func (c *Fixed) Now() time.Time {
	return c.T
}
