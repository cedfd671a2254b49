package service

import "time"

// Clock abstracts the current time so expiry logic can be tested against a
// fixed instant instead of the wall clock.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
