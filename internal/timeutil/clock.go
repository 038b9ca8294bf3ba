package timeutil

import "time"

// Now returns the current time in UTC. All bucketing and token timestamps go
// through this so stored keys never depend on the server's zone.
func Now() time.Time {
	return time.Now().UTC()
}
