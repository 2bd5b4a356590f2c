// Package age computes how long ago a recorded event happened.
package age

import "time"

// AgeData returns the time elapsed between then and now, and whether then is
// a usable timestamp. Zero timestamps have no age; timestamps in the future
// are clamped to zero.
func AgeData(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	if then.After(now) {
		return 0, true
	}
	return now.Sub(then), true
}

// Days returns the number of whole days between then and now, or -1 when
// then is zero.
func Days(then time.Time, now time.Time) int {
	duration, ok := AgeData(then, now)
	if !ok {
		return -1
	}
	return int(duration / (24 * time.Hour))
}
