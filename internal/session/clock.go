package session

import "time"

func defaultNow() time.Time {
	return time.Now()
}

// SetNowFunc overrides the clock used for token expiry checks. It returns a
// restore function and exists for tests.
func SetNowFunc(fn func() time.Time) func() {
	prev := nowFunc
	nowFunc = fn
	return func() { nowFunc = prev }
}
