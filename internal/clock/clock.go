package clock

import "time"

// Clock abstracts time so note and attribute timestamps are testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
