package utils

import "time"

// Clock is the injected time source used for createdAt stamping, so services
// never call time.Now directly and tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
