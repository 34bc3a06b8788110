package guard

import (
	"golang.org/x/time/rate"

	"github.com/aakash/content-server/apperror"
)

// Guard shields write paths from overload. A call that exceeds the configured
// rate is rejected before the wrapped function runs.
type Guard struct {
	limiter *rate.Limiter
}

func New(perSecond float64, burst int) *Guard {
	return &Guard{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Call runs fn if the limiter admits the request, otherwise returns an
// overload error without executing fn.
func (g *Guard) Call(op string, fn func() error) error {
	if !g.limiter.Allow() {
		return &apperror.OverloadedError{Op: op}
	}
	return fn()
}
