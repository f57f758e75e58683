package transport

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/towerkeep/mudcore/internal/session"
)

// RateLimitedConn wraps a session.Connection so input lines are throttled
// by a token bucket instead of being dispatched as fast as the client can
// write them: a flooding or scripted client is slowed down rather than
// able to spend unbounded command-dispatch work per second.
type RateLimitedConn struct {
	session.Connection
	limiter *rate.Limiter
}

// NewRateLimitedConn wraps conn with a token bucket allowing ratePerSec
// lines per second, with burst as the initial allowance.
func NewRateLimitedConn(conn session.Connection, ratePerSec float64, burst int) *RateLimitedConn {
	return &RateLimitedConn{
		Connection: conn,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}
}

// ReadLine blocks until the token bucket admits the next line, then
// defers to the wrapped connection.
func (r *RateLimitedConn) ReadLine() (string, error) {
	if err := r.limiter.Wait(context.Background()); err != nil {
		return "", err
	}
	return r.Connection.ReadLine()
}

var _ session.Connection = (*RateLimitedConn)(nil)
