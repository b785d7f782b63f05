package limiter

import (
	"time"

	"golang.org/x/time/rate"
)

//go:generate mockgen -destination=mocks/limiter.go -package=mklimiter . Limiter

// Limiter gates websocket connection attempts.
type Limiter interface {
	WsAllow() bool
}

var _ Limiter = (*connLimiter)(nil)

// NewConnLimiter allows bursts of up to burst connection attempts,
// refilling one permit per interval.
func NewConnLimiter(interval time.Duration, burst int) Limiter {
	return &connLimiter{
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

type connLimiter struct {
	limiter *rate.Limiter
}

func (l *connLimiter) WsAllow() bool {
	return l.limiter.Allow()
}
