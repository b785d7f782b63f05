package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnLimiterBurst(t *testing.T) {
	l := NewConnLimiter(time.Hour, 2)

	assert.True(t, l.WsAllow())
	assert.True(t, l.WsAllow())
	// burst exhausted, next permit is an hour away
	assert.False(t, l.WsAllow())
}

func TestConnLimiterRefill(t *testing.T) {
	l := NewConnLimiter(10*time.Millisecond, 1)

	assert.True(t, l.WsAllow())
	assert.False(t, l.WsAllow())

	time.Sleep(15 * time.Millisecond)
	assert.True(t, l.WsAllow())
}
