package kafka

import (
	"testing"

	"github.com/go-gotop/normfeed/broker"
	"github.com/stretchr/testify/assert"
)

func TestHeadersRoundTrip(t *testing.T) {
	in := broker.Headers{
		"type":     "trade",
		"exchange": "bybit",
	}
	out := kafkaHeadersToMap(mapToKafkaHeaders(in))
	assert.Equal(t, in, out)

	assert.Empty(t, mapToKafkaHeaders(nil))
	assert.Equal(t, broker.Headers{}, kafkaHeadersToMap(nil))
}
