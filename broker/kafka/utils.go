package kafka

import (
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/go-gotop/normfeed/broker"
)

func kafkaHeadersToMap(h []kafkaGo.Header) broker.Headers {
	m := broker.Headers{}
	for _, v := range h {
		m[v.Key] = string(v.Value)
	}
	return m
}

func mapToKafkaHeaders(m broker.Headers) []kafkaGo.Header {
	hs := make([]kafkaGo.Header, 0, len(m))
	for k, v := range m {
		hs = append(hs, kafkaGo.Header{Key: k, Value: []byte(v)})
	}
	return hs
}
