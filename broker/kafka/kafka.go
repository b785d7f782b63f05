package kafka

import (
	"context"
	"net"
	"strconv"

	"github.com/go-gotop/normfeed/broker"
	"github.com/go-gotop/normfeed/exchange"
	jsoniter "github.com/json-iterator/go"
	kafkaGo "github.com/segmentio/kafka-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ broker.Publisher = (*publisher)(nil)

// NewPublisher writes normalized messages to Kafka, one topic per data
// type ({prefix}.{type}), keyed by exchange so a partition keeps per-venue
// ordering.
func NewPublisher(brokers []string, opts ...Option) broker.Publisher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	w := &kafkaGo.Writer{
		Addr:         kafkaGo.TCP(brokers...),
		Balancer:     &kafkaGo.Hash{},
		Async:        o.async,
		BatchTimeout: o.batchTimeout,
		Logger:       &Logger{logger: o.logger},
		ErrorLogger:  &ErrorLogger{logger: o.logger},
		// the writer resolves the topic per message
		AllowAutoTopicCreation: o.autoCreateTopics,
	}
	return &publisher{writer: w, opts: o}
}

type publisher struct {
	writer *kafkaGo.Writer
	opts   *options
}

func (p *publisher) Publish(ctx context.Context, msg exchange.NormalizedMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	route := msg.Route()
	kmsg := kafkaGo.Message{
		Topic: p.opts.topicPrefix + "." + route.DataType,
		Key:   []byte(route.Exchange.String()),
		Value: value,
		Headers: mapToKafkaHeaders(broker.Headers{
			"type":     string(msg.Type()),
			"exchange": route.Exchange.String(),
		}),
	}
	return p.writer.WriteMessages(ctx, kmsg)
}

func (p *publisher) Close() error {
	return p.writer.Close()
}

// CreateTopic provisions a topic ahead of publishing.
func CreateTopic(addr string, topic string, partitions int, replicas int) error {
	conn, err := kafkaGo.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	cc, err := kafkaGo.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer cc.Close()

	return cc.CreateTopics(kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: replicas,
	})
}

// DeleteTopic removes a topic.
func DeleteTopic(addr string, topic string) error {
	conn, err := kafkaGo.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.DeleteTopics(topic)
}
