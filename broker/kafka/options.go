package kafka

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

type options struct {
	topicPrefix      string
	async            bool
	autoCreateTopics bool
	batchTimeout     time.Duration
	logger           *log.Helper
}

func defaultOptions() *options {
	return &options{
		topicPrefix:  "normalized",
		batchTimeout: time.Second,
		logger:       log.NewHelper(log.DefaultLogger),
	}
}

type Option func(*options)

// WithTopicPrefix changes the topic namespace, default "normalized".
func WithTopicPrefix(prefix string) Option {
	return func(o *options) {
		o.topicPrefix = prefix
	}
}

// WithAsync makes WriteMessages fire-and-forget.
func WithAsync() Option {
	return func(o *options) {
		o.async = true
	}
}

// WithAutoCreateTopics lets the broker create missing topics.
func WithAutoCreateTopics() Option {
	return func(o *options) {
		o.autoCreateTopics = true
	}
}

// WithBatchTimeout bounds how long the writer buffers before flushing.
func WithBatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.batchTimeout = d
	}
}

// WithLogger replaces the default kratos logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = log.NewHelper(logger)
	}
}
