package logcenter

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

// retention for log entries stored in Redis
const entryTTL = 10 * 24 * time.Hour

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LogEntry struct {
	Service   string `json:"service"`
	Level     string `json:"level"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// MultiLogger fans one log call out to several kratos loggers.
type MultiLogger struct {
	loggers []log.Logger
}

func newMultiLogger(loggers ...log.Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

func (m *MultiLogger) Log(level log.Level, keyvals ...interface{}) error {
	for _, logger := range m.loggers {
		if err := logger.Log(level, keyvals...); err != nil {
			return err
		}
	}
	return nil
}

// redisHandler is a log.Logger that stores entries in Redis as JSON,
// keyed by nanosecond timestamp, for centralized retrieval.
type redisHandler struct {
	client      *redis.Client
	serviceName string
}

func newRedisHandler(client *redis.Client, name string) *redisHandler {
	return &redisHandler{client: client, serviceName: name}
}

func (h *redisHandler) Log(level log.Level, keyvals ...interface{}) error {
	msg := ""
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			msg += fmt.Sprintf("%s=%v ", keyvals[i], keyvals[i+1])
		} else {
			msg += fmt.Sprintf("%s=MISSING_VALUE ", keyvals[i])
		}
	}
	nano := time.Now().UnixNano()
	entry := &LogEntry{
		Service:   h.serviceName,
		Level:     levelToString(level),
		Timestamp: nano,
		Message:   msg,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("log:%s:%d", h.serviceName, nano)
	if err := h.client.Set(context.Background(), key, data, entryTTL).Err(); err != nil {
		log.Error(err)
	}
	return nil
}

func newRedisClient(addr, passwd string, db int32) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: passwd,
		DB:       int(db),
	})
}

// NewLogger builds the process logger. In PRD the Redis handler is added
// next to stdout; everywhere else logs go to stdout only.
func NewLogger(env, svcName, addr, passwd string, db int32) *MultiLogger {
	stdout := log.NewStdLogger(os.Stdout)
	if env == "PRD" {
		handler := newRedisHandler(newRedisClient(addr, passwd, db), svcName)
		return newMultiLogger(stdout, handler)
	}
	return newMultiLogger(stdout)
}

func levelToString(level log.Level) string {
	switch level {
	case log.LevelDebug:
		return "DEBUG"
	case log.LevelInfo:
		return "INFO"
	case log.LevelWarn:
		return "WARN"
	case log.LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
