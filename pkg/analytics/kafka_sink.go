package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"agrismart/pkg/session"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes events to a topic, keyed by session so one visitor's
// events stay ordered on a partition.
type KafkaSink struct {
	writer  messageWriter
	now     func() time.Time
	timeout time.Duration
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		now:     time.Now,
		timeout: 2 * time.Second,
	}
}

type kafkaEvent struct {
	Name      string         `json:"name"`
	SessionID string         `json:"session_id,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func (s *KafkaSink) Track(ctx context.Context, name string, params map[string]any) error {
	sid := session.From(ctx)
	b, err := json.Marshal(kafkaEvent{Name: name, SessionID: sid, Params: params, Timestamp: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", name, err)
	}
	key := sid
	if key == "" {
		key = name
	}
	// a slow broker must not hold up the request that produced the event
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b}); err != nil {
		return fmt.Errorf("publish event %s: %w", name, err)
	}
	return nil
}

func (s *KafkaSink) Close() error { return s.writer.Close() }
