package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

// Publisher delivers one batch of messages or fails as a whole.
type Publisher interface {
	Publish(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes to one topic behind a circuit breaker. While the
// breaker is open Publish fails fast with ErrBrokerUnavailable.
type KafkaPublisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
}

var ErrBrokerUnavailable = errs.New("event broker unavailable")

func NewKafkaPublisher(cfg config.EventsConfig) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w)
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	settings := gobreaker.Settings{
		Name:        "kafka-publisher",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	return &KafkaPublisher{
		writer:  w,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msgs ...kafka.Message) error {
	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(ctx, msgs...)
	})
	if errs.IsAny(err, gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests) {
		return errs.Mark(err, ErrBrokerUnavailable)
	}
	return err
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
