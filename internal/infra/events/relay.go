package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// JobStore is the slice of the notification job table the relay needs.
type JobStore interface {
	ClaimQueued(ctx context.Context, limit int) ([]sqlc.NotificationJobs, error)
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError *string) error
}

// Outbox runs fn in a transaction; claimed jobs stay locked until it returns.
type Outbox interface {
	WithinOutbox(ctx context.Context, fn func(ctx context.Context, jobs JobStore) error) error
}

const kindHeader = "kind"

// Relay moves queued notification jobs to the broker. A job that keeps
// failing is parked as failed after maxAttempts.
type Relay struct {
	outbox      Outbox
	publisher   Publisher
	interval    time.Duration
	batch       int
	maxAttempts int

	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewRelay(outbox Outbox, publisher Publisher, cfg config.EventsConfig) *Relay {
	return &Relay{
		outbox:      outbox,
		publisher:   publisher,
		interval:    cfg.PollInterval,
		batch:       cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		stop:        make(chan struct{}),
	}
}

func (r *Relay) Start() {
	r.wg.Add(1)
	go r.loop()
}

// Stop ends polling and waits for the in-flight batch, bounded by ctx.
func (r *Relay) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.stop) })

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return r.publisher.Close()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if _, err := r.RunOnce(context.Background()); err != nil {
				slog.Warn("event relay batch failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce publishes one batch and returns how many jobs were sent.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.outbox.WithinOutbox(ctx, func(ctx context.Context, jobs JobStore) error {
		sent = 0
		claimed, err := jobs.ClaimQueued(ctx, r.batch)
		if err != nil {
			return err
		}

		for _, job := range claimed {
			pubErr := r.publisher.Publish(ctx, toMessage(job))
			if pubErr == nil {
				if err := jobs.UpdateJobStatus(ctx, job.ID, repository.JobStatusSent, nil); err != nil {
					return err
				}
				sent++
				continue
			}

			// Leave the rest queued untouched while the broker is down.
			if errs.Is(pubErr, ErrBrokerUnavailable) {
				return nil
			}

			status := repository.JobStatusQueued
			if int(job.Attempts)+1 >= r.maxAttempts {
				status = repository.JobStatusFailed
			}
			msg := pubErr.Error()
			slog.Warn("event publish failed",
				slog.String("job_id", job.ID.String()),
				slog.String("kind", job.Kind),
				slog.String("status", status),
				slog.String("error", msg))
			if err := jobs.UpdateJobStatus(ctx, job.ID, status, &msg); err != nil {
				return err
			}
		}
		return nil
	})
	return sent, err
}

func toMessage(job sqlc.NotificationJobs) kafka.Message {
	return kafka.Message{
		Key:   messageKey(job),
		Value: job.Payload,
		Headers: []kafka.Header{
			{Key: kindHeader, Value: []byte(job.Kind)},
		},
	}
}

// messageKey keeps every event of one booking on one partition, in order.
// Payloads without a booking id fall back to the job id.
func messageKey(job sqlc.NotificationJobs) []byte {
	var ref struct {
		BookingID uuid.UUID `json:"booking_id"`
	}
	if err := json.Unmarshal(job.Payload, &ref); err != nil || ref.BookingID == uuid.Nil {
		return []byte(job.ID.String())
	}
	return []byte(ref.BookingID.String())
}
