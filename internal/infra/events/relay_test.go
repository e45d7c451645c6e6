//go:build unit

package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusUpdate struct {
	id        uuid.UUID
	status    string
	lastError *string
}

type fakeJobStore struct {
	queued  []sqlc.NotificationJobs
	updates []statusUpdate
}

func (s *fakeJobStore) ClaimQueued(_ context.Context, limit int) ([]sqlc.NotificationJobs, error) {
	if len(s.queued) > limit {
		return s.queued[:limit], nil
	}
	return s.queued, nil
}

func (s *fakeJobStore) UpdateJobStatus(_ context.Context, id uuid.UUID, status string, lastError *string) error {
	s.updates = append(s.updates, statusUpdate{id: id, status: status, lastError: lastError})
	return nil
}

type fakeOutbox struct {
	store *fakeJobStore
}

func (o *fakeOutbox) WithinOutbox(ctx context.Context, fn func(ctx context.Context, jobs JobStore) error) error {
	return fn(ctx, o.store)
}

type fakePublisher struct {
	errs      []error
	published []kafka.Message
	closed    bool
}

func (p *fakePublisher) Publish(_ context.Context, msgs ...kafka.Message) error {
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return err
		}
	}
	p.published = append(p.published, msgs...)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func job(kind string, attempts int32) sqlc.NotificationJobs {
	return sqlc.NotificationJobs{
		ID:       uuid.New(),
		Kind:     kind,
		Topic:    uuid.NewString(),
		Payload:  []byte(`{"kind":"` + kind + `"}`),
		Status:   repository.JobStatusQueued,
		Attempts: attempts,
	}
}

func relayConfig() config.EventsConfig {
	return config.EventsConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    10,
		MaxAttempts:  3,
	}
}

func TestRelay_RunOnce(t *testing.T) {
	tests := []struct {
		name         string
		jobs         []sqlc.NotificationJobs
		publishErrs  []error
		wantSent     int
		wantStatuses []string
	}{
		{
			name:         "publishes and marks sent",
			jobs:         []sqlc.NotificationJobs{job("booking.created", 0), job("booking.confirmed", 0)},
			wantSent:     2,
			wantStatuses: []string{repository.JobStatusSent, repository.JobStatusSent},
		},
		{
			name:         "failure below max attempts stays queued",
			jobs:         []sqlc.NotificationJobs{job("booking.created", 0)},
			publishErrs:  []error{errors.New("leader not available")},
			wantStatuses: []string{repository.JobStatusQueued},
		},
		{
			name:         "failure at max attempts is parked",
			jobs:         []sqlc.NotificationJobs{job("booking.created", 2)},
			publishErrs:  []error{errors.New("leader not available")},
			wantStatuses: []string{repository.JobStatusFailed},
		},
		{
			name:        "open breaker leaves batch untouched",
			jobs:        []sqlc.NotificationJobs{job("booking.created", 0), job("booking.cancelled", 0)},
			publishErrs: []error{ErrBrokerUnavailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeJobStore{queued: tt.jobs}
			pub := &fakePublisher{errs: tt.publishErrs}
			relay := NewRelay(&fakeOutbox{store: store}, pub, relayConfig())

			sent, err := relay.RunOnce(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantSent, sent)
			require.Len(t, store.updates, len(tt.wantStatuses))
			for i, want := range tt.wantStatuses {
				assert.Equal(t, tt.jobs[i].ID, store.updates[i].id)
				assert.Equal(t, want, store.updates[i].status)
				if want == repository.JobStatusSent {
					assert.Nil(t, store.updates[i].lastError)
				} else {
					assert.NotNil(t, store.updates[i].lastError)
				}
			}
		})
	}
}

func TestRelay_MessageCarriesKindAndKey(t *testing.T) {
	j := job("booking.completed", 0)
	store := &fakeJobStore{queued: []sqlc.NotificationJobs{j}}
	pub := &fakePublisher{}

	_, err := NewRelay(&fakeOutbox{store: store}, pub, relayConfig()).RunOnce(context.Background())

	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	msg := pub.published[0]
	assert.Equal(t, j.Payload, msg.Value)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, kindHeader, msg.Headers[0].Key)
	assert.Equal(t, []byte("booking.completed"), msg.Headers[0].Value)
}

func TestRelay_MessageKey(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		name    string
		payload string
		wantKey func(j sqlc.NotificationJobs) string
	}{
		{
			name:    "booking events key by booking id",
			payload: `{"booking_id":"` + bookingID.String() + `","status":"completed"}`,
			wantKey: func(sqlc.NotificationJobs) string { return bookingID.String() },
		},
		{
			name:    "payload without booking id",
			payload: `{"kind":"digest"}`,
			wantKey: func(j sqlc.NotificationJobs) string { return j.ID.String() },
		},
		{
			name:    "malformed payload",
			payload: `not json`,
			wantKey: func(j sqlc.NotificationJobs) string { return j.ID.String() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := job("booking.completed", 0)
			j.Payload = []byte(tt.payload)

			msg := toMessage(j)

			assert.Equal(t, tt.wantKey(j), string(msg.Key))
			assert.NotEqual(t, j.Topic, string(msg.Key))
		})
	}

	t.Run("two events of one booking share a key", func(t *testing.T) {
		payload := []byte(`{"booking_id":"` + bookingID.String() + `"}`)
		first, second := job("booking.created", 0), job("booking.confirmed", 0)
		first.Payload, second.Payload = payload, payload

		assert.Equal(t, toMessage(first).Key, toMessage(second).Key)
	})
}

func TestRelay_StartStop(t *testing.T) {
	store := &fakeJobStore{}
	pub := &fakePublisher{}
	relay := NewRelay(&fakeOutbox{store: store}, pub, relayConfig())

	relay.Start()
	time.Sleep(30 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.Stop(ctx))
	assert.True(t, pub.closed)
}

type failingWriter struct {
	calls int
}

func (w *failingWriter) WriteMessages(context.Context, ...kafka.Message) error {
	w.calls++
	return errors.New("dial tcp: connection refused")
}

func (w *failingWriter) Close() error { return nil }

func TestKafkaPublisher_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	w := &failingWriter{}
	pub := newKafkaPublisher(w)

	for i := 0; i < 3; i++ {
		err := pub.Publish(context.Background(), kafka.Message{Value: []byte("x")})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrBrokerUnavailable)
	}

	err := pub.Publish(context.Background(), kafka.Message{Value: []byte("x")})
	require.Error(t, err)
	assert.True(t, errs.Is(err, ErrBrokerUnavailable))
	assert.Equal(t, 3, w.calls)
}
