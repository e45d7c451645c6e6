package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/clock"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

type JobType string

const (
	JobIncrementFreeSlots JobType = "incrementFreeSlots"
	JobDecrementFreeSlots JobType = "decrementFreeSlots"
)

func (t JobType) String() string {
	return string(t)
}

// Job returns the capacity held by one booking to its lot (and spot).
type Job struct {
	Type       JobType
	BookingID  uuid.UUID
	LotID      uuid.UUID
	SpotID     *uuid.UUID
	EnqueuedAt time.Time
}

var (
	ErrQueueFull     = errs.NewKind(errs.ErrRetryableTimeout, "reconciliation queue is full")
	ErrQueueStopped  = errs.NewKind(errs.ErrRetryableTimeout, "reconciliation queue is stopped")
	ErrNotDeferrable = errs.NewKind(errs.ErrValidation, "decrement jobs must run synchronously")
)

const defaultBatch = 10

type Applier interface {
	Apply(ctx context.Context, job Job) error
}

// Sweeper finds terminal bookings whose capacity was never given back.
type Sweeper interface {
	Sweep(ctx context.Context, limit int) ([]Job, error)
}

// Queue is a single-consumer worker. Only increments are ever deferred, so a
// lagging queue can under-report free slots but never over-sell them.
type Queue struct {
	jobs       chan Job
	applier    Applier
	sweeper    Sweeper
	clock      clock.Clock
	interval   time.Duration
	batch      int
	sweepEvery int

	ticks    int
	stopped  atomic.Bool
	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewQueue(applier Applier, sweeper Sweeper, c clock.Clock, cfg config.ReconcileConfig) *Queue {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatch
	}
	size := cfg.QueueSize
	if size <= 0 {
		size = 1
	}
	return &Queue{
		jobs:       make(chan Job, size),
		applier:    applier,
		sweeper:    sweeper,
		clock:      c,
		interval:   cfg.Interval,
		batch:      batch,
		sweepEvery: cfg.SweepEvery,
		stop:       make(chan struct{}),
	}
}

// Enqueue never blocks. A full or stopped queue is reported to the caller,
// which then applies the job itself.
func (q *Queue) Enqueue(job Job) error {
	if job.Type != JobIncrementFreeSlots {
		return errs.Wrapf(ErrNotDeferrable, "job type %s", job.Type)
	}
	if q.stopped.Load() {
		return ErrQueueStopped
	}
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = q.clock.Now()
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Len reports the number of pending jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

func (q *Queue) Start() {
	q.wg.Add(1)
	go q.loop()
}

// Stop ends the ticker and drains what is left, bounded by ctx.
func (q *Queue) Stop(ctx context.Context) error {
	q.stopOnce.Do(func() {
		q.stopped.Store(true)
		close(q.stop)
	})

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	for {
		if err := ctx.Err(); err != nil {
			slog.Warn("reconciliation drain interrupted", slog.Int("remaining", q.Len()))
			return err
		}
		n, _ := q.RunOnce(ctx)
		if n == 0 {
			return nil
		}
	}
}

func (q *Queue) loop() {
	defer q.wg.Done()

	ctx := context.Background()
	q.sweep(ctx)

	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-q.stop:
			return
		case <-ticker.C:
			q.ticks++
			if q.sweepEvery > 0 && q.ticks%q.sweepEvery == 0 {
				q.sweep(ctx)
			}
			if _, err := q.RunOnce(ctx); err != nil {
				slog.Warn("reconciliation batch had failures", slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce applies at most one batch and returns how many jobs it took off
// the queue. Failed jobs are logged and dropped; the sweep picks them up
// again from the bookings table.
func (q *Queue) RunOnce(ctx context.Context) (int, error) {
	taken := 0
	var firstErr error
	for taken < q.batch {
		var job Job
		select {
		case job = <-q.jobs:
		default:
			return taken, firstErr
		}
		taken++

		if err := q.applier.Apply(ctx, job); err != nil {
			logFailure(ctx, job, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return taken, firstErr
}

// Sweep re-enqueues leaked holds and returns how many were queued.
func (q *Queue) Sweep(ctx context.Context) int {
	return q.sweep(ctx)
}

func (q *Queue) sweep(ctx context.Context) int {
	if q.sweeper == nil {
		return 0
	}
	free := cap(q.jobs) - len(q.jobs)
	if free <= 0 {
		return 0
	}

	found, err := q.sweeper.Sweep(ctx, free)
	if err != nil {
		slog.Warn("reconciliation sweep failed", slog.String("error", err.Error()))
		return 0
	}

	queued := 0
	for _, job := range found {
		if err := q.Enqueue(job); err != nil {
			break
		}
		queued++
	}
	if queued > 0 {
		slog.Info("reconciliation sweep queued unreleased holds", slog.Int("count", queued))
	}
	return queued
}

func logFailure(ctx context.Context, job Job, err error) {
	level := slog.LevelWarn
	if errs.Is(err, errs.ErrConsistencyFault) {
		level = slog.LevelError
	}
	attrs := []any{
		slog.String("job_type", job.Type.String()),
		slog.String("booking_id", job.BookingID.String()),
		slog.String("lot_id", job.LotID.String()),
		slog.Time("enqueued_at", job.EnqueuedAt),
		slog.String("error", err.Error()),
	}
	if job.SpotID != nil {
		attrs = append(attrs, slog.String("spot_id", job.SpotID.String()))
	}
	slog.Log(ctx, level, "reconciliation job dropped", attrs...)
}
