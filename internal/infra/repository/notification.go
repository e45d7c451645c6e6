package repository

import (
	"context"
	"strings"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// Outbox job lifecycle: queued -> sent, or queued -> failed once the relay
// gives up. A failed publish below the attempt limit stays queued.
const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

// maxLastErrorLen bounds what a misbehaving broker can write into last_error.
const maxLastErrorLen = 1024

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
	ClaimQueuedNotificationJobs(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.NotificationJobs, error)
	UpdateNotificationJobStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateNotificationJobStatusParams) error
}

// NotificationRepository is the transactional outbox: booking commands
// enqueue in their own transaction and the event relay drains it.
type NotificationRepository struct {
	queries NotificationWriteQueries
	db      sqlc.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db sqlc.DBTX) *NotificationRepository {
	return &NotificationRepository{queries: queries, db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if err := r.queries.CreateNotificationJob(ctx, r.db, sqlc.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  JobStatusQueued,
	}); err != nil {
		return infra.WrapRepoErr("enqueue "+kind+" job", err)
	}
	return nil
}

// ClaimQueued locks up to limit due jobs (FOR UPDATE SKIP LOCKED), so two
// relays never publish the same job.
func (r *NotificationRepository) ClaimQueued(ctx context.Context, limit int) ([]sqlc.NotificationJobs, error) {
	jobs, err := r.queries.ClaimQueuedNotificationJobs(ctx, r.db, int32(limit))
	if err != nil {
		return nil, infra.WrapRepoErr("claim queued jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError *string) error {
	if lastError != nil && len(*lastError) > maxLastErrorLen {
		trimmed := strings.ToValidUTF8((*lastError)[:maxLastErrorLen], "")
		lastError = &trimmed
	}
	if err := r.queries.UpdateNotificationJobStatus(ctx, r.db, sqlc.UpdateNotificationJobStatusParams{
		ID:        jobID,
		Status:    status,
		LastError: pgconv.StringPtrToPgtype(lastError),
	}); err != nil {
		return infra.WrapRepoErr("mark job "+status, err)
	}
	return nil
}
