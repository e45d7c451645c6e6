//go:build unit

package repository

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type outboxQueries struct {
	mock.Mock
}

func (m *outboxQueries) CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *outboxQueries) ClaimQueuedNotificationJobs(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.NotificationJobs, error) {
	args := m.Called(ctx, db, limit)
	return args.Get(0).([]sqlc.NotificationJobs), args.Error(1)
}

func (m *outboxQueries) UpdateNotificationJobStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateNotificationJobStatusParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func TestNotificationRepository_CreateJob(t *testing.T) {
	runAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	q := new(outboxQueries)
	q.On("CreateNotificationJob", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateNotificationJobParams) bool {
		return p.Kind == "booking.confirmed" && p.Status == JobStatusQueued && p.RunAt.Valid && p.RunAt.Time.Equal(runAt)
	})).Return(nil).Once()

	err := NewNotificationRepository(q, nil).CreateJob(context.Background(), "booking.confirmed", "topic", []byte(`{}`), runAt)

	require.NoError(t, err)
	q.AssertExpectations(t)
}

func TestNotificationRepository_UpdateJobStatus(t *testing.T) {
	id := uuid.New()

	t.Run("sent clears last_error", func(t *testing.T) {
		q := new(outboxQueries)
		q.On("UpdateNotificationJobStatus", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpdateNotificationJobStatusParams) bool {
			return p.ID == id && p.Status == JobStatusSent && !p.LastError.Valid
		})).Return(nil).Once()

		require.NoError(t, NewNotificationRepository(q, nil).UpdateJobStatus(context.Background(), id, JobStatusSent, nil))
		q.AssertExpectations(t)
	})

	t.Run("long errors are cut on a rune boundary", func(t *testing.T) {
		long := strings.Repeat("é", maxLastErrorLen)
		var got sqlc.UpdateNotificationJobStatusParams
		q := new(outboxQueries)
		q.On("UpdateNotificationJobStatus", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(2).(sqlc.UpdateNotificationJobStatusParams) }).
			Return(nil)

		require.NoError(t, NewNotificationRepository(q, nil).UpdateJobStatus(context.Background(), id, JobStatusQueued, &long))

		assert.True(t, got.LastError.Valid)
		assert.LessOrEqual(t, len(got.LastError.String), maxLastErrorLen)
		assert.True(t, utf8.ValidString(got.LastError.String))
	})

	t.Run("driver failure", func(t *testing.T) {
		q := new(outboxQueries)
		q.On("UpdateNotificationJobStatus", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		err := NewNotificationRepository(q, nil).UpdateJobStatus(context.Background(), id, JobStatusFailed, nil)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
