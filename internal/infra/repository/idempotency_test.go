//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
	repositorymock "github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIdempotencyRepository_TryInsert(t *testing.T) {
	ctx := context.Background()
	key, userID := uuid.New(), uuid.New()
	expiresAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		rows         int64
		queryErr     error
		wantInserted bool
		wantErr      bool
	}{
		{name: "first request inserts the key", rows: 1, wantInserted: true},
		{name: "existing key is left untouched", rows: 0, wantInserted: false},
		{name: "database error", queryErr: errors.New("boom"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

			mockQueries.EXPECT().TryInsertIdempotencyKey(ctx, mockDB, sqlc.TryInsertIdempotencyKeyParams{
				Key:         key,
				UserID:      userID,
				Endpoint:    "POST /bookings",
				RequestHash: "hash",
				ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
			}).Return(tc.rows, tc.queryErr)

			inserted, err := repo.TryInsert(ctx, key, userID, "POST /bookings", "hash", expiresAt)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantInserted, inserted)
		})
	}
}

func TestIdempotencyRepository_ClaimExpired(t *testing.T) {
	ctx := context.Background()
	key, userID := uuid.New(), uuid.New()

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

	gomock.InOrder(
		mockQueries.EXPECT().ClaimExpiredIdempotencyKey(ctx, mockDB, gomock.Any()).Return(int64(1), nil),
		mockQueries.EXPECT().ClaimExpiredIdempotencyKey(ctx, mockDB, gomock.Any()).Return(int64(0), nil),
	)

	claimed, err := repo.ClaimExpired(ctx, key, userID, "hash", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimExpired(ctx, key, userID, "hash", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestIdempotencyRepository_MarkCompleted(t *testing.T) {
	ctx := context.Background()
	key, userID, bookingID := uuid.New(), uuid.New(), uuid.New()

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

	mockQueries.EXPECT().UpdateIdempotencyKeyCompleted(ctx, mockDB, sqlc.UpdateIdempotencyKeyCompletedParams{
		Key:             key,
		UserID:          userID,
		ResultBookingID: pgconv.UUIDToPgtype(bookingID),
	}).Return(nil)

	require.NoError(t, repo.MarkCompleted(ctx, key, userID, bookingID))
}
