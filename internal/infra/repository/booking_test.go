//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"
	repositorymock "github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/mock/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	spotID := uuid.New()
	cancelBy := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.SpotID = &spotID
		b.Policy = booking.CancelPolicy{MaxCancelTime: &cancelBy, RefundPercentage: 50}
	}).BuildDomain()

	testCases := []struct {
		name       string
		queryErr   error
		errIs      error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{
			name:     "error: booking code collision",
			queryErr: &pgconn.PgError{Code: "23505", ConstraintName: "bookings_code_unique"},
			errIs:    booking.ErrCodeTaken,
		},
		{
			name:       "error: foreign key violated",
			queryErr:   &pgconn.PgError{Code: "23503", ConstraintName: "bookings_vehicle_id_fkey"},
			expectKind: infra.KindForeignKeyViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			mockQueries.EXPECT().CreateBooking(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateBookingParams) error {
					assert.Equal(t, b.ID(), arg.ID)
					assert.Equal(t, pgconv.UUIDToPgtype(spotID), arg.SpotID)
					assert.Equal(t, "hourly", arg.PricingUnit)
					assert.Equal(t, int64(15000), arg.Rate)
					assert.Equal(t, int32(50), arg.RefundPercentage)
					assert.True(t, arg.MaxCancelTime.Valid)
					return tc.queryErr
				})

			err := repo.Create(ctx, b)

			switch {
			case tc.errIs != nil:
				assert.ErrorIs(t, err, tc.errIs)
			case tc.expectKind != "":
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestBookingRepository_GetForUpdate_RoundTrip(t *testing.T) {
	ctx := context.Background()
	checkIn := time.Date(2025, 6, 1, 10, 5, 0, 0, time.UTC)
	bb := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.Status = booking.StatusActive
		b.CheckInTime = &checkIn
	})
	want := bb.BuildDomain()

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)

	mockQueries.EXPECT().GetBookingByIDForUpdate(ctx, mockDB, want.ID()).Return(bb.BuildInfra(), nil)

	got, err := repo.GetForUpdate(ctx, want.ID())
	require.NoError(t, err)
	if diff := cmp.Diff(want.Snapshot(), got.Snapshot()); diff != "" {
		t.Errorf("booking mismatch (-want +got):\n%s", diff)
	}
}

func TestBookingRepository_GetNotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)

	mockQueries.EXPECT().GetBookingByID(ctx, mockDB, id).Return(sqlc.Bookings{}, pgx.ErrNoRows)

	_, err := repo.Get(ctx, id)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestBookingRepository_HasOverlap(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	window, err := booking.NewTimeWindow(start, start.Add(2*time.Hour))
	require.NoError(t, err)
	lotID := uuid.New()
	spotID := uuid.New()

	t.Run("spot query uses the spot overlap check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewBookingRepository(mockQueries, mockDB)

		mockQueries.EXPECT().HasOverlappingSpotBooking(ctx, mockDB, sqlc.HasOverlappingSpotBookingParams{
			SpotID:    pgconv.UUIDToPgtype(spotID),
			StartTime: pgconv.TimeToPgtype(window.Start()),
			EndTime:   pgconv.TimeToPgtype(window.End()),
		}).Return(true, nil)

		found, err := repo.HasOverlap(ctx, shared.OverlapQuery{LotID: lotID, SpotID: &spotID, Window: window})
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("lot query uses the lot overlap check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewBookingRepository(mockQueries, mockDB)

		mockQueries.EXPECT().HasOverlappingLotBooking(ctx, mockDB, sqlc.HasOverlappingLotBookingParams{
			LotID:     lotID,
			StartTime: pgconv.TimeToPgtype(window.Start()),
			EndTime:   pgconv.TimeToPgtype(window.End()),
		}).Return(false, nil)

		found, err := repo.HasOverlap(ctx, shared.OverlapQuery{LotID: lotID, Window: window})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewBookingRepository(mockQueries, mockDB)

		mockQueries.EXPECT().HasOverlappingLotBooking(ctx, mockDB, gomock.Any()).Return(false, errors.New("timeout"))

		_, err := repo.HasOverlap(ctx, shared.OverlapQuery{LotID: lotID, Window: window})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
