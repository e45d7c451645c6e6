//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingViewQueries struct {
	mock.Mock
}

func (m *MockBookingViewQueries) GetBookingView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.BookingViewRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.BookingViewRow), args.Error(1)
}

func (m *MockBookingViewQueries) ListBookingsByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserFirstPageParams) ([]sqlc.BookingViewRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.BookingViewRow), args.Error(1)
}

func (m *MockBookingViewQueries) ListBookingsByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserKeysetParams) ([]sqlc.BookingViewRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.BookingViewRow), args.Error(1)
}

func (m *MockBookingViewQueries) ListOpenReservationsByLot(ctx context.Context, db sqlc.DBTX, lotID uuid.UUID) ([]sqlc.BookingViewRow, error) {
	args := m.Called(ctx, db, lotID)
	return args.Get(0).([]sqlc.BookingViewRow), args.Error(1)
}

func (m *MockBookingViewQueries) GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Bookings), args.Error(1)
}

func (m *MockBookingViewQueries) ListUnreleasedBookings(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.ListUnreleasedBookingsRow, error) {
	args := m.Called(ctx, db, limit)
	return args.Get(0).([]sqlc.ListUnreleasedBookingsRow), args.Error(1)
}

func bookingViewRow(id uuid.UUID, spotID *uuid.UUID) sqlc.BookingViewRow {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	row := sqlc.BookingViewRow{
		ID:           id,
		BookingCode:  "ABCD2345",
		UserID:       uuid.New(),
		LotID:        uuid.New(),
		LotName:      "Central",
		LotOwnerID:   uuid.New(),
		SpotID:       pgconv.UUIDPtrToPgtype(spotID),
		VehicleID:    uuid.New(),
		LicensePlate: "30A-12345",
		VehicleType:  "standard",
		StartTime:    pgconv.TimeToPgtype(start),
		EndTime:      pgconv.TimeToPgtype(start.Add(2 * time.Hour)),
		Status:       "confirmed",
		PricingUnit:  "hourly",
		Rate:         15000,
		BasePrice:    30000,
		OvertimeFee:  5000,
		CreatedAt:    pgconv.TimeToPgtype(start.Add(-time.Hour)),
		UpdatedAt:    pgconv.TimeToPgtype(start.Add(-time.Hour)),
	}
	if spotID != nil {
		row.SpotNumber = pgtype.Text{String: "A-01", Valid: true}
	}
	return row
}

func TestBookingReadStore_FindByID(t *testing.T) {
	spotID := uuid.New()

	tests := []struct {
		name      string
		row       sqlc.BookingViewRow
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "counter-mode booking", row: bookingViewRow(uuid.New(), nil)},
		{name: "spot booking", row: bookingViewRow(uuid.New(), &spotID)},
		{name: "not found", row: sqlc.BookingViewRow{ID: uuid.New()}, mockError: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", row: sqlc.BookingViewRow{ID: uuid.New()}, mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockBookingViewQueries)
			mockQueries.On("GetBookingView", mock.Anything, mock.Anything, tt.row.ID).Return(tt.row, tt.mockError)

			store := NewBookingReadStore(mockQueries, nil)
			view, err := store.FindByID(context.Background(), tt.row.ID)

			if tt.mockError != nil {
				assert.Error(t, err)
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.row.ID, view.ID)
				assert.Equal(t, tt.row.BasePrice+tt.row.OvertimeFee, view.TotalPrice)
				assert.Equal(t, pgconv.UUIDPtrFromPgtype(tt.row.SpotID), view.SpotID)
				assert.Equal(t, tt.row.SpotNumber.Valid, view.SpotNumber != nil)
				assert.Nil(t, view.CheckInTime)
			}

			mockQueries.AssertExpectations(t)
		})
	}
}

func TestBookingReadStore_FindRef(t *testing.T) {
	row := builder.NewBookingBuilder().BuildInfra()

	mockQueries := new(MockBookingViewQueries)
	mockQueries.On("GetBookingByID", mock.Anything, mock.Anything, row.ID).Return(row, nil)

	ref, err := NewBookingReadStore(mockQueries, nil).FindRef(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, row.UserID, ref.UserID)
	assert.Equal(t, row.LotID, ref.LotID)
	assert.Equal(t, booking.Status(row.Status), ref.Status)
	mockQueries.AssertExpectations(t)
}

func TestBookingReadStore_Unreleased(t *testing.T) {
	spotID := uuid.New()
	rows := []sqlc.ListUnreleasedBookingsRow{
		{ID: uuid.New(), LotID: uuid.New()},
		{ID: uuid.New(), LotID: uuid.New(), SpotID: pgconv.UUIDToPgtype(spotID)},
	}

	mockQueries := new(MockBookingViewQueries)
	mockQueries.On("ListUnreleasedBookings", mock.Anything, mock.Anything, int32(50)).Return(rows, nil)

	refs, err := NewBookingReadStore(mockQueries, nil).Unreleased(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Nil(t, refs[0].SpotID)
	assert.Equal(t, &spotID, refs[1].SpotID)
	mockQueries.AssertExpectations(t)
}

type MockLotViewQueries struct {
	mock.Mock
}

func (m *MockLotViewQueries) GetLotAvailability(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetLotAvailabilityRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.GetLotAvailabilityRow), args.Error(1)
}

func TestLotReadStore_FindAvailability(t *testing.T) {
	tests := []struct {
		name         string
		verification string
		status       string
		freeSlots    int32
		wantBookable bool
	}{
		{name: "verified active with room", verification: "verified", status: "active", freeSlots: 3, wantBookable: true},
		{name: "full", verification: "verified", status: "active", freeSlots: 0, wantBookable: false},
		{name: "pending verification", verification: "pending", status: "active", freeSlots: 3, wantBookable: false},
		{name: "inactive", verification: "verified", status: "inactive", freeSlots: 3, wantBookable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := sqlc.GetLotAvailabilityRow{
				ID:             uuid.New(),
				OwnerID:        uuid.New(),
				Name:           "Central",
				Capacity:       5,
				FreeSlots:      tt.freeSlots,
				Status:         tt.status,
				Verification:   tt.verification,
				SpotCount:      5,
				AvailableSpots: int64(tt.freeSlots),
			}
			mockQueries := new(MockLotViewQueries)
			mockQueries.On("GetLotAvailability", mock.Anything, mock.Anything, row.ID).Return(row, nil)

			view, err := NewLotReadStore(mockQueries, nil).FindAvailability(context.Background(), row.ID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantBookable, view.Bookable)
			assert.Equal(t, int(tt.freeSlots), view.FreeSlots)
			assert.Equal(t, row.OwnerID, view.OwnerID)
		})
	}
}
