package shared

import (
	"context"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx hands out repositories bound to one transaction. Row locks are taken in
// the order lot, spot, booking.
type Tx interface {
	Lots() LotRepository
	Spots() SpotRepository
	Bookings() BookingRepository
	Vehicles() VehicleRepository
	Pricing() PricingRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reviews() ReviewRepository
	Reads() CommandReads
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingRef, error)
	UnreleasedBookings(ctx context.Context, limit int) ([]BookingRef, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type LotRepository interface {
	Create(ctx context.Context, l *lot.Lot) error
	Get(ctx context.Context, id uuid.UUID) (*lot.Lot, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*lot.Lot, error)
	Update(ctx context.Context, l *lot.Lot) error
}

type SpotRepository interface {
	Create(ctx context.Context, s *lot.Spot) error
	GetForUpdate(ctx context.Context, lotID, spotID uuid.UUID) (*lot.Spot, error)
	ListByLotForUpdate(ctx context.Context, lotID uuid.UUID) ([]*lot.Spot, error)
	CountByLot(ctx context.Context, lotID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, s *lot.Spot) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	HasOverlap(ctx context.Context, q OverlapQuery) (bool, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	Get(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
}

type PricingRepository interface {
	Upsert(ctx context.Context, rule booking.PricingRule) (booking.PricingRule, error)
	Find(ctx context.Context, lotID uuid.UUID, unit booking.Unit, vehicleType vehicle.Type) (booking.PricingRule, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, key, userID, bookingID uuid.UUID) error
	Delete(ctx context.Context, key, userID uuid.UUID) error
	ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*review.Review, error)
	Update(ctx context.Context, r *review.Review) error
	HasCompletedBooking(ctx context.Context, userID, lotID uuid.UUID) (bool, error)
	RecalcLotStats(ctx context.Context, lotID uuid.UUID, now time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

// AvailabilityInvalidator drops cached availability after a committed change.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, lotID uuid.UUID) error
}
