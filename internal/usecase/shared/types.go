package shared

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingRef is the unlocked view a command needs to know which rows to lock.
type BookingRef struct {
	ID     uuid.UUID
	UserID uuid.UUID
	LotID  uuid.UUID
	SpotID *uuid.UUID
	Status booking.Status
}

// OverlapQuery targets one spot, or the lot-level bookings when SpotID is nil.
type OverlapQuery struct {
	LotID  uuid.UUID
	SpotID *uuid.UUID
	Window booking.TimeWindow
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
