//go:build unit || e2e

package builder

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	Code             string
	UserID           uuid.UUID
	LotID            uuid.UUID
	SpotID           *uuid.UUID
	VehicleID        uuid.UUID
	Plate            string
	VehicleType      vehicle.Type
	Start            time.Time
	End              time.Time
	Status           booking.Status
	Rule             booking.PriceSnapshot
	BasePrice        int64
	Policy           booking.CancelPolicy
	CheckInTime      *time.Time
	CapacityReleased bool
	CreatedAt        time.Time
}

// NewBookingBuilder starts from a pending 10:00-12:00 hourly booking at 15000/h.
func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:          uuid.New(),
		Code:        "ABCD2345",
		UserID:      uuid.New(),
		LotID:       uuid.New(),
		VehicleID:   uuid.New(),
		Plate:       "30A-12345",
		VehicleType: vehicle.TypeStandard,
		Start:       start,
		End:         start.Add(2 * time.Hour),
		Status:      booking.StatusPending,
		Rule: booking.PriceSnapshot{
			RuleID: uuid.New(),
			Unit:   booking.UnitHourly,
			Rate:   15000,
		},
		BasePrice: 30000,
		CreatedAt: start.Add(-time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) snapshot() booking.Snapshot {
	return booking.Snapshot{
		ID:               b.ID,
		Code:             b.Code,
		UserID:           b.UserID,
		LotID:            b.LotID,
		SpotID:           b.SpotID,
		VehicleID:        b.VehicleID,
		Plate:            b.Plate,
		VehicleType:      b.VehicleType,
		Start:            b.Start,
		End:              b.End,
		Status:           b.Status,
		Pricing:          b.Rule,
		BasePrice:        b.BasePrice,
		Policy:           b.Policy,
		CheckInTime:      b.CheckInTime,
		CapacityReleased: b.CapacityReleased,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.Reconstruct(b.snapshot())
}

func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	s := b.snapshot()
	return sqlc.Bookings{
		ID:                 s.ID,
		BookingCode:        s.Code,
		UserID:             s.UserID,
		LotID:              s.LotID,
		SpotID:             pgconv.UUIDPtrToPgtype(s.SpotID),
		VehicleID:          s.VehicleID,
		LicensePlate:       s.Plate,
		VehicleType:        s.VehicleType.String(),
		StartTime:          pgconv.TimeToPgtype(s.Start),
		EndTime:            pgconv.TimeToPgtype(s.End),
		Status:             s.Status.String(),
		PricingRuleID:      s.Pricing.RuleID,
		PricingUnit:        s.Pricing.Unit.String(),
		Rate:               s.Pricing.Rate,
		MaxDurationSeconds: pgconv.DurationToSeconds(s.Pricing.MaxDuration),
		BasePrice:          s.BasePrice,
		MaxCancelTime:      pgconv.TimePtrToPgtype(s.Policy.MaxCancelTime),
		RefundPercentage:   int32(s.Policy.RefundPercentage),
		CheckInTime:        pgconv.TimePtrToPgtype(s.CheckInTime),
		CapacityReleased:   s.CapacityReleased,
		CreatedAt:          pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:          pgconv.TimeToPgtype(s.CreatedAt),
	}
}

type VehicleBuilder struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Plate   string
	Type    vehicle.Type
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Plate:   "30A-12345",
		Type:    vehicle.TypeStandard,
	}
}

func (b *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(b)
	return b
}

func (b *VehicleBuilder) BuildDomain() *vehicle.Vehicle {
	return vehicle.ReconstructVehicle(b.ID, b.OwnerID, b.Plate, b.Type, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
}
