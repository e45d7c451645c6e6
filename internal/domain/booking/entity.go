package booking

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition   = errs.NewKind(errs.ErrInvalidState, "transition not allowed from current booking status")
	ErrCancelWindowExpired = errs.NewKind(errs.ErrPolicyWindowExpired, "cancellation time has passed according to policy")
	ErrCodeTaken           = errs.NewKind(errs.ErrConflict, "booking code already in use")
)

type CancelPolicy struct {
	MaxCancelTime    *time.Time
	RefundPercentage int
}

type Booking struct {
	id               uuid.UUID
	code             string
	userID           uuid.UUID
	lotID            uuid.UUID
	spotID           *uuid.UUID
	vehicleID        uuid.UUID
	plate            string
	vehicleType      vehicle.Type
	window           TimeWindow
	status           Status
	pricing          PriceSnapshot
	basePrice        int64
	overtimeFee      int64
	policy           CancelPolicy
	checkInTime      *time.Time
	checkOutTime     *time.Time
	cancelledAt      *time.Time
	capacityReleased bool
	createdAt        time.Time
	updatedAt        time.Time
}

type Snapshot struct {
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
	Status           Status
	Pricing          PriceSnapshot
	BasePrice        int64
	OvertimeFee      int64
	Policy           CancelPolicy
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	CancelledAt      *time.Time
	CapacityReleased bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:               s.ID,
		code:             s.Code,
		userID:           s.UserID,
		lotID:            s.LotID,
		spotID:           s.SpotID,
		vehicleID:        s.VehicleID,
		plate:            s.Plate,
		vehicleType:      s.VehicleType,
		window:           TimeWindow{start: s.Start, end: s.End},
		status:           s.Status,
		pricing:          s.Pricing,
		basePrice:        s.BasePrice,
		overtimeFee:      s.OvertimeFee,
		policy:           s.Policy,
		checkInTime:      s.CheckInTime,
		checkOutTime:     s.CheckOutTime,
		cancelledAt:      s.CancelledAt,
		capacityReleased: s.CapacityReleased,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:               b.id,
		Code:             b.code,
		UserID:           b.userID,
		LotID:            b.lotID,
		SpotID:           b.spotID,
		VehicleID:        b.vehicleID,
		Plate:            b.plate,
		VehicleType:      b.vehicleType,
		Start:            b.window.start,
		End:              b.window.end,
		Status:           b.status,
		Pricing:          b.pricing,
		BasePrice:        b.basePrice,
		OvertimeFee:      b.overtimeFee,
		Policy:           b.policy,
		CheckInTime:      b.checkInTime,
		CheckOutTime:     b.checkOutTime,
		CancelledAt:      b.cancelledAt,
		CapacityReleased: b.capacityReleased,
		CreatedAt:        b.createdAt,
		UpdatedAt:        b.updatedAt,
	}
}

// Apply moves the booking along the state machine and stamps the time of
// the transition. Check-in and check-out times are set once.
func (b *Booking) Apply(e Event, at time.Time) error {
	next, ok := b.status.Next(e)
	if !ok {
		return errs.Wrapf(ErrInvalidTransition, "%s from %s", e, b.status)
	}
	switch e {
	case EventCheckIn:
		if b.checkInTime != nil {
			return ErrInvalidTransition
		}
		b.checkInTime = &at
	case EventCheckOut:
		if b.checkOutTime != nil {
			return ErrInvalidTransition
		}
		b.checkOutTime = &at
	case EventCancel:
		b.cancelledAt = &at
	}
	b.status = next
	b.updatedAt = at
	return nil
}

func (b *Booking) CheckCancelWindow(now time.Time) error {
	if b.policy.MaxCancelTime != nil && now.After(*b.policy.MaxCancelTime) {
		return ErrCancelWindowExpired
	}
	return nil
}

func (b *Booking) RefundAmount() int64 {
	return b.basePrice * int64(b.policy.RefundPercentage) / 100
}

// MarkCapacityReleased records that the hold was returned to inventory.
// It returns false when that already happened.
func (b *Booking) MarkCapacityReleased() bool {
	if b.capacityReleased {
		return false
	}
	b.capacityReleased = true
	return true
}

func (b *Booking) IsSpotBooking() bool {
	return b.spotID != nil
}

func (b *Booking) TotalPrice() int64 {
	return b.basePrice + b.overtimeFee
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) Code() string               { return b.code }
func (b *Booking) UserID() uuid.UUID          { return b.userID }
func (b *Booking) LotID() uuid.UUID           { return b.lotID }
func (b *Booking) SpotID() *uuid.UUID         { return b.spotID }
func (b *Booking) VehicleID() uuid.UUID       { return b.vehicleID }
func (b *Booking) Plate() string              { return b.plate }
func (b *Booking) VehicleType() vehicle.Type  { return b.vehicleType }
func (b *Booking) Window() TimeWindow         { return b.window }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) Pricing() PriceSnapshot     { return b.pricing }
func (b *Booking) BasePrice() int64           { return b.basePrice }
func (b *Booking) OvertimeFee() int64         { return b.overtimeFee }
func (b *Booking) CancelPolicy() CancelPolicy { return b.policy }
func (b *Booking) CheckInTime() *time.Time    { return b.checkInTime }
func (b *Booking) CheckOutTime() *time.Time   { return b.checkOutTime }
func (b *Booking) CancelledAt() *time.Time    { return b.cancelledAt }
func (b *Booking) CapacityReleased() bool     { return b.capacityReleased }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
