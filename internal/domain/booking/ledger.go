package booking

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/clock"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultHorizon = 24 * time.Hour
	// StartGrace tolerates a start time slightly behind the server clock.
	StartGrace = 5 * time.Minute
)

var (
	ErrMissingEnd         = errs.NewKind(errs.ErrValidation, "end time is required for this pricing rule")
	ErrBeyondHorizon      = errs.NewKind(errs.ErrValidation, "start time cannot be more than the booking horizon in the future")
	ErrStartInPast        = errs.NewKind(errs.ErrValidation, "start time cannot be in the past")
	ErrExceedsMaxDuration = errs.NewKind(errs.ErrValidation, "booking duration exceeds maximum allowed time for per-entry pricing")
	ErrRuleVehicleType    = errs.NewKind(errs.ErrTypeMismatch, "pricing rule does not apply to this vehicle type")
	ErrCheckoutBeforeIn   = errs.NewKind(errs.ErrValidation, "check-out time is before check-in time")
)

// Ledger creates bookings and prices them. It never touches inventory.
type Ledger struct {
	Clock   clock.Clock
	Horizon time.Duration
	Codes   CodeGenerator
}

func NewLedger(c clock.Clock, horizon time.Duration, codes CodeGenerator) *Ledger {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Ledger{Clock: c, Horizon: horizon, Codes: codes}
}

type CreateSpec struct {
	UserID      uuid.UUID
	LotID       uuid.UUID
	SpotID      *uuid.UUID
	VehicleID   uuid.UUID
	Plate       string
	VehicleType vehicle.Type
	Start       time.Time
	End         *time.Time
	Rule        PricingRule
	Policy      lot.CancellationPolicy
}

func (l *Ledger) Create(spec CreateSpec) (*Booking, error) {
	if spec.Rule.VehicleType != spec.VehicleType {
		return nil, ErrRuleVehicleType
	}

	end, err := l.resolveEnd(spec)
	if err != nil {
		return nil, err
	}
	window, err := NewTimeWindow(spec.Start, end)
	if err != nil {
		return nil, err
	}

	now := l.Clock.Now()
	if window.Start().After(now.Add(l.Horizon)) {
		return nil, ErrBeyondHorizon
	}
	if window.Start().Before(now.Add(-StartGrace)) {
		return nil, ErrStartInPast
	}

	rule := spec.Rule
	if rule.Unit == UnitPerEntry && rule.MaxDuration > 0 && window.Duration() > rule.MaxDuration {
		return nil, ErrExceedsMaxDuration
	}

	code, err := l.Codes.Generate()
	if err != nil {
		return nil, errs.Wrap(err, "generate booking code")
	}

	pricing := rule.Snapshot()
	policy := CancelPolicy{RefundPercentage: spec.Policy.RefundPercentage}
	if spec.Policy.Cutoff > 0 {
		t := window.Start().Add(-spec.Policy.Cutoff)
		policy.MaxCancelTime = &t
	}

	return &Booking{
		id:          uuid.New(),
		code:        code,
		userID:      spec.UserID,
		lotID:       spec.LotID,
		spotID:      spec.SpotID,
		vehicleID:   spec.VehicleID,
		plate:       spec.Plate,
		vehicleType: spec.VehicleType,
		window:      window,
		status:      StatusPending,
		pricing:     pricing,
		basePrice:   pricing.Price(window),
		policy:      policy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func (l *Ledger) resolveEnd(spec CreateSpec) (time.Time, error) {
	if spec.End != nil {
		return *spec.End, nil
	}
	if spec.Rule.Unit == UnitPerEntry && spec.Rule.MaxDuration > 0 {
		return spec.Start.Add(spec.Rule.MaxDuration), nil
	}
	return time.Time{}, ErrMissingEnd
}

// Transition applies e at the current clock time.
func (l *Ledger) Transition(b *Booking, e Event) error {
	return b.Apply(e, l.Clock.Now())
}

// FinalizeCheckout completes an active booking and adds the overtime fee,
// billed with the booking's own rate snapshot.
func (l *Ledger) FinalizeCheckout(b *Booking, actual time.Time) error {
	if b.checkInTime != nil && actual.Before(*b.checkInTime) {
		return ErrCheckoutBeforeIn
	}
	if err := b.Apply(EventCheckOut, actual); err != nil {
		return err
	}
	b.overtimeFee = b.pricing.Overtime(b.window.End(), actual)
	return nil
}
