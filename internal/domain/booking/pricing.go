package booking

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidUnit        = errs.NewKind(errs.ErrValidation, "invalid pricing unit")
	ErrInvalidRate        = errs.NewKind(errs.ErrValidation, "rate cannot be negative")
	ErrInvalidMaxDuration = errs.NewKind(errs.ErrValidation, "max duration cannot be negative")
)

type Unit string

const (
	UnitPerEntry Unit = "per_entry"
	UnitHourly   Unit = "hourly"
	UnitDaily    Unit = "daily"
	UnitMonthly  Unit = "monthly"
)

func (u Unit) String() string {
	return string(u)
}

func (u Unit) IsValid() bool {
	switch u {
	case UnitPerEntry, UnitHourly, UnitDaily, UnitMonthly:
		return true
	default:
		return false
	}
}

// Length is the billing period of the unit. Per-entry pricing has none.
func (u Unit) Length() time.Duration {
	switch u {
	case UnitHourly:
		return time.Hour
	case UnitDaily:
		return 24 * time.Hour
	case UnitMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

type PricingRule struct {
	ID          uuid.UUID
	LotID       uuid.UUID
	Unit        Unit
	Rate        int64
	VehicleType vehicle.Type
	MaxDuration time.Duration
}

func NewPricingRule(lotID uuid.UUID, unit Unit, rate int64, vehicleType vehicle.Type, maxDuration time.Duration) (PricingRule, error) {
	r := PricingRule{
		ID:          uuid.New(),
		LotID:       lotID,
		Unit:        unit,
		Rate:        rate,
		VehicleType: vehicleType,
		MaxDuration: maxDuration,
	}
	if err := r.Validate(); err != nil {
		return PricingRule{}, err
	}
	return r, nil
}

func (r PricingRule) Validate() error {
	if !r.Unit.IsValid() {
		return ErrInvalidUnit
	}
	if r.Rate < 0 {
		return ErrInvalidRate
	}
	if r.MaxDuration < 0 {
		return ErrInvalidMaxDuration
	}
	if !r.VehicleType.IsValid() {
		return vehicle.ErrInvalidType
	}
	return nil
}

func (r PricingRule) Snapshot() PriceSnapshot {
	return PriceSnapshot{
		RuleID:      r.ID,
		Unit:        r.Unit,
		Rate:        r.Rate,
		MaxDuration: r.MaxDuration,
	}
}

// PriceSnapshot is the rule as it was when the booking was created.
// Overtime is billed from the snapshot, never from the live rule.
type PriceSnapshot struct {
	RuleID      uuid.UUID
	Unit        Unit
	Rate        int64
	MaxDuration time.Duration
}

// Price is rate × ceil(duration / unit length). Per-entry is flat.
func (p PriceSnapshot) Price(w TimeWindow) int64 {
	if p.Unit == UnitPerEntry {
		return p.Rate
	}
	return p.Rate * ceilUnits(w.Duration(), p.Unit.Length())
}

// Overtime bills the time past the booked end, each started period counting
// in full. Per-entry overtime is billed per extra max-duration block.
func (p PriceSnapshot) Overtime(bookedEnd, actual time.Time) int64 {
	if !actual.After(bookedEnd) {
		return 0
	}
	over := actual.Sub(bookedEnd)
	period := p.Unit.Length()
	if p.Unit == UnitPerEntry {
		period = p.MaxDuration
	}
	if period <= 0 {
		return 0
	}
	return p.Rate * ceilUnits(over, period)
}

func ceilUnits(d, unit time.Duration) int64 {
	if d <= 0 || unit <= 0 {
		return 0
	}
	n := int64(d / unit)
	if d%unit != 0 {
		n++
	}
	return n
}
