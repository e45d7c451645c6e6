package lot

import (
	"strings"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxNameLength    = 100
	MaxAddressLength = 255
	MaxCapacity      = 100000
)

var (
	ErrInvalidName         = errs.NewKind(errs.ErrValidation, "lot name must be 1-100 characters")
	ErrInvalidAddress      = errs.NewKind(errs.ErrValidation, "lot address must be 1-255 characters")
	ErrInvalidCapacity     = errs.NewKind(errs.ErrValidation, "capacity must be between 1 and 100000")
	ErrInvalidRefund       = errs.NewKind(errs.ErrValidation, "refund percentage must be between 0 and 100")
	ErrInvalidCutoff       = errs.NewKind(errs.ErrValidation, "cancel cutoff cannot be negative")
	ErrInvalidStatus       = errs.NewKind(errs.ErrValidation, "invalid lot status")
	ErrInvalidVerification = errs.NewKind(errs.ErrValidation, "invalid verification status")

	ErrNoAvailableSlots = errs.NewKind(errs.ErrNoCapacity, "no available slots in this parking lot")
	ErrNotVerified      = errs.NewKind(errs.ErrUnverified, "cannot book an unverified parking lot")
	ErrInactive         = errs.NewKind(errs.ErrUnverified, "parking lot is not accepting bookings")

	ErrSpotLimitReached = errs.NewKind(errs.ErrConflict, "number of spots cannot exceed lot capacity")
	ErrHoldsOutstanding = errs.NewKind(errs.ErrInvalidState, "cannot add spots while lot-level holds are outstanding")

	ErrFreeSlotsOutOfRange = errs.NewKind(errs.ErrConsistencyFault, "free slots counter is out of range")
	ErrFreeSlotsOverflow   = errs.NewKind(errs.ErrConsistencyFault, "release would push free slots above capacity")
)

type CancellationPolicy struct {
	Cutoff           time.Duration
	RefundPercentage int
}

func (p CancellationPolicy) Validate() error {
	if p.Cutoff < 0 {
		return ErrInvalidCutoff
	}
	if p.RefundPercentage < 0 || p.RefundPercentage > 100 {
		return ErrInvalidRefund
	}
	return nil
}

// Lot owns the free-slot counter. freeSlots stays within [0, capacity];
// the mutators refuse to move it outside that range.
type Lot struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	name         string
	address      string
	capacity     int
	freeSlots    int
	status       Status
	verification Verification
	policy       CancellationPolicy
	createdAt    time.Time
	updatedAt    time.Time
}

func NewLot(ownerID uuid.UUID, name, address string, capacity int, policy CancellationPolicy) (*Lot, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	address = strings.TrimSpace(address)
	if address == "" || len(address) > MaxAddressLength {
		return nil, ErrInvalidAddress
	}
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, ErrInvalidCapacity
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Lot{
		id:           uuid.New(),
		ownerID:      ownerID,
		name:         name,
		address:      address,
		capacity:     capacity,
		freeSlots:    capacity,
		status:       StatusActive,
		verification: VerificationPending,
		policy:       policy,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructLot(
	id, ownerID uuid.UUID,
	name, address string,
	capacity, freeSlots int,
	status Status,
	verification Verification,
	policy CancellationPolicy,
	createdAt, updatedAt time.Time,
) *Lot {
	return &Lot{
		id:           id,
		ownerID:      ownerID,
		name:         name,
		address:      address,
		capacity:     capacity,
		freeSlots:    freeSlots,
		status:       status,
		verification: verification,
		policy:       policy,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// TryReserveSlot consumes one free slot or fails with ErrNoAvailableSlots.
func (l *Lot) TryReserveSlot() error {
	if l.freeSlots < 0 || l.freeSlots > l.capacity {
		return errs.WithStack(ErrFreeSlotsOutOfRange)
	}
	if l.freeSlots == 0 {
		return ErrNoAvailableSlots
	}
	l.freeSlots--
	l.updatedAt = time.Now()
	return nil
}

// ReleaseSlot returns one slot. Callers guarantee a hold exists; a release
// with nothing held is a fault, never clamped.
func (l *Lot) ReleaseSlot() error {
	if l.freeSlots < 0 || l.freeSlots > l.capacity {
		return errs.WithStack(ErrFreeSlotsOutOfRange)
	}
	if l.freeSlots == l.capacity {
		return errs.WithStack(ErrFreeSlotsOverflow)
	}
	l.freeSlots++
	l.updatedAt = time.Now()
	return nil
}

func (l *Lot) IsBookable() error {
	if l.verification != VerificationVerified {
		return ErrNotVerified
	}
	if l.status != StatusActive {
		return ErrInactive
	}
	return nil
}

func (l *Lot) SetVerification(v Verification) error {
	if !v.IsValid() {
		return ErrInvalidVerification
	}
	l.verification = v
	l.updatedAt = time.Now()
	return nil
}

func (l *Lot) SetStatus(s Status) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	l.status = s
	l.updatedAt = time.Now()
	return nil
}

// CanAddSpot checks that one more spot fits. A counter-mode lot may only
// switch to spot mode while nothing is held at lot level.
func (l *Lot) CanAddSpot(existingSpots int) error {
	if existingSpots >= l.capacity {
		return ErrSpotLimitReached
	}
	if existingSpots == 0 && l.freeSlots != l.capacity {
		return ErrHoldsOutstanding
	}
	return nil
}

func (l *Lot) OwnedBy(userID uuid.UUID) bool {
	return l.ownerID == userID
}

func (l *Lot) HeldSlots() int {
	return l.capacity - l.freeSlots
}

func (l *Lot) ID() uuid.UUID                          { return l.id }
func (l *Lot) OwnerID() uuid.UUID                     { return l.ownerID }
func (l *Lot) Name() string                           { return l.name }
func (l *Lot) Address() string                        { return l.address }
func (l *Lot) Capacity() int                          { return l.capacity }
func (l *Lot) FreeSlots() int                         { return l.freeSlots }
func (l *Lot) Status() Status                         { return l.status }
func (l *Lot) Verification() Verification             { return l.verification }
func (l *Lot) CancellationPolicy() CancellationPolicy { return l.policy }
func (l *Lot) CreatedAt() time.Time                   { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time                   { return l.updatedAt }
