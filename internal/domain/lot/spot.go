package lot

import (
	"strings"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxSpotNumberLength = 20

var (
	ErrInvalidSpotNumber = errs.NewKind(errs.ErrValidation, "spot number must be 1-20 characters")
	ErrSpotUnavailable   = errs.NewKind(errs.ErrNoCapacity, "spot is not available")
	ErrSpotInUse         = errs.NewKind(errs.ErrInvalidState, "spot is reserved or occupied")
	ErrSpotTypeMismatch  = errs.NewKind(errs.ErrTypeMismatch, "vehicle type does not match spot type")
	ErrSpotNumberTaken   = errs.NewKind(errs.ErrConflict, "spot number already exists in this lot")

	ErrSpotStateCorrupt = errs.NewKind(errs.ErrConsistencyFault, "spot status does not match its booking")
)

type Spot struct {
	id        uuid.UUID
	lotID     uuid.UUID
	number    string
	spotType  vehicle.Type
	status    SpotStatus
	createdAt time.Time
	updatedAt time.Time
}

func NewSpot(lotID uuid.UUID, number string, spotType vehicle.Type) (*Spot, error) {
	number = strings.TrimSpace(number)
	if number == "" || len(number) > MaxSpotNumberLength {
		return nil, ErrInvalidSpotNumber
	}
	if !spotType.IsValid() {
		return nil, vehicle.ErrInvalidType
	}

	now := time.Now()
	return &Spot{
		id:        uuid.New(),
		lotID:     lotID,
		number:    number,
		spotType:  spotType,
		status:    SpotAvailable,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSpot(
	id, lotID uuid.UUID,
	number string,
	spotType vehicle.Type,
	status SpotStatus,
	createdAt, updatedAt time.Time,
) *Spot {
	return &Spot{
		id:        id,
		lotID:     lotID,
		number:    number,
		spotType:  spotType,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Spot) Accepts(vt vehicle.Type) error {
	if s.spotType != vt {
		return ErrSpotTypeMismatch
	}
	return nil
}

func (s *Spot) IsAssignable() bool {
	return s.status == SpotAvailable
}

// TryReserve moves available -> reserved.
func (s *Spot) TryReserve() error {
	if s.status != SpotAvailable {
		return ErrSpotUnavailable
	}
	s.setStatus(SpotReserved)
	return nil
}

// Occupy moves reserved -> occupied on check-in.
func (s *Spot) Occupy() error {
	if s.status != SpotReserved {
		return errs.WithStack(ErrSpotStateCorrupt)
	}
	s.setStatus(SpotOccupied)
	return nil
}

// Vacate moves occupied -> available on check-out.
func (s *Spot) Vacate() error {
	if s.status != SpotOccupied {
		return errs.WithStack(ErrSpotStateCorrupt)
	}
	s.setStatus(SpotAvailable)
	return nil
}

// Release drops a hold from either holding state. Releasing an already
// available spot does nothing.
func (s *Spot) Release() error {
	switch s.status {
	case SpotReserved, SpotOccupied:
		s.setStatus(SpotAvailable)
		return nil
	case SpotAvailable:
		return nil
	default:
		return errs.WithStack(ErrSpotStateCorrupt)
	}
}

func (s *Spot) SetMaintenance(on bool) error {
	if s.status.Holding() {
		return ErrSpotInUse
	}
	if on {
		s.setStatus(SpotMaintenance)
	} else {
		s.setStatus(SpotAvailable)
	}
	return nil
}

func (s *Spot) setStatus(status SpotStatus) {
	if s.status == status {
		return
	}
	s.status = status
	s.updatedAt = time.Now()
}

func (s *Spot) ID() uuid.UUID        { return s.id }
func (s *Spot) LotID() uuid.UUID     { return s.lotID }
func (s *Spot) Number() string       { return s.number }
func (s *Spot) Type() vehicle.Type   { return s.spotType }
func (s *Spot) Status() SpotStatus   { return s.status }
func (s *Spot) CreatedAt() time.Time { return s.createdAt }
func (s *Spot) UpdatedAt() time.Time { return s.updatedAt }

// CheckHeldSpots verifies that the spots in reserved or occupied state
// account for exactly the slots the lot has handed out.
func CheckHeldSpots(l *Lot, spots []*Spot) error {
	if len(spots) == 0 {
		return nil
	}
	held := 0
	for _, s := range spots {
		if s.status.Holding() {
			held++
		}
	}
	if held != l.HeldSlots() {
		return errs.WithKind(
			errs.New("held spots do not match lot counter"),
			errs.ErrConsistencyFault,
		)
	}
	return nil
}

// FirstAssignable returns the first available spot matching vt, ordered as given.
func FirstAssignable(spots []*Spot, vt vehicle.Type) *Spot {
	for _, s := range spots {
		if s.IsAssignable() && s.spotType == vt {
			return s
		}
	}
	return nil
}
