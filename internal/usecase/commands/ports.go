package commands

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a command.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

// ManagesLot reports whether the actor may administer l.
func (a Actor) ManagesLot(l *lot.Lot) bool {
	return a.IsAdmin() || (a.Role.ManagesLots() && l.OwnedBy(a.UserID))
}

// OperatesGate reports whether the actor may check vehicles in and out of l.
// Staff are not bound to a lot.
func (a Actor) OperatesGate(l *lot.Lot) bool {
	if !a.Role.CanOperateGate() {
		return false
	}
	if a.Role == user.RoleParkingOwner {
		return l.OwnedBy(a.UserID)
	}
	return true
}

type LoginInput struct {
	Email    string
	Password string
}

type CreateBookingInput struct {
	LotID          uuid.UUID    `json:"lot_id"`
	SpotID         *uuid.UUID   `json:"spot_id,omitempty"`
	VehicleID      uuid.UUID    `json:"vehicle_id"`
	Unit           booking.Unit `json:"unit"`
	Start          time.Time    `json:"start"`
	End            *time.Time   `json:"end,omitempty"`
	IdempotencyKey *uuid.UUID   `json:"-"`
}

type CreateBookingResult struct {
	Booking    *booking.Booking
	IsReplayed bool
}

type CreateLotInput struct {
	Name             string
	Address          string
	Capacity         int
	CancelCutoff     time.Duration
	RefundPercentage int
}

type AddSpotInput struct {
	Number string
	Type   vehicle.Type
}

type PricingInput struct {
	Unit        booking.Unit
	Rate        int64
	VehicleType vehicle.Type
	MaxDuration time.Duration
}

type RegisterVehicleInput struct {
	Plate string
	Type  vehicle.Type
}
