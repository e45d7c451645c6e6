package commands

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrLotAccess = errs.NewKind(errs.ErrForbidden, "not authorized to manage this parking lot")

type LotCommands interface {
	CreateLot(ctx context.Context, actor Actor, in CreateLotInput) (*lot.Lot, error)
	SetVerification(ctx context.Context, actor Actor, lotID uuid.UUID, v lot.Verification) (*lot.Lot, error)
	SetStatus(ctx context.Context, actor Actor, lotID uuid.UUID, s lot.Status) (*lot.Lot, error)
	AddSpot(ctx context.Context, actor Actor, lotID uuid.UUID, in AddSpotInput) (*lot.Spot, error)
	SetSpotMaintenance(ctx context.Context, actor Actor, lotID, spotID uuid.UUID, on bool) (*lot.Spot, error)
	UpsertPricing(ctx context.Context, actor Actor, lotID uuid.UUID, in PricingInput) (booking.PricingRule, error)
}

type lotCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.AvailabilityInvalidator
}

func NewLotCommands(uow shared.UnitOfWork, cache shared.AvailabilityInvalidator) LotCommands {
	return &lotCommandsImpl{uow: uow, cache: cache}
}

func (c *lotCommandsImpl) CreateLot(ctx context.Context, actor Actor, in CreateLotInput) (*lot.Lot, error) {
	if actor.Role != user.RoleParkingOwner && !actor.IsAdmin() {
		return nil, ErrLotAccess
	}

	l, err := lot.NewLot(actor.UserID, in.Name, in.Address, in.Capacity, lot.CancellationPolicy{
		Cutoff:           in.CancelCutoff,
		RefundPercentage: in.RefundPercentage,
	})
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Lots().Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (c *lotCommandsImpl) SetVerification(ctx context.Context, actor Actor, lotID uuid.UUID, v lot.Verification) (*lot.Lot, error) {
	if !actor.IsAdmin() {
		return nil, ErrLotAccess
	}
	return c.updateLot(ctx, actor, lotID, func(l *lot.Lot) error {
		return l.SetVerification(v)
	})
}

func (c *lotCommandsImpl) SetStatus(ctx context.Context, actor Actor, lotID uuid.UUID, s lot.Status) (*lot.Lot, error) {
	return c.updateLot(ctx, actor, lotID, func(l *lot.Lot) error {
		return l.SetStatus(s)
	})
}

func (c *lotCommandsImpl) updateLot(ctx context.Context, actor Actor, lotID uuid.UUID, mutate func(*lot.Lot) error) (*lot.Lot, error) {
	var out *lot.Lot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Lots().GetForUpdate(ctx, lotID)
		if err != nil {
			return notFound(err, ErrLotNotFound)
		}
		if !actor.ManagesLot(l) {
			return ErrLotAccess
		}
		if err := mutate(l); err != nil {
			return err
		}
		if err := tx.Lots().Update(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, lotID)
	return out, nil
}

// AddSpot registers a spot. The first spot switches the lot to per-spot
// inventory, which is only allowed while nothing is held at lot level.
func (c *lotCommandsImpl) AddSpot(ctx context.Context, actor Actor, lotID uuid.UUID, in AddSpotInput) (*lot.Spot, error) {
	var out *lot.Spot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Lots().GetForUpdate(ctx, lotID)
		if err != nil {
			return notFound(err, ErrLotNotFound)
		}
		if !actor.ManagesLot(l) {
			return ErrLotAccess
		}

		n, err := tx.Spots().CountByLot(ctx, lotID)
		if err != nil {
			return err
		}
		if err := l.CanAddSpot(n); err != nil {
			return err
		}

		s, err := lot.NewSpot(lotID, in.Number, in.Type)
		if err != nil {
			return err
		}
		if err := tx.Spots().Create(ctx, s); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, lotID)
	return out, nil
}

func (c *lotCommandsImpl) SetSpotMaintenance(ctx context.Context, actor Actor, lotID, spotID uuid.UUID, on bool) (*lot.Spot, error) {
	var out *lot.Spot
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Lots().GetForUpdate(ctx, lotID)
		if err != nil {
			return notFound(err, ErrLotNotFound)
		}
		if !actor.ManagesLot(l) {
			return ErrLotAccess
		}

		s, err := tx.Spots().GetForUpdate(ctx, lotID, spotID)
		if err != nil {
			return notFound(err, ErrSpotNotFound)
		}
		if err := s.SetMaintenance(on); err != nil {
			return err
		}
		if err := tx.Spots().UpdateStatus(ctx, s); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache, lotID)
	return out, nil
}

func (c *lotCommandsImpl) UpsertPricing(ctx context.Context, actor Actor, lotID uuid.UUID, in PricingInput) (booking.PricingRule, error) {
	rule, err := booking.NewPricingRule(lotID, in.Unit, in.Rate, in.VehicleType, in.MaxDuration)
	if err != nil {
		return booking.PricingRule{}, err
	}

	var out booking.PricingRule
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Lots().Get(ctx, lotID)
		if err != nil {
			return notFound(err, ErrLotNotFound)
		}
		if !actor.ManagesLot(l) {
			return ErrLotAccess
		}
		out, err = tx.Pricing().Upsert(ctx, rule)
		return err
	})
	if err != nil {
		return booking.PricingRule{}, err
	}
	return out, nil
}
