package commands

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"
)

type VehicleCommands interface {
	Register(ctx context.Context, actor Actor, in RegisterVehicleInput) (*vehicle.Vehicle, error)
}

type vehicleCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewVehicleCommands(uow shared.UnitOfWork) VehicleCommands {
	return &vehicleCommandsImpl{uow: uow}
}

func (c *vehicleCommandsImpl) Register(ctx context.Context, actor Actor, in RegisterVehicleInput) (*vehicle.Vehicle, error) {
	plate, err := vehicle.NewPlate(in.Plate)
	if err != nil {
		return nil, err
	}
	v, err := vehicle.NewVehicle(actor.UserID, plate, in.Type)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vehicles().Create(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
