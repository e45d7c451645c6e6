//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/fakeuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLot(t *testing.T) {
	in := commands.CreateLotInput{
		Name:             "Lot B",
		Address:          "12 Hang Bai",
		Capacity:         40,
		CancelCutoff:     time.Hour,
		RefundPercentage: 80,
	}

	tests := []struct {
		name    string
		role    user.Role
		wantErr error
	}{
		{name: "owner", role: user.RoleParkingOwner},
		{name: "admin", role: user.RoleAdmin},
		{name: "staff", role: user.RoleStaff, wantErr: commands.ErrLotAccess},
		{name: "user", role: user.RoleUser, wantErr: commands.ErrLotAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := fakeuow.New()
			cmds := commands.NewLotCommands(store, &recordingCache{})
			actor := commands.Actor{UserID: uuid.New(), Role: tt.role}

			got, err := cmds.CreateLot(context.Background(), actor, in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, actor.UserID, got.OwnerID())
			assert.Equal(t, 40, got.FreeSlots())
			assert.Equal(t, lot.VerificationPending, got.Verification())
			assert.NotNil(t, store.Lot(got.ID()))
		})
	}

	t.Run("invalid capacity", func(t *testing.T) {
		cmds := commands.NewLotCommands(fakeuow.New(), &recordingCache{})
		bad := in
		bad.Capacity = 0

		_, err := cmds.CreateLot(context.Background(), commands.Actor{UserID: uuid.New(), Role: user.RoleParkingOwner}, bad)

		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestLotAdministration(t *testing.T) {
	admin := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

	newLot := func(t *testing.T, mutate func(*builder.LotBuilder)) (*fakeuow.Store, *recordingCache, commands.LotCommands, *lot.Lot) {
		t.Helper()
		store := fakeuow.New()
		cache := &recordingCache{}
		l := builder.NewLotBuilder().With(mutate).BuildDomain()
		store.PutLot(l)
		return store, cache, commands.NewLotCommands(store, cache), l
	}

	t.Run("only admins verify", func(t *testing.T) {
		store, cache, cmds, l := newLot(t, func(b *builder.LotBuilder) { b.Verification = lot.VerificationPending })
		owner := commands.Actor{UserID: l.OwnerID(), Role: user.RoleParkingOwner}

		_, err := cmds.SetVerification(context.Background(), owner, l.ID(), lot.VerificationVerified)
		assert.ErrorIs(t, err, commands.ErrLotAccess)

		got, err := cmds.SetVerification(context.Background(), admin, l.ID(), lot.VerificationVerified)
		require.NoError(t, err)
		assert.Equal(t, lot.VerificationVerified, got.Verification())
		assert.Equal(t, lot.VerificationVerified, store.Lot(l.ID()).Verification())
		assert.Equal(t, 1, cache.count())
	})

	t.Run("owner deactivates own lot", func(t *testing.T) {
		store, _, cmds, l := newLot(t, func(*builder.LotBuilder) {})
		owner := commands.Actor{UserID: l.OwnerID(), Role: user.RoleParkingOwner}
		stranger := commands.Actor{UserID: uuid.New(), Role: user.RoleParkingOwner}

		_, err := cmds.SetStatus(context.Background(), stranger, l.ID(), lot.StatusInactive)
		assert.ErrorIs(t, err, commands.ErrLotAccess)

		_, err = cmds.SetStatus(context.Background(), owner, l.ID(), lot.StatusInactive)
		require.NoError(t, err)
		assert.Equal(t, lot.StatusInactive, store.Lot(l.ID()).Status())
	})

	t.Run("unknown lot", func(t *testing.T) {
		_, _, cmds, _ := newLot(t, func(*builder.LotBuilder) {})

		_, err := cmds.SetStatus(context.Background(), admin, uuid.New(), lot.StatusInactive)

		assert.ErrorIs(t, err, commands.ErrLotNotFound)
	})
}

func TestAddSpot(t *testing.T) {
	tests := []struct {
		name     string
		lot      func(*builder.LotBuilder)
		existing int
		number   string
		wantErr  error
	}{
		{name: "first spot of an idle lot"},
		{name: "up to capacity", existing: 1, number: "A-02"},
		{name: "beyond capacity", existing: 2, number: "A-03", wantErr: lot.ErrSpotLimitReached},
		{name: "duplicate number", existing: 1, number: "A-00", wantErr: lot.ErrSpotNumberTaken},
		{
			name:    "counter lot with outstanding holds",
			lot:     func(b *builder.LotBuilder) { b.FreeSlots = 1 },
			wantErr: lot.ErrHoldsOutstanding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := fakeuow.New()
			lb := builder.NewLotBuilder()
			if tt.lot != nil {
				lb.With(tt.lot)
			}
			l := lb.BuildDomain()
			store.PutLot(l)
			for i := range tt.existing {
				store.PutSpot(builder.NewSpotBuilder(l.ID()).With(func(b *builder.SpotBuilder) {
					b.Number = []string{"A-00", "A-01"}[i]
				}).BuildDomain())
			}
			number := tt.number
			if number == "" {
				number = "A-09"
			}
			cmds := commands.NewLotCommands(store, &recordingCache{})
			owner := commands.Actor{UserID: l.OwnerID(), Role: user.RoleParkingOwner}

			got, err := cmds.AddSpot(context.Background(), owner, l.ID(), commands.AddSpotInput{
				Number: number,
				Type:   vehicle.TypeStandard,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, lot.SpotAvailable, got.Status())
			assert.NotNil(t, store.Spot(got.ID()))
		})
	}
}

func TestSetSpotMaintenance(t *testing.T) {
	store := fakeuow.New()
	l := builder.NewLotBuilder().With(func(b *builder.LotBuilder) { b.FreeSlots = 1 }).BuildDomain()
	store.PutLot(l)
	free := builder.NewSpotBuilder(l.ID()).BuildDomain()
	held := builder.NewSpotBuilder(l.ID()).With(func(b *builder.SpotBuilder) {
		b.Number = "A-02"
		b.Status = lot.SpotReserved
	}).BuildDomain()
	store.PutSpot(free)
	store.PutSpot(held)
	cmds := commands.NewLotCommands(store, &recordingCache{})
	owner := commands.Actor{UserID: l.OwnerID(), Role: user.RoleParkingOwner}

	got, err := cmds.SetSpotMaintenance(context.Background(), owner, l.ID(), free.ID(), true)
	require.NoError(t, err)
	assert.Equal(t, lot.SpotMaintenance, got.Status())

	_, err = cmds.SetSpotMaintenance(context.Background(), owner, l.ID(), held.ID(), true)
	assert.ErrorIs(t, err, lot.ErrSpotInUse)
	assert.Equal(t, lot.SpotReserved, store.Spot(held.ID()).Status())

	_, err = cmds.SetSpotMaintenance(context.Background(), owner, l.ID(), uuid.New(), true)
	assert.ErrorIs(t, err, commands.ErrSpotNotFound)
}

func TestUpsertPricing(t *testing.T) {
	store := fakeuow.New()
	l := builder.NewLotBuilder().BuildDomain()
	store.PutLot(l)
	cmds := commands.NewLotCommands(store, &recordingCache{})
	owner := commands.Actor{UserID: l.OwnerID(), Role: user.RoleParkingOwner}
	in := commands.PricingInput{Unit: booking.UnitHourly, Rate: 15000, VehicleType: vehicle.TypeStandard}

	first, err := cmds.UpsertPricing(context.Background(), owner, l.ID(), in)
	require.NoError(t, err)

	in.Rate = 20000
	second, err := cmds.UpsertPricing(context.Background(), owner, l.ID(), in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(20000), second.Rate)

	in.Rate = -1
	_, err = cmds.UpsertPricing(context.Background(), owner, l.ID(), in)
	assert.ErrorIs(t, err, booking.ErrInvalidRate)

	in.Rate = 100
	_, err = cmds.UpsertPricing(context.Background(), commands.Actor{UserID: uuid.New(), Role: user.RoleParkingOwner}, l.ID(), in)
	assert.ErrorIs(t, err, commands.ErrLotAccess)
}

func TestRegisterVehicle(t *testing.T) {
	store := fakeuow.New()
	cmds := commands.NewVehicleCommands(store)
	actor := commands.Actor{UserID: uuid.New(), Role: user.RoleUser}

	v, err := cmds.Register(context.Background(), actor, commands.RegisterVehicleInput{Plate: " 29a-12345 ", Type: vehicle.TypeCompact})
	require.NoError(t, err)
	assert.Equal(t, "29A-12345", v.Plate().String())
	assert.True(t, v.OwnedBy(actor.UserID))

	_, err = cmds.Register(context.Background(), actor, commands.RegisterVehicleInput{Plate: "29A-12345", Type: vehicle.TypeCompact})
	assert.ErrorIs(t, err, vehicle.ErrPlateTaken)

	_, err = cmds.Register(context.Background(), actor, commands.RegisterVehicleInput{Plate: "not a plate", Type: vehicle.TypeCompact})
	assert.ErrorIs(t, err, vehicle.ErrInvalidPlate)
}
