//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/clock"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/ptr"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/reconcile"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/fakeuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 1, hour, minute, 0, 0, time.UTC)
}

type recordingCache struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (c *recordingCache) Invalidate(_ context.Context, lotID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, lotID)
	return nil
}

func (c *recordingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.invalidated)
}

type seqCodes struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (s *seqCodes) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.next
	s.next++
	if i < len(s.codes) {
		return s.codes[i], nil
	}
	return fmt.Sprintf("CODE%04d", i), nil
}

type setup struct {
	lot     func(*builder.LotBuilder)
	codes   booking.CodeGenerator
	booking func(*config.BookingConfig)
	queue   int
}

type fixture struct {
	store    *fakeuow.Store
	clock    *clock.MockClock
	cache    *recordingCache
	queue    *reconcile.Queue
	releaser *commands.HoldReleaser
	cmds     commands.BookingCommands

	lotID   uuid.UUID
	owner   commands.Actor
	user    commands.Actor
	vehicle *vehicle.Vehicle
}

func newFixture(t *testing.T, mutate ...func(*setup)) *fixture {
	t.Helper()

	s := setup{codes: &seqCodes{}, queue: 16}
	for _, m := range mutate {
		m(&s)
	}

	clk := clock.NewMockClock(baseNow)
	store := fakeuow.New()
	store.Clock = clk
	cache := &recordingCache{}

	owner := commands.Actor{UserID: uuid.New(), Role: user.RoleParkingOwner}
	customer := commands.Actor{UserID: uuid.New(), Role: user.RoleUser}

	lb := builder.NewLotBuilder().With(func(b *builder.LotBuilder) {
		b.OwnerID = owner.UserID
		b.Capacity = 1
		b.FreeSlots = 1
	})
	if s.lot != nil {
		lb.With(s.lot)
	}
	store.PutLot(lb.BuildDomain())

	v := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) {
		b.OwnerID = customer.UserID
	}).BuildDomain()
	store.PutVehicle(v)

	for _, vt := range []vehicle.Type{vehicle.TypeStandard, vehicle.TypeCompact} {
		rule, err := booking.NewPricingRule(lb.ID, booking.UnitHourly, 15000, vt, 0)
		require.NoError(t, err)
		store.PutPricing(rule)
	}

	bookingCfg := config.BookingConfig{
		Horizon:              24 * time.Hour,
		TxTimeout:            time.Second,
		CodeLength:           8,
		DeferCheckoutRelease: true,
	}
	if s.booking != nil {
		s.booking(&bookingCfg)
	}

	releaser := commands.NewHoldReleaser(store, cache)
	queue := reconcile.NewQueue(releaser, releaser, clk, config.ReconcileConfig{
		Interval:  time.Hour,
		BatchSize: 10,
		QueueSize: s.queue,
	})
	ledger := booking.NewLedger(clk, bookingCfg.Horizon, s.codes)

	return &fixture{
		store:    store,
		clock:    clk,
		cache:    cache,
		queue:    queue,
		releaser: releaser,
		cmds:     commands.NewBookingCommands(store, ledger, releaser, queue, cache, clk, bookingCfg),
		lotID:    lb.ID,
		owner:    owner,
		user:     customer,
		vehicle:  v,
	}
}

func (f *fixture) input(start, end time.Time) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		LotID:     f.lotID,
		VehicleID: f.vehicle.ID(),
		Unit:      booking.UnitHourly,
		Start:     start,
		End:       &end,
	}
}

func (f *fixture) create(t *testing.T, start, end time.Time) *booking.Booking {
	t.Helper()
	res, err := f.cmds.Create(context.Background(), f.user, f.input(start, end))
	require.NoError(t, err)
	return res.Booking
}

func (f *fixture) addSpot(number string, vt vehicle.Type, status lot.SpotStatus) uuid.UUID {
	sp := builder.NewSpotBuilder(f.lotID).With(func(b *builder.SpotBuilder) {
		b.Number = number
		b.Type = vt
		b.Status = status
	}).BuildDomain()
	f.store.PutSpot(sp)
	return sp.ID()
}

func (f *fixture) freeSlots() int {
	return f.store.Lot(f.lotID).FreeSlots()
}

func (f *fixture) jobKinds() []string {
	var kinds []string
	for _, j := range f.store.Jobs() {
		kinds = append(kinds, j.Kind)
	}
	return kinds
}

func (f *fixture) staff() commands.Actor {
	return commands.Actor{UserID: uuid.New(), Role: user.RoleStaff}
}

func TestCreateBooking(t *testing.T) {
	t.Run("overlapping window on a full lot conflicts", func(t *testing.T) {
		f := newFixture(t)

		x := f.create(t, at(10, 0), at(12, 0))
		assert.Equal(t, booking.StatusPending, x.Status())
		assert.Equal(t, 0, f.freeSlots())

		_, err := f.cmds.Create(context.Background(), f.user, f.input(at(11, 0), at(13, 0)))

		assert.ErrorIs(t, err, commands.ErrBookingOverlap)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Equal(t, 0, f.freeSlots())
		assert.Equal(t, 1, f.store.BookingCount())
		require.NoError(t, f.store.CheckInventory())
	})

	t.Run("counter-only lot rejects any overlapping lot-level booking", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.lot = func(b *builder.LotBuilder) { b.Capacity = 3; b.FreeSlots = 3 }
		})
		f.create(t, at(10, 0), at(12, 0))

		other := commands.Actor{UserID: uuid.New(), Role: user.RoleUser}
		v := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) {
			b.OwnerID = other.UserID
			b.Plate = "29B-67890"
		}).BuildDomain()
		f.store.PutVehicle(v)
		in := f.input(at(11, 0), at(13, 0))
		in.VehicleID = v.ID()

		_, err := f.cmds.Create(context.Background(), other, in)

		assert.ErrorIs(t, err, commands.ErrBookingOverlap)
		assert.Equal(t, 2, f.freeSlots())
		require.NoError(t, f.store.CheckInventory())
	})

	t.Run("start beyond the horizon is a validation error", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.lot = func(b *builder.LotBuilder) { b.Capacity = 5; b.FreeSlots = 5 }
		})
		start := baseNow.Add(30 * time.Hour)

		_, err := f.cmds.Create(context.Background(), f.user, f.input(start, start.Add(time.Hour)))

		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.Equal(t, 5, f.freeSlots())
		assert.Zero(t, f.store.BookingCount())
	})

	t.Run("non-overlapping window without a free slot has no capacity", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, at(10, 0), at(12, 0))

		_, err := f.cmds.Create(context.Background(), f.user, f.input(at(13, 0), at(14, 0)))

		assert.True(t, errs.Is(err, errs.ErrNoCapacity))
		assert.Equal(t, 0, f.freeSlots())
	})

	t.Run("rejections leave no trace", func(t *testing.T) {
		tests := []struct {
			name    string
			lot     func(*builder.LotBuilder)
			mutate  func(f *fixture, in *commands.CreateBookingInput) commands.Actor
			wantErr error
		}{
			{
				name:    "unverified lot",
				lot:     func(b *builder.LotBuilder) { b.Verification = lot.VerificationPending },
				wantErr: errs.ErrUnverified,
			},
			{
				name:    "inactive lot",
				lot:     func(b *builder.LotBuilder) { b.Status = lot.StatusInactive },
				wantErr: errs.ErrUnverified,
			},
			{
				name: "unknown lot",
				mutate: func(f *fixture, in *commands.CreateBookingInput) commands.Actor {
					in.LotID = uuid.New()
					return f.user
				},
				wantErr: commands.ErrLotNotFound,
			},
			{
				name: "vehicle of someone else",
				mutate: func(f *fixture, _ *commands.CreateBookingInput) commands.Actor {
					return commands.Actor{UserID: uuid.New(), Role: user.RoleUser}
				},
				wantErr: commands.ErrVehicleAccess,
			},
			{
				name: "no pricing rule for the unit",
				mutate: func(f *fixture, in *commands.CreateBookingInput) commands.Actor {
					in.Unit = booking.UnitDaily
					return f.user
				},
				wantErr: commands.ErrPricingNotFound,
			},
			{
				name: "end before start",
				mutate: func(f *fixture, in *commands.CreateBookingInput) commands.Actor {
					in.End = ptr.Of(at(9, 30))
					return f.user
				},
				wantErr: errs.ErrValidation,
			},
			{
				name: "requested spot in a counter-only lot",
				mutate: func(f *fixture, in *commands.CreateBookingInput) commands.Actor {
					in.SpotID = ptr.Of(uuid.New())
					return f.user
				},
				wantErr: commands.ErrSpotNotFound,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t, func(s *setup) { s.lot = tt.lot })
				in := f.input(at(10, 0), at(12, 0))
				actor := f.user
				if tt.mutate != nil {
					actor = tt.mutate(f, &in)
				}

				_, err := f.cmds.Create(context.Background(), actor, in)

				assert.True(t, errs.Is(err, tt.wantErr))
				assert.Equal(t, 1, f.freeSlots())
				assert.Zero(t, f.store.BookingCount())
				assert.Empty(t, f.store.Jobs())
			})
		}
	})

	t.Run("prices the window and records the created event", func(t *testing.T) {
		f := newFixture(t)

		b := f.create(t, at(10, 0), at(12, 0))

		assert.Equal(t, int64(30000), b.TotalPrice())
		assert.Equal(t, "30A-12345", b.Plate())
		assert.Len(t, b.Code(), 8)

		jobs := f.store.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, commands.KindBookingCreated, jobs[0].Kind)
		assert.Equal(t, b.ID().String(), jobs[0].Topic)

		var ev commands.BookingEvent
		require.NoError(t, json.Unmarshal(jobs[0].Payload, &ev))
		assert.Equal(t, b.ID(), ev.BookingID)
		assert.Equal(t, "pending", ev.Status)
		assert.Nil(t, ev.RefundAmount)

		assert.Equal(t, 1, f.cache.count())
	})

	t.Run("retries a colliding booking code", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.lot = func(b *builder.LotBuilder) { b.Capacity = 3; b.FreeSlots = 3 }
			s.codes = &seqCodes{codes: []string{"TAKEN234", "TAKEN234", "FRESH234"}}
		})
		f.create(t, at(10, 0), at(11, 0))

		b := f.create(t, at(12, 0), at(13, 0))

		assert.Equal(t, "FRESH234", b.Code())
		assert.Equal(t, 1, f.freeSlots())
		require.NoError(t, f.store.CheckInventory())
	})

	t.Run("gives up after repeated code collisions", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.lot = func(b *builder.LotBuilder) { b.Capacity = 3; b.FreeSlots = 3 }
			s.codes = &seqCodes{codes: []string{"TAKEN234", "TAKEN234", "TAKEN234", "TAKEN234"}}
		})
		f.create(t, at(10, 0), at(11, 0))

		_, err := f.cmds.Create(context.Background(), f.user, f.input(at(12, 0), at(13, 0)))

		assert.ErrorIs(t, err, booking.ErrCodeTaken)
		assert.Equal(t, 2, f.freeSlots())
	})

	t.Run("slow transaction is retryable", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.booking = func(c *config.BookingConfig) { c.TxTimeout = 5 * time.Millisecond }
		})
		f.store.BeforeCommit = func() error {
			time.Sleep(30 * time.Millisecond)
			return nil
		}

		_, err := f.cmds.Create(context.Background(), f.user, f.input(at(10, 0), at(12, 0)))

		assert.True(t, errs.Is(err, errs.ErrRetryableTimeout))
		assert.Equal(t, 1, f.freeSlots())
		assert.Zero(t, f.store.BookingCount())
	})
}

func TestCreateBookingSpotMode(t *testing.T) {
	spotLot := func(s *setup) {
		s.lot = func(b *builder.LotBuilder) { b.Capacity = 3; b.FreeSlots = 3 }
	}

	t.Run("assigns the first available spot of the vehicle type", func(t *testing.T) {
		f := newFixture(t, spotLot)
		f.addSpot("A-01", vehicle.TypeStandard, lot.SpotMaintenance)
		want := f.addSpot("A-02", vehicle.TypeStandard, lot.SpotAvailable)
		f.addSpot("A-03", vehicle.TypeCompact, lot.SpotAvailable)

		b := f.create(t, at(10, 0), at(12, 0))

		require.NotNil(t, b.SpotID())
		assert.Equal(t, want, *b.SpotID())
		assert.Equal(t, lot.SpotReserved, f.store.Spot(want).Status())
		assert.Equal(t, 2, f.freeSlots())
		require.NoError(t, f.store.CheckInventory())
	})

	t.Run("same window on another spot succeeds", func(t *testing.T) {
		f := newFixture(t, spotLot)
		f.addSpot("A-01", vehicle.TypeStandard, lot.SpotAvailable)
		f.addSpot("A-02", vehicle.TypeStandard, lot.SpotAvailable)

		x := f.create(t, at(10, 0), at(12, 0))
		y := f.create(t, at(10, 0), at(12, 0))

		assert.NotEqual(t, *x.SpotID(), *y.SpotID())
		assert.Equal(t, 1, f.freeSlots())
		require.NoError(t, f.store.CheckInventory())
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name    string
			spots   func(f *fixture) *uuid.UUID
			wantErr error
		}{
			{
				name: "requested spot of another type",
				spots: func(f *fixture) *uuid.UUID {
					return ptr.Of(f.addSpot("C-01", vehicle.TypeCompact, lot.SpotAvailable))
				},
				wantErr: errs.ErrTypeMismatch,
			},
			{
				name: "requested spot under maintenance",
				spots: func(f *fixture) *uuid.UUID {
					return ptr.Of(f.addSpot("A-01", vehicle.TypeStandard, lot.SpotMaintenance))
				},
				wantErr: errs.ErrNoCapacity,
			},
			{
				name: "every matching spot is busy",
				spots: func(f *fixture) *uuid.UUID {
					f.addSpot("A-01", vehicle.TypeStandard, lot.SpotMaintenance)
					return nil
				},
				wantErr: commands.ErrNoSpotAvailable,
			},
			{
				name: "no spot of the vehicle type",
				spots: func(f *fixture) *uuid.UUID {
					f.addSpot("C-01", vehicle.TypeCompact, lot.SpotAvailable)
					return nil
				},
				wantErr: commands.ErrNoSpotOfType,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t, spotLot)
				in := f.input(at(10, 0), at(12, 0))
				in.SpotID = tt.spots(f)

				_, err := f.cmds.Create(context.Background(), f.user, in)

				assert.True(t, errs.Is(err, tt.wantErr))
				assert.Equal(t, 3, f.freeSlots())
				assert.Zero(t, f.store.BookingCount())
			})
		}
	})

	t.Run("concurrent creates never oversell", func(t *testing.T) {
		f := newFixture(t, spotLot)
		for i := range 3 {
			f.addSpot(fmt.Sprintf("A-%02d", i+1), vehicle.TypeStandard, lot.SpotAvailable)
		}

		const workers = 12
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			ok      int
			refused int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.cmds.Create(context.Background(), f.user, f.input(at(10, 0), at(12, 0)))
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					ok++
				} else if errs.Is(err, errs.ErrNoCapacity) {
					refused++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 3, ok)
		assert.Equal(t, workers-3, refused)
		assert.Equal(t, 0, f.freeSlots())
		require.NoError(t, f.store.CheckInventory())
	})
}

func TestCreateBookingIdempotency(t *testing.T) {
	withKey := func(in commands.CreateBookingInput, key uuid.UUID) commands.CreateBookingInput {
		in.IdempotencyKey = &key
		return in
	}
	roomy := func(s *setup) {
		s.lot = func(b *builder.LotBuilder) { b.Capacity = 3; b.FreeSlots = 3 }
	}

	t.Run("replays the same booking", func(t *testing.T) {
		f := newFixture(t, roomy)
		key := uuid.New()
		in := withKey(f.input(at(10, 0), at(12, 0)), key)

		first, err := f.cmds.Create(context.Background(), f.user, in)
		require.NoError(t, err)
		second, err := f.cmds.Create(context.Background(), f.user, in)
		require.NoError(t, err)

		assert.False(t, first.IsReplayed)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Booking.ID(), second.Booking.ID())
		assert.Equal(t, 1, f.store.BookingCount())
		assert.Equal(t, 2, f.freeSlots())

		rec, ok := f.store.Idempotency(key, f.user.UserID)
		require.True(t, ok)
		assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
	})

	t.Run("different payload under the same key", func(t *testing.T) {
		f := newFixture(t, roomy)
		key := uuid.New()
		_, err := f.cmds.Create(context.Background(), f.user, withKey(f.input(at(10, 0), at(12, 0)), key))
		require.NoError(t, err)

		_, err = f.cmds.Create(context.Background(), f.user, withKey(f.input(at(13, 0), at(14, 0)), key))

		assert.True(t, errs.Is(err, errs.ErrIdempotencyMismatch))
		assert.Equal(t, 1, f.store.BookingCount())
	})

	t.Run("key still processing", func(t *testing.T) {
		f := newFixture(t, roomy)
		key := uuid.New()
		in := withKey(f.input(at(10, 0), at(12, 0)), key)
		_, err := f.cmds.Create(context.Background(), f.user, in)
		require.NoError(t, err)
		rec, _ := f.store.Idempotency(key, f.user.UserID)
		rec.Status = shared.IdempotencyProcessing
		rec.ResultBookingID = nil
		f.store.PutIdempotency(rec)

		_, err = f.cmds.Create(context.Background(), f.user, in)

		assert.True(t, errs.Is(err, errs.ErrIdempotencyInProgress))
	})

	t.Run("failed create frees the key", func(t *testing.T) {
		f := newFixture(t, roomy)
		key := uuid.New()
		in := withKey(f.input(at(10, 0), at(12, 0)), key)
		in.Unit = booking.UnitDaily

		_, err := f.cmds.Create(context.Background(), f.user, in)
		require.ErrorIs(t, err, commands.ErrPricingNotFound)

		_, ok := f.store.Idempotency(key, f.user.UserID)
		assert.False(t, ok)
	})

	t.Run("expired key is claimed again", func(t *testing.T) {
		f := newFixture(t, roomy)
		key := uuid.New()
		f.store.PutIdempotency(shared.IdempotencyRecord{
			Key:         key,
			UserID:      f.user.UserID,
			Status:      shared.IdempotencyProcessing,
			RequestHash: "stale",
			ExpiresAt:   baseNow.Add(-time.Minute),
		})

		res, err := f.cmds.Create(context.Background(), f.user, withKey(f.input(at(10, 0), at(12, 0)), key))

		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		rec, _ := f.store.Idempotency(key, f.user.UserID)
		assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
		assert.Equal(t, res.Booking.ID(), *rec.ResultBookingID)
	})
}

func TestBookingLifecycle(t *testing.T) {
	t.Run("cancelling an active booking frees the slot for the next one", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		x := f.create(t, at(10, 0), at(12, 0))
		_, err := f.cmds.Confirm(ctx, f.owner, x.ID())
		require.NoError(t, err)
		f.clock.Set(at(10, 0))
		_, err = f.cmds.CheckIn(ctx, f.staff(), x.ID())
		require.NoError(t, err)
		assert.Equal(t, 0, f.freeSlots())

		cancelled, err := f.cmds.Cancel(ctx, f.owner, x.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		assert.True(t, cancelled.CapacityReleased())
		assert.Equal(t, 1, f.freeSlots())
		require.NoError(t, f.store.CheckInventory())

		y := f.create(t, at(11, 0), at(13, 0))
		assert.Equal(t, booking.StatusPending, y.Status())
		assert.Equal(t, 0, f.freeSlots())
	})

	t.Run("late checkout bills overtime and defers the release", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		x := f.create(t, at(10, 0), at(12, 0))
		assert.Equal(t, int64(30000), x.TotalPrice())
		_, err := f.cmds.Confirm(ctx, f.owner, x.ID())
		require.NoError(t, err)
		f.clock.Set(at(10, 0))
		_, err = f.cmds.CheckIn(ctx, f.owner, x.ID())
		require.NoError(t, err)

		f.clock.Set(at(13, 0))
		done, err := f.cmds.CheckOut(ctx, f.staff(), x.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, done.Status())
		assert.Equal(t, int64(15000), done.OvertimeFee())
		assert.Equal(t, int64(45000), done.TotalPrice())
		assert.Equal(t, 0, f.freeSlots())
		assert.Equal(t, 1, f.queue.Len())
		require.NoError(t, f.store.CheckInventory())

		n, err := f.queue.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, f.freeSlots())
		assert.True(t, f.store.Booking(x.ID()).CapacityReleased())
		require.NoError(t, f.store.CheckInventory())

		assert.Equal(t, []string{
			commands.KindBookingCreated,
			commands.KindBookingConfirmed,
			commands.KindBookingCheckedIn,
			commands.KindBookingCompleted,
		}, f.jobKinds())
	})

	t.Run("full queue releases inline", func(t *testing.T) {
		f := newFixture(t, func(s *setup) { s.queue = 1 })
		ctx := context.Background()
		require.NoError(t, f.queue.Enqueue(reconcile.Job{Type: reconcile.JobIncrementFreeSlots, BookingID: uuid.New()}))
		x := f.create(t, at(10, 0), at(12, 0))
		_, err := f.cmds.Confirm(ctx, f.owner, x.ID())
		require.NoError(t, err)
		_, err = f.cmds.CheckIn(ctx, f.owner, x.ID())
		require.NoError(t, err)

		_, err = f.cmds.CheckOut(ctx, f.owner, x.ID())

		require.NoError(t, err)
		assert.Equal(t, 1, f.freeSlots())
		assert.True(t, f.store.Booking(x.ID()).CapacityReleased())
	})

	t.Run("synchronous release when deferral is off", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.booking = func(c *config.BookingConfig) { c.DeferCheckoutRelease = false }
		})
		ctx := context.Background()
		x := f.create(t, at(10, 0), at(12, 0))
		_, err := f.cmds.Confirm(ctx, f.owner, x.ID())
		require.NoError(t, err)
		_, err = f.cmds.CheckIn(ctx, f.owner, x.ID())
		require.NoError(t, err)

		_, err = f.cmds.CheckOut(ctx, f.owner, x.ID())

		require.NoError(t, err)
		assert.Equal(t, 1, f.freeSlots())
		assert.Zero(t, f.queue.Len())
	})

	t.Run("spot booking is vacated and released at checkout", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		spotID := f.addSpot("A-01", vehicle.TypeStandard, lot.SpotAvailable)
		x := f.create(t, at(10, 0), at(12, 0))
		_, err := f.cmds.Confirm(ctx, f.owner, x.ID())
		require.NoError(t, err)

		_, err = f.cmds.CheckIn(ctx, f.owner, x.ID())
		require.NoError(t, err)
		assert.Equal(t, lot.SpotOccupied, f.store.Spot(spotID).Status())

		_, err = f.cmds.CheckOut(ctx, f.owner, x.ID())

		require.NoError(t, err)
		assert.Equal(t, lot.SpotAvailable, f.store.Spot(spotID).Status())
		assert.Equal(t, 1, f.freeSlots())
		assert.Zero(t, f.queue.Len())
		require.NoError(t, f.store.CheckInventory())
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("permissions and states", func(t *testing.T) {
		tests := []struct {
			name    string
			prepare func(t *testing.T, f *fixture, id uuid.UUID)
			actor   func(f *fixture) commands.Actor
			wantErr error
		}{
			{
				name:  "owning user while pending",
				actor: func(f *fixture) commands.Actor { return f.user },
			},
			{
				name: "owning user while active",
				prepare: func(t *testing.T, f *fixture, id uuid.UUID) {
					_, err := f.cmds.Confirm(context.Background(), f.owner, id)
					require.NoError(t, err)
					_, err = f.cmds.CheckIn(context.Background(), f.owner, id)
					require.NoError(t, err)
				},
				actor:   func(f *fixture) commands.Actor { return f.user },
				wantErr: commands.ErrNotCancellable,
			},
			{
				name:    "staff",
				actor:   func(f *fixture) commands.Actor { return f.staff() },
				wantErr: errs.ErrForbidden,
			},
			{
				name: "another user",
				actor: func(*fixture) commands.Actor {
					return commands.Actor{UserID: uuid.New(), Role: user.RoleUser}
				},
				wantErr: errs.ErrForbidden,
			},
			{
				name: "owner of another lot",
				actor: func(*fixture) commands.Actor {
					return commands.Actor{UserID: uuid.New(), Role: user.RoleParkingOwner}
				},
				wantErr: errs.ErrForbidden,
			},
			{
				name: "admin while active",
				prepare: func(t *testing.T, f *fixture, id uuid.UUID) {
					_, err := f.cmds.Confirm(context.Background(), f.owner, id)
					require.NoError(t, err)
					_, err = f.cmds.CheckIn(context.Background(), f.owner, id)
					require.NoError(t, err)
				},
				actor: func(*fixture) commands.Actor {
					return commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
				},
			},
			{
				name: "owner after completion",
				prepare: func(t *testing.T, f *fixture, id uuid.UUID) {
					ctx := context.Background()
					_, err := f.cmds.Confirm(ctx, f.owner, id)
					require.NoError(t, err)
					_, err = f.cmds.CheckIn(ctx, f.owner, id)
					require.NoError(t, err)
					_, err = f.cmds.CheckOut(ctx, f.owner, id)
					require.NoError(t, err)
				},
				actor:   func(f *fixture) commands.Actor { return f.owner },
				wantErr: errs.ErrInvalidState,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				x := f.create(t, at(10, 0), at(12, 0))
				if tt.prepare != nil {
					tt.prepare(t, f, x.ID())
				}
				before := f.freeSlots()

				got, err := f.cmds.Cancel(context.Background(), tt.actor(f), x.ID())

				if tt.wantErr != nil {
					assert.True(t, errs.Is(err, tt.wantErr))
					assert.Equal(t, before, f.freeSlots())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, booking.StatusCancelled, got.Status())
				assert.Equal(t, 1, f.freeSlots())
				require.NoError(t, f.store.CheckInventory())
			})
		}
	})

	t.Run("user cancel after the policy cutoff", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.lot = func(b *builder.LotBuilder) {
				b.Policy = lot.CancellationPolicy{Cutoff: time.Hour, RefundPercentage: 50}
			}
		})
		x := f.create(t, at(10, 0), at(12, 0))
		f.clock.Set(at(9, 30))

		_, err := f.cmds.Cancel(context.Background(), f.user, x.ID())

		assert.True(t, errs.Is(err, errs.ErrPolicyWindowExpired))
		assert.Equal(t, 0, f.freeSlots())
	})

	t.Run("records the refund in the event", func(t *testing.T) {
		f := newFixture(t, func(s *setup) {
			s.lot = func(b *builder.LotBuilder) {
				b.Policy = lot.CancellationPolicy{Cutoff: time.Hour, RefundPercentage: 50}
			}
		})
		x := f.create(t, at(10, 0), at(12, 0))

		_, err := f.cmds.Cancel(context.Background(), f.user, x.ID())
		require.NoError(t, err)

		jobs := f.store.Jobs()
		last := jobs[len(jobs)-1]
		assert.Equal(t, commands.KindBookingCancelled, last.Kind)
		var ev commands.BookingEvent
		require.NoError(t, json.Unmarshal(last.Payload, &ev))
		require.NotNil(t, ev.RefundAmount)
		assert.Equal(t, int64(15000), *ev.RefundAmount)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cmds.Cancel(context.Background(), f.user, uuid.New())

		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestGateOperations(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(f *fixture) commands.Actor
		confirm bool
		wantErr error
	}{
		{name: "staff", actor: func(f *fixture) commands.Actor { return f.staff() }, confirm: true},
		{name: "lot owner", actor: func(f *fixture) commands.Actor { return f.owner }, confirm: true},
		{
			name:    "plain user",
			actor:   func(f *fixture) commands.Actor { return f.user },
			confirm: true,
			wantErr: errs.ErrForbidden,
		},
		{
			name: "owner of another lot",
			actor: func(*fixture) commands.Actor {
				return commands.Actor{UserID: uuid.New(), Role: user.RoleParkingOwner}
			},
			confirm: true,
			wantErr: errs.ErrForbidden,
		},
		{
			name:    "pending booking",
			actor:   func(f *fixture) commands.Actor { return f.staff() },
			wantErr: errs.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			x := f.create(t, at(10, 0), at(12, 0))
			if tt.confirm {
				_, err := f.cmds.Confirm(context.Background(), f.owner, x.ID())
				require.NoError(t, err)
			}

			got, err := f.cmds.CheckIn(context.Background(), tt.actor(f), x.ID())

			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusActive, got.Status())
			require.NotNil(t, got.CheckInTime())
		})
	}
}

func TestConfirmBooking(t *testing.T) {
	t.Run("user cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		x := f.create(t, at(10, 0), at(12, 0))

		_, err := f.cmds.Confirm(context.Background(), f.user, x.ID())

		assert.ErrorIs(t, err, commands.ErrBookingAccess)
		assert.Equal(t, booking.StatusPending, f.store.Booking(x.ID()).Status())
	})

	t.Run("confirming twice is invalid", func(t *testing.T) {
		f := newFixture(t)
		x := f.create(t, at(10, 0), at(12, 0))
		_, err := f.cmds.Confirm(context.Background(), f.owner, x.ID())
		require.NoError(t, err)

		_, err = f.cmds.Confirm(context.Background(), f.owner, x.ID())

		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestHoldReleaser(t *testing.T) {
	completed := func(t *testing.T, f *fixture) *booking.Booking {
		t.Helper()
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.LotID = f.lotID
			b.UserID = f.user.UserID
			b.Status = booking.StatusCompleted
		}).BuildDomain()
		f.store.PutBooking(b)
		l := f.store.Lot(f.lotID)
		require.NoError(t, l.TryReserveSlot())
		f.store.PutLot(l)
		return b
	}

	t.Run("applying a job twice releases once", func(t *testing.T) {
		f := newFixture(t)
		b := completed(t, f)
		job := reconcile.Job{Type: reconcile.JobIncrementFreeSlots, BookingID: b.ID(), LotID: f.lotID}

		require.NoError(t, f.releaser.Apply(context.Background(), job))
		require.NoError(t, f.releaser.Apply(context.Background(), job))

		assert.Equal(t, 1, f.freeSlots())
		require.NoError(t, f.store.CheckInventory())
	})

	t.Run("refuses a booking that still holds", func(t *testing.T) {
		f := newFixture(t)
		x := f.create(t, at(10, 0), at(12, 0))

		err := f.releaser.Apply(context.Background(), reconcile.Job{
			Type:      reconcile.JobIncrementFreeSlots,
			BookingID: x.ID(),
			LotID:     f.lotID,
		})

		assert.ErrorIs(t, err, commands.ErrReleaseNotTerminal)
		assert.Equal(t, 0, f.freeSlots())
	})

	t.Run("refuses decrements", func(t *testing.T) {
		f := newFixture(t)

		err := f.releaser.Apply(context.Background(), reconcile.Job{Type: reconcile.JobDecrementFreeSlots})

		assert.ErrorIs(t, err, reconcile.ErrNotDeferrable)
	})

	t.Run("sweep finds leaked holds", func(t *testing.T) {
		f := newFixture(t)
		b := completed(t, f)

		jobs, err := f.releaser.Sweep(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, b.ID(), jobs[0].BookingID)

		assert.Equal(t, 1, f.queue.Sweep(context.Background()))
		_, err = f.queue.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, f.freeSlots())
	})
}
