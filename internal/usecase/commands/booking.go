package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/clock"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/reconcile"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.NewKind(errs.ErrNotFound, "booking not found")
	ErrLotNotFound     = errs.NewKind(errs.ErrNotFound, "parking lot not found")
	ErrSpotNotFound    = errs.NewKind(errs.ErrNotFound, "spot not found in this parking lot")
	ErrVehicleNotFound = errs.NewKind(errs.ErrNotFound, "vehicle not found")
	ErrPricingNotFound = errs.NewKind(errs.ErrNotFound, "pricing not found for the selected unit and vehicle")

	ErrVehicleAccess = errs.NewKind(errs.ErrForbidden, "vehicle belongs to another user")
	ErrBookingAccess = errs.NewKind(errs.ErrForbidden, "not authorized to change this booking")

	ErrBookingOverlap  = errs.NewKind(errs.ErrConflict, "requested window overlaps an existing booking")
	ErrNoSpotAvailable = errs.NewKind(errs.ErrNoCapacity, "no spot of this vehicle type is available")
	ErrNoSpotOfType    = errs.NewKind(errs.ErrTypeMismatch, "parking lot has no spot for this vehicle type")
	ErrNotCancellable  = errs.NewKind(errs.ErrInvalidState, "cannot cancel a booking that is not pending or confirmed")
)

const (
	createEndpoint   = "POST /bookings"
	idempotencyTTL   = 24 * time.Hour
	maxCodeAttempts  = 3
	afterCommitGrace = 2 * time.Second
)

// Deferrer accepts capacity increments to apply after the caller commits.
type Deferrer interface {
	Enqueue(job reconcile.Job) error
}

type BookingCommands interface {
	Create(ctx context.Context, actor Actor, in CreateBookingInput) (*CreateBookingResult, error)
	Confirm(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error)
	Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error)
	CheckIn(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error)
	CheckOut(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	ledger    *booking.Ledger
	releaser  *HoldReleaser
	queue     Deferrer
	cache     shared.AvailabilityInvalidator
	clock     clock.Clock
	txTimeout time.Duration
	deferOut  bool
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	ledger *booking.Ledger,
	releaser *HoldReleaser,
	queue Deferrer,
	cache shared.AvailabilityInvalidator,
	clock clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		ledger:    ledger,
		releaser:  releaser,
		queue:     queue,
		cache:     cache,
		clock:     clock,
		txTimeout: cfg.TxTimeout,
		deferOut:  cfg.DeferCheckoutRelease && queue != nil,
	}
}

// lockSet holds the rows of one booking transition, locked lot first, then
// spot, then booking.
type lockSet struct {
	lot     *lot.Lot
	spot    *lot.Spot
	booking *booking.Booking
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actor Actor, in CreateBookingInput) (*CreateBookingResult, error) {
	if !in.Unit.IsValid() {
		return nil, booking.ErrInvalidUnit
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if in.IdempotencyKey == nil {
		b, err := c.createNew(ctx, actor, in, nil)
		if err != nil {
			return nil, classifyTimeout(ctx, err)
		}
		return &CreateBookingResult{Booking: b}, nil
	}

	key := *in.IdempotencyKey
	hash := requestHash(in)
	replayed, err := c.claimKey(ctx, actor.UserID, key, hash)
	if err != nil {
		return nil, classifyTimeout(ctx, err)
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	b, err := c.createNew(ctx, actor, in, &key)
	if err != nil {
		c.dropKey(ctx, actor.UserID, key)
		return nil, classifyTimeout(ctx, err)
	}
	return &CreateBookingResult{Booking: b}, nil
}

// claimKey returns nil when this request owns the key, or the booking a
// finished request with the same payload produced.
func (c *bookingCommandsImpl) claimKey(ctx context.Context, userID, key uuid.UUID, hash string) (*booking.Booking, error) {
	expiresAt := c.clock.Now().Add(idempotencyTTL)

	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		inserted, err = tx.Idempotency().TryInsert(ctx, key, userID, createEndpoint, hash, expiresAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			// The owner of the key failed and released it between our two reads.
			return nil, errs.ErrIdempotencyInProgress
		}
		return nil, err
	}

	if !existing.ExpiresAt.After(c.clock.Now()) {
		var claimed bool
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			claimed, err = tx.Idempotency().ClaimExpired(ctx, key, userID, hash, expiresAt)
			return err
		})
		if err != nil {
			return nil, err
		}
		if claimed {
			return nil, nil
		}
		return nil, errs.ErrIdempotencyInProgress
	}

	if existing.RequestHash != hash {
		return nil, errs.ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed idempotency key has no result booking")
		}
		var b *booking.Booking
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			b, err = tx.Bookings().Get(ctx, *existing.ResultBookingID)
			return err
		})
		if err != nil {
			return nil, notFound(err, ErrBookingNotFound)
		}
		return b, nil
	case shared.IdempotencyProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *bookingCommandsImpl) dropKey(ctx context.Context, userID, key uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitGrace)
	defer cancel()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Delete(ctx, key, userID)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to release idempotency key",
			slog.String("key", key.String()),
			slog.String("error", err.Error()))
	}
}

// createNew reruns the whole transaction when the generated booking code
// collides; a failed insert leaves the tx aborted.
func (c *bookingCommandsImpl) createNew(ctx context.Context, actor Actor, in CreateBookingInput, key *uuid.UUID) (*booking.Booking, error) {
	var (
		created *booking.Booking
		err     error
	)
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, err := c.reserve(ctx, tx, actor, in, key)
			if err != nil {
				return err
			}
			created = b
			return nil
		})
		if err == nil {
			c.invalidate(ctx, in.LotID)
			return created, nil
		}
		if !errs.Is(err, booking.ErrCodeTaken) {
			return nil, err
		}
		slog.InfoContext(ctx, "booking code collision, retrying", slog.Int("attempt", attempt))
	}
	return nil, err
}

func (c *bookingCommandsImpl) reserve(ctx context.Context, tx shared.Tx, actor Actor, in CreateBookingInput, key *uuid.UUID) (*booking.Booking, error) {
	v, err := tx.Vehicles().Get(ctx, in.VehicleID)
	if err != nil {
		return nil, notFound(err, ErrVehicleNotFound)
	}
	if !v.OwnedBy(actor.UserID) {
		return nil, ErrVehicleAccess
	}

	l, err := tx.Lots().GetForUpdate(ctx, in.LotID)
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}
	if err := l.IsBookable(); err != nil {
		return nil, err
	}

	spot, err := pickSpot(ctx, tx, l, in.SpotID, v.Type())
	if err != nil {
		return nil, err
	}

	rule, err := tx.Pricing().Find(ctx, l.ID(), in.Unit, v.Type())
	if err != nil {
		return nil, notFound(err, ErrPricingNotFound)
	}

	var spotID *uuid.UUID
	if spot != nil {
		id := spot.ID()
		spotID = &id
	}

	b, err := c.ledger.Create(booking.CreateSpec{
		UserID:      actor.UserID,
		LotID:       l.ID(),
		SpotID:      spotID,
		VehicleID:   v.ID(),
		Plate:       v.Plate().String(),
		VehicleType: v.Type(),
		Start:       in.Start,
		End:         in.End,
		Rule:        rule,
		Policy:      l.CancellationPolicy(),
	})
	if err != nil {
		return nil, err
	}

	overlap, err := tx.Bookings().HasOverlap(ctx, shared.OverlapQuery{
		LotID:  l.ID(),
		SpotID: spotID,
		Window: b.Window(),
	})
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrBookingOverlap
	}

	if err := l.TryReserveSlot(); err != nil {
		return nil, err
	}
	if spot != nil {
		if err := spot.TryReserve(); err != nil {
			return nil, err
		}
		if err := tx.Spots().UpdateStatus(ctx, spot); err != nil {
			return nil, err
		}
	}
	if err := tx.Lots().Update(ctx, l); err != nil {
		return nil, err
	}

	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, err
	}
	if key != nil {
		if err := tx.Idempotency().MarkCompleted(ctx, *key, actor.UserID, b.ID()); err != nil {
			return nil, err
		}
	}
	if err := emit(ctx, tx, KindBookingCreated, newBookingEvent(b, b.CreatedAt())); err != nil {
		return nil, err
	}
	return b, nil
}

// pickSpot returns nil for a counter-only lot. In spot mode it locks the
// requested spot, or every spot of the lot when one has to be assigned.
func pickSpot(ctx context.Context, tx shared.Tx, l *lot.Lot, requested *uuid.UUID, vt vehicle.Type) (*lot.Spot, error) {
	if requested != nil {
		s, err := tx.Spots().GetForUpdate(ctx, l.ID(), *requested)
		if err != nil {
			return nil, notFound(err, ErrSpotNotFound)
		}
		if err := s.Accepts(vt); err != nil {
			return nil, err
		}
		return s, nil
	}

	n, err := tx.Spots().CountByLot(ctx, l.ID())
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	spots, err := tx.Spots().ListByLotForUpdate(ctx, l.ID())
	if err != nil {
		return nil, err
	}
	if err := lot.CheckHeldSpots(l, spots); err != nil {
		return nil, err
	}
	if s := lot.FirstAssignable(spots, vt); s != nil {
		return s, nil
	}
	for _, s := range spots {
		if s.Type() == vt {
			return nil, ErrNoSpotAvailable
		}
	}
	return nil, ErrNoSpotOfType
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, bookingID, fixed(locks{}), func(ctx context.Context, tx shared.Tx, ls *lockSet) error {
		if !actor.ManagesLot(ls.lot) {
			return ErrBookingAccess
		}
		if err := c.ledger.Transition(ls.booking, booking.EventConfirm); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, ls.booking); err != nil {
			return err
		}
		return emit(ctx, tx, KindBookingConfirmed, newBookingEvent(ls.booking, ls.booking.UpdatedAt()))
	})
}

// Cancel lets the booking's user cancel a pending or confirmed booking
// before the policy cutoff. The lot owner and admins may cancel any booking
// that is not terminal. Staff may not cancel.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, bookingID, fixed(locks{lot: true, spot: true}), func(ctx context.Context, tx shared.Tx, ls *lockSet) error {
		b := ls.booking
		switch {
		case actor.Role == user.RoleStaff:
			return ErrBookingAccess
		case actor.ManagesLot(ls.lot):
		case b.UserID() == actor.UserID:
			if b.Status() != booking.StatusPending && b.Status() != booking.StatusConfirmed {
				return ErrNotCancellable
			}
			if err := b.CheckCancelWindow(c.clock.Now()); err != nil {
				return err
			}
		default:
			return ErrBookingAccess
		}

		if err := c.ledger.Transition(b, booking.EventCancel); err != nil {
			return err
		}
		if _, err := releaseHold(ctx, tx, ls); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}

		ev := newBookingEvent(b, *b.CancelledAt())
		refund := b.RefundAmount()
		ev.RefundAmount = &refund
		return emit(ctx, tx, KindBookingCancelled, ev)
	})
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.transition(ctx, bookingID, fixed(locks{spot: true}), func(ctx context.Context, tx shared.Tx, ls *lockSet) error {
		if !actor.OperatesGate(ls.lot) {
			return ErrBookingAccess
		}
		if err := c.ledger.Transition(ls.booking, booking.EventCheckIn); err != nil {
			return err
		}
		if ls.spot != nil {
			if err := ls.spot.Occupy(); err != nil {
				return err
			}
			if err := tx.Spots().UpdateStatus(ctx, ls.spot); err != nil {
				return err
			}
		}
		if err := tx.Bookings().Update(ctx, ls.booking); err != nil {
			return err
		}
		return emit(ctx, tx, KindBookingCheckedIn, newBookingEvent(ls.booking, *ls.booking.CheckInTime()))
	})
}

// CheckOut completes an active booking. A spot is vacated and released in
// the same transaction. A counter-only hold is handed to the reconciliation
// queue when deferral is on, and released inline when the queue refuses it.
func (c *bookingCommandsImpl) CheckOut(ctx context.Context, actor Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	deferred := false
	plan := func(ref *shared.BookingRef) locks {
		deferred = c.deferOut && ref.SpotID == nil
		return locks{lot: !deferred, spot: true}
	}

	b, err := c.transition(ctx, bookingID, plan, func(ctx context.Context, tx shared.Tx, ls *lockSet) error {
		if !actor.OperatesGate(ls.lot) {
			return ErrBookingAccess
		}
		if err := c.ledger.FinalizeCheckout(ls.booking, c.clock.Now()); err != nil {
			return err
		}
		if ls.spot != nil {
			if err := ls.spot.Vacate(); err != nil {
				return err
			}
		}
		if !deferred {
			if _, err := releaseHold(ctx, tx, ls); err != nil {
				return err
			}
		}
		if err := tx.Bookings().Update(ctx, ls.booking); err != nil {
			return err
		}
		return emit(ctx, tx, KindBookingCompleted, newBookingEvent(ls.booking, *ls.booking.CheckOutTime()))
	})
	if err != nil {
		return nil, err
	}

	if deferred {
		c.deferRelease(ctx, b)
	}
	return b, nil
}

func (c *bookingCommandsImpl) deferRelease(ctx context.Context, b *booking.Booking) {
	job := reconcile.Job{
		Type:       reconcile.JobIncrementFreeSlots,
		BookingID:  b.ID(),
		LotID:      b.LotID(),
		SpotID:     b.SpotID(),
		EnqueuedAt: c.clock.Now(),
	}
	err := c.queue.Enqueue(job)
	if err == nil {
		return
	}

	slog.WarnContext(ctx, "reconciliation queue refused job, releasing inline",
		slog.String("booking_id", b.ID().String()),
		slog.String("error", err.Error()))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeoutOr(afterCommitGrace))
	defer cancel()
	if err := c.releaser.Apply(ctx, job); err != nil {
		// The sweep finds the booking again through capacity_released.
		slog.ErrorContext(ctx, "inline release failed",
			slog.String("booking_id", b.ID().String()),
			slog.String("error", err.Error()))
	}
}

func (c *bookingCommandsImpl) lookup(ctx context.Context, bookingID uuid.UUID) (*shared.BookingRef, error) {
	ref, err := c.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return ref, nil
}

// locks says which rows a transition takes FOR UPDATE besides the booking.
// The lot row is only locked when the counter may change.
type locks struct {
	lot  bool
	spot bool
}

func fixed(l locks) func(*shared.BookingRef) locks {
	return func(*shared.BookingRef) locks { return l }
}

// transition runs fn over the locked rows of one booking.
func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	plan func(ref *shared.BookingRef) locks,
	fn func(ctx context.Context, tx shared.Tx, ls *lockSet) error,
) (*booking.Booking, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ref, err := c.lookup(ctx, bookingID)
	if err != nil {
		return nil, classifyTimeout(ctx, err)
	}
	want := plan(ref)

	var out *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ls, err := lockBooking(ctx, tx, ref, want)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, ls); err != nil {
			return err
		}
		out = ls.booking
		return nil
	})
	if err != nil {
		return nil, classifyTimeout(ctx, err)
	}

	c.invalidate(ctx, ref.LotID)
	return out, nil
}

func lockBooking(ctx context.Context, tx shared.Tx, ref *shared.BookingRef, want locks) (*lockSet, error) {
	var (
		ls  lockSet
		err error
	)
	if want.lot {
		ls.lot, err = tx.Lots().GetForUpdate(ctx, ref.LotID)
	} else {
		ls.lot, err = tx.Lots().Get(ctx, ref.LotID)
	}
	if err != nil {
		return nil, notFound(err, ErrLotNotFound)
	}

	if want.spot && ref.SpotID != nil {
		ls.spot, err = tx.Spots().GetForUpdate(ctx, ref.LotID, *ref.SpotID)
		if err != nil {
			return nil, notFound(err, ErrSpotNotFound)
		}
	}

	ls.booking, err = tx.Bookings().GetForUpdate(ctx, ref.ID)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return &ls, nil
}

// releaseHold returns the booking's slot, and its spot if any, exactly once.
// It reports false when the hold was already released. The caller persists
// the booking.
func releaseHold(ctx context.Context, tx shared.Tx, ls *lockSet) (bool, error) {
	if !ls.booking.MarkCapacityReleased() {
		return false, nil
	}
	if err := ls.lot.ReleaseSlot(); err != nil {
		return false, err
	}
	if err := tx.Lots().Update(ctx, ls.lot); err != nil {
		return false, err
	}
	if ls.spot != nil {
		if err := ls.spot.Release(); err != nil {
			return false, err
		}
		if err := tx.Spots().UpdateStatus(ctx, ls.spot); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (c *bookingCommandsImpl) invalidate(ctx context.Context, lotID uuid.UUID) {
	invalidate(ctx, c.cache, lotID)
}

func invalidate(ctx context.Context, cache shared.AvailabilityInvalidator, lotID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(context.WithoutCancel(ctx), lotID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate availability cache",
			slog.String("lot_id", lotID.String()),
			slog.String("error", err.Error()))
	}
}

func (c *bookingCommandsImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.txTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.txTimeout)
}

func (c *bookingCommandsImpl) timeoutOr(d time.Duration) time.Duration {
	if c.txTimeout > 0 {
		return c.txTimeout
	}
	return d
}

// classifyTimeout turns a deadline or cancellation into a retryable error.
func classifyTimeout(ctx context.Context, err error) error {
	if err == nil || errs.Is(err, errs.ErrRetryableTimeout) {
		return err
	}
	if ctx.Err() != nil || errs.IsAny(err, context.DeadlineExceeded, context.Canceled) {
		return errs.WithKind(err, errs.ErrRetryableTimeout)
	}
	return err
}

func notFound(err, sentinel error) error {
	if errs.Is(err, errs.ErrNotFound) {
		return sentinel
	}
	return err
}

func requestHash(in CreateBookingInput) string {
	in.Start = in.Start.UTC()
	if in.End != nil {
		end := in.End.UTC()
		in.End = &end
	}
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
