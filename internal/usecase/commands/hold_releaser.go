package commands

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/reconcile"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"
)

var ErrReleaseNotTerminal = errs.NewKind(errs.ErrInvalidState, "capacity is only released for completed or cancelled bookings")

var (
	_ reconcile.Applier = (*HoldReleaser)(nil)
	_ reconcile.Sweeper = (*HoldReleaser)(nil)
)

// HoldReleaser gives the capacity of a finished booking back to its lot in a
// transaction of its own. Applying the same job twice is a no-op.
type HoldReleaser struct {
	uow   shared.UnitOfWork
	cache shared.AvailabilityInvalidator
}

func NewHoldReleaser(uow shared.UnitOfWork, cache shared.AvailabilityInvalidator) *HoldReleaser {
	return &HoldReleaser{uow: uow, cache: cache}
}

func (h *HoldReleaser) Apply(ctx context.Context, job reconcile.Job) error {
	if job.Type != reconcile.JobIncrementFreeSlots {
		return errs.Wrapf(reconcile.ErrNotDeferrable, "job type %s", job.Type)
	}

	ref := &shared.BookingRef{ID: job.BookingID, LotID: job.LotID, SpotID: job.SpotID}
	released := false
	err := h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ls, err := lockBooking(ctx, tx, ref, locks{lot: true, spot: true})
		if err != nil {
			return err
		}
		if !ls.booking.Status().IsTerminal() {
			return errs.Wrapf(ErrReleaseNotTerminal, "booking %s is %s", ls.booking.ID(), ls.booking.Status())
		}

		released, err = releaseHold(ctx, tx, ls)
		if err != nil || !released {
			return err
		}
		return tx.Bookings().Update(ctx, ls.booking)
	})
	if err != nil {
		return err
	}

	if released {
		invalidate(ctx, h.cache, job.LotID)
	}
	return nil
}

// Sweep lists terminal bookings that still hold capacity.
func (h *HoldReleaser) Sweep(ctx context.Context, limit int) ([]reconcile.Job, error) {
	refs, err := h.uow.CommandReads().UnreleasedBookings(ctx, limit)
	if err != nil {
		return nil, err
	}

	jobs := make([]reconcile.Job, 0, len(refs))
	for _, ref := range refs {
		jobs = append(jobs, reconcile.Job{
			Type:      reconcile.JobIncrementFreeSlots,
			BookingID: ref.ID,
			LotID:     ref.LotID,
			SpotID:    ref.SpotID,
		})
	}
	return jobs, nil
}
