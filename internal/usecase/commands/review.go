package commands

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/clock"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errs.NewKind(errs.ErrNotFound, "review not found")
	ErrReviewAccess   = errs.NewKind(errs.ErrForbidden, "not authorized to change this review")
)

type ReviewCommands interface {
	Create(ctx context.Context, actor Actor, in CreateReviewInput) (*review.Review, error)
	Update(ctx context.Context, actor Actor, reviewID uuid.UUID, in UpdateReviewInput) (*review.Review, error)
	Delete(ctx context.Context, actor Actor, reviewID uuid.UUID) error
}

type CreateReviewInput struct {
	LotID   uuid.UUID
	Rating  int
	Comment string
}

// UpdateReviewInput leaves nil fields untouched.
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

type reviewCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk}
}

// Create records a guest's review of a lot they have completed a booking at.
// The lot row is locked first so rating stats of one lot recalculate in turn.
func (c *reviewCommandsImpl) Create(ctx context.Context, actor Actor, in CreateReviewInput) (*review.Review, error) {
	rv, err := review.NewReview(actor.UserID, in.LotID, in.Rating, in.Comment, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Lots().GetForUpdate(ctx, in.LotID); err != nil {
			return notFound(err, ErrLotNotFound)
		}

		eligible, err := tx.Reviews().HasCompletedBooking(ctx, actor.UserID, in.LotID)
		if err != nil {
			return err
		}
		if !eligible {
			return review.ErrNotEligible
		}

		if err := tx.Reviews().Create(ctx, rv); err != nil {
			return err
		}
		return tx.Reviews().RecalcLotStats(ctx, in.LotID, c.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// Update lets the author change rating or comment.
func (c *reviewCommandsImpl) Update(ctx context.Context, actor Actor, reviewID uuid.UUID, in UpdateReviewInput) (*review.Review, error) {
	var out *review.Review
	err := c.withReview(ctx, reviewID, func(ctx context.Context, tx shared.Tx, rv *review.Review) error {
		if !rv.WrittenBy(actor.UserID) {
			return ErrReviewAccess
		}
		changed, err := rv.Edit(in.Rating, in.Comment, c.clock.Now())
		if err != nil {
			return err
		}
		out = rv
		if !changed {
			return nil
		}
		if err := tx.Reviews().Update(ctx, rv); err != nil {
			return err
		}
		return tx.Reviews().RecalcLotStats(ctx, rv.LotID(), c.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete soft-deletes a review. Authors and admins may delete.
func (c *reviewCommandsImpl) Delete(ctx context.Context, actor Actor, reviewID uuid.UUID) error {
	return c.withReview(ctx, reviewID, func(ctx context.Context, tx shared.Tx, rv *review.Review) error {
		if !rv.WrittenBy(actor.UserID) && !actor.IsAdmin() {
			return ErrReviewAccess
		}
		if err := rv.Delete(c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reviews().Update(ctx, rv); err != nil {
			return err
		}
		return tx.Reviews().RecalcLotStats(ctx, rv.LotID(), c.clock.Now())
	})
}

// withReview locks the review, then its lot so stats of one lot are
// recalculated in turn.
func (c *reviewCommandsImpl) withReview(ctx context.Context, reviewID uuid.UUID, fn func(ctx context.Context, tx shared.Tx, rv *review.Review) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ref, err := tx.Reviews().GetForUpdate(ctx, reviewID)
		if err != nil {
			return notFound(err, ErrReviewNotFound)
		}
		if _, err := tx.Lots().GetForUpdate(ctx, ref.LotID()); err != nil {
			return notFound(err, ErrLotNotFound)
		}
		return fn(ctx, tx, ref)
	})
}
