package repository

import (
	"context"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository/converter"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const reviewUserLotConstraint = "reviews_user_lot_live_unique"

type ReviewWriteQueries interface {
	CreateReview(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReviewParams) error
	GetLiveReviewForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reviews, error)
	UpdateReview(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReviewParams) (int64, error)
	HasCompletedBookingAtLot(ctx context.Context, db sqlc.DBTX, arg sqlc.HasCompletedBookingAtLotParams) (bool, error)
	RecalcLotRatingStats(ctx context.Context, db sqlc.DBTX, arg sqlc.RecalcLotRatingStatsParams) error
}

type ReviewRepository struct {
	queries ReviewWriteQueries
	db      sqlc.DBTX
}

func NewReviewRepository(queries ReviewWriteQueries, db sqlc.DBTX) *ReviewRepository {
	return &ReviewRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	if err := r.queries.CreateReview(ctx, r.db, converter.ReviewToInfra(rv)); err != nil {
		wrapped := infra.WrapRepoErr("failed to create review", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) && infra.ConstraintName(err) == reviewUserLotConstraint {
			return review.ErrAlreadyReviewed
		}
		return wrapped
	}
	return nil
}

// GetForUpdate locks a live review. Deleted reviews read as not found.
func (r *ReviewRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	row, err := r.queries.GetLiveReviewForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get review", err)
	}
	return converter.ReviewFromInfra(row), nil
}

// Update writes rating, comment and the soft-delete mark.
func (r *ReviewRepository) Update(ctx context.Context, rv *review.Review) error {
	rows, err := r.queries.UpdateReview(ctx, r.db, converter.ReviewStateToInfra(rv))
	if err != nil {
		return infra.WrapRepoErr("failed to update review", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReviewRepository) HasCompletedBooking(ctx context.Context, userID, lotID uuid.UUID) (bool, error) {
	found, err := r.queries.HasCompletedBookingAtLot(ctx, r.db, sqlc.HasCompletedBookingAtLotParams{
		UserID: userID,
		LotID:  lotID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check completed bookings", err)
	}
	return found, nil
}

// RecalcLotStats rebuilds the lot's rating aggregate from its live reviews.
// Callers hold the lot row lock so concurrent recalculations serialize.
func (r *ReviewRepository) RecalcLotStats(ctx context.Context, lotID uuid.UUID, now time.Time) error {
	err := r.queries.RecalcLotRatingStats(ctx, r.db, sqlc.RecalcLotRatingStatsParams{
		LotID:     lotID,
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to recalculate lot rating stats", err)
	}
	return nil
}
