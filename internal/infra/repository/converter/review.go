package converter

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
)

func ReviewToInfra(r *review.Review) sqlc.CreateReviewParams {
	return sqlc.CreateReviewParams{
		ID:        r.ID(),
		UserID:    r.UserID(),
		LotID:     r.LotID(),
		Rating:    int32(r.Rating().Value()),
		Comment:   r.Comment().String(),
		CreatedAt: pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func ReviewStateToInfra(r *review.Review) sqlc.UpdateReviewParams {
	return sqlc.UpdateReviewParams{
		ID:        r.ID(),
		Rating:    int32(r.Rating().Value()),
		Comment:   r.Comment().String(),
		UpdatedAt: pgconv.TimeToPgtype(r.UpdatedAt()),
		DeletedAt: pgconv.TimePtrToPgtype(r.DeletedAt()),
	}
}

func ReviewFromInfra(row sqlc.Reviews) *review.Review {
	return review.ReconstructReview(
		row.ID,
		row.UserID,
		row.LotID,
		int(row.Rating),
		row.Comment,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
		pgconv.TimePtrFromPgtype(row.DeletedAt),
	)
}
