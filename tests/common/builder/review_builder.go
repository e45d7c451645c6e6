//go:build unit || e2e

package builder

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	LotID     uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
	DeletedAt *time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		LotID:     uuid.New(),
		Rating:    5,
		Comment:   "Easy to find, friendly guard",
		CreatedAt: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
	}
}

func (b *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(b)
	return b
}

func (b *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	b.Rating = rating
	return b
}

func (b *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	b.Comment = comment
	return b
}

// BuildNew runs the domain constructor, so invalid fields surface as errors.
func (b *ReviewBuilder) BuildNew() (*review.Review, error) {
	return review.NewReview(b.UserID, b.LotID, b.Rating, b.Comment, b.CreatedAt)
}

func (b *ReviewBuilder) BuildDomain() *review.Review {
	return review.ReconstructReview(b.ID, b.UserID, b.LotID, b.Rating, b.Comment, b.CreatedAt, b.CreatedAt, b.DeletedAt)
}

func (b *ReviewBuilder) BuildInfra() sqlc.Reviews {
	return sqlc.Reviews{
		ID:        b.ID,
		UserID:    b.UserID,
		LotID:     b.LotID,
		Rating:    int32(b.Rating),
		Comment:   b.Comment,
		CreatedAt: pgconv.TimeToPgtype(b.CreatedAt),
		UpdatedAt: pgconv.TimeToPgtype(b.CreatedAt),
		DeletedAt: pgconv.TimePtrToPgtype(b.DeletedAt),
	}
}
