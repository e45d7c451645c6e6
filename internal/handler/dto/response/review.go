package response

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email,omitempty"`
	LotID     uuid.UUID `json:"lot_id"`
	LotName   string    `json:"lot_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromReview(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID(),
		UserID:    r.UserID(),
		LotID:     r.LotID(),
		Rating:    r.Rating().Value(),
		Comment:   r.Comment().String(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

func FromReviewView(v *queries.ReviewView) (*ReviewResponse, error) {
	var res ReviewResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromReviewViews(views []*queries.ReviewView) ([]*ReviewResponse, error) {
	out := make([]*ReviewResponse, 0, len(views))
	for _, v := range views {
		res, err := FromReviewView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

type RatingStatsResponse struct {
	TotalReviews  int       `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	Rating1Count  int       `json:"rating_1_count"`
	Rating2Count  int       `json:"rating_2_count"`
	Rating3Count  int       `json:"rating_3_count"`
	Rating4Count  int       `json:"rating_4_count"`
	Rating5Count  int       `json:"rating_5_count"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

func FromRatingStats(s *queries.LotRatingStats) RatingStatsResponse {
	return RatingStatsResponse{
		TotalReviews:  s.TotalReviews,
		AverageRating: s.AverageRating,
		Rating1Count:  s.RatingCounts[0],
		Rating2Count:  s.RatingCounts[1],
		Rating3Count:  s.RatingCounts[2],
		Rating4Count:  s.RatingCounts[3],
		Rating5Count:  s.RatingCounts[4],
		UpdatedAt:     s.UpdatedAt,
	}
}

type ReviewListResponse struct {
	Items      []*ReviewResponse `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

type LotReviewsResponse struct {
	LotID      uuid.UUID           `json:"lot_id"`
	Stats      RatingStatsResponse `json:"stats"`
	Items      []*ReviewResponse   `json:"items"`
	NextCursor *string             `json:"next_cursor,omitempty"`
}
