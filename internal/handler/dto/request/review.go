package request

import "github.com/google/uuid"

type CreateReviewRequest struct {
	LotID   uuid.UUID `json:"lot_id" binding:"required"`
	Rating  int       `json:"rating" binding:"required,min=1,max=5"`
	Comment string    `json:"comment" binding:"max=500"`
}

// UpdateReviewRequest is a partial update; omitted fields stay as they are.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=500"`
}

type ListReviewsQuery struct {
	MinRating int    `form:"min_rating" binding:"omitempty,min=1,max=5"`
	MaxRating int    `form:"max_rating" binding:"omitempty,min=1,max=5"`
	Limit     int    `form:"limit"`
	After     string `form:"after"`
}
