package review

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating   = errs.NewKind(errs.ErrValidation, "rating must be between 1 and 5")
	ErrCommentTooLong  = errs.NewKind(errs.ErrValidation, "comment must be at most 500 characters")
	ErrNotEligible     = errs.NewKind(errs.ErrForbidden, "only guests with a completed booking at this lot can review it")
	ErrAlreadyReviewed = errs.NewKind(errs.ErrConflict, "this lot has already been reviewed by the user")
	ErrAlreadyDeleted  = errs.NewKind(errs.ErrInvalidState, "review is already deleted")
)

// Review is one guest's rating of a parking lot. A user holds at most one
// live review per lot; deletion is soft.
type Review struct {
	id        uuid.UUID
	userID    uuid.UUID
	lotID     uuid.UUID
	rating    Rating
	comment   Comment
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func NewReview(userID, lotID uuid.UUID, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	return &Review{
		id:        uuid.New(),
		userID:    userID,
		lotID:     lotID,
		rating:    rating,
		comment:   comment,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructReview rebuilds a review from storage without validation.
func ReconstructReview(id, userID, lotID uuid.UUID, rating int, comment string, createdAt, updatedAt time.Time, deletedAt *time.Time) *Review {
	return &Review{
		id:        id,
		userID:    userID,
		lotID:     lotID,
		rating:    Rating{value: rating},
		comment:   Comment{text: comment},
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (r *Review) ID() uuid.UUID         { return r.id }
func (r *Review) UserID() uuid.UUID     { return r.userID }
func (r *Review) LotID() uuid.UUID      { return r.lotID }
func (r *Review) Rating() Rating        { return r.rating }
func (r *Review) Comment() Comment      { return r.comment }
func (r *Review) CreatedAt() time.Time  { return r.createdAt }
func (r *Review) UpdatedAt() time.Time  { return r.updatedAt }
func (r *Review) DeletedAt() *time.Time { return r.deletedAt }
func (r *Review) IsDeleted() bool       { return r.deletedAt != nil }

func (r *Review) WrittenBy(userID uuid.UUID) bool {
	return r.userID == userID
}

// Edit applies a partial update. Nil fields keep their value. It reports
// whether anything changed; updatedAt only moves when it did.
func (r *Review) Edit(ratingValue *int, commentText *string, now time.Time) (bool, error) {
	if r.IsDeleted() {
		return false, ErrAlreadyDeleted
	}

	rating, err := NewRating(patch.Coalesce(ratingValue, r.rating.Value()))
	if err != nil {
		return false, err
	}
	comment, err := NewComment(patch.Coalesce(commentText, r.comment.String()))
	if err != nil {
		return false, err
	}

	if !patch.Changed(&rating, r.rating) && !patch.Changed(&comment, r.comment) {
		return false, nil
	}
	r.rating = rating
	r.comment = comment
	r.updatedAt = now
	return true, nil
}

func (r *Review) Delete(now time.Time) error {
	if r.IsDeleted() {
		return ErrAlreadyDeleted
	}
	r.deletedAt = &now
	r.updatedAt = now
	return nil
}
