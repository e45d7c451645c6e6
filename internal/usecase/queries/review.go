package queries

import (
	"context"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound     = errs.NewKind(errs.ErrNotFound, "review not found")
	ErrReviewListAccess   = errs.NewKind(errs.ErrForbidden, "only admins can list reviews across lots")
	ErrInvalidRatingRange = errs.NewKind(errs.ErrValidation, "rating filter must satisfy 1 <= min <= max <= 5")
)

// ReviewFilter narrows a review listing. A nil LotID spans every lot; zero
// ratings mean unbounded.
type ReviewFilter struct {
	LotID     *uuid.UUID
	MinRating int
	MaxRating int
}

func (f ReviewFilter) normalized() (ReviewFilter, error) {
	if f.MinRating == 0 {
		f.MinRating = review.MinRating
	}
	if f.MaxRating == 0 {
		f.MaxRating = review.MaxRating
	}
	if f.MinRating < review.MinRating || f.MaxRating > review.MaxRating || f.MinRating > f.MaxRating {
		return f, ErrInvalidRatingRange
	}
	return f, nil
}

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	FindFirstPage(ctx context.Context, f ReviewFilter, limit int32) ([]*ReviewView, error)
	FindKeyset(ctx context.Context, f ReviewFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReviewView, error)
	FindLotRatingStats(ctx context.Context, lotID uuid.UUID) (*LotRatingStats, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByLot(ctx context.Context, lotID uuid.UUID, f ReviewFilter, cursor *Cursor, limit int) (*LotReviewsPage, error)
	ListAll(ctx context.Context, viewer Viewer, f ReviewFilter, cursor *Cursor, limit int) ([]*ReviewView, *Cursor, error)
}

type reviewQueriesImpl struct {
	repo ReviewReadStore
	lots LotReadStore
}

func NewReviewQueries(repo ReviewReadStore, lots LotReadStore) ReviewQueries {
	return &reviewQueriesImpl{repo: repo, lots: lots}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

// ListByLot pages through a lot's live reviews, newest first. Stats are
// zero for a lot nobody has reviewed yet.
func (q *reviewQueriesImpl) ListByLot(ctx context.Context, lotID uuid.UUID, f ReviewFilter, cursor *Cursor, limit int) (*LotReviewsPage, error) {
	if _, err := q.lots.FindAvailability(ctx, lotID); err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}

	f.LotID = &lotID
	reviews, next, err := q.page(ctx, f, cursor, limit)
	if err != nil {
		return nil, err
	}

	stats, err := q.repo.FindLotRatingStats(ctx, lotID)
	if err != nil {
		if !errs.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		stats = &LotRatingStats{LotID: lotID}
	}
	return &LotReviewsPage{Stats: stats, Reviews: reviews, Next: next}, nil
}

// ListAll is the moderation view across lots.
func (q *reviewQueriesImpl) ListAll(ctx context.Context, viewer Viewer, f ReviewFilter, cursor *Cursor, limit int) ([]*ReviewView, *Cursor, error) {
	if user.Role(viewer.Role) != user.RoleAdmin {
		return nil, nil, ErrReviewListAccess
	}
	return q.page(ctx, f, cursor, limit)
}

func (q *reviewQueriesImpl) page(ctx context.Context, f ReviewFilter, cursor *Cursor, limit int) ([]*ReviewView, *Cursor, error) {
	f, err := f.normalized()
	if err != nil {
		return nil, nil, err
	}

	limit = ClampLimit(limit)
	var rows []*ReviewView
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFirstPage(ctx, f, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := cursor.position()
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindKeyset(ctx, f, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = cursorAt(last.CreatedAt, last.ID)
		rows = rows[:limit]
	}
	return rows, next, nil
}
