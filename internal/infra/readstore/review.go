package readstore

import (
	"context"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewViewQueries interface {
	GetReviewView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.ReviewViewRow, error)
	ListReviewsFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReviewsFirstPageParams) ([]sqlc.ReviewViewRow, error)
	ListReviewsKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReviewsKeysetParams) ([]sqlc.ReviewViewRow, error)
	GetLotRatingStats(ctx context.Context, db sqlc.DBTX, lotID uuid.UUID) (sqlc.LotRatingStats, error)
}

type ReviewReadStore struct {
	queries ReviewViewQueries
	db      sqlc.DBTX
}

func NewReviewReadStore(queries ReviewViewQueries, db sqlc.DBTX) *ReviewReadStore {
	return &ReviewReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	row, err := r.queries.GetReviewView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get review view by id", err)
	}
	return toReviewView(row), nil
}

func (r *ReviewReadStore) FindFirstPage(ctx context.Context, f queries.ReviewFilter, limit int32) ([]*queries.ReviewView, error) {
	rows, err := r.queries.ListReviewsFirstPage(ctx, r.db, sqlc.ListReviewsFirstPageParams{
		LotID:     pgconv.UUIDPtrToPgtype(f.LotID),
		MinRating: int32(f.MinRating),
		MaxRating: int32(f.MaxRating),
		Limit:     limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews first page", err)
	}
	return toReviewViews(rows), nil
}

func (r *ReviewReadStore) FindKeyset(ctx context.Context, f queries.ReviewFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReviewView, error) {
	rows, err := r.queries.ListReviewsKeyset(ctx, r.db, sqlc.ListReviewsKeysetParams{
		LotID:     pgconv.UUIDPtrToPgtype(f.LotID),
		MinRating: int32(f.MinRating),
		MaxRating: int32(f.MaxRating),
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		Limit:     limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews keyset", err)
	}
	return toReviewViews(rows), nil
}

// FindLotRatingStats reads the aggregate kept by the review commands. A lot
// that was never reviewed has no row and reads as not found.
func (r *ReviewReadStore) FindLotRatingStats(ctx context.Context, lotID uuid.UUID) (*queries.LotRatingStats, error) {
	row, err := r.queries.GetLotRatingStats(ctx, r.db, lotID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot rating stats not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get lot rating stats", err)
	}
	return &queries.LotRatingStats{
		LotID:         row.LotID,
		TotalReviews:  int(row.TotalReviews),
		AverageRating: row.AverageRating,
		RatingCounts: [5]int{
			int(row.Rating1Count),
			int(row.Rating2Count),
			int(row.Rating3Count),
			int(row.Rating4Count),
			int(row.Rating5Count),
		},
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func toReviewView(row sqlc.ReviewViewRow) *queries.ReviewView {
	return &queries.ReviewView{
		ID:        row.ID,
		UserID:    row.UserID,
		UserEmail: row.UserEmail,
		LotID:     row.LotID,
		LotName:   row.LotName,
		Rating:    int(row.Rating),
		Comment:   row.Comment,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toReviewViews(rows []sqlc.ReviewViewRow) []*queries.ReviewView {
	out := make([]*queries.ReviewView, 0, len(rows))
	for _, row := range rows {
		out = append(out, toReviewView(row))
	}
	return out
}
