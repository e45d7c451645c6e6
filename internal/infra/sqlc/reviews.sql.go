package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createReview = `-- name: CreateReview :exec
INSERT INTO reviews (id, user_id, lot_id, rating, comment, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreateReviewParams struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	LotID     uuid.UUID          `json:"lot_id"`
	Rating    int32              `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateReview(ctx context.Context, db DBTX, arg CreateReviewParams) error {
	_, err := db.Exec(ctx, createReview,
		arg.ID,
		arg.UserID,
		arg.LotID,
		arg.Rating,
		arg.Comment,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getLiveReviewForUpdate = `-- name: GetLiveReviewForUpdate :one
SELECT id, user_id, lot_id, rating, comment, created_at, updated_at, deleted_at
FROM reviews
WHERE id = $1
  AND deleted_at IS NULL
FOR UPDATE
`

func (q *Queries) GetLiveReviewForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reviews, error) {
	row := db.QueryRow(ctx, getLiveReviewForUpdate, id)
	var i Reviews
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.LotID,
		&i.Rating,
		&i.Comment,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const updateReview = `-- name: UpdateReview :execrows
UPDATE reviews
SET rating     = $2,
    comment    = $3,
    updated_at = $4,
    deleted_at = $5
WHERE id = $1
  AND deleted_at IS NULL
`

type UpdateReviewParams struct {
	ID        uuid.UUID          `json:"id"`
	Rating    int32              `json:"rating"`
	Comment   string             `json:"comment"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}

func (q *Queries) UpdateReview(ctx context.Context, db DBTX, arg UpdateReviewParams) (int64, error) {
	result, err := db.Exec(ctx, updateReview,
		arg.ID,
		arg.Rating,
		arg.Comment,
		arg.UpdatedAt,
		arg.DeletedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const hasCompletedBookingAtLot = `-- name: HasCompletedBookingAtLot :one
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE user_id = $1
      AND lot_id = $2
      AND status = 'completed'
)
`

type HasCompletedBookingAtLotParams struct {
	UserID uuid.UUID `json:"user_id"`
	LotID  uuid.UUID `json:"lot_id"`
}

func (q *Queries) HasCompletedBookingAtLot(ctx context.Context, db DBTX, arg HasCompletedBookingAtLotParams) (bool, error) {
	row := db.QueryRow(ctx, hasCompletedBookingAtLot, arg.UserID, arg.LotID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const recalcLotRatingStats = `-- name: RecalcLotRatingStats :exec
INSERT INTO lot_rating_stats (
    lot_id, total_reviews, average_rating,
    rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count,
    updated_at
)
SELECT $1::uuid,
       count(*),
       COALESCE(avg(rating), 0)::float8,
       count(*) FILTER (WHERE rating = 1),
       count(*) FILTER (WHERE rating = 2),
       count(*) FILTER (WHERE rating = 3),
       count(*) FILTER (WHERE rating = 4),
       count(*) FILTER (WHERE rating = 5),
       $2::timestamptz
FROM reviews
WHERE lot_id = $1::uuid
  AND deleted_at IS NULL
ON CONFLICT (lot_id) DO UPDATE
SET total_reviews  = EXCLUDED.total_reviews,
    average_rating = EXCLUDED.average_rating,
    rating_1_count = EXCLUDED.rating_1_count,
    rating_2_count = EXCLUDED.rating_2_count,
    rating_3_count = EXCLUDED.rating_3_count,
    rating_4_count = EXCLUDED.rating_4_count,
    rating_5_count = EXCLUDED.rating_5_count,
    updated_at     = EXCLUDED.updated_at
`

type RecalcLotRatingStatsParams struct {
	LotID     uuid.UUID          `json:"lot_id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) RecalcLotRatingStats(ctx context.Context, db DBTX, arg RecalcLotRatingStatsParams) error {
	_, err := db.Exec(ctx, recalcLotRatingStats, arg.LotID, arg.UpdatedAt)
	return err
}

const getLotRatingStats = `-- name: GetLotRatingStats :one
SELECT lot_id, total_reviews, average_rating,
       rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count,
       updated_at
FROM lot_rating_stats
WHERE lot_id = $1
`

func (q *Queries) GetLotRatingStats(ctx context.Context, db DBTX, lotID uuid.UUID) (LotRatingStats, error) {
	row := db.QueryRow(ctx, getLotRatingStats, lotID)
	var i LotRatingStats
	err := row.Scan(
		&i.LotID,
		&i.TotalReviews,
		&i.AverageRating,
		&i.Rating1Count,
		&i.Rating2Count,
		&i.Rating3Count,
		&i.Rating4Count,
		&i.Rating5Count,
		&i.UpdatedAt,
	)
	return i, err
}

const reviewViewColumns = `r.id, r.user_id, u.email AS user_email, r.lot_id, l.name AS lot_name,
       r.rating, r.comment, r.created_at, r.updated_at`

type ReviewViewRow struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	UserEmail string             `json:"user_email"`
	LotID     uuid.UUID          `json:"lot_id"`
	LotName   string             `json:"lot_name"`
	Rating    int32              `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func scanReviewView(row interface{ Scan(...any) error }) (ReviewViewRow, error) {
	var i ReviewViewRow
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.UserEmail,
		&i.LotID,
		&i.LotName,
		&i.Rating,
		&i.Comment,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectReviewViews(rows pgx.Rows) ([]ReviewViewRow, error) {
	defer rows.Close()
	var items []ReviewViewRow
	for rows.Next() {
		i, err := scanReviewView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getReviewView = `-- name: GetReviewView :one
SELECT ` + reviewViewColumns + `
FROM reviews r
JOIN users u ON u.id = r.user_id
JOIN lots l ON l.id = r.lot_id
WHERE r.id = $1
  AND r.deleted_at IS NULL
`

func (q *Queries) GetReviewView(ctx context.Context, db DBTX, id uuid.UUID) (ReviewViewRow, error) {
	return scanReviewView(db.QueryRow(ctx, getReviewView, id))
}

// A null lot_id lists reviews across every lot.
const listReviewsFirstPage = `-- name: ListReviewsFirstPage :many
SELECT ` + reviewViewColumns + `
FROM reviews r
JOIN users u ON u.id = r.user_id
JOIN lots l ON l.id = r.lot_id
WHERE r.deleted_at IS NULL
  AND ($1::uuid IS NULL OR r.lot_id = $1::uuid)
  AND r.rating BETWEEN $2 AND $3
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4
`

type ListReviewsFirstPageParams struct {
	LotID     pgtype.UUID `json:"lot_id"`
	MinRating int32       `json:"min_rating"`
	MaxRating int32       `json:"max_rating"`
	Limit     int32       `json:"limit"`
}

func (q *Queries) ListReviewsFirstPage(ctx context.Context, db DBTX, arg ListReviewsFirstPageParams) ([]ReviewViewRow, error) {
	rows, err := db.Query(ctx, listReviewsFirstPage, arg.LotID, arg.MinRating, arg.MaxRating, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectReviewViews(rows)
}

const listReviewsKeyset = `-- name: ListReviewsKeyset :many
SELECT ` + reviewViewColumns + `
FROM reviews r
JOIN users u ON u.id = r.user_id
JOIN lots l ON l.id = r.lot_id
WHERE r.deleted_at IS NULL
  AND ($1::uuid IS NULL OR r.lot_id = $1::uuid)
  AND r.rating BETWEEN $2 AND $3
  AND (r.created_at, r.id) < ($4, $5)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $6
`

type ListReviewsKeysetParams struct {
	LotID     pgtype.UUID        `json:"lot_id"`
	MinRating int32              `json:"min_rating"`
	MaxRating int32              `json:"max_rating"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	ID        uuid.UUID          `json:"id"`
	Limit     int32              `json:"limit"`
}

func (q *Queries) ListReviewsKeyset(ctx context.Context, db DBTX, arg ListReviewsKeysetParams) ([]ReviewViewRow, error) {
	rows, err := db.Query(ctx, listReviewsKeyset,
		arg.LotID,
		arg.MinRating,
		arg.MaxRating,
		arg.CreatedAt,
		arg.ID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	return collectReviewViews(rows)
}
