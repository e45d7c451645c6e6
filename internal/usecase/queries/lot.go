package queries

import (
	"context"
	"log/slog"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrLotNotFound = errs.NewKind(errs.ErrNotFound, "parking lot not found")

type LotReadStore interface {
	FindAvailability(ctx context.Context, lotID uuid.UUID) (*LotAvailabilityView, error)
}

// AvailabilityCache is a read-through cache in front of LotReadStore.
// Get returns nil without error on a miss.
type AvailabilityCache interface {
	Get(ctx context.Context, lotID uuid.UUID) (*LotAvailabilityView, error)
	Set(ctx context.Context, view *LotAvailabilityView) error
}

type LotQueries interface {
	Availability(ctx context.Context, lotID uuid.UUID) (*LotAvailabilityView, error)
}

type lotQueriesImpl struct {
	repo  LotReadStore
	cache AvailabilityCache
}

func NewLotQueries(repo LotReadStore, cache AvailabilityCache) LotQueries {
	return &lotQueriesImpl{repo: repo, cache: cache}
}

// Availability serves from cache when possible. Cache failures degrade to a
// database read and never fail the request.
func (q *lotQueriesImpl) Availability(ctx context.Context, lotID uuid.UUID) (*LotAvailabilityView, error) {
	if cached, err := q.cache.Get(ctx, lotID); err != nil {
		slog.WarnContext(ctx, "availability cache read failed",
			slog.String("lot_id", lotID.String()),
			slog.String("error", err.Error()))
	} else if cached != nil {
		return cached, nil
	}

	view, err := q.repo.FindAvailability(ctx, lotID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}

	if err := q.cache.Set(ctx, view); err != nil {
		slog.WarnContext(ctx, "availability cache write failed",
			slog.String("lot_id", lotID.String()),
			slog.String("error", err.Error()))
	}
	return view, nil
}
