package queries

import (
	"context"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.NewKind(errs.ErrNotFound, "booking not found")
	ErrBookingAccess   = errs.NewKind(errs.ErrForbidden, "not authorized to view this booking")
	ErrLotAccess       = errs.NewKind(errs.ErrForbidden, "not authorized to view bookings for this lot")
	ErrInvalidCursor   = errs.NewKind(errs.ErrValidation, "invalid cursor")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
	FindOpenByLot(ctx context.Context, lotID uuid.UUID) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*BookingView, error)
	ListMine(ctx context.Context, viewer Viewer, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	ListOpenByLot(ctx context.Context, viewer Viewer, lotID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	repo BookingReadStore
	lots LotReadStore
}

func NewBookingQueries(repo BookingReadStore, lots LotReadStore) BookingQueries {
	return &bookingQueriesImpl{repo: repo, lots: lots}
}

// GetByID is visible to the booking's user, the lot owner, staff and admins.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*BookingView, error) {
	bv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	switch user.Role(viewer.Role) {
	case user.RoleAdmin, user.RoleStaff:
	case user.RoleParkingOwner:
		if bv.LotOwnerID != viewer.UserID && bv.UserID != viewer.UserID {
			return nil, ErrBookingAccess
		}
	case user.RoleUser:
		if bv.UserID != viewer.UserID {
			return nil, ErrBookingAccess
		}
	default:
		return nil, ErrBookingAccess
	}
	return bv, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, viewer Viewer, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ClampLimit(limit)
	var rows []*BookingView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByUserFirstPage(ctx, viewer.UserID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := cursor.position()
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByUserKeyset(ctx, viewer.UserID, lastCreatedAt, lastID, int32(limit+1))
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

// ListOpenByLot returns pending and confirmed bookings of a lot to its owner or an admin.
func (q *bookingQueriesImpl) ListOpenByLot(ctx context.Context, viewer Viewer, lotID uuid.UUID) ([]*BookingView, error) {
	lv, err := q.lots.FindAvailability(ctx, lotID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}

	switch user.Role(viewer.Role) {
	case user.RoleAdmin:
	case user.RoleParkingOwner:
		if lv.OwnerID != viewer.UserID {
			return nil, ErrLotAccess
		}
	default:
		return nil, ErrLotAccess
	}

	return q.repo.FindOpenByLot(ctx, lotID)
}
