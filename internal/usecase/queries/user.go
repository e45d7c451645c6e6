package queries

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.NewKind(errs.ErrNotFound, "user not found")
	ErrUserInactive = errs.NewKind(errs.ErrForbidden, "user inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

// UserReadStore is shared with login, which also needs the password hash.
type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

// GetCurrentUser resolves the caller's own account. A token can outlive the
// account's activation, so inactive accounts are refused here too.
func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.store.FindByID(ctx, userID)
	switch {
	case errs.Is(err, errs.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	case !view.IsActive:
		return nil, ErrUserInactive
	}
	return view, nil
}
