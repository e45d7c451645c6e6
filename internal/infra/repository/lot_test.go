//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"
	repositorymock "github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/mock/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLotRepository_GetForUpdate(t *testing.T) {
	ctx := context.Background()
	b := builder.NewLotBuilder().With(func(b *builder.LotBuilder) { b.FreeSlots = 1 })

	testCases := []struct {
		name       string
		row        sqlc.Lots
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: row mapped to aggregate", row: b.BuildInfra()},
		{name: "error: lot not found", queryErr: pgx.ErrNoRows, expectKind: infra.KindNotFound},
		{name: "error: database error", queryErr: errors.New("connection reset"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockLotWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewLotRepository(mockQueries, mockDB)

			mockQueries.EXPECT().GetLotByIDForUpdate(ctx, mockDB, b.ID).Return(tc.row, tc.queryErr)

			got, err := repo.GetForUpdate(ctx, b.ID)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID, got.ID())
			assert.Equal(t, 2, got.Capacity())
			assert.Equal(t, 1, got.FreeSlots())
			assert.Equal(t, lot.VerificationVerified, got.Verification())
		})
	}
}

func TestLotRepository_Update(t *testing.T) {
	ctx := context.Background()
	l := builder.NewLotBuilder().BuildDomain()
	require.NoError(t, l.TryReserveSlot())

	t.Run("success: free slots written", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockLotWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewLotRepository(mockQueries, mockDB)

		mockQueries.EXPECT().UpdateLotState(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpdateLotStateParams) (int64, error) {
				want := sqlc.UpdateLotStateParams{
					ID:           l.ID(),
					FreeSlots:    1,
					Status:       "active",
					Verification: "verified",
					UpdatedAt:    arg.UpdatedAt,
				}
				if diff := cmp.Diff(want, arg); diff != "" {
					t.Errorf("UpdateLotState params mismatch (-want +got):\n%s", diff)
				}
				return 1, nil
			})

		require.NoError(t, repo.Update(ctx, l))
	})

	t.Run("error: no row updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockLotWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewLotRepository(mockQueries, mockDB)

		mockQueries.EXPECT().UpdateLotState(ctx, mockDB, gomock.Any()).Return(int64(0), nil)

		err := repo.Update(ctx, l)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("error: check constraint is a consistency fault", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockLotWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewLotRepository(mockQueries, mockDB)

		check := &pgconn.PgError{Code: "23514", ConstraintName: "lots_free_slots_bounds"}
		mockQueries.EXPECT().UpdateLotState(ctx, mockDB, gomock.Any()).Return(int64(0), check)

		err := repo.Update(ctx, l)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindCheckViolated))
		assert.True(t, errs.Is(err, errs.ErrConsistencyFault))
	})
}

func TestSpotRepository_Create(t *testing.T) {
	ctx := context.Background()
	s := builder.NewSpotBuilder(builder.NewLotBuilder().ID).BuildDomain()

	testCases := []struct {
		name     string
		queryErr error
		errIs    error
	}{
		{name: "success"},
		{name: "error: duplicate spot number", queryErr: &pgconn.PgError{Code: "23505", ConstraintName: "spots_lot_number_unique"}, errIs: lot.ErrSpotNumberTaken},
		{name: "error: database error", queryErr: errors.New("boom"), errIs: assert.AnError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockSpotWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewSpotRepository(mockQueries, mockDB)

			mockQueries.EXPECT().CreateSpot(ctx, mockDB, gomock.Any()).Return(tc.queryErr)

			err := repo.Create(ctx, s)
			switch {
			case tc.queryErr == nil:
				require.NoError(t, err)
			case tc.errIs == assert.AnError:
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			default:
				assert.ErrorIs(t, err, tc.errIs)
			}
		})
	}
}

func TestSpotRepository_ListByLotForUpdate(t *testing.T) {
	ctx := context.Background()
	lotID := builder.NewLotBuilder().ID
	rows := []sqlc.Spots{
		builder.NewSpotBuilder(lotID).BuildInfra(),
		builder.NewSpotBuilder(lotID).With(func(b *builder.SpotBuilder) {
			b.Number = "A-02"
			b.Status = lot.SpotReserved
		}).BuildInfra(),
	}

	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockSpotWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewSpotRepository(mockQueries, mockDB)

	mockQueries.EXPECT().ListSpotsByLotForUpdate(ctx, mockDB, lotID).Return(rows, nil)

	spots, err := repo.ListByLotForUpdate(ctx, lotID)
	require.NoError(t, err)
	require.Len(t, spots, 2)
	assert.Equal(t, "A-02", spots[1].Number())
	assert.Equal(t, lot.SpotReserved, spots[1].Status())
}
