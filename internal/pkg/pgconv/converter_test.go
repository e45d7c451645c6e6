//go:build unit

package pgconv_test

import (
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDConversions(t *testing.T) {
	id := uuid.New()
	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))
	assert.True(t, pgconv.UUIDToPgtype(id).Valid)
}

func TestTimeConversions(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
	assert.False(t, pgconv.TimePtrToPgtype(nil).Valid)

	got := pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(&now))
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))
}

func TestDurationSeconds(t *testing.T) {
	assert.Equal(t, int64(5400), pgconv.DurationToSeconds(90*time.Minute))
	assert.Equal(t, 3*time.Hour, pgconv.DurationFromSeconds(10800))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(errs.Wrap(pgx.ErrNoRows, "find lot")))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
}
