//go:build unit

package sqlc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var boundQueries = []struct {
	name string
	sql  string
}{
	{"ClaimExpiredIdempotencyKey", claimExpiredIdempotencyKey},
	{"ClaimQueuedNotificationJobs", claimQueuedNotificationJobs},
	{"CountSpotsByLot", countSpotsByLot},
	{"CreateBooking", createBooking},
	{"CreateLot", createLot},
	{"CreateNotificationJob", createNotificationJob},
	{"CreateReview", createReview},
	{"CreateSpot", createSpot},
	{"CreateUser", createUser},
	{"CreateVehicle", createVehicle},
	{"DeleteIdempotencyKey", deleteIdempotencyKey},
	{"FindPricingRule", findPricingRule},
	{"FindUserByEmail", findUserByEmail},
	{"FindUserByID", findUserByID},
	{"GetBookingByID", getBookingByID},
	{"GetBookingByIDForUpdate", getBookingByIDForUpdate},
	{"GetBookingView", getBookingView},
	{"GetIdempotencyKey", getIdempotencyKey},
	{"GetLiveReviewForUpdate", getLiveReviewForUpdate},
	{"GetLotAvailability", getLotAvailability},
	{"GetLotByID", getLotByID},
	{"GetLotByIDForUpdate", getLotByIDForUpdate},
	{"GetLotRatingStats", getLotRatingStats},
	{"GetReviewView", getReviewView},
	{"GetSpotForUpdate", getSpotForUpdate},
	{"GetVehicleByID", getVehicleByID},
	{"HasCompletedBookingAtLot", hasCompletedBookingAtLot},
	{"HasOverlappingLotBooking", hasOverlappingLotBooking},
	{"HasOverlappingSpotBooking", hasOverlappingSpotBooking},
	{"ListBookingsByUserFirstPage", listBookingsByUserFirstPage},
	{"ListBookingsByUserKeyset", listBookingsByUserKeyset},
	{"ListLotsByOwner", listLotsByOwner},
	{"ListOpenReservationsByLot", listOpenReservationsByLot},
	{"ListPricingRulesByLot", listPricingRulesByLot},
	{"ListReviewsFirstPage", listReviewsFirstPage},
	{"ListReviewsKeyset", listReviewsKeyset},
	{"ListSpotsByLot", listSpotsByLot},
	{"ListSpotsByLotForUpdate", listSpotsByLotForUpdate},
	{"ListUnreleasedBookings", listUnreleasedBookings},
	{"ListVehiclesByOwner", listVehiclesByOwner},
	{"RecalcLotRatingStats", recalcLotRatingStats},
	{"TryInsertIdempotencyKey", tryInsertIdempotencyKey},
	{"UpdateBookingState", updateBookingState},
	{"UpdateIdempotencyKeyCompleted", updateIdempotencyKeyCompleted},
	{"UpdateLotState", updateLotState},
	{"UpdateNotificationJobStatus", updateNotificationJobStatus},
	{"UpdateReview", updateReview},
	{"UpdateSpotStatus", updateSpotStatus},
	{"UpdateUserLastLogin", updateUserLastLogin},
	{"UpsertPricingRule", upsertPricingRule},
}

// loadQueries splits queries/*.sql on their "-- name:" headers.
func loadQueries(t *testing.T) map[string]string {
	t.Helper()

	files, err := filepath.Glob(filepath.Join("queries", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	out := map[string]string{}
	for _, f := range files {
		raw, err := os.ReadFile(f)
		require.NoError(t, err)
		for _, block := range strings.Split(string(raw), "-- name: ")[1:] {
			name := strings.Fields(block)[0]
			_, dup := out[name]
			require.False(t, dup, "query %s declared twice", name)
			out[name] = normalizeSQL("-- name: " + block)
		}
	}
	return out
}

func normalizeSQL(s string) string {
	return strings.TrimSuffix(strings.Join(strings.Fields(s), " "), ";")
}

func TestBindingsMatchQueryFiles(t *testing.T) {
	sources := loadQueries(t)

	for _, q := range boundQueries {
		t.Run(q.name, func(t *testing.T) {
			src, ok := sources[q.name]
			require.True(t, ok, "no queries/*.sql entry for %s", q.name)
			assert.Equal(t, src, normalizeSQL(q.sql))
		})
	}
	assert.Len(t, sources, len(boundQueries), "queries/*.sql has statements with no Go binding")
}
