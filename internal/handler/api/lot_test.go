//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/api"
	resdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/response"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/middleware"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/httptest"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/testutil"
	commandsmock "github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/mock/commands"
	queriesmock "github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockLotCommands
	mockLots     *queriesmock.MockLotQueries
	mockBookings *queriesmock.MockBookingQueries
	userID       uuid.UUID
	role         user.Role
}

func (s *LotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockLotCommands(s.mockCtrl)
	s.mockLots = queriesmock.NewMockLotQueries(s.mockCtrl)
	s.mockBookings = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.userID = uuid.New()
	s.role = user.RoleParkingOwner

	h := api.NewLotHandler(s.mockCommands, s.mockLots, s.mockBookings)
	s.router.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			middleware.SetIdentity(c, s.userID, s.role)
		}
	})
	s.router.POST("/lots", h.Create)
	s.router.PATCH("/lots/:id/verification", h.SetVerification)
	s.router.POST("/lots/:id/spots", h.AddSpot)
	s.router.PATCH("/lots/:id/spots/:spotId/status", h.SetSpotStatus)
	s.router.PUT("/lots/:id/pricing", h.UpsertPricing)
	s.router.GET("/lots/:id/availability", h.Availability)
	s.router.GET("/lots/:id/reservations", h.Reservations)
}

func (s *LotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLotHandlerSuite(t *testing.T) {
	suite.Run(t, new(LotHandlerTestSuite))
}

func (s *LotHandlerTestSuite) actor() commands.Actor {
	return commands.Actor{UserID: s.userID, Role: s.role}
}

func (s *LotHandlerTestSuite) TestCreate() {
	body := map[string]any{
		"name":                  "Riverside",
		"address":               "1 Tran Hung Dao",
		"capacity":              40,
		"cancel_cutoff_minutes": 30,
		"refund_percentage":     50,
	}

	s.Run("success", func() {
		created := builder.NewLotBuilder().With(func(b *builder.LotBuilder) {
			b.OwnerID = s.userID
			b.Capacity, b.FreeSlots = 40, 40
			b.Verification = lot.VerificationPending
			b.Policy = lot.CancellationPolicy{Cutoff: 30 * time.Minute, RefundPercentage: 50}
		}).BuildDomain()

		s.mockCommands.EXPECT().
			CreateLot(gomock.Any(), s.actor(), commands.CreateLotInput{
				Name:             "Riverside",
				Address:          "1 Tran Hung Dao",
				Capacity:         40,
				CancelCutoff:     30 * time.Minute,
				RefundPercentage: 50,
			}).
			Return(created, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/lots", body, "token")

		var res resdto.LotResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal(created.ID(), res.ID)
		s.Equal("pending", res.Verification)
		s.Equal(30, res.CancelCutoffMinutes)
	})

	s.Run("validation", func() {
		tests := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "missing address", mutate: testutil.Field("address", nil)},
			{name: "zero capacity", mutate: testutil.Field("capacity", 0)},
			{name: "refund above 100", mutate: testutil.Field("refund_percentage", 101)},
			{name: "negative cutoff", mutate: testutil.Field("cancel_cutoff_minutes", -5)},
		}
		for _, tc := range tests {
			s.Run(tc.name, func() {
				req := testutil.DtoMap(s.T(), body, tc.mutate)
				w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/lots", req, "token")
				httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("no identity", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/lots", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *LotHandlerTestSuite) TestSetVerification() {
	lotID := uuid.New()
	url := "/lots/" + lotID.String() + "/verification"

	s.Run("admin verifies", func() {
		s.role = user.RoleAdmin
		verified := builder.NewLotBuilder().With(func(b *builder.LotBuilder) { b.ID = lotID }).BuildDomain()
		s.mockCommands.EXPECT().
			SetVerification(gomock.Any(), s.actor(), lotID, lot.VerificationVerified).
			Return(verified, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"verification": "verified"}, "token")

		var res resdto.LotResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal("verified", res.Verification)
	})

	s.Run("unknown verification value", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"verification": "approved"}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("bad lot id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/lots/nope/verification", map[string]any{"verification": "verified"}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid id")
	})
}

func (s *LotHandlerTestSuite) TestSpots() {
	lotID := uuid.New()

	s.Run("add spot", func() {
		spot := builder.NewSpotBuilder(lotID).BuildDomain()
		s.mockCommands.EXPECT().
			AddSpot(gomock.Any(), s.actor(), lotID, commands.AddSpotInput{Number: "A-01", Type: vehicle.TypeStandard}).
			Return(spot, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/lots/"+lotID.String()+"/spots",
			map[string]any{"spot_number": "A-01", "spot_type": "standard"}, "token")

		var res resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal("A-01", res.Number)
		s.Equal("available", res.Status)
	})

	s.Run("spot limit reached", func() {
		s.mockCommands.EXPECT().
			AddSpot(gomock.Any(), s.actor(), lotID, gomock.Any()).
			Return(nil, lot.ErrSpotLimitReached)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/lots/"+lotID.String()+"/spots",
			map[string]any{"spot_number": "A-99", "spot_type": "standard"}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "cannot exceed lot capacity")
	})

	s.Run("maintenance on a reserved spot", func() {
		spotID := uuid.New()
		s.mockCommands.EXPECT().
			SetSpotMaintenance(gomock.Any(), s.actor(), lotID, spotID, true).
			Return(nil, lot.ErrSpotInUse)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/lots/"+lotID.String()+"/spots/"+spotID.String()+"/status",
			map[string]any{"status": "maintenance"}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "reserved or occupied")
	})

	s.Run("bad spot id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/lots/"+lotID.String()+"/spots/x/status",
			map[string]any{"status": "maintenance"}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid spot id")
	})
}

func (s *LotHandlerTestSuite) TestUpsertPricing() {
	lotID := uuid.New()
	url := "/lots/" + lotID.String() + "/pricing"

	s.Run("success", func() {
		rule := booking.PricingRule{
			ID:          uuid.New(),
			LotID:       lotID,
			Unit:        booking.UnitPerEntry,
			Rate:        30000,
			VehicleType: vehicle.TypeMotorcycle,
			MaxDuration: 4 * time.Hour,
		}
		s.mockCommands.EXPECT().
			UpsertPricing(gomock.Any(), s.actor(), lotID, commands.PricingInput{
				Unit:        booking.UnitPerEntry,
				Rate:        30000,
				VehicleType: vehicle.TypeMotorcycle,
				MaxDuration: 4 * time.Hour,
			}).
			Return(rule, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{
			"unit":                 "per_entry",
			"rate":                 30000,
			"vehicle_type":         "motorcycle",
			"max_duration_minutes": 240,
		}, "token")

		var res resdto.PricingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(240, res.MaxDurationMinutes)
		s.Equal("per_entry", res.Unit)
	})

	s.Run("not the owner", func() {
		s.mockCommands.EXPECT().
			UpsertPricing(gomock.Any(), s.actor(), lotID, gomock.Any()).
			Return(booking.PricingRule{}, commands.ErrLotAccess)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{
			"unit": "hourly", "rate": 10000, "vehicle_type": "standard",
		}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "not authorized")
	})

	s.Run("unknown unit", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{
			"unit": "weekly", "rate": 10000, "vehicle_type": "standard",
		}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
	})
}

func (s *LotHandlerTestSuite) TestAvailability() {
	lotID := uuid.New()

	s.Run("public read", func() {
		s.mockLots.EXPECT().Availability(gomock.Any(), lotID).Return(&queries.LotAvailabilityView{
			LotID:          lotID,
			Name:           "Riverside",
			Capacity:       10,
			FreeSlots:      3,
			Status:         "active",
			Verification:   "verified",
			SpotCount:      10,
			AvailableSpots: 3,
			Bookable:       true,
		}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots/"+lotID.String()+"/availability", nil, "")

		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(3, res.FreeSlots)
		s.True(res.Bookable)
	})

	s.Run("unknown lot", func() {
		s.mockLots.EXPECT().Availability(gomock.Any(), lotID).Return(nil, queries.ErrLotNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots/"+lotID.String()+"/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "")
	})
}

func (s *LotHandlerTestSuite) TestReservations() {
	lotID := uuid.New()
	url := "/lots/" + lotID.String() + "/reservations"
	viewer := queries.Viewer{UserID: s.userID, Role: string(user.RoleParkingOwner)}

	s.Run("owner lists open bookings", func() {
		b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.LotID = lotID }).BuildDomain()
		s.mockBookings.EXPECT().ListOpenByLot(gomock.Any(), viewer, lotID).Return([]*queries.BookingView{viewOf(b)}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var res []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Equal(b.ID(), res[0].ID)
	})

	s.Run("someone else's lot", func() {
		s.mockBookings.EXPECT().ListOpenByLot(gomock.Any(), viewer, lotID).Return(nil, queries.ErrLotAccess)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})
}
