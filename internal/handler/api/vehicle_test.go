//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/api"
	resdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/response"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/middleware"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/httptest"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/testutil"
	commandsmock "github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestVehicleHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	body := map[string]any{"license_plate": "30A-12345", "vehicle_type": "standard"}

	setup := func(t *testing.T) (*gin.Engine, *commandsmock.MockVehicleCommands) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockVehicleCommands(ctrl)
		h := api.NewVehicleHandler(cmds)

		r := gin.New()
		r.Use(func(c *gin.Context) {
			if c.GetHeader("Authorization") != "" {
				middleware.SetIdentity(c, userID, user.RoleUser)
			}
		})
		r.POST("/vehicles", h.Register)
		return r, cmds
	}
	actor := commands.Actor{UserID: userID, Role: user.RoleUser}

	t.Run("success", func(t *testing.T) {
		r, cmds := setup(t)
		v := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) { b.OwnerID = userID }).BuildDomain()
		cmds.EXPECT().
			Register(gomock.Any(), actor, commands.RegisterVehicleInput{Plate: "30A-12345", Type: vehicle.TypeStandard}).
			Return(v, nil)

		w := httptest.PerformRequest(t, r, http.MethodPost, "/vehicles", body, "token")

		var res resdto.VehicleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		assert.Equal(t, v.ID(), res.ID)
		assert.Equal(t, "30A-12345", res.LicensePlate)
	})

	t.Run("plate already registered", func(t *testing.T) {
		r, cmds := setup(t)
		cmds.EXPECT().Register(gomock.Any(), actor, gomock.Any()).Return(nil, vehicle.ErrPlateTaken)

		w := httptest.PerformRequest(t, r, http.MethodPost, "/vehicles", body, "token")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already registered")
	})

	t.Run("malformed plate", func(t *testing.T) {
		r, cmds := setup(t)
		cmds.EXPECT().Register(gomock.Any(), actor, gomock.Any()).Return(nil, vehicle.ErrInvalidPlate)

		w := httptest.PerformRequest(t, r, http.MethodPost, "/vehicles",
			testutil.DtoMap(t, body, testutil.Field("license_plate", "ABC")), "token")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "invalid license plate")
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, field := range []string{"license_plate", "vehicle_type"} {
			r, _ := setup(t)
			w := httptest.PerformRequest(t, r, http.MethodPost, "/vehicles",
				testutil.DtoMap(t, body, testutil.Field(field, nil)), "token")
			httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request")
		}
	})

	t.Run("no identity", func(t *testing.T) {
		r, _ := setup(t)
		w := httptest.PerformRequest(t, r, http.MethodPost, "/vehicles", body, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Unauthorized")
	})
}
