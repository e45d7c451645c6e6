package api

import (
	"net/http"

	reqdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/request"
	resdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/response"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/httperr"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type VehicleHandler struct {
	cmds commands.VehicleCommands
}

func NewVehicleHandler(cmds commands.VehicleCommands) *VehicleHandler {
	return &VehicleHandler{cmds: cmds}
}

// @Summary Register vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterVehicleRequest true "Vehicle"
// @Success 201 {object} resdto.VehicleResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) Register(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	var in commands.RegisterVehicleInput
	if err := copier.Copy(&in, &req); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	v, err := h.cmds.Register(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromVehicle(v))
}
