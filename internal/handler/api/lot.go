package api

import (
	"net/http"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	reqdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/request"
	resdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/response"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/httperr"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LotHandler struct {
	cmds     commands.LotCommands
	lots     queries.LotQueries
	bookings queries.BookingQueries
}

func NewLotHandler(cmds commands.LotCommands, lots queries.LotQueries, bookings queries.BookingQueries) *LotHandler {
	return &LotHandler{cmds: cmds, lots: lots, bookings: bookings}
}

// @Summary Create parking lot
// @Description New lots start active and pending verification
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLotRequest true "Create lot request"
// @Success 201 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /lots [post]
func (h *LotHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	l, err := h.cmds.CreateLot(c.Request.Context(), actor, commands.CreateLotInput{
		Name:             req.Name,
		Address:          req.Address,
		Capacity:         req.Capacity,
		CancelCutoff:     req.CancelCutoff(),
		RefundPercentage: req.RefundPercentage,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromLot(l))
}

// @Summary Verify or reject a lot
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.SetVerificationRequest true "Verification"
// @Success 200 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/verification [patch]
func (h *LotHandler) SetVerification(c *gin.Context) {
	lotID, actor, ok := h.lotAndActor(c)
	if !ok {
		return
	}
	var req reqdto.SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	l, err := h.cmds.SetVerification(c.Request.Context(), actor, lotID, lot.Verification(req.Verification))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLot(l))
}

// @Summary Activate or deactivate a lot
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.SetLotStatusRequest true "Status"
// @Success 200 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/status [patch]
func (h *LotHandler) SetStatus(c *gin.Context) {
	lotID, actor, ok := h.lotAndActor(c)
	if !ok {
		return
	}
	var req reqdto.SetLotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	l, err := h.cmds.SetStatus(c.Request.Context(), actor, lotID, lot.Status(req.Status))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLot(l))
}

// @Summary Add a spot
// @Description The first spot switches the lot to per-spot inventory
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.AddSpotRequest true "Spot"
// @Success 201 {object} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /lots/{id}/spots [post]
func (h *LotHandler) AddSpot(c *gin.Context) {
	lotID, actor, ok := h.lotAndActor(c)
	if !ok {
		return
	}
	var req reqdto.AddSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	var in commands.AddSpotInput
	if err := copier.Copy(&in, &req); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	s, err := h.cmds.AddSpot(c.Request.Context(), actor, lotID, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSpot(s))
}

// @Summary Toggle spot maintenance
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param spotId path string true "Spot ID"
// @Param request body reqdto.SetSpotStatusRequest true "Status"
// @Success 200 {object} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /lots/{id}/spots/{spotId}/status [patch]
func (h *LotHandler) SetSpotStatus(c *gin.Context) {
	lotID, actor, ok := h.lotAndActor(c)
	if !ok {
		return
	}
	spotID, err := uuid.Parse(c.Param("spotId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid spot id", nil)
		return
	}
	var req reqdto.SetSpotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	s, err := h.cmds.SetSpotMaintenance(c.Request.Context(), actor, lotID, spotID, req.Maintenance())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpot(s))
}

// @Summary Upsert a pricing rule
// @Description One rule per lot, unit and vehicle type
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.UpsertPricingRequest true "Pricing rule"
// @Success 200 {object} resdto.PricingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /lots/{id}/pricing [put]
func (h *LotHandler) UpsertPricing(c *gin.Context) {
	lotID, actor, ok := h.lotAndActor(c)
	if !ok {
		return
	}
	var req reqdto.UpsertPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	rule, err := h.cmds.UpsertPricing(c.Request.Context(), actor, lotID, commands.PricingInput{
		Unit:        booking.Unit(req.Unit),
		Rate:        req.Rate,
		VehicleType: vehicle.Type(req.VehicleType),
		MaxDuration: req.MaxDuration(),
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPricingRule(rule))
}

// @Summary Lot availability
// @Description Free slots and spot counts, served from cache when available
// @Tags lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/availability [get]
func (h *LotHandler) Availability(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.lots.Availability(c.Request.Context(), lotID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromAvailability(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Open reservations of a lot
// @Description Pending and confirmed bookings, for the lot owner or an admin
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/reservations [get]
func (h *LotHandler) Reservations(c *gin.Context) {
	lotID, actor, ok := h.lotAndActor(c)
	if !ok {
		return
	}
	views, err := h.bookings.ListOpenByLot(c.Request.Context(), viewerOf(actor), lotID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	items, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *LotHandler) lotAndActor(c *gin.Context) (uuid.UUID, commands.Actor, bool) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, commands.Actor{}, false
	}
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return uuid.Nil, commands.Actor{}, false
	}
	return lotID, actor, true
}
