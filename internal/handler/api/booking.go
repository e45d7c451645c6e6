package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	reqdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/request"
	resdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/response"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/httperr"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/middleware"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Reserve capacity in a lot, optionally on a specific spot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key (UUID)"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "replayed"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	var in commands.CreateBookingInput
	if err := copier.Copy(&in, &req); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	if raw := c.GetHeader(idempotencyKeyHeader); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid idempotency key format", nil)
			return
		}
		in.IdempotencyKey = &key
	}

	result, err := h.cmds.Create(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
		c.Header(replayedHeader, "true")
	}
	h.respond(c, status, actor, result.Booking)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), viewerOf(actor), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List my bookings
// @Description Newest first, with keyset pagination
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ClampLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	views, next, err := h.q.ListMine(c.Request.Context(), viewerOf(actor), cursor, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	items, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res := resdto.BookingListResponse{Items: items}
	if next != nil {
		res.NextCursor = &next.After
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [patch]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.cmds.Confirm)
}

// @Summary Cancel booking
// @Description Users cancel their own pending or confirmed bookings before the policy cutoff; lot owners and admins cancel any open booking of their lots
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [patch]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.Cancel)
}

// @Summary Check in
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/checkin [patch]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.cmds.CheckIn)
}

// @Summary Check out
// @Description Completes the booking and bills overtime past the booked end
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/checkout [patch]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.cmds.CheckOut)
}

type transitionFunc func(ctx context.Context, actor commands.Actor, id uuid.UUID) (*booking.Booking, error)

func (h *BookingHandler) transition(c *gin.Context, fn transitionFunc) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	b, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, actor, b)
}

// respond prefers the joined read view and falls back to the command result
// when the read side cannot serve it.
func (h *BookingHandler) respond(c *gin.Context, status int, actor commands.Actor, b *booking.Booking) {
	view, err := h.q.GetByID(c.Request.Context(), viewerOf(actor), b.ID())
	if err == nil {
		if res, cerr := resdto.FromBookingView(view); cerr == nil {
			c.JSON(status, res)
			return
		}
	}
	c.JSON(status, resdto.FromBooking(b))
}

// the identity is set by AuthMiddleware.RequireAuth
func actorFrom(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return commands.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return commands.Actor{}, false
	}
	return commands.Actor{UserID: userID, Role: role}, true
}

func viewerOf(a commands.Actor) queries.Viewer {
	return queries.Viewer{UserID: a.UserID, Role: a.Role.String()}
}
