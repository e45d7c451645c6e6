package api

import (
	"net/http"

	reqdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/request"
	resdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/response"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/httperr"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary Review a parking lot
// @Description Requires a completed booking at the lot; one live review per user and lot
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Review"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	var in commands.CreateReviewInput
	if err := copier.Copy(&in, &req); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	rv, err := h.cmds.Create(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReview(rv))
}

// @Summary Get review
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromReviewView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Update own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [patch]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, actor, ok := h.reviewAndActor(c)
	if !ok {
		return
	}
	var req reqdto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	rv, err := h.cmds.Update(c.Request.Context(), actor, id, commands.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReview(rv))
}

// @Summary Delete review
// @Description Soft delete by the author or an admin
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, actor, ok := h.reviewAndActor(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reviews of a lot
// @Description Newest first, with the lot's rating stats
// @Tags reviews
// @Produce json
// @Param id path string true "Lot ID"
// @Param min_rating query int false "Minimum rating"
// @Param max_rating query int false "Maximum rating"
// @Param limit query int false "Page size"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.LotReviewsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/reviews [get]
func (h *ReviewHandler) ListByLot(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	filter, cursor, limit, ok := bindReviewList(c)
	if !ok {
		return
	}

	page, err := h.q.ListByLot(c.Request.Context(), lotID, filter, cursor, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	items, err := resdto.FromReviewViews(page.Reviews)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res := resdto.LotReviewsResponse{
		LotID: lotID,
		Stats: resdto.FromRatingStats(page.Stats),
		Items: items,
	}
	if page.Next != nil {
		res.NextCursor = &page.Next.After
	}
	c.JSON(http.StatusOK, res)
}

// @Summary All reviews
// @Description Moderation listing across lots, admin only
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param min_rating query int false "Minimum rating"
// @Param max_rating query int false "Maximum rating"
// @Param limit query int false "Page size"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 403 {object} map[string]string
// @Router /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	filter, cursor, limit, ok := bindReviewList(c)
	if !ok {
		return
	}

	views, next, err := h.q.ListAll(c.Request.Context(), viewerOf(actor), filter, cursor, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	items, err := resdto.FromReviewViews(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res := resdto.ReviewListResponse{Items: items}
	if next != nil {
		res.NextCursor = &next.After
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) reviewAndActor(c *gin.Context) (uuid.UUID, commands.Actor, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, commands.Actor{}, false
	}
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return uuid.Nil, commands.Actor{}, false
	}
	return id, actor, true
}

func bindReviewList(c *gin.Context) (queries.ReviewFilter, *queries.Cursor, int, bool) {
	var req reqdto.ListReviewsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return queries.ReviewFilter{}, nil, 0, false
	}
	var cursor *queries.Cursor
	if req.After != "" {
		cursor = &queries.Cursor{After: req.After}
	}
	filter := queries.ReviewFilter{MinRating: req.MinRating, MaxRating: req.MaxRating}
	return filter, cursor, queries.ClampLimit(req.Limit), true
}
