package handler

import (
	"net/http"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/api"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/middleware"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Booking *api.BookingHandler
	Lot     *api.LotHandler
	Review  *api.ReviewHandler
	Vehicle *api.VehicleHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, logger *middleware.Logger) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var (
		managers  = authMiddleware.RequireRoles(user.RoleParkingOwner, user.RoleAdmin)
		operators = authMiddleware.RequireRoles(user.RoleStaff, user.RoleParkingOwner, user.RoleAdmin)
		adminOnly = authMiddleware.RequireRoles(user.RoleAdmin)
		cancelers = authMiddleware.RequireRoles(user.RoleUser, user.RoleParkingOwner, user.RoleAdmin)
	)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		vehicles.Use(authMiddleware.RequireAuth())
		addRoutes(vehicles, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Vehicle.Register},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPatch, Path: "/:id/confirm", Handler: h.Booking.Confirm, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodPatch, Path: "/:id/cancel", Handler: h.Booking.Cancel, Mw: []gin.HandlerFunc{cancelers}},
				{Method: http.MethodPatch, Path: "/:id/checkin", Handler: h.Booking.CheckIn, Mw: []gin.HandlerFunc{operators}},
				{Method: http.MethodPatch, Path: "/:id/checkout", Handler: h.Booking.CheckOut, Mw: []gin.HandlerFunc{operators}},
			})
		}

		reviews := apiGroup.Group("/reviews")
		{
			addRoutes(reviews, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Review.Get},
			})

			authored := reviews.Group("")
			authored.Use(authMiddleware.RequireAuth())
			addRoutes(authored, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Review.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Review.List, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Review.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Review.Delete},
			})
		}

		lots := apiGroup.Group("/lots")
		{
			addRoutes(lots, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Lot.Availability},
				{Method: http.MethodGet, Path: "/:id/reviews", Handler: h.Review.ListByLot},
			})

			managed := lots.Group("")
			managed.Use(authMiddleware.RequireAuth())
			addRoutes(managed, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Lot.Create, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodPatch, Path: "/:id/verification", Handler: h.Lot.SetVerification, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Lot.SetStatus, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodPost, Path: "/:id/spots", Handler: h.Lot.AddSpot, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodPatch, Path: "/:id/spots/:spotId/status", Handler: h.Lot.SetSpotStatus, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodPut, Path: "/:id/pricing", Handler: h.Lot.UpsertPricing, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Lot.Reservations, Mw: []gin.HandlerFunc{managers}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
