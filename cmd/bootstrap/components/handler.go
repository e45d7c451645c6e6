package components

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/api"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewLotHandler,
		api.NewReviewHandler,
		api.NewVehicleHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	bookings *api.BookingHandler,
	lots *api.LotHandler,
	reviews *api.ReviewHandler,
	vehicles *api.VehicleHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Booking: bookings,
		Lot:     lots,
		Review:  reviews,
		Vehicle: vehicles,
	}
}
