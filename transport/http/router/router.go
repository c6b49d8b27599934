package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/riku-k061/travel-backend/internal/handlers/booking"
	"github.com/riku-k061/travel-backend/internal/handlers/destination"
	"github.com/riku-k061/travel-backend/internal/handlers/feedback"
	"github.com/riku-k061/travel-backend/internal/handlers/payment"
	"github.com/riku-k061/travel-backend/internal/handlers/schedule"
	"github.com/riku-k061/travel-backend/internal/handlers/staff"
	"github.com/riku-k061/travel-backend/internal/handlers/vehicle"
)

type DomainHandlers struct {
	Booking     booking.Handler
	Payment     payment.Handler
	Feedback    feedback.Handler
	Schedule    schedule.Handler
	Staff       staff.Handler
	Vehicle     vehicle.Handler
	Destination destination.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Feedback.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Vehicle.Router(routerGroup)
		r.DomainHandlers.Destination.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
