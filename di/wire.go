//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/transport/http"
	"github.com/riku-k061/travel-backend/transport/http/middleware"
	"github.com/riku-k061/travel-backend/transport/http/router"

	bookingRepository "github.com/riku-k061/travel-backend/internal/domains/booking/repository"
	bookingService "github.com/riku-k061/travel-backend/internal/domains/booking/service"
	destinationRepository "github.com/riku-k061/travel-backend/internal/domains/destination/repository"
	destinationService "github.com/riku-k061/travel-backend/internal/domains/destination/service"
	feedbackRepository "github.com/riku-k061/travel-backend/internal/domains/feedback/repository"
	feedbackService "github.com/riku-k061/travel-backend/internal/domains/feedback/service"
	paymentRepository "github.com/riku-k061/travel-backend/internal/domains/payment/repository"
	paymentService "github.com/riku-k061/travel-backend/internal/domains/payment/service"
	scheduleRepository "github.com/riku-k061/travel-backend/internal/domains/schedule/repository"
	scheduleService "github.com/riku-k061/travel-backend/internal/domains/schedule/service"
	staffRepository "github.com/riku-k061/travel-backend/internal/domains/staff/repository"
	staffService "github.com/riku-k061/travel-backend/internal/domains/staff/service"
	vehicleRepository "github.com/riku-k061/travel-backend/internal/domains/vehicle/repository"
	vehicleService "github.com/riku-k061/travel-backend/internal/domains/vehicle/service"

	bookingHandler "github.com/riku-k061/travel-backend/internal/handlers/booking"
	destinationHandler "github.com/riku-k061/travel-backend/internal/handlers/destination"
	feedbackHandler "github.com/riku-k061/travel-backend/internal/handlers/feedback"
	paymentHandler "github.com/riku-k061/travel-backend/internal/handlers/payment"
	scheduleHandler "github.com/riku-k061/travel-backend/internal/handlers/schedule"
	staffHandler "github.com/riku-k061/travel-backend/internal/handlers/staff"
	vehicleHandler "github.com/riku-k061/travel-backend/internal/handlers/vehicle"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	jsonstore.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAdminAuthMiddleware,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var feedbackDomain = wire.NewSet(
	feedbackRepository.New,
	feedbackService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
)

var destinationDomain = wire.NewSet(
	destinationRepository.New,
	destinationService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	paymentDomain,
	feedbackDomain,
	scheduleDomain,
	staffDomain,
	vehicleDomain,
	destinationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	paymentHandler.New,
	feedbackHandler.New,
	scheduleHandler.New,
	staffHandler.New,
	vehicleHandler.New,
	destinationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
