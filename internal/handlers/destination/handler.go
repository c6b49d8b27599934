package destination

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/destination/service"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/transport/http/response"
)

// Handler exposes the read-only destination catalog backing the referential
// checks of schedules, staff, and vehicles.
type Handler struct {
	service service.Destination
	otel    otel.Otel
}

func New(service service.Destination, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/destinations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDestinations)
		routerGroup.Get("/{id}", handler.GetDestinationByID)
	})
}

func (handler *Handler) GetDestinations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDestinations")
	defer scope.End()

	destinations, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, destinations)
}

func (handler *Handler) GetDestinationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDestinationByID")
	defer scope.End()

	destination, err := handler.service.Get(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, destination)
}
