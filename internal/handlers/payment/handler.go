package payment

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/payment/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/payment/service"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/validator"
	"github.com/riku-k061/travel-backend/transport/http/response"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Post("/", handler.CreatePayment)
		routerGroup.Get("/summary", handler.GetPaymentSummary)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
		routerGroup.Put("/{id}", handler.UpdatePayment)
		routerGroup.Delete("/{id}", handler.DeletePayment)
		routerGroup.Patch("/{id}/status", handler.UpdatePaymentStatus)
		routerGroup.Patch("/{id}/confirm", handler.ConfirmPayment)
		routerGroup.Get("/booking/{booking_id}", handler.GetPaymentsByBooking)
	})
}

// GetPayments lists payments with filters, sorting, and pagination metadata.
func (handler *Handler) GetPayments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	q := dto.ListPaymentsQuery{}
	if err := q.FromRequest(request); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	payments, err := handler.service.List(ctx, q)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payments)
}

func (handler *Handler) GetPaymentSummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentSummary")
	defer scope.End()

	values := request.URL.Query()

	dateFrom, err := parseDateParam(values.Get(constant.RequestParamDateFrom), constant.RequestParamDateFrom)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	dateTo, err := parseDateParam(values.Get(constant.RequestParamDateTo), constant.RequestParamDateTo)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	summary, err := handler.service.Summary(ctx, dateFrom, dateTo)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, summary)
}

func (handler *Handler) CreatePayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePayment")
	defer scope.End()

	req := dto.CreatePaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	payment, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payment created successfully")

	response.WithJSON(writer, http.StatusCreated, payment)
}

func (handler *Handler) GetPaymentByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	payment, err := handler.service.Get(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payment)
}

func (handler *Handler) UpdatePayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayment")
	defer scope.End()

	req := dto.CreatePaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	payment, err := handler.service.Update(ctx, chi.URLParam(request, "id"), req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payment)
}

func (handler *Handler) DeletePayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePayment")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, "id")); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithNoContent(writer)
}

// UpdatePaymentStatus sets the status directly; confirmation is the guarded
// path.
func (handler *Handler) UpdatePaymentStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	status := request.URL.Query().Get(constant.RequestParamStatus)

	payment, err := handler.service.UpdateStatus(ctx, chi.URLParam(request, "id"), status)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payment)
}

func (handler *Handler) ConfirmPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	payment, err := handler.service.Confirm(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Payment confirmed successfully")

	response.WithJSON(writer, http.StatusOK, payment)
}

func (handler *Handler) GetPaymentsByBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentsByBooking")
	defer scope.End()

	sortByDate := false
	if flag := shared.ConvertStringToBool(request.URL.Query().Get(constant.RequestParamSortByDate)); flag != nil {
		sortByDate = *flag
	}

	payments, err := handler.service.ByBooking(ctx, chi.URLParam(request, "booking_id"), sortByDate)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payments)
}

func parseDateParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse(constant.DateOnlyFormat, raw)
	if err != nil {
		return nil, failure.UnprocessableEntity(name + " must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	return &value, nil
}
