package feedback

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/service"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/timezone"
	"github.com/riku-k061/travel-backend/shared/validator"
	"github.com/riku-k061/travel-backend/transport/http/middleware"
	"github.com/riku-k061/travel-backend/transport/http/response"
)

type Handler struct {
	service   service.Feedback
	adminAuth middleware.AdminAuth
	otel      otel.Otel
}

func New(service service.Feedback, adminAuth middleware.AdminAuth, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		adminAuth: adminAuth,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedback", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFeedback)
		routerGroup.Post("/", handler.CreateFeedback)
		routerGroup.Get("/summary", handler.GetFeedbackSummary)
		routerGroup.With(handler.adminAuth.AdminKey).Post("/import", handler.ImportFeedback)
		routerGroup.With(handler.adminAuth.AdminKey).Delete("/purge", handler.PurgeFeedback)
		routerGroup.Get("/{id}", handler.GetFeedbackByID)
		routerGroup.Put("/{id}", handler.UpdateFeedback)
		routerGroup.Delete("/{id}", handler.DeleteFeedback)
		routerGroup.Put("/{id}/restore", handler.RestoreFeedback)
		routerGroup.Post("/{id}/notes", handler.AddFeedbackNote)
	})
}

// GetFeedback lists entries with filtering, sorting, pagination, and field
// projection.
func (handler *Handler) GetFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedback")
	defer scope.End()

	q := dto.ListFeedbackQuery{}
	if err := q.FromRequest(request); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	feedback, err := handler.service.List(ctx, q)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, feedback)
}

func (handler *Handler) GetFeedbackSummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbackSummary")
	defer scope.End()

	q := dto.SummaryQuery{}
	if err := q.FromRequest(request); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	summary, err := handler.service.Summary(ctx, q)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, summary)
}

func (handler *Handler) CreateFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeedback")
	defer scope.End()

	req := dto.CreateFeedbackRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	feedback, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Feedback created successfully")

	response.WithJSON(writer, http.StatusCreated, feedback)
}

func (handler *Handler) GetFeedbackByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbackByID")
	defer scope.End()

	includeDeleted := false
	if flag := shared.ConvertStringToBool(request.URL.Query().Get(constant.RequestParamIncludeDeleted)); flag != nil {
		includeDeleted = *flag
	}

	feedback, err := handler.service.Get(ctx, chi.URLParam(request, "id"), includeDeleted)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, feedback)
}

// UpdateFeedback applies a partial update; an admin_note in the body appends
// to the note thread.
func (handler *Handler) UpdateFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFeedback")
	defer scope.End()

	req := dto.UpdateFeedbackRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	feedback, err := handler.service.Update(ctx, chi.URLParam(request, "id"), req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, feedback)
}

// DeleteFeedback soft-deletes and returns the marked record.
func (handler *Handler) DeleteFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFeedback")
	defer scope.End()

	feedback, err := handler.service.SoftDelete(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, feedback)
}

func (handler *Handler) RestoreFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreFeedback")
	defer scope.End()

	feedback, err := handler.service.Restore(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, feedback)
}

func (handler *Handler) AddFeedbackNote(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddFeedbackNote")
	defer scope.End()

	req := dto.AddNoteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	feedback, err := handler.service.AddNote(ctx, chi.URLParam(request, "id"), req.Note, req.Author)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, feedback)
}

// ImportFeedback bulk-imports entries; the admin key middleware guards the
// route.
func (handler *Handler) ImportFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ImportFeedback")
	defer scope.End()

	req := dto.BulkImportRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	imported, err := handler.service.Import(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Feedback imported successfully")

	response.WithJSON(writer, http.StatusCreated, imported)
}

func (handler *Handler) PurgeFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeFeedback")
	defer scope.End()

	var deletedBefore *time.Time

	if raw := request.URL.Query().Get(constant.RequestParamDeletedBefore); raw != "" {
		value, err := timezone.ParseFlexible(raw)
		if err != nil {
			err = failure.UnprocessableEntity("deleted_before must be an ISO 8601 timestamp")
			scope.TraceError(err)

			response.WithError(writer, err)

			return
		}

		deletedBefore = &value
	}

	result, err := handler.service.Purge(ctx, deletedBefore)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Feedback purge completed")

	response.WithJSON(writer, http.StatusOK, result)
}
