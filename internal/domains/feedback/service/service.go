package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/model"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/repository"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/query"
	"github.com/riku-k061/travel-backend/shared/timezone"
	"github.com/riku-k061/travel-backend/shared/validator"
)

const defaultNoteAuthor = "system"

type Feedback interface {
	List(ctx context.Context, q dto.ListFeedbackQuery) (dto.PaginatedFeedbackResponse, error)
	Summary(ctx context.Context, q dto.SummaryQuery) (dto.FeedbackSummary, error)
	Create(ctx context.Context, req dto.CreateFeedbackRequest) (model.Feedback, error)
	Get(ctx context.Context, id string, includeDeleted bool) (model.Feedback, error)
	Update(ctx context.Context, id string, req dto.UpdateFeedbackRequest) (model.Feedback, error)
	AddNote(ctx context.Context, id, note, author string) (model.Feedback, error)
	SoftDelete(ctx context.Context, id string) (model.Feedback, error)
	Restore(ctx context.Context, id string) (model.Feedback, error)
	Import(ctx context.Context, req dto.BulkImportRequest) ([]model.Feedback, error)
	Purge(ctx context.Context, deletedBefore *time.Time) (dto.PurgeResult, error)
}

type serviceImpl struct {
	repo repository.Feedback
	otel otel.Otel
}

func New(repo repository.Feedback, ot otel.Otel) Feedback {
	return &serviceImpl{
		repo: repo,
		otel: ot,
	}
}

// List filters, sorts, pages, and optionally projects the collection.
// Deleted entries are hidden unless include_deleted is set.
func (s *serviceImpl) List(ctx context.Context, q dto.ListFeedbackQuery) (res dto.PaginatedFeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	if q.Type != "" {
		if err = validator.Var(q.Type, model.Types); err != nil {
			return res, failure.UnprocessableEntity(fmt.Sprintf("invalid type filter '%s'", q.Type)) // nolint:wrapcheck
		}
	}

	if q.Status != "" {
		if err = validator.Var(q.Status, model.Statuses); err != nil {
			return res, failure.UnprocessableEntity(fmt.Sprintf("invalid status filter '%s'", q.Status)) // nolint:wrapcheck
		}
	}

	feedbacks, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	filtered := applyFilters(feedbacks, q.CustomerID, q.CreatedAfter, q.CreatedBefore, q.IncludeDeleted)
	filtered = query.Apply(filtered,
		func(f model.Feedback) bool { return q.Type == "" || f.Type == q.Type },
		func(f model.Feedback) bool { return q.Status == "" || f.Status == q.Status },
	)

	sortFeedback(filtered, q.Params.SortBy, q.Params.Descending())

	items, page := query.Paginate(filtered, len(feedbacks), q.Params.Limit, q.Params.Offset)

	return dto.PaginatedFeedbackResponse{
		Items:      project(items, q.Fields),
		TotalCount: page.FilteredCount,
		Limit:      q.Params.Limit,
		Offset:     q.Params.Offset,
	}, nil
}

func applyFilters(feedbacks []model.Feedback, customerID string, createdAfter, createdBefore *time.Time, includeDeleted bool) []model.Feedback {
	var deletedFilter, customerFilter, afterFilter, beforeFilter query.Predicate[model.Feedback]

	if !includeDeleted {
		deletedFilter = func(f model.Feedback) bool { return !f.Deleted }
	}

	if customerID != "" {
		customerFilter = func(f model.Feedback) bool { return f.CustomerID == customerID }
	}

	if createdAfter != nil {
		afterFilter = func(f model.Feedback) bool {
			t, ok := f.CreatedTime()

			return ok && t.After(*createdAfter)
		}
	}

	if createdBefore != nil {
		beforeFilter = func(f model.Feedback) bool {
			t, ok := f.CreatedTime()

			return ok && t.Before(*createdBefore)
		}
	}

	return query.Apply(feedbacks, deletedFilter, customerFilter, afterFilter, beforeFilter)
}

// sortFeedback orders by the named field; unknown fields fall back to the
// timestamp, newest first.
func sortFeedback(feedbacks []model.Feedback, sortBy string, desc bool) {
	if sortBy == "" || sortBy == "timestamp" {
		query.SortByTime(feedbacks, model.Feedback.CreatedTime, desc)

		return
	}

	keyFor := func(f model.Feedback) (string, bool) {
		switch sortBy {
		case "id":
			return f.ID, true
		case "customer_id":
			return f.CustomerID, true
		case "type":
			return f.Type, true
		case "message":
			return f.Message, true
		case "related_booking_id":
			return f.RelatedBookingID, true
		case "status":
			return f.Status, true
		}

		return "", false
	}

	if _, known := keyFor(model.Feedback{}); !known {
		query.SortByTime(feedbacks, model.Feedback.CreatedTime, true)

		return
	}

	query.SortStable(feedbacks, func(a, b model.Feedback) bool {
		ka, _ := keyFor(a)
		kb, _ := keyFor(b)
		if desc {
			return ka > kb
		}

		return ka < kb
	})
}

// project narrows each record to the requested fields, always retaining id.
// Without a field list the full records pass through untouched.
func project(feedbacks []model.Feedback, fields []string) []any {
	items := make([]any, 0, len(feedbacks))

	if len(fields) == 0 {
		for _, feedback := range feedbacks {
			items = append(items, feedback)
		}

		return items
	}

	for _, feedback := range feedbacks {
		raw, err := json.Marshal(feedback)
		if err != nil {
			continue
		}

		full := map[string]any{}
		if err := json.Unmarshal(raw, &full); err != nil {
			continue
		}

		projected := map[string]any{}
		for _, field := range fields {
			if value, ok := full[field]; ok {
				projected[field] = value
			}
		}

		if _, ok := projected["id"]; !ok {
			projected["id"] = full["id"]
		}

		items = append(items, projected)
	}

	return items
}

// Summary aggregates counts by type and status, with optional monthly trend
// buckets and a resolution rate when any feedback is resolved.
func (s *serviceImpl) Summary(ctx context.Context, q dto.SummaryQuery) (res dto.FeedbackSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FeedbackSummary")
	defer scope.End()
	defer scope.TraceIfError(err)

	feedbacks, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	filtered := applyFilters(feedbacks, q.CustomerID, q.CreatedAfter, q.CreatedBefore, q.IncludeDeleted)

	summary := dto.FeedbackSummary{
		Total:    len(filtered),
		ByType:   map[string]int{},
		ByStatus: map[string]int{},
	}

	for _, feedback := range filtered {
		summary.ByType[feedback.Type]++
		summary.ByStatus[feedback.Status]++
	}

	if q.IncludeTrends {
		summary.MonthlyTrends = map[string]dto.MonthlyTrend{}

		for _, feedback := range filtered {
			created, ok := feedback.CreatedTime()
			if !ok {
				continue
			}

			monthKey := fmt.Sprintf("%04d-%02d", created.Year(), created.Month())

			trend, ok := summary.MonthlyTrends[monthKey]
			if !ok {
				trend = dto.MonthlyTrend{
					ByType:   map[string]int{model.TypeComplaint: 0, model.TypeSuggestion: 0},
					ByStatus: map[string]int{model.StatusOpen: 0, model.StatusPending: 0, model.StatusResolved: 0},
				}
			}

			trend.Total++
			trend.ByType[feedback.Type]++
			trend.ByStatus[feedback.Status]++
			summary.MonthlyTrends[monthKey] = trend
		}
	}

	if resolved := summary.ByStatus[model.StatusResolved]; resolved > 0 {
		rate := shared.Round2(float64(resolved) / float64(summary.Total) * 100)
		summary.ResolutionRate = &rate
	}

	return summary, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeedbackRequest) (res model.Feedback, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	feedback := req.ToModel()

	if err = s.repo.Insert(ctx, feedback); err != nil {
		log.Error().Err(err).Msg("failed to create feedback")

		return res, fmt.Errorf("failed to create feedback: %w", err)
	}

	return feedback, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string, includeDeleted bool) (model.Feedback, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetFeedback")
	defer scope.End()

	feedback, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return model.Feedback{}, fmt.Errorf("failed to get feedback: %w", err)
	}

	if !found {
		return model.Feedback{}, failure.NotFoundf("Feedback with ID %s not found", id) // nolint:wrapcheck
	}

	if feedback.Deleted && !includeDeleted {
		return model.Feedback{}, failure.NotFoundf("Feedback with ID %s not found or has been deleted", id) // nolint:wrapcheck
	}

	return feedback, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateFeedbackRequest) (res model.Feedback, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	feedback, err := s.Get(ctx, id, true)
	if err != nil {
		return res, err
	}

	if feedback.Deleted {
		return res, failure.BadRequestFromString("Cannot update deleted feedback. Restore it first.") // nolint:wrapcheck
	}

	if req.Type != nil {
		feedback.Type = *req.Type
	}

	if req.Message != nil {
		feedback.Message = *req.Message
	}

	if req.RelatedBookingID != nil {
		feedback.RelatedBookingID = *req.RelatedBookingID
	}

	if req.Status != nil {
		feedback.Status = *req.Status
	}

	if req.AdminNote != nil && *req.AdminNote != "" {
		feedback = appendNote(feedback, *req.AdminNote, defaultNoteAuthor)
	}

	if _, err = s.repo.Update(ctx, feedback); err != nil {
		log.Error().Err(err).Msg("failed to update feedback")

		return res, fmt.Errorf("failed to update feedback: %w", err)
	}

	return feedback, nil
}

func (s *serviceImpl) AddNote(ctx context.Context, id, note, author string) (res model.Feedback, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddFeedbackNote")
	defer scope.End()
	defer scope.TraceIfError(err)

	feedback, err := s.Get(ctx, id, true)
	if err != nil {
		return res, err
	}

	if feedback.Deleted {
		return res, failure.BadRequestFromString("Cannot add notes to deleted feedback. Restore it first.") // nolint:wrapcheck
	}

	if author == "" {
		author = defaultNoteAuthor
	}

	feedback = appendNote(feedback, note, author)

	if _, err = s.repo.Update(ctx, feedback); err != nil {
		log.Error().Err(err).Msg("failed to add feedback note")

		return res, fmt.Errorf("failed to add feedback note: %w", err)
	}

	return feedback, nil
}

func appendNote(feedback model.Feedback, text, author string) model.Feedback {
	feedback.AdminNotes = append(feedback.AdminNotes, model.AdminNote{
		Text:      text,
		Author:    author,
		Timestamp: timezone.Format(timezone.Now(), constant.DateFormat),
	})

	return feedback
}

// SoftDelete marks the entry deleted and stamps the deletion time; the
// record stays in the collection until a purge.
func (s *serviceImpl) SoftDelete(ctx context.Context, id string) (res model.Feedback, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SoftDeleteFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	feedback, err := s.Get(ctx, id, true)
	if err != nil {
		return res, err
	}

	if feedback.Deleted {
		return res, failure.BadRequestf("Feedback with ID %s is already deleted", id) // nolint:wrapcheck
	}

	feedback.Deleted = true
	feedback.DeletionTimestamp = timezone.Format(timezone.Now(), constant.DateFormat)

	if _, err = s.repo.Update(ctx, feedback); err != nil {
		log.Error().Err(err).Msg("failed to delete feedback")

		return res, fmt.Errorf("failed to delete feedback: %w", err)
	}

	return feedback, nil
}

func (s *serviceImpl) Restore(ctx context.Context, id string) (res model.Feedback, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RestoreFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	feedback, err := s.Get(ctx, id, true)
	if err != nil {
		return res, err
	}

	if !feedback.Deleted {
		return res, failure.BadRequestf("Feedback with ID %s is not deleted", id) // nolint:wrapcheck
	}

	feedback.Deleted = false

	if _, err = s.repo.Update(ctx, feedback); err != nil {
		log.Error().Err(err).Msg("failed to restore feedback")

		return res, fmt.Errorf("failed to restore feedback: %w", err)
	}

	return feedback, nil
}

// Import validates every entry before committing any; a single bad item
// rejects the whole batch with its index in the message.
func (s *serviceImpl) Import(ctx context.Context, req dto.BulkImportRequest) (res []model.Feedback, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ImportFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	for i, item := range req.Items {
		if err = validator.Struct(&item); err != nil {
			return nil, failure.UnprocessableEntity(fmt.Sprintf("Error in item #%d: %s", i, err.Error())) // nolint:wrapcheck
		}
	}

	imported := make([]model.Feedback, 0, len(req.Items))
	typeCounts := map[string]int{}

	for _, item := range req.Items {
		feedback := item.ToModel()
		imported = append(imported, feedback)
		typeCounts[feedback.Type]++
	}

	if err = s.repo.InsertMany(ctx, imported); err != nil {
		log.Error().Err(err).Msg("failed to import feedback")

		return nil, fmt.Errorf("failed to import feedback: %w", err)
	}

	log.Info().
		Str("operation", "bulk_import").
		Str("resource", "feedback").
		Int("count", len(imported)).
		Interface("types", typeCounts).
		Msg("admin operation")

	return imported, nil
}

// Purge permanently removes soft-deleted entries. With a cutoff, only
// entries whose deletion stamp lies strictly before it go; entries without a
// stamp survive a bounded purge.
func (s *serviceImpl) Purge(ctx context.Context, deletedBefore *time.Time) (res dto.PurgeResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PurgeFeedback")
	defer scope.End()
	defer scope.TraceIfError(err)

	feedbacks, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	remaining := make([]model.Feedback, 0, len(feedbacks))
	purgedIDs := make([]string, 0)

	for _, feedback := range feedbacks {
		if !feedback.Deleted {
			remaining = append(remaining, feedback)

			continue
		}

		if deletedBefore != nil {
			deletedAt, ok := feedback.DeletionTime()
			if !ok || !deletedAt.Before(*deletedBefore) {
				remaining = append(remaining, feedback)

				continue
			}
		}

		purgedIDs = append(purgedIDs, feedback.ID)
	}

	purgedCount := len(feedbacks) - len(remaining)

	if purgedCount > 0 {
		if err = s.repo.ReplaceAll(ctx, remaining); err != nil {
			log.Error().Err(err).Msg("failed to purge feedback")

			return res, fmt.Errorf("failed to purge feedback: %w", err)
		}

		log.Info().
			Str("operation", "purge").
			Str("resource", "feedback").
			Int("purged_count", purgedCount).
			Int("remaining_count", len(remaining)).
			Strs("purged_ids", purgedIDs).
			Msg("admin operation")
	}

	message := fmt.Sprintf("Successfully purged %d deleted feedback entries", purgedCount)
	if deletedBefore != nil {
		message += fmt.Sprintf(" deleted before %s", deletedBefore.Format(constant.DateFormat))
	}

	return dto.PurgeResult{
		Success:        true,
		Message:        message,
		PurgedCount:    purgedCount,
		RemainingCount: len(remaining),
	}, nil
}
