package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	destinationRepository "github.com/riku-k061/travel-backend/internal/domains/destination/repository"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/model"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/repository"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/query"
	"github.com/riku-k061/travel-backend/shared/timezone"
)

type Schedule interface {
	List(ctx context.Context, q dto.ListSchedulesQuery) ([]model.Schedule, error)
	StatusSummary(ctx context.Context) (dto.StatusSummary, error)
	Get(ctx context.Context, id string) (model.Schedule, error)
	Create(ctx context.Context, req dto.CreateScheduleRequest) (model.Schedule, error)
	Update(ctx context.Context, id string, req dto.UpdateScheduleRequest) (model.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo            repository.Schedule
	destinationRepo destinationRepository.Destination
	otel            otel.Otel
}

func New(repo repository.Schedule, destinationRepo destinationRepository.Destination, ot otel.Otel) Schedule {
	return &serviceImpl{
		repo:            repo,
		destinationRepo: destinationRepo,
		otel:            ot,
	}
}

// List filters by destination and an inclusive date window, then sorts by
// date. Records with missing or unparsable dates match no date filter and
// sort last.
func (s *serviceImpl) List(ctx context.Context, q dto.ListSchedulesQuery) (res []model.Schedule, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListSchedules")
	defer scope.End()
	defer scope.TraceIfError(err)

	schedules, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}

	var destinationFilter, startFilter, endFilter query.Predicate[model.Schedule]

	if q.DestinationID != "" {
		destinationFilter = func(sc model.Schedule) bool { return sc.DestinationID == q.DestinationID }
	}

	if q.StartDate != nil {
		startFilter = func(sc model.Schedule) bool {
			t, ok := sc.DateTime()

			return ok && !t.Before(*q.StartDate)
		}
	}

	if q.EndDate != nil {
		endFilter = func(sc model.Schedule) bool {
			t, ok := sc.DateTime()

			return ok && !t.After(*q.EndDate)
		}
	}

	filtered := query.Apply(schedules, destinationFilter, startFilter, endFilter)

	query.SortByTime(filtered, model.Schedule.DateTime, q.Descending)

	return filtered, nil
}

// StatusSummary counts schedules per status. The three fixed statuses are
// always present, zeroes included; an "unknown" bucket appears only when the
// stored data holds out-of-enum values.
func (s *serviceImpl) StatusSummary(ctx context.Context) (dto.StatusSummary, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ScheduleStatusSummary")
	defer scope.End()

	schedules, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return dto.StatusSummary{}, fmt.Errorf("failed to get schedules: %w", err)
	}

	counts := map[string]int{}
	for _, status := range model.ValidStatuses {
		counts[status] = 0
	}

	for _, schedule := range schedules {
		status := schedule.EffectiveStatus()
		if model.IsValidStatus(status) {
			counts[status]++
		} else {
			counts["unknown"]++
		}
	}

	return dto.StatusSummary{
		StatusCounts: counts,
		Total:        len(schedules),
	}, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Schedule, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSchedule")
	defer scope.End()

	schedule, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return model.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	if !found {
		return model.Schedule{}, failure.NotFoundf("Schedule with ID %s not found", id) // nolint:wrapcheck
	}

	return schedule, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateScheduleRequest) (res model.Schedule, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.requireDestination(ctx, req.DestinationID); err != nil {
		return res, err
	}

	if req.Status != "" && !model.IsValidStatus(req.Status) {
		return res, invalidStatus() // nolint:wrapcheck
	}

	schedule, err := req.ToModel()
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, schedule); err != nil {
		log.Error().Err(err).Msg("failed to create schedule")

		return res, fmt.Errorf("failed to create schedule: %w", err)
	}

	return schedule, nil
}

// Update applies the provided fields only; a changed destination is
// revalidated against the destination collection.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateScheduleRequest) (res model.Schedule, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	schedule, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	if req.DestinationID != nil {
		if err = s.requireDestination(ctx, *req.DestinationID); err != nil {
			return res, err
		}

		schedule.DestinationID = *req.DestinationID
	}

	if req.Date != nil {
		if _, parseErr := timezone.ParseFlexible(*req.Date); parseErr != nil {
			return res, failure.UnprocessableEntity("Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)") // nolint:wrapcheck
		}

		schedule.Date = *req.Date
	}

	if req.Capacity != nil {
		schedule.Capacity = *req.Capacity
	}

	if req.Status != nil {
		if !model.IsValidStatus(*req.Status) {
			return res, invalidStatus() // nolint:wrapcheck
		}

		schedule.Status = *req.Status
	}

	if _, err = s.repo.Update(ctx, schedule); err != nil {
		log.Error().Err(err).Msg("failed to update schedule")

		return res, fmt.Errorf("failed to update schedule: %w", err)
	}

	return schedule, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete schedule")

		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	if !deleted {
		return failure.NotFoundf("Schedule with ID %s not found", id) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) requireDestination(ctx context.Context, destinationID string) error {
	exists, err := s.destinationRepo.Exists(ctx, destinationID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get destinations")

		return fmt.Errorf("failed to get destinations: %w", err)
	}

	if !exists {
		return failure.BadRequestf("Destination with ID %s does not exist", destinationID) // nolint:wrapcheck
	}

	return nil
}

func invalidStatus() error {
	return failure.BadRequestf("Invalid status value. Must be one of: %s", strings.Join(model.ValidStatuses, ", "))
}
