package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	destinationRepository "github.com/riku-k061/travel-backend/internal/domains/destination/repository"
	"github.com/riku-k061/travel-backend/internal/domains/vehicle/model"
	"github.com/riku-k061/travel-backend/internal/domains/vehicle/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/vehicle/repository"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/query"
	"github.com/riku-k061/travel-backend/shared/validator"
)

const softDeleteNote = "This endpoint uses soft-delete: vehicles are deactivated, not removed from the system"

type Vehicle interface {
	List(ctx context.Context, q dto.ListVehiclesQuery) (dto.PaginatedVehicleResponse, error)
	Get(ctx context.Context, id string) (model.Vehicle, error)
	Create(ctx context.Context, req dto.CreateVehicleRequest) (model.Vehicle, error)
	CreateBulk(ctx context.Context, reqs []dto.CreateVehicleRequest) ([]model.Vehicle, error)
	Update(ctx context.Context, id string, req dto.UpdateVehicleRequest) (model.Vehicle, error)
	Deactivate(ctx context.Context, id string) (dto.AvailabilityResult, error)
	Reactivate(ctx context.Context, id string) (dto.AvailabilityResult, error)
}

type serviceImpl struct {
	repo            repository.Vehicle
	destinationRepo destinationRepository.Destination
	otel            otel.Otel
}

func New(repo repository.Vehicle, destinationRepo destinationRepository.Destination, ot otel.Otel) Vehicle {
	return &serviceImpl{
		repo:            repo,
		destinationRepo: destinationRepo,
		otel:            ot,
	}
}

// List filters by availability, exact type, and served destination,
// preserving stored order, then paginates.
func (s *serviceImpl) List(ctx context.Context, q dto.ListVehiclesQuery) (res dto.PaginatedVehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListVehicles")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicles, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicles")

		return res, fmt.Errorf("failed to get vehicles: %w", err)
	}

	var availableFilter, typeFilter, destinationFilter query.Predicate[model.Vehicle]

	if q.Available != nil {
		availableFilter = func(v model.Vehicle) bool { return v.Available == *q.Available }
	}

	if q.Type != "" {
		typeFilter = func(v model.Vehicle) bool { return v.Type == q.Type }
	}

	if q.DestinationID != "" {
		destinationFilter = func(v model.Vehicle) bool { return v.Serves(q.DestinationID) }
	}

	filtered := query.Apply(vehicles, availableFilter, typeFilter, destinationFilter)

	items, page := query.Paginate(filtered, len(filtered), q.Params.Limit, q.Params.Offset)

	return dto.PaginatedVehicleResponse{
		Items:      items,
		TotalCount: page.TotalCount,
	}, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Vehicle, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetVehicle")
	defer scope.End()

	vehicle, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return model.Vehicle{}, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !found {
		return model.Vehicle{}, failure.NotFoundf("Vehicle with ID %s not found", id) // nolint:wrapcheck
	}

	return vehicle, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVehicleRequest) (res model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateVehicle")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.validateDestinations(ctx, req.DestinationIDs); err != nil {
		return res, err
	}

	vehicle := req.ToModel()

	if err = s.repo.Insert(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to create vehicle")

		return res, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return vehicle, nil
}

// CreateBulk validates every item and the union of their destination ids
// before persisting anything, so the batch applies all-or-nothing.
func (s *serviceImpl) CreateBulk(ctx context.Context, reqs []dto.CreateVehicleRequest) (res []model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateVehiclesBulk")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(reqs) == 0 {
		return nil, failure.BadRequestFromString("No vehicles provided for bulk creation") // nolint:wrapcheck
	}

	for i, req := range reqs {
		if err = validator.Struct(&req); err != nil {
			return nil, failure.UnprocessableEntity(fmt.Sprintf("Error in item #%d: %s", i, err.Error())) // nolint:wrapcheck
		}
	}

	seen := map[string]struct{}{}
	union := []string{}

	for _, req := range reqs {
		for _, id := range req.DestinationIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				union = append(union, id)
			}
		}
	}

	if err = s.validateDestinations(ctx, union); err != nil {
		if failure.IsClientError(err) {
			return nil, failure.BadRequestf("Validation failed: %s", err.Error()) // nolint:wrapcheck
		}

		return nil, err
	}

	vehicles := make([]model.Vehicle, 0, len(reqs))
	for _, req := range reqs {
		vehicles = append(vehicles, req.ToModel())
	}

	if err = s.repo.InsertMany(ctx, vehicles); err != nil {
		log.Error().Err(err).Msg("failed to create vehicles")

		return nil, fmt.Errorf("failed to create vehicles: %w", err)
	}

	log.Info().Int("count", len(vehicles)).Msg("bulk created vehicles")

	return vehicles, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateVehicleRequest) (res model.Vehicle, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateVehicle")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.DestinationIDs != nil {
		if err = s.validateDestinations(ctx, *req.DestinationIDs); err != nil {
			return res, err
		}
	}

	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Type != nil {
		vehicle.Type = *req.Type
	}

	if req.Capacity != nil {
		vehicle.Capacity = *req.Capacity
	}

	if req.Available != nil {
		vehicle.Available = *req.Available
	}

	if req.DestinationIDs != nil {
		vehicle.DestinationIDs = *req.DestinationIDs
	}

	if _, err = s.repo.Update(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle")

		return res, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return vehicle, nil
}

// Deactivate marks the vehicle unavailable; an already unavailable vehicle is
// a successful no-op with a notice.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) (res dto.AvailabilityResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeactivateVehicle")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	if !vehicle.Available {
		return dto.AvailabilityResult{
			Message: fmt.Sprintf("Vehicle with ID %s was already marked as unavailable", id),
			Note:    softDeleteNote,
		}, nil
	}

	vehicle.Available = false

	if _, err = s.repo.Update(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle")

		return res, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return dto.AvailabilityResult{
		Message: fmt.Sprintf("Vehicle with ID %s has been successfully deactivated", id),
		Note:    softDeleteNote,
	}, nil
}

// Reactivate marks the vehicle available again; an already available vehicle
// is a successful no-op with a notice.
func (s *serviceImpl) Reactivate(ctx context.Context, id string) (res dto.AvailabilityResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReactivateVehicle")
	defer scope.End()
	defer scope.TraceIfError(err)

	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	if vehicle.Available {
		return dto.AvailabilityResult{
			Message: fmt.Sprintf("Vehicle with ID %s is already marked as available", id),
			Note:    "No changes were made as the vehicle was already in active status",
		}, nil
	}

	vehicle.Available = true

	if _, err = s.repo.Update(ctx, vehicle); err != nil {
		log.Error().Err(err).Msg("failed to update vehicle")

		return res, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return dto.AvailabilityResult{
		Message: fmt.Sprintf("Vehicle with ID %s has been successfully reactivated", id),
		Note:    "The vehicle is now available for new bookings",
	}, nil
}

// validateDestinations checks every id against the destination collection.
// An empty destination collection skips the check entirely: with no
// destinations seeded there is nothing to validate against.
func (s *serviceImpl) validateDestinations(ctx context.Context, destinationIDs []string) error {
	if len(destinationIDs) == 0 {
		return nil
	}

	validIDs, err := s.destinationRepo.ValidIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get destinations")

		return fmt.Errorf("failed to get destinations: %w", err)
	}

	if len(validIDs) == 0 {
		return nil
	}

	invalid := []string{}
	for _, id := range destinationIDs {
		if _, ok := validIDs[id]; !ok {
			invalid = append(invalid, id)
		}
	}

	if len(invalid) > 0 {
		return failure.BadRequestf("Invalid destination IDs: %s. These destinations do not exist in the system.", strings.Join(invalid, ", ")) // nolint:wrapcheck
	}

	return nil
}
