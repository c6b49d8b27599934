package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	destinationRepository "github.com/riku-k061/travel-backend/internal/domains/destination/repository"
	"github.com/riku-k061/travel-backend/internal/domains/staff/model"
	"github.com/riku-k061/travel-backend/internal/domains/staff/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/staff/repository"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/query"
)

type Staff interface {
	List(ctx context.Context, q dto.ListStaffQuery) (dto.PaginatedStaffResponse, error)
	Summary(ctx context.Context) (dto.StaffSummary, error)
	Get(ctx context.Context, id string) (model.Staff, error)
	Create(ctx context.Context, req dto.CreateStaffRequest) (model.Staff, error)
	Update(ctx context.Context, id string, req dto.UpdateStaffRequest) (model.Staff, error)
	Deactivate(ctx context.Context, id string) (model.Staff, error)
	Reactivate(ctx context.Context, id string) (model.Staff, error)
	AssignedTo(ctx context.Context, destinationID string, available *bool) ([]model.Staff, error)
}

type serviceImpl struct {
	repo            repository.Staff
	destinationRepo destinationRepository.Destination
	otel            otel.Otel
}

func New(repo repository.Staff, destinationRepo destinationRepository.Destination, ot otel.Otel) Staff {
	return &serviceImpl{
		repo:            repo,
		destinationRepo: destinationRepo,
		otel:            ot,
	}
}

// List filters by role substring and availability, preserving stored order,
// then paginates.
func (s *serviceImpl) List(ctx context.Context, q dto.ListStaffQuery) (res dto.PaginatedStaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	members, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	var roleFilter, availableFilter query.Predicate[model.Staff]

	if q.Role != "" {
		role := strings.ToLower(q.Role)
		roleFilter = func(m model.Staff) bool { return strings.Contains(strings.ToLower(m.Role), role) }
	}

	if q.Available != nil {
		availableFilter = func(m model.Staff) bool { return m.Available == *q.Available }
	}

	filtered := query.Apply(members, roleFilter, availableFilter)

	items, page := query.Paginate(filtered, len(filtered), q.Params.Limit, q.Params.Offset)

	return dto.PaginatedStaffResponse{
		Items:      items,
		TotalCount: page.TotalCount,
	}, nil
}

// Summary buckets staff by lowercased role, splitting each bucket by
// availability.
func (s *serviceImpl) Summary(ctx context.Context) (dto.StaffSummary, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StaffSummary")
	defer scope.End()

	members, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return dto.StaffSummary{}, fmt.Errorf("failed to get staff: %w", err)
	}

	byRole := map[string]dto.RoleSummary{}
	for _, member := range members {
		role := strings.ToLower(member.Role)

		counts := byRole[role]
		counts.Total++

		if member.Available {
			counts.Available++
		} else {
			counts.Unavailable++
		}

		byRole[role] = counts
	}

	return dto.StaffSummary{
		TotalStaff: len(members),
		ByRole:     byRole,
	}, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Staff, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStaff")
	defer scope.End()

	member, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return model.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}

	if !found {
		return model.Staff{}, failure.NotFoundf("Staff member with ID %s not found", id) // nolint:wrapcheck
	}

	return member, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateStaffRequest) (res model.Staff, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.validateGuideDestinations(ctx, req.Role, req.DestinationIDs); err != nil {
		return res, err
	}

	if err = s.requireUniqueEmail(ctx, req.ContactEmail, ""); err != nil {
		return res, err
	}

	member := req.ToModel()

	if err = s.repo.Insert(ctx, member); err != nil {
		log.Error().Err(err).Msg("failed to create staff")

		return res, fmt.Errorf("failed to create staff: %w", err)
	}

	return member, nil
}

// Update applies the provided fields only. The guide rule is re-checked
// against the effective role and destination assignments after the update,
// and a changed email is checked for uniqueness excluding this record.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateStaffRequest) (res model.Staff, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	member, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}

	if req.Role != nil {
		member.Role = *req.Role
	}

	if req.Available != nil {
		member.Available = *req.Available
	}

	if req.DestinationIDs != nil {
		member.DestinationIDs = *req.DestinationIDs
	}

	if err = s.validateGuideDestinations(ctx, member.Role, member.DestinationIDs); err != nil {
		return res, err
	}

	if req.ContactEmail != nil {
		if err = s.requireUniqueEmail(ctx, *req.ContactEmail, id); err != nil {
			return res, err
		}

		member.ContactEmail = *req.ContactEmail
	}

	if _, err = s.repo.Update(ctx, member); err != nil {
		log.Error().Err(err).Msg("failed to update staff")

		return res, fmt.Errorf("failed to update staff: %w", err)
	}

	return member, nil
}

// Deactivate flips the available flag off; deactivating an already
// unavailable member is rejected.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) (res model.Staff, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeactivateStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.setAvailability(ctx, id, false)
}

// Reactivate flips the available flag back on; reactivating an already
// available member is rejected.
func (s *serviceImpl) Reactivate(ctx context.Context, id string) (res model.Staff, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReactivateStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.setAvailability(ctx, id, true)
}

// AssignedTo lists guides whose destination assignments contain the given
// destination, optionally filtered by availability.
func (s *serviceImpl) AssignedTo(ctx context.Context, destinationID string, available *bool) (res []model.Staff, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StaffAssignedTo")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.destinationRepo.Exists(ctx, destinationID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get destinations")

		return nil, fmt.Errorf("failed to get destinations: %w", err)
	}

	if !exists {
		return nil, failure.NotFoundf("Destination with ID %s not found", destinationID) // nolint:wrapcheck
	}

	members, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	guides := query.Apply(members, func(m model.Staff) bool {
		if !m.IsGuide() || !m.AssignedTo(destinationID) {
			return false
		}

		return available == nil || m.Available == *available
	})

	return guides, nil
}

func (s *serviceImpl) setAvailability(ctx context.Context, id string, available bool) (model.Staff, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return model.Staff{}, err
	}

	if member.Available == available {
		if available {
			return model.Staff{}, failure.BadRequestf("Staff member with ID %s is already active", id) // nolint:wrapcheck
		}

		return model.Staff{}, failure.BadRequestf("Staff member with ID %s is already deactivated", id) // nolint:wrapcheck
	}

	member.Available = available

	if _, err := s.repo.Update(ctx, member); err != nil {
		log.Error().Err(err).Msg("failed to update staff")

		return model.Staff{}, fmt.Errorf("failed to update staff: %w", err)
	}

	return member, nil
}

func (s *serviceImpl) validateGuideDestinations(ctx context.Context, role string, destinationIDs []string) error {
	if !model.IsGuideRole(role) {
		return nil
	}

	if len(destinationIDs) == 0 {
		return failure.BadRequestFromString("Staff with 'guide' role must have at least one destination ID") // nolint:wrapcheck
	}

	validIDs, err := s.destinationRepo.ValidIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get destinations")

		return fmt.Errorf("failed to get destinations: %w", err)
	}

	for _, id := range destinationIDs {
		if _, ok := validIDs[id]; !ok {
			return failure.BadRequestf("Destination ID '%s' does not exist", id) // nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) requireUniqueEmail(ctx context.Context, email, excludeID string) error {
	members, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return fmt.Errorf("failed to get staff: %w", err)
	}

	for _, member := range members {
		if excludeID != "" && member.ID == excludeID {
			continue
		}

		if strings.EqualFold(member.ContactEmail, email) {
			return failure.BadRequestFromString("Email already in use by another staff member") // nolint:wrapcheck
		}
	}

	return nil
}
