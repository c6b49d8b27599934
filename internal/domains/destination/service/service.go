package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/destination/model"
	"github.com/riku-k061/travel-backend/internal/domains/destination/repository"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
)

type Destination interface {
	GetAll(ctx context.Context) ([]model.Destination, error)
	Get(ctx context.Context, id string) (model.Destination, error)
}

type serviceImpl struct {
	repo repository.Destination
	otel otel.Otel
}

func New(repo repository.Destination, ot otel.Otel) Destination {
	return &serviceImpl{
		repo: repo,
		otel: ot,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) ([]model.Destination, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllDestinations")
	defer scope.End()

	destinations, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load destinations")

		return nil, fmt.Errorf("failed to load destinations: %w", err)
	}

	return destinations, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Destination, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDestination")
	defer scope.End()

	destination, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to load destinations")

		return model.Destination{}, fmt.Errorf("failed to load destinations: %w", err)
	}

	if !found {
		return model.Destination{}, failure.NotFoundf("Destination with ID %s not found", id) // nolint:wrapcheck
	}

	return destination, nil
}
