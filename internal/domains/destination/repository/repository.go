package repository

import (
	"context"
	"fmt"

	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/destination/model"
	"github.com/riku-k061/travel-backend/shared/constant"
)

// Destination is a read-only collection: it backs the referential checks for
// schedules, staff, and vehicles. Every call loads the collection fresh.
type Destination interface {
	GetAll(ctx context.Context) ([]model.Destination, error)
	FindByID(ctx context.Context, id string) (model.Destination, bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	ValidIDs(ctx context.Context) (map[string]struct{}, error)
}

type repositoryImpl struct {
	collection *jsonstore.Collection[model.Destination]
	otel       otel.Otel
}

func New(store *jsonstore.Store, ot otel.Otel) Destination {
	return &repositoryImpl{
		collection: jsonstore.NewCollection[model.Destination](store, model.CollectionName),
		otel:       ot,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Destination, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return repo.collection.Load(ctx)
}

func (repo *repositoryImpl) FindByID(ctx context.Context, id string) (model.Destination, bool, error) {
	destinations, err := repo.GetAll(ctx)
	if err != nil {
		return model.Destination{}, false, err
	}

	for _, destination := range destinations {
		if destination.DestinationID == id {
			return destination, true, nil
		}
	}

	return model.Destination{}, false, nil
}

func (repo *repositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	_, found, err := repo.FindByID(ctx, id)

	return found, err
}

func (repo *repositoryImpl) ValidIDs(ctx context.Context) (map[string]struct{}, error) {
	destinations, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(destinations))
	for _, destination := range destinations {
		ids[destination.DestinationID] = struct{}{}
	}

	return ids, nil
}
