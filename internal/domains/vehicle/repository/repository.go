package repository

import (
	"context"
	"fmt"

	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/vehicle/model"
	"github.com/riku-k061/travel-backend/shared/constant"
)

// Vehicle has no physical delete; deactivation is an update of the available
// flag. InsertMany writes the whole batch in one replace so bulk creation is
// all-or-nothing.
type Vehicle interface {
	GetAll(ctx context.Context) ([]model.Vehicle, error)
	FindByID(ctx context.Context, id string) (model.Vehicle, bool, error)
	Insert(ctx context.Context, vehicle model.Vehicle) error
	InsertMany(ctx context.Context, vehicles []model.Vehicle) error
	Update(ctx context.Context, vehicle model.Vehicle) (bool, error)
}

type repositoryImpl struct {
	collection *jsonstore.Collection[model.Vehicle]
	otel       otel.Otel
}

func New(store *jsonstore.Store, ot otel.Otel) Vehicle {
	return &repositoryImpl{
		collection: jsonstore.NewCollection[model.Vehicle](store, model.CollectionName),
		otel:       ot,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Vehicle, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return repo.collection.Load(ctx)
}

func (repo *repositoryImpl) FindByID(ctx context.Context, id string) (model.Vehicle, bool, error) {
	vehicles, err := repo.GetAll(ctx)
	if err != nil {
		return model.Vehicle{}, false, err
	}

	for _, vehicle := range vehicles {
		if vehicle.ID == id {
			return vehicle, true, nil
		}
	}

	return model.Vehicle{}, false, nil
}

func (repo *repositoryImpl) Insert(ctx context.Context, vehicle model.Vehicle) error {
	return repo.InsertMany(ctx, []model.Vehicle{vehicle})
}

func (repo *repositoryImpl) InsertMany(ctx context.Context, vehicles []model.Vehicle) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	return repo.collection.Replace(ctx, append(existing, vehicles...))
}

func (repo *repositoryImpl) Update(ctx context.Context, vehicle model.Vehicle) (bool, error) {
	vehicles, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range vehicles {
		if vehicles[i].ID == vehicle.ID {
			updated := append([]model.Vehicle(nil), vehicles...)
			updated[i] = vehicle

			return true, repo.collection.Replace(ctx, updated)
		}
	}

	return false, nil
}
