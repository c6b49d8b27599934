package repository

import (
	"context"
	"fmt"

	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/schedule/model"
	"github.com/riku-k061/travel-backend/shared/constant"
)

type Schedule interface {
	GetAll(ctx context.Context) ([]model.Schedule, error)
	FindByID(ctx context.Context, id string) (model.Schedule, bool, error)
	Insert(ctx context.Context, schedule model.Schedule) error
	Update(ctx context.Context, schedule model.Schedule) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	collection *jsonstore.Collection[model.Schedule]
	otel       otel.Otel
}

func New(store *jsonstore.Store, ot otel.Otel) Schedule {
	return &repositoryImpl{
		collection: jsonstore.NewCollection[model.Schedule](store, model.CollectionName),
		otel:       ot,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Schedule, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.schedule.GetAll", constant.OtelRepositoryScopeName))
	defer scope.End()

	return repo.collection.Load(ctx)
}

func (repo *repositoryImpl) FindByID(ctx context.Context, id string) (model.Schedule, bool, error) {
	schedules, err := repo.GetAll(ctx)
	if err != nil {
		return model.Schedule{}, false, err
	}

	for _, schedule := range schedules {
		if schedule.ID == id {
			return schedule, true, nil
		}
	}

	return model.Schedule{}, false, nil
}

func (repo *repositoryImpl) Insert(ctx context.Context, schedule model.Schedule) error {
	schedules, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	return repo.collection.Replace(ctx, append(schedules, schedule))
}

func (repo *repositoryImpl) Update(ctx context.Context, schedule model.Schedule) (bool, error) {
	schedules, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range schedules {
		if schedules[i].ID == schedule.ID {
			updated := append([]model.Schedule(nil), schedules...)
			updated[i] = schedule

			return true, repo.collection.Replace(ctx, updated)
		}
	}

	return false, nil
}

func (repo *repositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	schedules, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]model.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		if schedule.ID != id {
			remaining = append(remaining, schedule)
		}
	}

	if len(remaining) == len(schedules) {
		return false, nil
	}

	return true, repo.collection.Replace(ctx, remaining)
}
