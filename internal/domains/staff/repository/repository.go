package repository

import (
	"context"
	"fmt"

	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/staff/model"
	"github.com/riku-k061/travel-backend/shared/constant"
)

// Staff has no physical delete; deactivation is an update of the available
// flag.
type Staff interface {
	GetAll(ctx context.Context) ([]model.Staff, error)
	FindByID(ctx context.Context, id string) (model.Staff, bool, error)
	Insert(ctx context.Context, staff model.Staff) error
	Update(ctx context.Context, staff model.Staff) (bool, error)
}

type repositoryImpl struct {
	collection *jsonstore.Collection[model.Staff]
	otel       otel.Otel
}

func New(store *jsonstore.Store, ot otel.Otel) Staff {
	return &repositoryImpl{
		collection: jsonstore.NewCollection[model.Staff](store, model.CollectionName),
		otel:       ot,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Staff, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return repo.collection.Load(ctx)
}

func (repo *repositoryImpl) FindByID(ctx context.Context, id string) (model.Staff, bool, error) {
	members, err := repo.GetAll(ctx)
	if err != nil {
		return model.Staff{}, false, err
	}

	for _, member := range members {
		if member.ID == id {
			return member, true, nil
		}
	}

	return model.Staff{}, false, nil
}

func (repo *repositoryImpl) Insert(ctx context.Context, staff model.Staff) error {
	members, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	return repo.collection.Replace(ctx, append(members, staff))
}

func (repo *repositoryImpl) Update(ctx context.Context, staff model.Staff) (bool, error) {
	members, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range members {
		if members[i].ID == staff.ID {
			updated := append([]model.Staff(nil), members...)
			updated[i] = staff

			return true, repo.collection.Replace(ctx, updated)
		}
	}

	return false, nil
}
