package repository

import (
	"context"
	"fmt"

	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/feedback/model"
	"github.com/riku-k061/travel-backend/shared/constant"
)

type Feedback interface {
	GetAll(ctx context.Context) ([]model.Feedback, error)
	FindByID(ctx context.Context, id string) (model.Feedback, bool, error)
	Insert(ctx context.Context, feedback model.Feedback) error
	InsertMany(ctx context.Context, feedbacks []model.Feedback) error
	Update(ctx context.Context, feedback model.Feedback) (bool, error)
	ReplaceAll(ctx context.Context, feedbacks []model.Feedback) error
}

type repositoryImpl struct {
	collection *jsonstore.Collection[model.Feedback]
	otel       otel.Otel
}

func New(store *jsonstore.Store, ot otel.Otel) Feedback {
	return &repositoryImpl{
		collection: jsonstore.NewCollection[model.Feedback](store, model.CollectionName),
		otel:       ot,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Feedback, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.feedback.GetAll", constant.OtelRepositoryScopeName))
	defer scope.End()

	return repo.collection.Load(ctx)
}

func (repo *repositoryImpl) FindByID(ctx context.Context, id string) (model.Feedback, bool, error) {
	feedbacks, err := repo.GetAll(ctx)
	if err != nil {
		return model.Feedback{}, false, err
	}

	for _, feedback := range feedbacks {
		if feedback.ID == id {
			return feedback, true, nil
		}
	}

	return model.Feedback{}, false, nil
}

func (repo *repositoryImpl) Insert(ctx context.Context, feedback model.Feedback) error {
	return repo.InsertMany(ctx, []model.Feedback{feedback})
}

// InsertMany appends all entries in one write, so a bulk import is
// all-or-nothing at the storage level too.
func (repo *repositoryImpl) InsertMany(ctx context.Context, feedbacks []model.Feedback) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	return repo.collection.Replace(ctx, append(existing, feedbacks...))
}

func (repo *repositoryImpl) Update(ctx context.Context, feedback model.Feedback) (bool, error) {
	feedbacks, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range feedbacks {
		if feedbacks[i].ID == feedback.ID {
			updated := append([]model.Feedback(nil), feedbacks...)
			updated[i] = feedback

			return true, repo.collection.Replace(ctx, updated)
		}
	}

	return false, nil
}

func (repo *repositoryImpl) ReplaceAll(ctx context.Context, feedbacks []model.Feedback) error {
	return repo.collection.Replace(ctx, feedbacks)
}
