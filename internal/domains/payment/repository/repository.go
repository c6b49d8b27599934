package repository

import (
	"context"
	"fmt"

	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/payment/model"
	"github.com/riku-k061/travel-backend/shared/constant"
)

type Payment interface {
	GetAll(ctx context.Context) ([]model.Payment, error)
	FindByID(ctx context.Context, id string) (model.Payment, bool, error)
	Insert(ctx context.Context, payment model.Payment) error
	Update(ctx context.Context, payment model.Payment) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// repositoryImpl reads the payment collection fresh on every call; payments
// are not cached.
type repositoryImpl struct {
	collection *jsonstore.Collection[model.Payment]
	otel       otel.Otel
}

func New(store *jsonstore.Store, ot otel.Otel) Payment {
	return &repositoryImpl{
		collection: jsonstore.NewCollection[model.Payment](store, model.CollectionName),
		otel:       ot,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Payment, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.payment.GetAll", constant.OtelRepositoryScopeName))
	defer scope.End()

	return repo.collection.Load(ctx)
}

func (repo *repositoryImpl) FindByID(ctx context.Context, id string) (model.Payment, bool, error) {
	payments, err := repo.GetAll(ctx)
	if err != nil {
		return model.Payment{}, false, err
	}

	for _, payment := range payments {
		if payment.ID == id {
			return payment, true, nil
		}
	}

	return model.Payment{}, false, nil
}

func (repo *repositoryImpl) Insert(ctx context.Context, payment model.Payment) error {
	payments, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	return repo.collection.Replace(ctx, append(payments, payment))
}

func (repo *repositoryImpl) Update(ctx context.Context, payment model.Payment) (bool, error) {
	payments, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range payments {
		if payments[i].ID == payment.ID {
			updated := append([]model.Payment(nil), payments...)
			updated[i] = payment

			return true, repo.collection.Replace(ctx, updated)
		}
	}

	return false, nil
}

func (repo *repositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	payments, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]model.Payment, 0, len(payments))
	for _, payment := range payments {
		if payment.ID != id {
			remaining = append(remaining, payment)
		}
	}

	if len(remaining) == len(payments) {
		return false, nil
	}

	return true, repo.collection.Replace(ctx, remaining)
}
