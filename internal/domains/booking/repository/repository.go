package repository

import (
	"context"
	"fmt"

	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/booking/model"
	"github.com/riku-k061/travel-backend/shared/cache"
	"github.com/riku-k061/travel-backend/shared/constant"
)

type Booking interface {
	GetAll(ctx context.Context) ([]model.Booking, error)
	FindByID(ctx context.Context, id string) (model.Booking, bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, booking model.Booking) error
	Update(ctx context.Context, booking model.Booking) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// repositoryImpl fronts the booking collection with a single-slot snapshot
// cache. The slot is invalidated synchronously inside every mutation, before
// the call returns.
type repositoryImpl struct {
	collection *jsonstore.Collection[model.Booking]
	cache      *cache.Slot[[]model.Booking]
	otel       otel.Otel
}

func New(store *jsonstore.Store, ot otel.Otel) Booking {
	return &repositoryImpl{
		collection: jsonstore.NewCollection[model.Booking](store, model.CollectionName),
		cache:      cache.NewSlot[[]model.Booking](),
		otel:       ot,
	}
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	if cached, ok := repo.cache.Get(); ok {
		scope.AddEvent("booking collection served from cache")

		return cached, nil
	}

	bookings, err := repo.collection.Load(ctx)
	if err != nil {
		return nil, err
	}

	repo.cache.Set(bookings)

	return bookings, nil
}

func (repo *repositoryImpl) FindByID(ctx context.Context, id string) (model.Booking, bool, error) {
	bookings, err := repo.GetAll(ctx)
	if err != nil {
		return model.Booking{}, false, err
	}

	for _, booking := range bookings {
		if booking.BookingID == id {
			return booking, true, nil
		}
	}

	return model.Booking{}, false, nil
}

func (repo *repositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	_, found, err := repo.FindByID(ctx, id)

	return found, err
}

func (repo *repositoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	bookings, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	return repo.replace(ctx, append(bookings, booking))
}

func (repo *repositoryImpl) Update(ctx context.Context, booking model.Booking) (bool, error) {
	bookings, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range bookings {
		if bookings[i].BookingID == booking.BookingID {
			updated := append([]model.Booking(nil), bookings...)
			updated[i] = booking

			return true, repo.replace(ctx, updated)
		}
	}

	return false, nil
}

func (repo *repositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	bookings, err := repo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.BookingID != id {
			remaining = append(remaining, booking)
		}
	}

	if len(remaining) == len(bookings) {
		return false, nil
	}

	return true, repo.replace(ctx, remaining)
}

// replace persists the full collection and drops the cached snapshot before
// returning, whether or not the write succeeded.
func (repo *repositoryImpl) replace(ctx context.Context, bookings []model.Booking) error {
	defer repo.cache.Invalidate()

	return repo.collection.Replace(ctx, bookings)
}
