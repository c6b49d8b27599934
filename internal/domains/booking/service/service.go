package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/booking/model"
	"github.com/riku-k061/travel-backend/internal/domains/booking/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/booking/repository"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/query"
	"github.com/riku-k061/travel-backend/shared/timezone"
	"github.com/riku-k061/travel-backend/shared/validator"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (model.Booking, error)
	GetAll(ctx context.Context) ([]model.Booking, error)
	Search(ctx context.Context, status, customerID string) ([]model.Booking, error)
	Get(ctx context.Context, id string) (model.Booking, error)
	Update(ctx context.Context, id string, req dto.CreateBookingRequest) (model.Booking, error)
	UpdateStatus(ctx context.Context, id, newStatus string) (model.Booking, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, id string) (dto.BookingSummary, error)
	Stats(ctx context.Context) (dto.BookingStats, error)
}

type serviceImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, ot otel.Otel) Booking {
	return &serviceImpl{
		repo: repo,
		otel: ot,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := req.ToModel()
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) ([]model.Booking, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookings")
	defer scope.End()

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return bookings, nil
}

// Search narrows the collection by optional status and customer filters and
// returns newest-first by creation timestamp. Records whose created_at does
// not parse sort last.
func (s *serviceImpl) Search(ctx context.Context, status, customerID string) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if status != "" {
		if err = validator.Var(status, model.Statuses); err != nil {
			return nil, failure.UnprocessableEntity(fmt.Sprintf("invalid status filter '%s'", status)) // nolint:wrapcheck
		}
	}

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	var statusFilter, customerFilter query.Predicate[model.Booking]

	if status != "" {
		statusFilter = func(b model.Booking) bool { return b.EffectiveStatus() == status }
	}

	if customerID != "" {
		customerFilter = func(b model.Booking) bool { return b.CustomerID == customerID }
	}

	filtered := query.Apply(bookings, statusFilter, customerFilter)

	query.SortByTime(filtered, model.Booking.CreatedAtTime, true)

	return filtered, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Booking, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()

	booking, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return model.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return model.Booking{}, failure.NotFound("Booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// Update replaces the mutable fields; status and created_at are preserved
// from the stored record.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.CreateBookingRequest) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, _, err = req.Dates(); err != nil {
		return res, err
	}

	current, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.NotFound("Booking not found") // nolint:wrapcheck
	}

	updated := model.Booking{
		BookingID:   id,
		CustomerID:  req.CustomerID,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      current.EffectiveStatus(),
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   timezone.Format(timezone.Now(), constant.DateFormat),
	}

	if _, err = s.repo.Update(ctx, updated); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	return updated, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id, newStatus string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBookingStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.Var(newStatus, model.Statuses); err != nil {
		return res, failure.UnprocessableEntity(fmt.Sprintf("invalid status '%s'", newStatus)) // nolint:wrapcheck
	}

	booking, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.NotFound("Booking not found") // nolint:wrapcheck
	}

	current := booking.EffectiveStatus()
	if !model.CanTransition(current, newStatus) {
		allowed := model.AllowedTransitions[current]

		return res, failure.BadRequestf( // nolint:wrapcheck
			"Status transition from '%s' to '%s' is not allowed. Allowed transitions from '%s': [%s]",
			current, newStatus, current, strings.Join(allowed, ", "),
		)
	}

	booking.Status = newStatus
	booking.UpdatedAt = timezone.Format(timezone.Now(), constant.DateFormat)

	if _, err = s.repo.Update(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	return booking, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if !deleted {
		return failure.NotFound("Booking not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Summary(ctx context.Context, id string) (dto.BookingSummary, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingSummary")
	defer scope.End()

	booking, err := s.Get(ctx, id)
	if err != nil {
		return dto.BookingSummary{}, err
	}

	return dto.SummaryFromModel(booking), nil
}

// Stats aggregates the whole collection in one pass. Records with unparsable
// or negative spans are excluded from the duration average but still count
// toward the total.
func (s *serviceImpl) Stats(ctx context.Context) (dto.BookingStats, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingStats")
	defer scope.End()

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return dto.BookingStats{}, fmt.Errorf("failed to get bookings: %w", err)
	}

	stats := dto.BookingStats{
		TotalBookings:    len(bookings),
		BookingsByStatus: map[string]int{},
	}

	durationSum := 0
	durationCount := 0

	for _, booking := range bookings {
		stats.BookingsByStatus[booking.EffectiveStatus()]++

		if days, ok := booking.DurationDays(); ok && days >= 0 {
			durationSum += days
			durationCount++
		}
	}

	if durationCount > 0 {
		stats.AverageDurationDays = float64(durationSum) / float64(durationCount)
	}

	return stats, nil
}
