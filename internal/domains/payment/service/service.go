package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/otel"
	bookingModel "github.com/riku-k061/travel-backend/internal/domains/booking/model"
	bookingRepository "github.com/riku-k061/travel-backend/internal/domains/booking/repository"
	"github.com/riku-k061/travel-backend/internal/domains/payment/model"
	"github.com/riku-k061/travel-backend/internal/domains/payment/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/payment/repository"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/query"
	"github.com/riku-k061/travel-backend/shared/timezone"
	"github.com/riku-k061/travel-backend/shared/validator"
)

// Tolerances for matching a payment amount against the expected booking
// price during confirmation.
const (
	amountRelTol = 1e-9
	amountAbsTol = 0.01
)

type Payment interface {
	List(ctx context.Context, q dto.ListPaymentsQuery) (dto.PaginatedPaymentResponse, error)
	Summary(ctx context.Context, dateFrom, dateTo *time.Time) (dto.PaymentSummary, error)
	Create(ctx context.Context, req dto.CreatePaymentRequest) (model.Payment, error)
	Get(ctx context.Context, id string) (model.Payment, error)
	Update(ctx context.Context, id string, req dto.CreatePaymentRequest) (model.Payment, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) (model.Payment, error)
	Confirm(ctx context.Context, id string) (model.Payment, error)
	ByBooking(ctx context.Context, bookingID string, sortByDate bool) ([]model.Payment, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepository.Booking
	config      *config.Config
	otel        otel.Otel
}

func New(repo repository.Payment, bookingRepo bookingRepository.Booking, cfg *config.Config, ot otel.Otel) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		config:      cfg,
		otel:        ot,
	}
}

// List applies the filter surface, sorts, and slices a single page. Records
// whose transaction_date is present but unparsable are dropped from the
// result set.
func (s *serviceImpl) List(ctx context.Context, q dto.ListPaymentsQuery) (res dto.PaginatedPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	if q.Status != "" {
		if err = validator.Var(q.Status, model.Statuses); err != nil {
			return res, failure.UnprocessableEntity(fmt.Sprintf("invalid status filter '%s'", q.Status)) // nolint:wrapcheck
		}
	}

	if q.Method != "" {
		if err = validator.Var(q.Method, model.Methods); err != nil {
			return res, failure.UnprocessableEntity(fmt.Sprintf("invalid method filter '%s'", q.Method)) // nolint:wrapcheck
		}
	}

	payments, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	filtered := make([]model.Payment, 0, len(payments))
	for _, payment := range payments {
		if !matchesListFilters(payment, q) {
			continue
		}

		if payment.TransactionDate != "" {
			if _, ok := payment.TransactionTime(); !ok {
				log.Warn().Str("id", payment.ID).Msg("skipped payment with invalid date format")

				continue
			}
		}

		filtered = append(filtered, payment)
	}

	switch q.SortBy {
	case "amount":
		desc := q.Params.Descending()
		query.SortStable(filtered, func(a, b model.Payment) bool {
			if desc {
				return a.Amount > b.Amount
			}

			return a.Amount < b.Amount
		})
	case "date":
		query.SortByTime(filtered, model.Payment.TransactionTime, q.Params.Descending())
	}

	items, page := query.Paginate(filtered, len(payments), q.Params.Limit, q.Params.Offset)

	return dto.PaginatedPaymentResponse{
		Items: items,
		Metadata: dto.ListMetadata{
			Page:           page,
			FiltersApplied: q.FiltersApplied(),
		},
	}, nil
}

func matchesListFilters(payment model.Payment, q dto.ListPaymentsQuery) bool {
	if q.Status != "" && payment.Status != q.Status {
		return false
	}

	if q.Method != "" && payment.Method != q.Method {
		return false
	}

	if q.MinAmount != nil && payment.Amount < *q.MinAmount {
		return false
	}

	if q.MaxAmount != nil && payment.Amount > *q.MaxAmount {
		return false
	}

	if (q.DateFrom != nil || q.DateTo != nil) && payment.TransactionDate != "" {
		transactionTime, ok := payment.TransactionTime()
		if !ok {
			return false
		}

		day := dateOnly(transactionTime)
		if q.DateFrom != nil && day.Before(dateOnly(*q.DateFrom)) {
			return false
		}

		if q.DateTo != nil && day.After(dateOnly(*q.DateTo)) {
			return false
		}
	}

	if q.BookingID != "" && payment.BookingID != q.BookingID {
		return false
	}

	return true
}

// Summary aggregates the collection for the dashboard. Records with
// unparsable dates are always skipped; records without a date are skipped
// only when a date filter is in play.
func (s *serviceImpl) Summary(ctx context.Context, dateFrom, dateTo *time.Time) (res dto.PaymentSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentSummary")
	defer scope.End()
	defer scope.TraceIfError(err)

	if dateFrom != nil && dateTo != nil && dateFrom.After(*dateTo) {
		return res, failure.BadRequestFromString("date_from cannot be later than date_to") // nolint:wrapcheck
	}

	payments, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	var (
		filteredCount  int
		totalAmount    float64
		minAmount      float64
		maxAmount      float64
		earliest       *time.Time
		latest         *time.Time
		methodStats    = map[string]*dto.MethodSummary{}
		statusStats    = map[string]*dto.StatusSummary{}
		statusCounters = map[string]*struct {
			count  int
			amount float64
		}{
			model.StatusConfirmed: {},
			model.StatusCompleted: {},
			model.StatusPending:   {},
			model.StatusFailed:    {},
			model.StatusRefunded:  {},
			model.StatusCanceled:  {},
		}
	)

	for _, payment := range payments {
		if payment.TransactionDate != "" {
			transactionTime, ok := payment.TransactionTime()
			if !ok {
				log.Warn().Str("id", payment.ID).Msg("skipped payment with invalid date format")

				continue
			}

			day := dateOnly(transactionTime)
			if dateFrom != nil && day.Before(dateOnly(*dateFrom)) {
				continue
			}

			if dateTo != nil && day.After(dateOnly(*dateTo)) {
				continue
			}

			if earliest == nil || transactionTime.Before(*earliest) {
				t := transactionTime
				earliest = &t
			}

			if latest == nil || transactionTime.After(*latest) {
				t := transactionTime
				latest = &t
			}
		} else if dateFrom != nil || dateTo != nil {
			continue
		}

		if filteredCount == 0 || payment.Amount < minAmount {
			minAmount = payment.Amount
		}

		if filteredCount == 0 || payment.Amount > maxAmount {
			maxAmount = payment.Amount
		}

		filteredCount++
		totalAmount += payment.Amount

		method := payment.Method
		if method == "" {
			method = "unknown"
		}

		if _, ok := methodStats[method]; !ok {
			methodStats[method] = &dto.MethodSummary{Method: method}
		}

		methodStats[method].Count++
		methodStats[method].TotalAmount += payment.Amount

		status := payment.Status
		if status == "" {
			status = "unknown"
		}

		if _, ok := statusStats[status]; !ok {
			statusStats[status] = &dto.StatusSummary{Status: status}
		}

		statusStats[status].Count++
		statusStats[status].TotalAmount += payment.Amount

		if counter, ok := statusCounters[status]; ok {
			counter.count++
			counter.amount += payment.Amount
		}
	}

	summary := dto.PaymentSummary{
		TotalPayments: filteredCount,
		TotalAmount:   totalAmount,
		MinAmount:     minAmount,
		MaxAmount:     maxAmount,

		ConfirmedPayments: statusCounters[model.StatusConfirmed].count,
		ConfirmedAmount:   statusCounters[model.StatusConfirmed].amount,
		CompletedPayments: statusCounters[model.StatusCompleted].count,
		CompletedAmount:   statusCounters[model.StatusCompleted].amount,
		PendingPayments:   statusCounters[model.StatusPending].count,
		PendingAmount:     statusCounters[model.StatusPending].amount,
		FailedPayments:    statusCounters[model.StatusFailed].count,
		FailedAmount:      statusCounters[model.StatusFailed].amount,

		ByMethod: make([]dto.MethodSummary, 0, len(methodStats)),
		ByStatus: make([]dto.StatusSummary, 0, len(statusStats)),
	}

	if filteredCount > 0 {
		summary.AverageAmount = totalAmount / float64(filteredCount)
	}

	for _, stats := range methodStats {
		stats.PercentageOfTotal = percentage(stats.Count, filteredCount)
		summary.ByMethod = append(summary.ByMethod, *stats)
	}

	for _, stats := range statusStats {
		stats.PercentageOfTotal = percentage(stats.Count, filteredCount)
		summary.ByStatus = append(summary.ByStatus, *stats)
	}

	query.SortStable(summary.ByMethod, func(a, b dto.MethodSummary) bool { return a.Count > b.Count })
	query.SortStable(summary.ByStatus, func(a, b dto.StatusSummary) bool { return a.Count > b.Count })

	if earliest != nil {
		formatted := timezone.Format(*earliest, constant.DateFormat)
		summary.EarliestPaymentDate = &formatted
	}

	if latest != nil {
		formatted := timezone.Format(*latest, constant.DateFormat)
		summary.LatestPaymentDate = &formatted
	}

	if dateFrom != nil {
		formatted := dateFrom.Format(constant.DateOnlyFormat)
		summary.DateRangeStart = &formatted
	}

	if dateTo != nil {
		formatted := dateTo.Format(constant.DateOnlyFormat)
		summary.DateRangeEnd = &formatted
	}

	return summary, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.requireBooking(ctx, req.BookingID); err != nil {
		return res, err
	}

	payment := req.ToModel()

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Payment, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPayment")
	defer scope.End()

	payment, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return model.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}

	if !found {
		return model.Payment{}, failure.NotFoundf("Payment with ID %s not found", id) // nolint:wrapcheck
	}

	return payment, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.CreatePaymentRequest) (res model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.requireBooking(ctx, req.BookingID); err != nil {
		return res, err
	}

	updated := req.ToModel()
	updated.ID = id

	found, err := s.repo.Update(ctx, updated)
	if err != nil {
		log.Error().Err(err).Msg("failed to update payment")

		return res, fmt.Errorf("failed to update payment: %w", err)
	}

	if !found {
		return res, failure.NotFoundf("Payment with ID %s not found", id) // nolint:wrapcheck
	}

	return updated, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete payment")

		return fmt.Errorf("failed to delete payment: %w", err)
	}

	if !deleted {
		return failure.NotFoundf("Payment with ID %s not found", id) // nolint:wrapcheck
	}

	return nil
}

// UpdateStatus sets the status directly. Unlike bookings, payments carry no
// transition graph here; the confirm endpoint is the guarded path.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status string) (res model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePaymentStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.Var(status, model.Statuses); err != nil {
		return res, failure.UnprocessableEntity(fmt.Sprintf("invalid status '%s'", status)) // nolint:wrapcheck
	}

	payment, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	payment.Status = status

	if _, err = s.repo.Update(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to update payment status")

		return res, fmt.Errorf("failed to update payment status: %w", err)
	}

	return payment, nil
}

// Confirm validates eligibility and moves the payment to confirmed with a
// fresh transaction timestamp.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	if payment.Status == model.StatusConfirmed {
		return res, failure.BadRequestFromString("Payment is already confirmed") // nolint:wrapcheck
	}

	if model.IsTerminal(payment.Status) {
		return res, failure.BadRequestf("Cannot confirm payment in '%s' status", payment.Status) // nolint:wrapcheck
	}

	booking, found, err := s.bookingRepo.FindByID(ctx, payment.BookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return res, failure.BadRequestf("Associated booking with ID %s not found", payment.BookingID) // nolint:wrapcheck
	}

	expected := s.expectedAmount(booking)
	if !shared.FloatsClose(payment.Amount, expected, amountRelTol, amountAbsTol) {
		return res, failure.BadRequestf("Payment amount %v does not match expected amount %v", payment.Amount, expected) // nolint:wrapcheck
	}

	payment.Status = model.StatusConfirmed
	payment.TransactionDate = timezone.Format(timezone.Now(), constant.DateFormat)

	if _, err = s.repo.Update(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to confirm payment")

		return res, fmt.Errorf("failed to confirm payment: %w", err)
	}

	scope.AddEvent("Payment confirmed successfully")

	return payment, nil
}

// ByBooking returns the payments of one booking; an empty list distinguishes
// "booking has no payments" from "booking does not exist".
func (s *serviceImpl) ByBooking(ctx context.Context, bookingID string, sortByDate bool) (res []model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentsByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.bookingRepo.Exists(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if !exists {
		return nil, failure.NotFoundf("Booking with ID %s does not exist", bookingID) // nolint:wrapcheck
	}

	payments, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	result := make([]model.Payment, 0)
	for _, payment := range payments {
		if payment.BookingID != bookingID {
			continue
		}

		if payment.TransactionDate != "" {
			if _, ok := payment.TransactionTime(); !ok {
				log.Error().Str("id", payment.ID).Str("transaction_date", payment.TransactionDate).Msg("invalid date format in payment")

				continue
			}
		}

		result = append(result, payment)
	}

	if sortByDate {
		query.SortByTime(result, model.Payment.TransactionTime, true)
	}

	return result, nil
}

// expectedAmount derives the booking price as nights times the configured
// daily rate; bookings with an unparsable span price at zero.
func (s *serviceImpl) expectedAmount(booking bookingModel.Booking) float64 {
	nights, ok := booking.DurationDays()
	if !ok || nights < 0 {
		return 0
	}

	return shared.Round2(float64(nights) * s.config.Pricing.DailyRate)
}

func (s *serviceImpl) requireBooking(ctx context.Context, bookingID string) error {
	exists, err := s.bookingRepo.Exists(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if !exists {
		return failure.BadRequestf("Booking with ID %s does not exist", bookingID) // nolint:wrapcheck
	}

	return nil
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(count) / float64(total) * 100
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
