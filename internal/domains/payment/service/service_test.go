package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	bookingDto "github.com/riku-k061/travel-backend/internal/domains/booking/model/dto"
	bookingRepository "github.com/riku-k061/travel-backend/internal/domains/booking/repository"
	bookingService "github.com/riku-k061/travel-backend/internal/domains/booking/service"
	"github.com/riku-k061/travel-backend/internal/domains/payment/model"
	"github.com/riku-k061/travel-backend/internal/domains/payment/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/payment/repository"
	"github.com/riku-k061/travel-backend/internal/domains/payment/service"
	gDto "github.com/riku-k061/travel-backend/shared/dto"
	"github.com/riku-k061/travel-backend/shared/failure"
)

func defaultParams() gDto.QueryParams {
	return gDto.QueryParams{Limit: 10}
}

type fixture struct {
	payments service.Payment
	bookings bookingService.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.DataDir = t.TempDir()
	cfg.Pricing.DailyRate = 100

	noop := otel.NewNoop()
	store := jsonstore.New(cfg, noop)

	bookingRepo := bookingRepository.New(store, noop)
	paymentRepo := repository.New(store, noop)

	return fixture{
		payments: service.New(paymentRepo, bookingRepo, cfg, noop),
		bookings: bookingService.New(bookingRepo, noop),
	}
}

// seedBooking creates a four-night booking, so the expected confirmation
// amount at the default rate is 400.
func (f fixture) seedBooking(t *testing.T, ctx context.Context) string {
	t.Helper()

	booking, err := f.bookings.Create(ctx, bookingDto.CreateBookingRequest{
		CustomerID:  "cust-1",
		Destination: "dest-1",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-05",
	})
	require.NoError(t, err)

	return booking.BookingID
}

func (f fixture) seedPayment(t *testing.T, ctx context.Context, bookingID string, amount float64) model.Payment {
	t.Helper()

	payment, err := f.payments.Create(ctx, dto.CreatePaymentRequest{
		BookingID: bookingID,
		Method:    model.MethodCreditCard,
		Amount:    amount,
	})
	require.NoError(t, err)

	return payment
}

func TestPaymentService_CreateRequiresBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.payments.Create(ctx, dto.CreatePaymentRequest{
		BookingID: "missing-booking",
		Method:    model.MethodPaypal,
		Amount:    50,
	})
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestPaymentService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	payment := f.seedPayment(t, ctx, bookingID, 400)

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, model.StatusPending, payment.Status)
	assert.NotEmpty(t, payment.TransactionDate)

	fetched, err := f.payments.Get(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment, fetched)
}

func TestPaymentService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)

	small := f.seedPayment(t, ctx, bookingID, 50)
	large := f.seedPayment(t, ctx, bookingID, 500)

	_, err := f.payments.UpdateStatus(ctx, large.ID, model.StatusCompleted)
	require.NoError(t, err)

	minAmount := 100.0

	res, err := f.payments.List(ctx, dto.ListPaymentsQuery{
		MinAmount: &minAmount,
		Params:    defaultParams(),
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, large.ID, res.Items[0].ID)
	assert.Equal(t, 2, res.Metadata.TotalCount)
	assert.Equal(t, 1, res.Metadata.FilteredCount)
	assert.Equal(t, map[string]any{"min_amount": 100.0}, res.Metadata.FiltersApplied)

	res, err = f.payments.List(ctx, dto.ListPaymentsQuery{
		Status: model.StatusPending,
		Params: defaultParams(),
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, small.ID, res.Items[0].ID)
}

func TestPaymentService_ListRejectsUnknownEnumFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	f.seedPayment(t, ctx, bookingID, 400)

	_, err := f.payments.List(ctx, dto.ListPaymentsQuery{
		Status: "bogus-status",
		Params: defaultParams(),
	})
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
	assert.Contains(t, err.Error(), "bogus-status")

	_, err = f.payments.List(ctx, dto.ListPaymentsQuery{
		Method: "barter",
		Params: defaultParams(),
	})
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
	assert.Contains(t, err.Error(), "barter")
}

func TestPaymentService_ListSortsByAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	f.seedPayment(t, ctx, bookingID, 30)
	f.seedPayment(t, ctx, bookingID, 10)
	f.seedPayment(t, ctx, bookingID, 20)

	res, err := f.payments.List(ctx, dto.ListPaymentsQuery{
		SortBy: "amount",
		Params: defaultParams(),
	})
	require.NoError(t, err)

	amounts := make([]float64, 0, len(res.Items))
	for _, item := range res.Items {
		amounts = append(amounts, item.Amount)
	}

	assert.Equal(t, []float64{30, 20, 10}, amounts)
}

func TestPaymentService_ListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	for i := 0; i < 5; i++ {
		f.seedPayment(t, ctx, bookingID, float64(10*(i+1)))
	}

	params := defaultParams()
	params.Limit = 2
	params.Offset = 2

	res, err := f.payments.List(ctx, dto.ListPaymentsQuery{Params: params})
	require.NoError(t, err)

	assert.Len(t, res.Items, 2)
	assert.Equal(t, 5, res.Metadata.FilteredCount)
	assert.True(t, res.Metadata.HasMore)
	assert.Equal(t, 2, res.Metadata.CurrentPage)
	assert.Equal(t, 3, res.Metadata.TotalPages)
}

func TestPaymentService_SummaryBreakdowns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)

	f.seedPayment(t, ctx, bookingID, 100)
	f.seedPayment(t, ctx, bookingID, 300)

	completed := f.seedPayment(t, ctx, bookingID, 200)
	_, err := f.payments.UpdateStatus(ctx, completed.ID, model.StatusCompleted)
	require.NoError(t, err)

	summary, err := f.payments.Summary(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalPayments)
	assert.InDelta(t, 600, summary.TotalAmount, 1e-9)
	assert.InDelta(t, 200, summary.AverageAmount, 1e-9)
	assert.InDelta(t, 100, summary.MinAmount, 1e-9)
	assert.InDelta(t, 300, summary.MaxAmount, 1e-9)

	assert.Equal(t, 2, summary.PendingPayments)
	assert.InDelta(t, 400, summary.PendingAmount, 1e-9)
	assert.Equal(t, 1, summary.CompletedPayments)
	assert.InDelta(t, 200, summary.CompletedAmount, 1e-9)

	require.Len(t, summary.ByMethod, 1)
	assert.Equal(t, model.MethodCreditCard, summary.ByMethod[0].Method)
	assert.InDelta(t, 100, summary.ByMethod[0].PercentageOfTotal, 1e-9)

	require.Len(t, summary.ByStatus, 2)
	assert.Equal(t, model.StatusPending, summary.ByStatus[0].Status)
	assert.InDelta(t, 100.0*2/3, summary.ByStatus[0].PercentageOfTotal, 1e-9)

	assert.NotNil(t, summary.EarliestPaymentDate)
	assert.NotNil(t, summary.LatestPaymentDate)
	assert.Nil(t, summary.DateRangeStart)
}

func TestPaymentService_SummaryRejectsInvertedRange(t *testing.T) {
	f := newFixture(t)

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.payments.Summary(context.Background(), &from, &to)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestPaymentService_UpdateStatusHasNoGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	payment := f.seedPayment(t, ctx, bookingID, 400)

	// Any valid enum value is accepted, including leaving a terminal state.
	updated, err := f.payments.UpdateStatus(ctx, payment.ID, model.StatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRefunded, updated.Status)

	updated, err = f.payments.UpdateStatus(ctx, payment.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, updated.Status)

	_, err = f.payments.UpdateStatus(ctx, payment.ID, "archived")
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
}

func TestPaymentService_Confirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	payment := f.seedPayment(t, ctx, bookingID, 400)

	confirmed, err := f.payments.Confirm(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, confirmed.Status)
	assert.NotEqual(t, payment.TransactionDate, "")

	_, err = f.payments.Confirm(ctx, payment.ID)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "already confirmed")
}

func TestPaymentService_ConfirmRejectsAmountMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	payment := f.seedPayment(t, ctx, bookingID, 399)

	_, err := f.payments.Confirm(ctx, payment.ID)
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "does not match expected amount")
}

func TestPaymentService_ConfirmAcceptsAmountWithinTolerance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	payment := f.seedPayment(t, ctx, bookingID, 400.005)

	confirmed, err := f.payments.Confirm(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, confirmed.Status)
}

func TestPaymentService_ConfirmRejectsTerminalStatus(t *testing.T) {
	terminal := []string{model.StatusCompleted, model.StatusRefunded, model.StatusCanceled}

	for _, status := range terminal {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			bookingID := f.seedBooking(t, ctx)
			payment := f.seedPayment(t, ctx, bookingID, 400)

			_, err := f.payments.UpdateStatus(ctx, payment.ID, status)
			require.NoError(t, err)

			_, err = f.payments.Confirm(ctx, payment.ID)
			require.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
			assert.Contains(t, err.Error(), status)
		})
	}
}

func TestPaymentService_ByBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	f.seedPayment(t, ctx, bookingID, 100)
	f.seedPayment(t, ctx, bookingID, 200)

	payments, err := f.payments.ByBooking(ctx, bookingID, false)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	_, err = f.payments.ByBooking(ctx, "missing-booking", false)
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestPaymentService_ByBookingEmptyList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)

	payments, err := f.payments.ByBooking(ctx, bookingID, true)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestPaymentService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bookingID := f.seedBooking(t, ctx)
	payment := f.seedPayment(t, ctx, bookingID, 400)

	require.NoError(t, f.payments.Delete(ctx, payment.ID))

	err := f.payments.Delete(ctx, payment.ID)
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
