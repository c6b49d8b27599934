package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/jsonstore"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/internal/domains/booking/model"
	"github.com/riku-k061/travel-backend/internal/domains/booking/model/dto"
	"github.com/riku-k061/travel-backend/internal/domains/booking/repository"
	"github.com/riku-k061/travel-backend/internal/domains/booking/service"
	"github.com/riku-k061/travel-backend/shared/failure"
)

func newService(t *testing.T) service.Booking {
	t.Helper()

	svc, _ := newServiceWithRepo(t)

	return svc
}

func newServiceWithRepo(t *testing.T) (service.Booking, repository.Booking) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.DataDir = t.TempDir()

	noop := otel.NewNoop()
	repo := repository.New(jsonstore.New(cfg, noop), noop)

	return service.New(repo, noop), repo
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerID:  "cust-1",
		Destination: "dest-1",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-05",
	}
}

func TestBookingService_Create(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, booking.BookingID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, booking.CreatedAt, booking.UpdatedAt)

	fetched, err := svc.Get(ctx, booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, booking, fetched)
}

func TestBookingService_CreateRejectsInvertedDates(t *testing.T) {
	svc := newService(t)

	req := validRequest()
	req.StartDate = "2026-06-10"
	req.EndDate = "2026-06-01"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
}

func TestBookingService_GetNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.Get(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestBookingService_Search(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.CustomerID = "cust-2"
	other, err := svc.Create(ctx, second)
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(ctx, other.BookingID, model.StatusConfirmed)
	require.NoError(t, err)

	tests := []struct {
		name       string
		status     string
		customerID string
		wantIDs    []string
	}{
		{
			name:    "no filters returns everything",
			wantIDs: []string{first.BookingID, confirmed.BookingID},
		},
		{
			name:    "status filter",
			status:  model.StatusConfirmed,
			wantIDs: []string{confirmed.BookingID},
		},
		{
			name:       "customer filter",
			customerID: "cust-1",
			wantIDs:    []string{first.BookingID},
		},
		{
			name:       "conjunction of both filters",
			status:     model.StatusPending,
			customerID: "cust-2",
			wantIDs:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.status, tt.customerID)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.BookingID)
			}

			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestBookingService_SearchRejectsUnknownStatus(t *testing.T) {
	svc := newService(t)

	_, err := svc.Search(context.Background(), "archived", "")
	require.Error(t, err)
	assert.Equal(t, 422, failure.GetCode(err))
}

func TestBookingService_UpdatePreservesStatusAndCreatedAt(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, booking.BookingID, model.StatusConfirmed)
	require.NoError(t, err)

	req := validRequest()
	req.Destination = "dest-2"

	updated, err := svc.Update(ctx, booking.BookingID, req)
	require.NoError(t, err)

	assert.Equal(t, "dest-2", updated.Destination)
	assert.Equal(t, model.StatusConfirmed, updated.Status)
	assert.Equal(t, booking.CreatedAt, updated.CreatedAt)
}

func TestBookingService_StatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantCode int
	}{
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed},
		{name: "pending to cancelled", from: model.StatusPending, to: model.StatusCancelled},
		{name: "confirmed to cancelled", from: model.StatusConfirmed, to: model.StatusCancelled},
		{name: "pending to completed is blocked", from: model.StatusPending, to: model.StatusCompleted, wantCode: 400},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusPending, wantCode: 400},
		{name: "completed is terminal", from: model.StatusCompleted, to: model.StatusCancelled, wantCode: 400},
		{name: "unknown target status", from: model.StatusPending, to: "archived", wantCode: 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newServiceWithRepo(t)
			ctx := context.Background()

			booking, err := svc.Create(ctx, validRequest())
			require.NoError(t, err)

			if tt.from != model.StatusPending {
				// Seed the starting status below the service so terminal
				// states are reachable too.
				booking.Status = tt.from
				_, err = repo.Update(ctx, booking)
				require.NoError(t, err)
			}

			_, err = svc.UpdateStatus(ctx, booking.BookingID, tt.to)
			if tt.wantCode == 0 {
				require.NoError(t, err)

				got, err := svc.Get(ctx, booking.BookingID)
				require.NoError(t, err)
				assert.Equal(t, tt.to, got.Status)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_TransitionErrorNamesAllowedSet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, booking.BookingID, model.StatusCompleted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'pending'")
	assert.Contains(t, err.Error(), "'completed'")
	assert.Contains(t, err.Error(), "confirmed, cancelled")
}

func TestBookingService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.BookingID))

	_, err = svc.Get(ctx, booking.BookingID)
	assert.Equal(t, 404, failure.GetCode(err))

	err = svc.Delete(ctx, booking.BookingID)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestBookingService_Summary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, booking.BookingID)
	require.NoError(t, err)

	assert.Equal(t, dto.BookingSummary{
		Destination: "dest-1",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-05",
		Status:      model.StatusPending,
	}, summary)
}

func TestBookingService_Stats(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	longer := validRequest()
	longer.EndDate = "2026-06-09" // 8 days
	second, err := svc.Create(ctx, longer)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, second.BookingID, model.StatusConfirmed)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, map[string]int{
		model.StatusPending:   1,
		model.StatusConfirmed: 1,
	}, stats.BookingsByStatus)
	assert.InDelta(t, 6.0, stats.AverageDurationDays, 1e-9)
}

func TestBookingService_StatsEmptyCollection(t *testing.T) {
	svc := newService(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalBookings)
	assert.Empty(t, stats.BookingsByStatus)
	assert.Zero(t, stats.AverageDurationDays)
}
