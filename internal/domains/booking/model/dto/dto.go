package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/riku-k061/travel-backend/internal/domains/booking/model"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/timezone"
)

type CreateBookingRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	StartDate   string `json:"start_date"  validate:"required"`
	EndDate     string `json:"end_date"    validate:"required"`
}

// Dates validates and parses the requested travel window, enforcing
// start_date <= end_date.
func (c *CreateBookingRequest) Dates() (start, end time.Time, err error) {
	start, err = timezone.ParseFlexible(c.StartDate)
	if err != nil {
		return start, end, failure.UnprocessableEntity("start_date must be an ISO 8601 date") // nolint:wrapcheck
	}

	end, err = timezone.ParseFlexible(c.EndDate)
	if err != nil {
		return start, end, failure.UnprocessableEntity("end_date must be an ISO 8601 date") // nolint:wrapcheck
	}

	if end.Before(start) {
		return start, end, failure.UnprocessableEntity("start_date must be before or equal to end_date") // nolint:wrapcheck
	}

	return start, end, nil
}

func (c *CreateBookingRequest) ToModel() (model.Booking, error) {
	if _, _, err := c.Dates(); err != nil {
		return model.Booking{}, err
	}

	now := timezone.Format(timezone.Now(), constant.DateFormat)

	return model.Booking{
		BookingID:   uuid.NewString(),
		CustomerID:  c.CustomerID,
		Destination: c.Destination,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// BookingSummary is the condensed single-booking view: the essentials only.
type BookingSummary struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
}

func SummaryFromModel(booking model.Booking) BookingSummary {
	return BookingSummary{
		Destination: booking.Destination,
		StartDate:   booking.StartDate,
		EndDate:     booking.EndDate,
		Status:      booking.Status,
	}
}

// BookingStats is the collection-wide aggregation for dashboards.
type BookingStats struct {
	TotalBookings       int            `json:"total_bookings"`
	BookingsByStatus    map[string]int `json:"bookings_by_status"`
	AverageDurationDays float64        `json:"average_duration_days"`
}
