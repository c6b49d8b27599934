package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/riku-k061/travel-backend/internal/domains/schedule/model"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/timezone"
)

type CreateScheduleRequest struct {
	DestinationID string `json:"destination_id" validate:"required"`
	Date          string `json:"date"           validate:"required"`
	Capacity      int    `json:"capacity"       validate:"required,gt=0"`
	Status        string `json:"status"         validate:"omitempty"`
}

// ToModel validates the date and assigns the generated id; status defaults
// to active.
func (c *CreateScheduleRequest) ToModel() (model.Schedule, error) {
	if _, err := timezone.ParseFlexible(c.Date); err != nil {
		return model.Schedule{}, failure.UnprocessableEntity("Invalid date format. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)") // nolint:wrapcheck
	}

	status := c.Status
	if status == "" {
		status = model.StatusActive
	}

	return model.Schedule{
		ID:            uuid.NewString(),
		DestinationID: c.DestinationID,
		Date:          c.Date,
		Capacity:      c.Capacity,
		Status:        status,
	}, nil
}

// UpdateScheduleRequest is a partial update; nil fields are left untouched.
type UpdateScheduleRequest struct {
	DestinationID *string `json:"destination_id" validate:"omitempty"`
	Date          *string `json:"date"           validate:"omitempty"`
	Capacity      *int    `json:"capacity"       validate:"omitempty,gt=0"`
	Status        *string `json:"status"         validate:"omitempty"`
}

// ListSchedulesQuery is the filter and sort surface of the schedule listing.
type ListSchedulesQuery struct {
	DestinationID string
	StartDate     *time.Time
	EndDate       *time.Time
	Descending    bool
}

func (q *ListSchedulesQuery) FromRequest(r *http.Request) error {
	values := r.URL.Query()

	q.DestinationID = values.Get(constant.RequestParamDestinationID)

	var err error
	if q.StartDate, err = parseDateParam(values.Get(constant.RequestParamStartDate)); err != nil {
		return err
	}

	if q.EndDate, err = parseDateParam(values.Get(constant.RequestParamEndDate)); err != nil {
		return err
	}

	sort := strings.ToLower(values.Get(constant.RequestParamSort))
	switch sort {
	case "", constant.SortOrderAsc:
		q.Descending = false
	case constant.SortOrderDesc:
		q.Descending = true
	default:
		return failure.BadRequestFromString("Sort parameter must be either 'asc' or 'desc'") // nolint:wrapcheck
	}

	return nil
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := timezone.ParseFlexible(raw)
	if err != nil {
		return nil, failure.BadRequestf("Invalid date format: '%s'. Please use ISO 8601 format (YYYY-MM-DDTHH:MM:SSZ)", raw) // nolint:wrapcheck
	}

	return &value, nil
}

// StatusSummary is the fixed-status dashboard aggregation.
type StatusSummary struct {
	StatusCounts map[string]int `json:"status_counts"`
	Total        int            `json:"total"`
}
