package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/riku-k061/travel-backend/internal/domains/feedback/model"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	gDto "github.com/riku-k061/travel-backend/shared/dto"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/timezone"
)

type CreateFeedbackRequest struct {
	CustomerID       string `json:"customer_id"        validate:"required"`
	Type             string `json:"type"               validate:"required,oneof=complaint suggestion"`
	Message          string `json:"message"            validate:"required"`
	RelatedBookingID string `json:"related_booking_id" validate:"omitempty"`
	Status           string `json:"status"             validate:"omitempty,oneof=open pending resolved"`
}

// ToModel assigns the server-generated identity: uuid, current timestamp,
// open status unless the request set one, and an empty note thread.
func (c *CreateFeedbackRequest) ToModel() model.Feedback {
	status := c.Status
	if status == "" {
		status = model.StatusOpen
	}

	return model.Feedback{
		ID:               uuid.NewString(),
		CustomerID:       c.CustomerID,
		Type:             c.Type,
		Message:          c.Message,
		RelatedBookingID: c.RelatedBookingID,
		Status:           status,
		Timestamp:        timezone.Format(timezone.Now(), constant.DateFormat),
		AdminNotes:       []model.AdminNote{},
	}
}

// UpdateFeedbackRequest is a partial update; nil fields are left untouched.
// AdminNote appends to the note thread instead of replacing it.
type UpdateFeedbackRequest struct {
	Type             *string `json:"type"               validate:"omitempty,oneof=complaint suggestion"`
	Message          *string `json:"message"            validate:"omitempty"`
	RelatedBookingID *string `json:"related_booking_id" validate:"omitempty"`
	Status           *string `json:"status"             validate:"omitempty,oneof=open pending resolved"`
	AdminNote        *string `json:"admin_note"         validate:"omitempty"`
}

type BulkImportRequest struct {
	Items []CreateFeedbackRequest `json:"items" validate:"required"`
}

type AddNoteRequest struct {
	Note   string `json:"note"   validate:"required"`
	Author string `json:"author" validate:"omitempty"`
}

// ListFeedbackQuery carries the filter, sort, pagination, and projection
// surface of the feedback listing.
type ListFeedbackQuery struct {
	Type           string
	Status         string
	CustomerID     string
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	IncludeDeleted bool
	Fields         []string
	Params         gDto.QueryParams
}

func (q *ListFeedbackQuery) FromRequest(r *http.Request) error {
	if err := q.Params.FromRequest(r); err != nil {
		return err // nolint:wrapcheck
	}

	values := r.URL.Query()

	q.Type = values.Get(constant.RequestParamType)
	q.Status = values.Get(constant.RequestParamStatus)
	q.CustomerID = values.Get(constant.RequestParamCustomerID)

	if flag := shared.ConvertStringToBool(values.Get(constant.RequestParamIncludeDeleted)); flag != nil {
		q.IncludeDeleted = *flag
	}

	if fields := values.Get(constant.RequestParamFields); fields != "" {
		for _, field := range strings.Split(fields, ",") {
			q.Fields = append(q.Fields, strings.TrimSpace(field))
		}
	}

	var err error
	if q.CreatedAfter, err = parseTimestampParam(values.Get(constant.RequestParamCreatedAfter), constant.RequestParamCreatedAfter); err != nil {
		return err
	}

	if q.CreatedBefore, err = parseTimestampParam(values.Get(constant.RequestParamCreatedBefore), constant.RequestParamCreatedBefore); err != nil {
		return err
	}

	return nil
}

// SummaryQuery is the filter surface of the feedback summary.
type SummaryQuery struct {
	CustomerID     string
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	IncludeDeleted bool
	IncludeTrends  bool
}

func (q *SummaryQuery) FromRequest(r *http.Request) error {
	values := r.URL.Query()

	q.CustomerID = values.Get(constant.RequestParamCustomerID)

	if flag := shared.ConvertStringToBool(values.Get(constant.RequestParamIncludeDeleted)); flag != nil {
		q.IncludeDeleted = *flag
	}

	if flag := shared.ConvertStringToBool(values.Get(constant.RequestParamIncludeTrends)); flag != nil {
		q.IncludeTrends = *flag
	}

	var err error
	if q.CreatedAfter, err = parseTimestampParam(values.Get(constant.RequestParamCreatedAfter), constant.RequestParamCreatedAfter); err != nil {
		return err
	}

	if q.CreatedBefore, err = parseTimestampParam(values.Get(constant.RequestParamCreatedBefore), constant.RequestParamCreatedBefore); err != nil {
		return err
	}

	return nil
}

func parseTimestampParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := timezone.ParseFlexible(raw)
	if err != nil {
		return nil, failure.UnprocessableEntity(name + " must be an ISO 8601 timestamp") // nolint:wrapcheck
	}

	return &value, nil
}

// PaginatedFeedbackResponse keeps the flat pagination shape of the feedback
// listing; items may be full records or field projections.
type PaginatedFeedbackResponse struct {
	Items      []any `json:"items"`
	TotalCount int   `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// MonthlyTrend is one YYYY-MM bucket of the summary trend data.
type MonthlyTrend struct {
	Total    int            `json:"total"`
	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
}

type FeedbackSummary struct {
	Total          int                     `json:"total"`
	ByType         map[string]int          `json:"by_type"`
	ByStatus       map[string]int          `json:"by_status"`
	MonthlyTrends  map[string]MonthlyTrend `json:"monthly_trends,omitempty"`
	ResolutionRate *float64                `json:"resolution_rate,omitempty"`
}

type PurgeResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	PurgedCount    int    `json:"purged_count"`
	RemainingCount int    `json:"remaining_count"`
}
