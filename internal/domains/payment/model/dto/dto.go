package dto

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/riku-k061/travel-backend/internal/domains/payment/model"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	gDto "github.com/riku-k061/travel-backend/shared/dto"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/query"
	"github.com/riku-k061/travel-backend/shared/timezone"
)

type CreatePaymentRequest struct {
	BookingID       string  `json:"booking_id"       validate:"required"`
	Method          string  `json:"method"           validate:"required,oneof=credit_card paypal bank_transfer cryptocurrency"`
	Amount          float64 `json:"amount"           validate:"gte=0"`
	Status          string  `json:"status"           validate:"omitempty,oneof=pending confirmed completed failed refunded canceled"`
	TransactionDate string  `json:"transaction_date" validate:"omitempty"`
}

// ToModel applies the creation defaults: pending status and a current
// transaction timestamp when the request omits them.
func (c *CreatePaymentRequest) ToModel() model.Payment {
	status := c.Status
	if status == "" {
		status = model.StatusPending
	}

	transactionDate := c.TransactionDate
	if transactionDate == "" {
		transactionDate = timezone.Format(timezone.Now(), constant.DateFormat)
	}

	return model.Payment{
		ID:              uuid.NewString(),
		BookingID:       c.BookingID,
		Method:          c.Method,
		Amount:          c.Amount,
		Status:          status,
		TransactionDate: transactionDate,
	}
}

// ListPaymentsQuery carries the full filter surface of the payment listing.
type ListPaymentsQuery struct {
	Status    string
	Method    string
	MinAmount *float64
	MaxAmount *float64
	DateFrom  *time.Time
	DateTo    *time.Time
	BookingID string
	SortBy    string
	Params    gDto.QueryParams
}

// FromRequest parses and validates the listing query parameters.
func (q *ListPaymentsQuery) FromRequest(r *http.Request) error {
	if err := q.Params.FromRequest(r); err != nil {
		return err // nolint:wrapcheck
	}

	values := r.URL.Query()

	q.Status = values.Get(constant.RequestParamStatus)
	q.Method = values.Get(constant.RequestParamMethod)
	q.BookingID = values.Get(constant.RequestParamBookingID)
	q.SortBy = values.Get(constant.RequestParamSortBy)

	if raw := values.Get(constant.RequestParamMinAmount); raw != "" {
		value, ok := shared.ConvertStringToFloat(raw)
		if !ok || value < 0 {
			return failure.UnprocessableEntity("min_amount must be a non-negative number") // nolint:wrapcheck
		}

		q.MinAmount = &value
	}

	if raw := values.Get(constant.RequestParamMaxAmount); raw != "" {
		value, ok := shared.ConvertStringToFloat(raw)
		if !ok || value < 0 {
			return failure.UnprocessableEntity("max_amount must be a non-negative number") // nolint:wrapcheck
		}

		q.MaxAmount = &value
	}

	var err error
	if q.DateFrom, err = parseDateParam(values.Get(constant.RequestParamDateFrom), constant.RequestParamDateFrom); err != nil {
		return err
	}

	if q.DateTo, err = parseDateParam(values.Get(constant.RequestParamDateTo), constant.RequestParamDateTo); err != nil {
		return err
	}

	if q.MinAmount != nil && q.MaxAmount != nil && *q.MinAmount > *q.MaxAmount {
		return failure.BadRequestFromString("min_amount cannot be greater than max_amount") // nolint:wrapcheck
	}

	if q.DateFrom != nil && q.DateTo != nil && q.DateFrom.After(*q.DateTo) {
		return failure.BadRequestFromString("date_from cannot be later than date_to") // nolint:wrapcheck
	}

	return nil
}

// FiltersApplied reports the non-empty filters for response metadata.
func (q *ListPaymentsQuery) FiltersApplied() map[string]any {
	filters := map[string]any{}

	if q.Status != "" {
		filters[constant.RequestParamStatus] = q.Status
	}

	if q.Method != "" {
		filters[constant.RequestParamMethod] = q.Method
	}

	if q.MinAmount != nil {
		filters[constant.RequestParamMinAmount] = *q.MinAmount
	}

	if q.MaxAmount != nil {
		filters[constant.RequestParamMaxAmount] = *q.MaxAmount
	}

	if q.DateFrom != nil {
		filters[constant.RequestParamDateFrom] = q.DateFrom.Format(constant.DateOnlyFormat)
	}

	if q.DateTo != nil {
		filters[constant.RequestParamDateTo] = q.DateTo.Format(constant.DateOnlyFormat)
	}

	if q.BookingID != "" {
		filters[constant.RequestParamBookingID] = q.BookingID
	}

	return filters
}

func parseDateParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse(constant.DateOnlyFormat, raw)
	if err != nil {
		return nil, failure.UnprocessableEntity(name + " must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	return &value, nil
}

// ListMetadata is the pagination block of the payment listing, extended with
// the echo of applied filters.
type ListMetadata struct {
	query.Page
	FiltersApplied map[string]any `json:"filters_applied"`
}

type PaginatedPaymentResponse struct {
	Items    []model.Payment `json:"items"`
	Metadata ListMetadata    `json:"metadata"`
}

// MethodSummary aggregates payments sharing a method.
type MethodSummary struct {
	Method            string  `json:"method"`
	Count             int     `json:"count"`
	TotalAmount       float64 `json:"total_amount"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

// StatusSummary aggregates payments sharing a status.
type StatusSummary struct {
	Status            string  `json:"status"`
	Count             int     `json:"count"`
	TotalAmount       float64 `json:"total_amount"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

// PaymentSummary is the dashboard aggregation of the payment collection.
type PaymentSummary struct {
	TotalPayments int     `json:"total_payments"`
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
	MinAmount     float64 `json:"min_amount"`
	MaxAmount     float64 `json:"max_amount"`

	ConfirmedPayments int     `json:"confirmed_payments"`
	ConfirmedAmount   float64 `json:"confirmed_amount"`
	CompletedPayments int     `json:"completed_payments"`
	CompletedAmount   float64 `json:"completed_amount"`
	PendingPayments   int     `json:"pending_payments"`
	PendingAmount     float64 `json:"pending_amount"`
	FailedPayments    int     `json:"failed_payments"`
	FailedAmount      float64 `json:"failed_amount"`

	ByMethod []MethodSummary `json:"by_method"`
	ByStatus []StatusSummary `json:"by_status"`

	EarliestPaymentDate *string `json:"earliest_payment_date"`
	LatestPaymentDate   *string `json:"latest_payment_date"`
	DateRangeStart      *string `json:"date_range_start"`
	DateRangeEnd        *string `json:"date_range_end"`
}
