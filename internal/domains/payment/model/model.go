package model

import (
	"time"

	"github.com/riku-k061/travel-backend/shared/timezone"
)

const CollectionName = "payments"

const (
	MethodCreditCard   = "credit_card"
	MethodPaypal       = "paypal"
	MethodBankTransfer = "bank_transfer"
	MethodCrypto       = "cryptocurrency"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
	StatusCanceled  = "canceled"
)

// Methods and Statuses are the validation tags for the payment enumerations.
const (
	Methods  = "oneof=credit_card paypal bank_transfer cryptocurrency"
	Statuses = "oneof=pending confirmed completed failed refunded canceled"
)

// TerminalStatuses are the statuses a payment cannot be confirmed out of.
var TerminalStatuses = []string{StatusCompleted, StatusRefunded, StatusCanceled}

func IsTerminal(status string) bool {
	for _, s := range TerminalStatuses {
		if status == s {
			return true
		}
	}

	return false
}

type Payment struct {
	ID              string  `json:"id"`
	BookingID       string  `json:"booking_id"`
	Method          string  `json:"method"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	TransactionDate string  `json:"transaction_date"`
}

// TransactionTime parses the stored timestamp, reporting whether the value
// was present and well formed.
func (p Payment) TransactionTime() (time.Time, bool) {
	if p.TransactionDate == "" {
		return time.Time{}, false
	}

	t, err := timezone.ParseFlexible(p.TransactionDate)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
