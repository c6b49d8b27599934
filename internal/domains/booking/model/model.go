package model

import (
	"time"

	"github.com/riku-k061/travel-backend/shared/timezone"
)

const (
	CollectionName = "bookings"
	EntityName     = "booking"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Statuses is the validation tag for the booking status enumeration.
const Statuses = "oneof=pending confirmed cancelled completed"

// AllowedTransitions is the directed status graph enforced on PATCH status.
// Cancelled and completed are terminal.
var AllowedTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether the status graph permits moving from current
// to requested in one step.
func CanTransition(current, requested string) bool {
	for _, allowed := range AllowedTransitions[current] {
		if allowed == requested {
			return true
		}
	}

	return false
}

// Booking keeps its date fields as stored strings: records written by older
// revisions may hold values the current parser rejects, and those must
// degrade per field rather than fail the whole collection.
type Booking struct {
	BookingID   string `json:"booking_id"`
	CustomerID  string `json:"customer_id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// EffectiveStatus treats records persisted without a status as pending.
func (b Booking) EffectiveStatus() string {
	if b.Status == "" {
		return StatusPending
	}

	return b.Status
}

// CreatedAtTime parses the creation timestamp, reporting whether the stored
// value was usable.
func (b Booking) CreatedAtTime() (time.Time, bool) {
	t, err := timezone.ParseFlexible(b.CreatedAt)

	return t, err == nil
}

// DurationDays returns the trip length in whole days, reporting false when
// either date is unparsable.
func (b Booking) DurationDays() (int, bool) {
	start, err := timezone.ParseFlexible(b.StartDate)
	if err != nil {
		return 0, false
	}

	end, err := timezone.ParseFlexible(b.EndDate)
	if err != nil {
		return 0, false
	}

	return int(end.Sub(start).Hours() / 24), true
}
