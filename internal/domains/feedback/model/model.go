package model

import (
	"time"

	"github.com/riku-k061/travel-backend/shared/timezone"
)

const CollectionName = "feedback"

const (
	TypeComplaint  = "complaint"
	TypeSuggestion = "suggestion"

	StatusOpen     = "open"
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// Types and Statuses are the validation tags for the feedback enumerations.
const (
	Types    = "oneof=complaint suggestion"
	Statuses = "oneof=open pending resolved"
)

// AdminNote is one entry of the append-only note thread on a feedback.
type AdminNote struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
}

type Feedback struct {
	ID                string      `json:"id"`
	CustomerID        string      `json:"customer_id"`
	Type              string      `json:"type"`
	Message           string      `json:"message"`
	RelatedBookingID  string      `json:"related_booking_id,omitempty"`
	Status            string      `json:"status"`
	Timestamp         string      `json:"timestamp"`
	AdminNotes        []AdminNote `json:"admin_notes"`
	Deleted           bool        `json:"deleted"`
	DeletionTimestamp string      `json:"deletion_timestamp,omitempty"`
}

func (f Feedback) CreatedTime() (time.Time, bool) {
	t, err := timezone.ParseFlexible(f.Timestamp)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// DeletionTime parses the soft-delete stamp; records deleted before the
// stamp existed report false.
func (f Feedback) DeletionTime() (time.Time, bool) {
	if f.DeletionTimestamp == "" {
		return time.Time{}, false
	}

	t, err := timezone.ParseFlexible(f.DeletionTimestamp)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
