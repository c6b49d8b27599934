package model

import (
	"time"

	"github.com/riku-k061/travel-backend/shared/timezone"
)

const CollectionName = "schedules"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

// ValidStatuses is the fixed status enumeration; anything else in storage is
// reported as "unknown" by the status summary.
var ValidStatuses = []string{StatusActive, StatusInactive, StatusArchived}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if status == s {
			return true
		}
	}

	return false
}

type Schedule struct {
	ID            string `json:"id"`
	DestinationID string `json:"destination_id"`
	Date          string `json:"date"`
	Capacity      int    `json:"capacity"`
	Status        string `json:"status"`
}

// EffectiveStatus treats records persisted without a status as active.
func (s Schedule) EffectiveStatus() string {
	if s.Status == "" {
		return StatusActive
	}

	return s.Status
}

func (s Schedule) DateTime() (time.Time, bool) {
	t, err := timezone.ParseFlexible(s.Date)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
