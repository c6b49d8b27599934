package model

import "strings"

const (
	CollectionName = "staff"
	EntityName     = "staff"

	// GuideRoleMarker flags roles that require destination assignments;
	// matched as a case-insensitive substring of the free-text role.
	GuideRoleMarker = "guide"
)

type Staff struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	ContactEmail   string   `json:"contact_email"`
	Available      bool     `json:"available"`
	DestinationIDs []string `json:"destination_ids,omitempty"`
}

// IsGuide reports whether the role requires destination assignments.
func (s Staff) IsGuide() bool {
	return IsGuideRole(s.Role)
}

func IsGuideRole(role string) bool {
	return strings.Contains(strings.ToLower(role), GuideRoleMarker)
}

// AssignedTo reports whether the staff member is assigned to the given
// destination.
func (s Staff) AssignedTo(destinationID string) bool {
	for _, id := range s.DestinationIDs {
		if id == destinationID {
			return true
		}
	}

	return false
}
