package model

import "github.com/google/uuid"

const (
	CollectionName = "vehicles"
	EntityName     = "vehicle"

	idPrefix    = "veh-"
	idShortLen = 8
)

type Vehicle struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Capacity       int      `json:"capacity"`
	Available      bool     `json:"available"`
	DestinationIDs []string `json:"destination_ids"`
}

// NewID generates a short prefixed vehicle id, e.g. "veh-3f2a1b9c".
func NewID() string {
	return idPrefix + uuid.NewString()[:idShortLen]
}

// Serves reports whether the vehicle is assigned to the given destination.
func (v Vehicle) Serves(destinationID string) bool {
	for _, id := range v.DestinationIDs {
		if id == destinationID {
			return true
		}
	}

	return false
}
