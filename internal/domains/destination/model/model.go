package model

const (
	CollectionName = "destinations"
	EntityName     = "destination"
)

type Destination struct {
	DestinationID string `json:"destination_id"`
	Name          string `json:"name"`
	Country       string `json:"country"`
	Description   string `json:"description,omitempty"`
}
