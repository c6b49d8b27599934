package dto

import (
	"net/http"

	"github.com/riku-k061/travel-backend/internal/domains/vehicle/model"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	gDto "github.com/riku-k061/travel-backend/shared/dto"
)

type CreateVehicleRequest struct {
	Type           string   `json:"type"            validate:"required"`
	Capacity       int      `json:"capacity"        validate:"required,gt=0"`
	Available      *bool    `json:"available"       validate:"omitempty"`
	DestinationIDs []string `json:"destination_ids" validate:"omitempty"`
}

// ToModel assigns the generated short id; availability defaults to true and
// destination_ids to an empty list.
func (c *CreateVehicleRequest) ToModel() model.Vehicle {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	destinationIDs := c.DestinationIDs
	if destinationIDs == nil {
		destinationIDs = []string{}
	}

	return model.Vehicle{
		ID:             model.NewID(),
		Type:           c.Type,
		Capacity:       c.Capacity,
		Available:      available,
		DestinationIDs: destinationIDs,
	}
}

// UpdateVehicleRequest is a partial update; nil fields keep their stored
// value.
type UpdateVehicleRequest struct {
	Type           *string   `json:"type"            validate:"omitempty"`
	Capacity       *int      `json:"capacity"        validate:"omitempty,gt=0"`
	Available      *bool     `json:"available"       validate:"omitempty"`
	DestinationIDs *[]string `json:"destination_ids" validate:"omitempty"`
}

// ListVehiclesQuery filters the vehicle listing.
type ListVehiclesQuery struct {
	Available     *bool
	Type          string
	DestinationID string
	Params        gDto.QueryParams
}

func (q *ListVehiclesQuery) FromRequest(r *http.Request) error {
	values := r.URL.Query()

	q.Available = shared.ConvertStringToBool(values.Get(constant.RequestParamAvailable))
	q.Type = values.Get(constant.RequestParamType)
	q.DestinationID = values.Get(constant.RequestParamDestinationID)

	return q.Params.FromRequest(r) // nolint:wrapcheck
}

type PaginatedVehicleResponse struct {
	Items      []model.Vehicle `json:"items"`
	TotalCount int             `json:"total_count"`
}

// AvailabilityResult is the response of the soft-delete and reactivate
// endpoints; both no-op with a notice when the vehicle is already in the
// requested state.
type AvailabilityResult struct {
	Message string `json:"message"`
	Note    string `json:"note"`
}
