package dto

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/riku-k061/travel-backend/internal/domains/staff/model"
	"github.com/riku-k061/travel-backend/shared"
	"github.com/riku-k061/travel-backend/shared/constant"
	gDto "github.com/riku-k061/travel-backend/shared/dto"
)

type CreateStaffRequest struct {
	Name           string   `json:"name"            validate:"required"`
	Role           string   `json:"role"            validate:"required"`
	ContactEmail   string   `json:"contact_email"   validate:"required,email"`
	Available      *bool    `json:"available"       validate:"omitempty"`
	DestinationIDs []string `json:"destination_ids" validate:"omitempty"`
}

// ToModel assigns the generated id; availability defaults to true.
func (c *CreateStaffRequest) ToModel() model.Staff {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Staff{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Role:           c.Role,
		ContactEmail:   c.ContactEmail,
		Available:      available,
		DestinationIDs: c.DestinationIDs,
	}
}

// UpdateStaffRequest is a partial update; nil fields keep their stored value.
// A nil DestinationIDs keeps the current assignments, an empty list clears
// them.
type UpdateStaffRequest struct {
	Name           *string   `json:"name"            validate:"omitempty"`
	Role           *string   `json:"role"            validate:"omitempty"`
	ContactEmail   *string   `json:"contact_email"   validate:"omitempty,email"`
	Available      *bool     `json:"available"       validate:"omitempty"`
	DestinationIDs *[]string `json:"destination_ids" validate:"omitempty"`
}

// ListStaffQuery filters the staff listing; the role filter is a
// case-insensitive substring match.
type ListStaffQuery struct {
	Role      string
	Available *bool
	Params    gDto.QueryParams
}

func (q *ListStaffQuery) FromRequest(r *http.Request) error {
	values := r.URL.Query()

	q.Role = values.Get(constant.RequestParamRole)
	q.Available = shared.ConvertStringToBool(values.Get(constant.RequestParamAvailable))

	return q.Params.FromRequest(r) // nolint:wrapcheck
}

type PaginatedStaffResponse struct {
	Items      []model.Staff `json:"items"`
	TotalCount int           `json:"total_count"`
}

// RoleSummary counts one role's staff by availability.
type RoleSummary struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
}

type StaffSummary struct {
	TotalStaff int                    `json:"total_staff"`
	ByRole     map[string]RoleSummary `json:"by_role"`
}
