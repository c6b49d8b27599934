package dto

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
)

type QueryParams struct {
	Limit     int    `json:"limit"      validate:"omitempty,gte=1,lte=100"`
	Offset    int    `json:"offset"     validate:"omitempty,gte=0"`
	SortBy    string `json:"sort_by"    validate:"omitempty"`
	SortOrder string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// FromRequest populates QueryParams from the HTTP request query string.
// Limit defaults to 10 and is capped at 100; offset defaults to 0. Malformed
// or out-of-range values are rejected so an offset of "-1" never silently
// becomes zero.
func (q *QueryParams) FromRequest(r *http.Request) error {
	queryParams := r.URL.Query()

	q.Limit = constant.DefaultValueLimit
	q.Offset = constant.DefaultValueOffset

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt < 1 {
			return failure.InvalidLimitParam
		}

		if limitInt > constant.MaxValueLimit {
			limitInt = constant.MaxValueLimit
		}

		q.Limit = limitInt
	}

	if offset := queryParams.Get(constant.RequestParamOffset); offset != "" {
		offsetInt, err := strconv.Atoi(offset)
		if err != nil || offsetInt < 0 {
			return failure.InvalidOffsetParam
		}

		q.Offset = offsetInt
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortOrder := queryParams.Get(constant.RequestParamSortOrder); sortOrder != "" {
		sortOrder = strings.ToLower(sortOrder)
		if sortOrder != constant.SortOrderAsc && sortOrder != constant.SortOrderDesc {
			return failure.InvalidSortOrderParam
		}

		q.SortOrder = sortOrder
	}

	return nil
}

// Descending reports whether results should be ordered newest/largest first.
// Descending is the default when no explicit order was requested.
func (q *QueryParams) Descending() bool {
	return q.SortOrder != constant.SortOrderAsc
}
