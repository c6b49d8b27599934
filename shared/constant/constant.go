package constant

import (
	"time"
)

const (
	RequestParamLimit     = "limit"
	RequestParamOffset    = "offset"
	RequestParamSortBy    = "sort_by"
	RequestParamSortOrder = "sort_order"
)

const (
	RequestParamID             = "id"
	RequestParamStatus         = "status"
	RequestParamType           = "type"
	RequestParamMethod         = "method"
	RequestParamRole           = "role"
	RequestParamAvailable      = "available"
	RequestParamCustomerID     = "customer_id"
	RequestParamBookingID      = "booking_id"
	RequestParamDestinationID  = "destination_id"
	RequestParamMinAmount      = "min_amount"
	RequestParamMaxAmount      = "max_amount"
	RequestParamDateFrom       = "date_from"
	RequestParamDateTo         = "date_to"
	RequestParamStartDate      = "start_date"
	RequestParamEndDate        = "end_date"
	RequestParamCreatedAfter   = "created_after"
	RequestParamCreatedBefore  = "created_before"
	RequestParamDeletedBefore  = "deleted_before"
	RequestParamIncludeDeleted = "include_deleted"
	RequestParamIncludeTrends  = "include_trends"
	RequestParamFields         = "fields"
	RequestParamNewStatus      = "new_status"
	RequestParamSort           = "sort"
	RequestParamSortByDate     = "sort_by_date"
)

const (
	DefaultValueLimit  = 10
	MaxValueLimit      = 100
	DefaultValueOffset = 0
)

const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = "2006-01-02"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelStoreScopeName      = "store"
)

const (
	RequestHeaderUserAgent   = "User-Agent"
	RequestHeaderContentType = "Content-Type"
	RequestHeaderAPIKey      = "api_key"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy       = "SERVER UNHEALTHY"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
