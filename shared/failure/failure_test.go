package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/riku-k061/travel-backend/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "InvalidOffsetParam",
			failure: failure.InvalidOffsetParam,
			code:    http.StatusBadRequest,
			message: "invalid offset parameter",
		},
		{
			name:    "InvalidSortOrderParam",
			failure: failure.InvalidSortOrderParam,
			code:    http.StatusBadRequest,
			message: "sort_order must be 'asc' or 'desc'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "BadRequest", err: failure.BadRequest(errors.New("bad input")), code: http.StatusBadRequest},
		{name: "BadRequestFromString", err: failure.BadRequestFromString("bad input"), code: http.StatusBadRequest},
		{name: "BadRequestf", err: failure.BadRequestf("bad %s", "input"), code: http.StatusBadRequest},
		{name: "UnprocessableEntity", err: failure.UnprocessableEntity("invalid enum"), code: http.StatusUnprocessableEntity},
		{name: "Unauthorized", err: failure.Unauthorized("no key"), code: http.StatusUnauthorized},
		{name: "NotFound", err: failure.NotFound("booking not found"), code: http.StatusNotFound},
		{name: "NotFoundf", err: failure.NotFoundf("booking %s not found", "b-1"), code: http.StatusNotFound},
		{name: "Conflict", err: failure.Conflict("duplicate"), code: http.StatusConflict},
		{name: "InternalError", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, got)
			}
		})
	}
}

func TestGetCode_NonFailure(t *testing.T) {
	if got := failure.GetCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected code to be %d, got %d", http.StatusInternalServerError, got)
	}
}

func TestIsClientError(t *testing.T) {
	if !failure.IsClientError(failure.BadRequestFromString("nope")) {
		t.Error("expected BadRequest to be a client error")
	}

	if failure.IsClientError(failure.InternalError(errors.New("boom"))) {
		t.Error("expected InternalError to not be a client error")
	}
}
