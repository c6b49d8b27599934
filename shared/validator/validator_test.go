package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/shared/validator"
)

type createRequest struct {
	Name   string `json:"name"   validate:"required,max=100"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Status string `json:"status" validate:"omitempty,oneof=open pending resolved"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid body",
			body: `{"name": "Alice", "email": "alice@example.com", "status": "open"}`,
		},
		{
			name:    "malformed json",
			body:    `{"name": `,
			wantErr: "invalid request body",
		},
		{
			name:    "missing required field",
			body:    `{"email": "alice@example.com"}`,
			wantErr: "Name is required",
		},
		{
			name:    "bad enum value",
			body:    `{"name": "Alice", "status": "closed"}`,
			wantErr: "Status must be one of open pending resolved",
		},
		{
			name:    "bad email",
			body:    `{"name": "Alice", "email": "not-an-email"}`,
			wantErr: "Email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		})
	}
}

func TestVar(t *testing.T) {
	assert.NoError(t, validator.Var("pending", "oneof=pending confirmed cancelled completed"))
	assert.Error(t, validator.Var("bogus", "oneof=pending confirmed cancelled completed"))
}
