package validator

import (
	"encoding/json"
	"io"

	val "github.com/go-playground/validator/v10"

	"github.com/riku-k061/travel-backend/shared/failure"
)

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
}

// Validate decodes a JSON request body into target and runs struct
// validation. Both decode and rule failures surface as 422 so callers can
// pass the error straight to the response writer.
func Validate(body io.Reader, target any) error {
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return failure.UnprocessableEntity("invalid request body: " + err.Error())
	}

	return Struct(target)
}

// Struct runs validation rules against an already-populated value.
func Struct(target any) error {
	if err := validate.Struct(target); err != nil {
		return failure.UnprocessableEntity(message(err))
	}

	return nil
}

// Var validates a single value against a tag expression, e.g. an enum query
// parameter against "oneof=...".
func Var(field any, tag string) error {
	return validate.Var(field, tag)
}
