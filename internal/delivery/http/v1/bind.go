package v1

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"young-ats/pkg/apperror"
)

// bindError keeps validator errors for field-level messages and turns
// anything else (malformed JSON, wrong types) into a 400.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return err
	}
	return apperror.BadRequest("Invalid request body")
}
