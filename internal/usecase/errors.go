package usecase

import (
	"errors"

	"young-ats/internal/domain"
	"young-ats/pkg/apperror"
	"young-ats/pkg/validation"
)

const msgStale = "Record was modified by someone else. Reload and try again."

// repoError translates repository sentinels into AppErrors. Anything else is
// an internal failure.
func repoError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrConflict):
		return apperror.Conflict(msgStale, err)
	default:
		return apperror.Internal(err)
	}
}

func validationError(err error) error {
	return apperror.BadRequest(validation.Message(err))
}
