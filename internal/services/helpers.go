package services

import (
	stderrors "errors"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/repository"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// lookupError maps a repository lookup failure to an AppError.
func lookupError(err error, resource, id string) *errors.AppError {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NewNotFoundError(resource, id)
	}
	return errors.NewInternalError(err)
}
