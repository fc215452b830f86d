package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/skillsenselab/authservice/internal/apperrors"
)

// FromDatabase converts a database error to an AppError. Anything not
// recognized becomes an internal error with the cause attached for
// logging but hidden from clients.
func FromDatabase(err error, resource string) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource, "")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.AlreadyExists(resource).WithCause(err)
	}
	return apperrors.Internal(err)
}
