package leaverequest

import (
	"errors"

	leaverequesterrors "leave-desk/internal/leaverequest/errors"
	"leave-desk/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaverequesterrors.ErrLeaveRequestNotFound
	}

	// The schema re-states the validator's rules as CHECK constraints. A
	// violation here means a row slipped past the validator; the caller
	// still only sees the generic storage failure.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23514", "23505":
			return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus)
		}
	}

	return err
}
