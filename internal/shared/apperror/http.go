package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport-level view of an error, ready to be written
// by a handler.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// ToHTTP maps any error to an HTTPError. Known *AppError values keep their
// status and message; everything else collapses to a generic 500 so that
// internal detail never leaks to the client.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
