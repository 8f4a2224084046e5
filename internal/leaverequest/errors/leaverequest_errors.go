package leaverequesterrors

import (
	"net/http"

	"leave-desk/internal/shared/apperror"
)

// Message strings are part of the wire contract consumed by the existing
// frontend; do not reword them.
var (
	ErrInvalidName = apperror.New(
		apperror.CodeInvalidInput,
		"Name must be at least 5 alphabetical characters",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID format (ATS0XXX)",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range",
		http.StatusBadRequest,
	)
	ErrInvalidComments = apperror.New(
		apperror.CodeInvalidInput,
		"Comments must be 10-300 characters",
		http.StatusBadRequest,
	)
	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"Duplicate leave request exists for these dates",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidState,
		"Invalid status",
		http.StatusBadRequest,
	)
	ErrEmptySelection = apperror.New(
		apperror.CodeInvalidInput,
		"No records selected for deletion",
		http.StatusBadRequest,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
)
