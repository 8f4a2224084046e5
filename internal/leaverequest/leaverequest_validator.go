package leaverequest

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	leaverequesterrors "leave-desk/internal/leaverequest/errors"
)

var (
	nameRe       = regexp.MustCompile(`^[A-Za-z\s]+$`)
	employeeIDRe = regexp.MustCompile(`^ATS0[0-9]{3}$`)
)

// ValidatedSubmission holds the values a submission needs beyond the raw
// request: the parsed calendar dates.
type ValidatedSubmission struct {
	StartDate time.Time
	EndDate   time.Time
}

// ValidateSubmission applies the field rules in a fixed order and returns the
// first violation. Name and comments are trimmed for the length checks only;
// the stored values keep whatever whitespace the caller supplied.
func ValidateSubmission(req SubmitLeaveRequest) (ValidatedSubmission, error) {
	if utf8.RuneCountInString(strings.TrimSpace(req.Name)) < 5 || !nameRe.MatchString(req.Name) {
		return ValidatedSubmission{}, leaverequesterrors.ErrInvalidName
	}

	if !employeeIDRe.MatchString(req.EmployeeID) {
		return ValidatedSubmission{}, leaverequesterrors.ErrInvalidEmployeeID
	}

	if !slices.Contains(LeaveTypes, req.LeaveType) {
		return ValidatedSubmission{}, leaverequesterrors.ErrInvalidLeaveType
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ValidatedSubmission{}, leaverequesterrors.ErrInvalidDateRange
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return ValidatedSubmission{}, leaverequesterrors.ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return ValidatedSubmission{}, leaverequesterrors.ErrInvalidDateRange
	}

	comments := utf8.RuneCountInString(strings.TrimSpace(req.Comments))
	if comments < 10 || comments > 300 {
		return ValidatedSubmission{}, leaverequesterrors.ErrInvalidComments
	}

	return ValidatedSubmission{StartDate: startDate, EndDate: endDate}, nil
}
