package leaverequest

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveTypes is the closed set of accepted values. "Maternity" is the only
// capitalized member; the inherited data relies on this exact casing.
var LeaveTypes = []string{"vacational", "sick", "personal", "casual", "Maternity"}

// LeaveRequest is the persisted record. The schema re-states the employee ID
// pattern and the status domain as CHECK constraints so bad rows cannot enter
// the table even if the validator is bypassed.
type LeaveRequest struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"type:varchar(50);not null"`
	EmployeeID string    `gorm:"type:varchar(10);not null;index:idx_leave_requests_employee_dates;check:chk_leave_requests_employee_id,employee_id ~ '^ATS0[0-9]{3}$'"`
	LeaveType  string    `gorm:"type:varchar(50);not null"`
	StartDate  time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate    time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Comments   string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status;check:chk_leave_requests_status,status IN ('pending','approved','rejected')"`
	CreatedAt  time.Time `gorm:"not null;default:now()"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
