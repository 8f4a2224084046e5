package events

import "time"

const LeaveRequestLifecycleTopic = "hr.leave-request.lifecycle.v1"

const (
	EventLeaveRequestSubmitted = "leave_request.submitted"
	EventLeaveRequestApproved  = "leave_request.approved"
	EventLeaveRequestRejected  = "leave_request.rejected"
	EventLeaveRequestDeleted   = "leave_request.deleted"
)

type LeaveRequestLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID uint      `json:"leave_request_id,omitempty"`
	EmployeeID     string    `json:"employee_id,omitempty"`
	Status         string    `json:"status,omitempty"`
	DeletedIDs     []uint    `json:"deleted_ids,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
