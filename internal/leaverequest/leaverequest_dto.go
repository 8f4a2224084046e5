package leaverequest

import "time"

// SubmitLeaveRequest carries the raw submission. No binding tags on purpose:
// the field rules are applied in order by ValidateSubmission so the caller
// always sees the first violated rule, not an aggregate binding error.
type SubmitLeaveRequest struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Comments   string `json:"comments"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

type ListFilter struct {
	Status     string
	EmployeeID string
}

type LeaveRequestResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Comments   string `json:"comments"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         l.ID,
		Name:       l.Name,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Comments:   l.Comments,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
