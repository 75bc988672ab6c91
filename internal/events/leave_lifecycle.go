package events

import "time"

const LeaveLifecycleTopic = "coverage.leave.lifecycle.v1"

const (
	LeaveAssigned   = "leave_assigned"
	LeaveUnassigned = "leave_unassigned"
	LeaveCompleted  = "leave_completed"
	LeaveRejected   = "leave_rejected"
)

type LeaveLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	LeaveRequestID string    `json:"leave_request_id"`
	EmployeeID     string    `json:"employee_id"`
	AssignedTo     string    `json:"assigned_to,omitempty"`
	CoverageTier   string    `json:"coverage_tier,omitempty"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
