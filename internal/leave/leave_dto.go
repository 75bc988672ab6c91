package leave

type CreateLeaveRequest struct {
	LeaveStart string `json:"leave_start" binding:"required"`
	LeaveEnd   string `json:"leave_end" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

type SetTaskRequest struct {
	Task string `json:"task" binding:"required"`
	Done *bool  `json:"done" binding:"required"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	RequestID       string   `json:"request_id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name"`
	Position        string   `json:"position"`
	Department      string   `json:"department"`
	LeaveStart      string   `json:"leave_start"`
	LeaveEnd        string   `json:"leave_end"`
	Reason          string   `json:"reason"`
	Status          string   `json:"status"`
	AssignedTo      *string  `json:"assigned_to,omitempty"`
	AssignedToName  *string  `json:"assigned_to_name,omitempty"`
	AssignedToPhone *string  `json:"assigned_to_phone,omitempty"`
	CoverageTier    string   `json:"coverage_tier,omitempty"`
	WorkDetails     string   `json:"work_details,omitempty"`
	Tasks           []string `json:"tasks"`
	CompletedTasks  []string `json:"completed_tasks"`
	Progress        Progress `json:"progress"`
	SubmissionDate  string   `json:"submission_date"`
	CompletedAt     *string  `json:"completed_at,omitempty"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
}

type NotificationStatus struct {
	Assignee  bool `json:"assignee"`
	Requester bool `json:"requester"`
}

// SubmitResult tells the caller whether cover was found and which of the
// two notifications went out.
type SubmitResult struct {
	Leave         LeaveResponse      `json:"leave"`
	Covered       bool               `json:"covered"`
	Notifications NotificationStatus `json:"notifications"`
	FullyNotified bool               `json:"fully_notified"`
	Message       string             `json:"message"`
}

type CompleteResult struct {
	Leave             LeaveResponse `json:"leave"`
	RequesterNotified bool          `json:"requester_notified"`
}
