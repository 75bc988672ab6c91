package leave

import (
	"slices"
	"time"
)

const (
	StatusPending    = "PENDING"
	StatusAssigned   = "ASSIGNED"
	StatusUnassigned = "UNASSIGNED"
	StatusCompleted  = "COMPLETED"
	StatusRejected   = "REJECTED"
)

// MinReasonLength is counted in characters, not bytes.
const MinReasonLength = 20

const DateLayout = "2006-01-02"

var transitions = map[string][]string{
	StatusPending:    {StatusAssigned, StatusUnassigned},
	StatusUnassigned: {StatusAssigned, StatusRejected},
	StatusAssigned:   {StatusCompleted},
}

// LeaveRequest is one row of the ledger. Rows are never deleted.
type LeaveRequest struct {
	RequestID string `gorm:"type:varchar(20);primaryKey"`

	EmployeeID   string `gorm:"type:varchar(20);not null;index:idx_leave_requests_employee"`
	EmployeeName string `gorm:"type:varchar(255);not null"`
	Position     string `gorm:"type:varchar(100);not null"`
	Department   string `gorm:"type:varchar(100);not null"`
	Phone        string `gorm:"type:varchar(30);not null"`
	Email        string `gorm:"type:varchar(255)"`

	LeaveStart time.Time `gorm:"type:date;not null"`
	LeaveEnd   time.Time `gorm:"type:date;not null"`
	Reason     string    `gorm:"type:text;not null"`

	Status          string  `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	AssignedTo      *string `gorm:"type:varchar(20);index:idx_leave_requests_assignee"`
	AssignedToName  *string `gorm:"type:varchar(255)"`
	AssignedToPhone *string `gorm:"type:varchar(30)"`
	CoverageTier    string  `gorm:"type:varchar(20)"`

	WorkDetails    string   `gorm:"type:text"`
	Tasks          []string `gorm:"type:jsonb;serializer:json"`
	CompletedTasks []string `gorm:"type:jsonb;serializer:json"`

	SubmissionDate  time.Time `gorm:"not null"`
	CompletedAt     *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

func (l *LeaveRequest) Progress() Progress {
	p := Progress{Completed: len(l.CompletedTasks), Total: len(l.Tasks)}
	if p.Total > 0 {
		p.Fraction = float64(p.Completed) / float64(p.Total)
	}
	return p
}

// AllTasksDone is false for a request without tasks.
func (l *LeaveRequest) AllTasksDone() bool {
	return len(l.Tasks) > 0 && len(l.CompletedTasks) == len(l.Tasks)
}

func (l *LeaveRequest) HasTask(task string) bool {
	return slices.Contains(l.Tasks, task)
}

// SetTask marks task done or not done. CompletedTasks keeps the order of
// Tasks. It reports false when task is not part of the checklist.
func (l *LeaveRequest) SetTask(task string, done bool) bool {
	if !l.HasTask(task) {
		return false
	}

	marked := make(map[string]bool, len(l.CompletedTasks)+1)
	for _, t := range l.CompletedTasks {
		marked[t] = true
	}
	marked[task] = done

	completed := make([]string, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		if marked[t] {
			completed = append(completed, t)
		}
	}
	l.CompletedTasks = completed
	return true
}

func (l *LeaveRequest) IsAssignedTo(employeeID string) bool {
	return l.AssignedTo != nil && *l.AssignedTo == employeeID
}

func canTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}
