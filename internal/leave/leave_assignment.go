package leave

import (
	"context"
	"fmt"
	"strings"

	"go-coverage/internal/i18n"
)

const defaultPriority = "Medium"

// defaultTasks is the checklist handed to every cover employee. It does not
// depend on the requester's position.
var defaultTasks = []string{
	"Review all pending pull requests (5 minimum)",
	"Attend daily team standup meetings",
	"Prepare weekly client status report",
	"Verify production deployment checklist",
	"Conduct code review session with juniors",
	"Update project documentation",
	"Monitor system performance metrics",
	"Resolve critical priority bugs",
	"Prepare client demo materials",
	"Complete handover documentation",
}

// DefaultTasks returns a fresh copy of the checklist.
func DefaultTasks() []string {
	return append([]string(nil), defaultTasks...)
}

func numbered(tasks []string) string {
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, t)
	}
	return b.String()
}

func bulleted(tasks []string) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, "• "+t)
	}
	return strings.Join(lines, "\n")
}

func buildWorkDetails(ctx context.Context, l *LeaveRequest, tasks []string) string {
	return i18n.T(ctx, "work.brief", map[string]any{
		"RequesterName": l.EmployeeName,
		"LeaveStart":    l.LeaveStart.Format(DateLayout),
		"LeaveEnd":      l.LeaveEnd.Format(DateLayout),
		"Reason":        l.Reason,
		"Priority":      defaultPriority,
		"Deliverables":  numbered(tasks),
	})
}
