package leave

import (
	"context"

	"go-coverage/internal/employee"
	"go-coverage/internal/i18n"
)

func assignmentMessage(ctx context.Context, l *LeaveRequest) string {
	return i18n.T(ctx, "notify.assignment", map[string]any{
		"RequesterName": l.EmployeeName,
		"WorkDetails":   l.WorkDetails,
	})
}

func approvalMessage(ctx context.Context, l *LeaveRequest, cover employee.Employee) string {
	return i18n.T(ctx, "notify.approval", map[string]any{
		"RequesterName": l.EmployeeName,
		"LeaveStart":    l.LeaveStart.Format(DateLayout),
		"LeaveEnd":      l.LeaveEnd.Format(DateLayout),
		"CoverName":     cover.Name,
		"CoverPosition": cover.Position,
		"CoverPhone":    cover.Phone,
	})
}

func completionMessage(ctx context.Context, l *LeaveRequest) string {
	coverName := ""
	if l.AssignedToName != nil {
		coverName = *l.AssignedToName
	}
	return i18n.T(ctx, "notify.completion", map[string]any{
		"RequesterName": l.EmployeeName,
		"CoverName":     coverName,
		"TaskList":      bulleted(l.Tasks),
	})
}

func submitMessage(ctx context.Context, l *LeaveRequest, covered, fullyNotified bool) string {
	if !covered {
		return i18n.T(ctx, "leave.uncovered")
	}

	status := i18n.T(ctx, "leave.notify_partial")
	if fullyNotified {
		status = i18n.T(ctx, "leave.notify_all_sent")
	}
	coverName := ""
	if l.AssignedToName != nil {
		coverName = *l.AssignedToName
	}
	return i18n.T(ctx, "leave.covered", map[string]any{
		"CoverName":    coverName,
		"LeaveStart":   l.LeaveStart.Format(DateLayout),
		"LeaveEnd":     l.LeaveEnd.Format(DateLayout),
		"NotifyStatus": status,
	})
}
