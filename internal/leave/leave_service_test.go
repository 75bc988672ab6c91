package leave_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-coverage/internal/employee"
	employeeerrors "go-coverage/internal/employee/errors"
	"go-coverage/internal/events"
	"go-coverage/internal/leave"
	leaveerrors "go-coverage/internal/leave/errors"
	notifiermock "go-coverage/internal/notifier/mock"
	"go-coverage/internal/shared/counter"
	countermock "go-coverage/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type leaveServiceDeps struct {
	sqlMock   sqlmock.Sqlmock
	directory *memDirectory
	ledger    *memLedger
	outbox    *memOutbox
	counter   *countermock.MockRepository
	gateway   *notifiermock.MockGateway
	service   leave.Service
}

func setupLeaveServiceTest(t *testing.T, opts leave.Options, staff ...employee.Employee) *leaveServiceDeps {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	counterRepo := countermock.NewMockRepository(ctrl)
	counterRepo.EXPECT().WithTx(gomock.Any()).Return(counterRepo).AnyTimes()
	gateway := notifiermock.NewMockGateway(ctrl)

	deps := &leaveServiceDeps{
		sqlMock:   sqlMock,
		directory: newMemDirectory(staff...),
		ledger:    newMemLedger(),
		outbox:    &memOutbox{},
		counter:   counterRepo,
		gateway:   gateway,
	}
	deps.service = leave.NewServiceWithOutbox(db, deps.ledger, deps.directory, counterRepo, deps.outbox, gateway, opts)
	return deps
}

func (d *leaveServiceDeps) expectTx(commit bool) {
	d.sqlMock.ExpectBegin()
	if commit {
		d.sqlMock.ExpectCommit()
	} else {
		d.sqlMock.ExpectRollback()
	}
}

func (d *leaveServiceDeps) expectSequence(seq int64) {
	d.counter.EXPECT().GetNextValue(gomock.Any(), counter.TypeLeaveRequest).Return(seq, nil)
}

func staffMember(id, position, department string, workload int) employee.Employee {
	return employee.Employee{
		EmployeeID:      id,
		Name:            "Name " + id,
		Position:        position,
		Department:      department,
		Phone:           "+6281234560" + strings.TrimPrefix(id, "E") + "0",
		Role:            employee.RoleEmployee,
		CurrentWorkload: workload,
	}
}

func validLeave() leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		LeaveStart: "2026-11-02",
		LeaveEnd:   "2026-11-06",
		Reason:     "Family event out of town for the week",
	}
}

func engineeringTeam() []employee.Employee {
	return []employee.Employee{
		staffMember("E1", "Senior Developer", "Engineering", 3),
		staffMember("E2", "Junior Developer", "Engineering", 1),
		staffMember("E8", "Senior Developer", "Engineering", 2),
	}
}

func TestLeaveService_Submit_AssignsExactPositionMatch(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
	deps.expectTx(true)
	deps.expectSequence(1)

	e8 := deps.directory.employees["E8"]
	e1 := deps.directory.employees["E1"]
	deps.gateway.EXPECT().Send(gomock.Any(), e8.Phone, gomock.Any()).Return(true)
	deps.gateway.EXPECT().Send(gomock.Any(), e1.Phone, gomock.Any()).Return(true)

	res, err := deps.service.Submit(ctx, "E1", validLeave())

	require.NoError(t, err)
	assert.True(t, res.Covered)
	assert.True(t, res.FullyNotified)
	assert.Equal(t, leave.NotificationStatus{Assignee: true, Requester: true}, res.Notifications)
	assert.Equal(t, "REQ000001", res.Leave.RequestID)
	assert.Equal(t, leave.StatusAssigned, res.Leave.Status)
	assert.Equal(t, "E8", *res.Leave.AssignedTo)
	assert.Equal(t, "EXACT", res.Leave.CoverageTier)
	assert.Len(t, res.Leave.Tasks, 10)
	assert.Empty(t, res.Leave.CompletedTasks)
	assert.Contains(t, res.Leave.WorkDetails, "1. Review all pending pull requests (5 minimum)")
	assert.Contains(t, res.Message, "all sent")

	assert.Equal(t, 3, deps.directory.workload("E8"))
	assert.Equal(t, 1, deps.directory.workload("E2"))
	assert.Equal(t, 3, deps.directory.workload("E1"))
	assert.Equal(t, []string{"E8"}, deps.directory.adjustCalls)

	stored := deps.ledger.get("REQ000001")
	assert.Equal(t, leave.StatusAssigned, stored.Status)
	assert.Equal(t, "E1", stored.EmployeeID)
	assert.Equal(t, []string{events.LeaveAssigned}, deps.outbox.eventTypes())
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Submit_FallsBackToDepartment(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{},
		staffMember("E1", "Project Manager", "Management", 2),
		staffMember("E3", "QA Engineer", "Quality", 0),
		staffMember("E5", "Scrum Master", "Management", 4),
	)
	deps.expectTx(true)
	deps.expectSequence(7)
	deps.gateway.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(2)

	res, err := deps.service.Submit(ctx, "E1", validLeave())

	require.NoError(t, err)
	assert.Equal(t, "REQ000007", res.Leave.RequestID)
	assert.Equal(t, "E5", *res.Leave.AssignedTo)
	assert.Equal(t, "DEPARTMENT", res.Leave.CoverageTier)
	assert.Equal(t, employee.MaxConcurrentLoad, deps.directory.workload("E5"))
	assert.Equal(t, 0, deps.directory.workload("E3"))
}

func TestLeaveService_Submit_NobodyAvailable(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{},
		staffMember("E1", "Senior Developer", "Engineering", 3),
		staffMember("E2", "Senior Developer", "Engineering", 5),
		staffMember("E3", "Junior Developer", "Engineering", 5),
	)
	deps.expectTx(true)
	deps.expectSequence(2)

	res, err := deps.service.Submit(ctx, "E1", validLeave())

	require.NoError(t, err)
	assert.False(t, res.Covered)
	assert.False(t, res.FullyNotified)
	assert.Equal(t, leave.StatusUnassigned, res.Leave.Status)
	assert.Nil(t, res.Leave.AssignedTo)
	assert.Empty(t, res.Leave.Tasks)
	assert.Contains(t, res.Message, "escalate")

	assert.Equal(t, 5, deps.directory.workload("E2"))
	assert.Equal(t, 5, deps.directory.workload("E3"))
	assert.Empty(t, deps.directory.adjustCalls)
	assert.Equal(t, leave.StatusUnassigned, deps.ledger.get("REQ000002").Status)
	assert.Equal(t, []string{events.LeaveUnassigned}, deps.outbox.eventTypes())
}

func TestLeaveService_Submit_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *leave.CreateLeaveRequest)
		wantErr error
	}{
		{
			name:    "reason of 19 characters",
			mutate:  func(r *leave.CreateLeaveRequest) { r.Reason = strings.Repeat("a", 19) },
			wantErr: leaveerrors.ErrReasonTooShort,
		},
		{
			name:    "reason padded with spaces",
			mutate:  func(r *leave.CreateLeaveRequest) { r.Reason = "   " + strings.Repeat("a", 19) + "   " },
			wantErr: leaveerrors.ErrReasonTooShort,
		},
		{
			name: "end one day before start",
			mutate: func(r *leave.CreateLeaveRequest) {
				r.LeaveStart = "2026-11-02"
				r.LeaveEnd = "2026-11-01"
			},
			wantErr: leaveerrors.ErrInvalidDateRange,
		},
		{
			name:    "malformed start",
			mutate:  func(r *leave.CreateLeaveRequest) { r.LeaveStart = "02/11/2026" },
			wantErr: leaveerrors.ErrInvalidDateFormat,
		},
		{
			name:    "malformed end",
			mutate:  func(r *leave.CreateLeaveRequest) { r.LeaveEnd = "2026-13-40" },
			wantErr: leaveerrors.ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
			req := validLeave()
			tt.mutate(&req)

			_, err := deps.service.Submit(ctx, "E1", req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, deps.ledger.rows)
			assert.Equal(t, 2, deps.directory.workload("E8"))
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestLeaveService_Submit_BoundaryValuesAccepted(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
	deps.expectTx(true)
	deps.expectSequence(3)
	deps.gateway.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(2)

	res, err := deps.service.Submit(ctx, "E1", leave.CreateLeaveRequest{
		LeaveStart: "2026-11-02",
		LeaveEnd:   "2026-11-02",
		Reason:     strings.Repeat("é", leave.MinReasonLength),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-11-02", res.Leave.LeaveStart)
	assert.Equal(t, "2026-11-02", res.Leave.LeaveEnd)
}

func TestLeaveService_Submit_UnknownRequester(t *testing.T) {
	deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)

	_, err := deps.service.Submit(context.Background(), "E404", validLeave())

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Submit_ReselectsWhenCandidateFillsUp(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{},
		staffMember("E1", "Senior Developer", "Engineering", 3),
		staffMember("E8", "Senior Developer", "Engineering", 2),
		staffMember("E9", "Senior Developer", "Engineering", 3),
	)
	deps.directory.beforeAdjust = func(d *memDirectory, id string) {
		if id == "E8" {
			d.setWorkload("E8", employee.MaxConcurrentLoad)
		}
	}
	deps.expectTx(true)
	deps.expectSequence(4)
	deps.gateway.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(2)

	res, err := deps.service.Submit(ctx, "E1", validLeave())

	require.NoError(t, err)
	assert.Equal(t, "E9", *res.Leave.AssignedTo)
	assert.Equal(t, []string{"E8", "E9"}, deps.directory.adjustCalls)
	assert.Equal(t, employee.MaxConcurrentLoad, deps.directory.workload("E8"))
	assert.Equal(t, 4, deps.directory.workload("E9"))
}

func TestLeaveService_Submit_PartialNotification(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
	deps.expectTx(true)
	deps.expectSequence(5)

	e8 := deps.directory.employees["E8"]
	e1 := deps.directory.employees["E1"]
	deps.gateway.EXPECT().Send(gomock.Any(), e8.Phone, gomock.Any()).Return(false)
	deps.gateway.EXPECT().Send(gomock.Any(), e1.Phone, gomock.Any()).Return(true)

	res, err := deps.service.Submit(ctx, "E1", validLeave())

	require.NoError(t, err)
	assert.True(t, res.Covered)
	assert.False(t, res.FullyNotified)
	assert.Equal(t, leave.NotificationStatus{Assignee: false, Requester: true}, res.Notifications)
	assert.Contains(t, res.Message, "partial success")
	assert.Equal(t, leave.StatusAssigned, deps.ledger.get("REQ000005").Status)
	assert.Equal(t, 3, deps.directory.workload("E8"))

	retries := deps.outbox.byTopic(events.NotificationRetryTopic)
	require.Len(t, retries, 1)
	assert.Equal(t, events.NotificationFailed, retries[0].EventType)
	assert.Equal(t, "REQ000005", retries[0].AggregateID)
	assert.Contains(t, string(retries[0].Payload), `"recipient":"assignee"`)
}

func TestLeaveService_Submit_LedgerFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
	deps.ledger.createErr = assert.AnError
	deps.expectTx(false)
	deps.expectSequence(6)

	_, err := deps.service.Submit(ctx, "E1", validLeave())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, deps.outbox.eventTypes())
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func assignedLeave(id, requesterID, assigneeID string) leave.LeaveRequest {
	assigneeName := "Name " + assigneeID
	assigneePhone := "+628123456000"
	return leave.LeaveRequest{
		RequestID:       id,
		EmployeeID:      requesterID,
		EmployeeName:    "Name " + requesterID,
		Position:        "Senior Developer",
		Department:      "Engineering",
		Phone:           "+628123456999",
		LeaveStart:      time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		LeaveEnd:        time.Date(2026, 11, 6, 0, 0, 0, 0, time.UTC),
		Reason:          "Family event out of town for the week",
		Status:          leave.StatusAssigned,
		AssignedTo:      &assigneeID,
		AssignedToName:  &assigneeName,
		AssignedToPhone: &assigneePhone,
		CoverageTier:    "EXACT",
		Tasks:           leave.DefaultTasks(),
		CompletedTasks:  []string{},
		SubmissionDate:  time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}
}

func unassignedLeave(id, requesterID string) leave.LeaveRequest {
	l := assignedLeave(id, requesterID, "")
	l.Status = leave.StatusUnassigned
	l.AssignedTo = nil
	l.AssignedToName = nil
	l.AssignedToPhone = nil
	l.CoverageTier = ""
	l.Tasks = []string{}
	return l
}

func TestLeaveService_SetTaskStatus(t *testing.T) {
	ctx := context.Background()
	tasks := leave.DefaultTasks()

	t.Run("progress keeps checklist order", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = assignedLeave("REQ000001", "E1", "E8")
		deps.expectTx(true)
		deps.expectTx(true)

		_, err := deps.service.SetTaskStatus(ctx, "E8", "REQ000001", tasks[2], true)
		require.NoError(t, err)
		res, err := deps.service.SetTaskStatus(ctx, "E8", "REQ000001", tasks[0], true)
		require.NoError(t, err)

		assert.Equal(t, []string{tasks[0], tasks[2]}, res.CompletedTasks)
		assert.Equal(t, 2, res.Progress.Completed)
		assert.Equal(t, 10, res.Progress.Total)
		assert.InDelta(t, 0.2, res.Progress.Fraction, 1e-9)
		assert.Equal(t, leave.StatusAssigned, res.Status)
	})

	t.Run("unmarking removes the task", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		l := assignedLeave("REQ000001", "E1", "E8")
		l.CompletedTasks = []string{tasks[0], tasks[1]}
		deps.ledger.rows[l.RequestID] = l
		deps.expectTx(true)

		res, err := deps.service.SetTaskStatus(ctx, "E8", "REQ000001", tasks[0], false)

		require.NoError(t, err)
		assert.Equal(t, []string{tasks[1]}, res.CompletedTasks)
	})

	t.Run("unknown task", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = assignedLeave("REQ000001", "E1", "E8")
		deps.expectTx(false)

		_, err := deps.service.SetTaskStatus(ctx, "E8", "REQ000001", "Water the plants", true)

		assert.ErrorIs(t, err, leaveerrors.ErrUnknownTask)
		assert.Empty(t, deps.ledger.get("REQ000001").CompletedTasks)
	})

	t.Run("not the assignee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = assignedLeave("REQ000001", "E1", "E8")
		deps.expectTx(false)

		_, err := deps.service.SetTaskStatus(ctx, "E2", "REQ000001", tasks[0], true)

		assert.ErrorIs(t, err, leaveerrors.ErrNotAssignee)
	})

	t.Run("missing request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.expectTx(false)

		_, err := deps.service.SetTaskStatus(ctx, "E8", "REQ000404", tasks[0], true)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("tasks outstanding", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{ReleaseWorkloadOnComplete: true}, engineeringTeam()...)
		l := assignedLeave("REQ000001", "E1", "E8")
		l.CompletedTasks = l.Tasks[:9]
		deps.ledger.rows[l.RequestID] = l
		deps.expectTx(false)

		_, err := deps.service.Complete(ctx, "E8", "REQ000001")

		assert.ErrorIs(t, err, leaveerrors.ErrTasksIncomplete)
		assert.Equal(t, leave.StatusAssigned, deps.ledger.get("REQ000001").Status)
		assert.Equal(t, 2, deps.directory.workload("E8"))
	})

	t.Run("all tasks done notifies once and releases workload", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{ReleaseWorkloadOnComplete: true}, engineeringTeam()...)
		l := assignedLeave("REQ000001", "E1", "E8")
		l.CompletedTasks = leave.DefaultTasks()
		deps.ledger.rows[l.RequestID] = l
		deps.expectTx(true)
		deps.expectTx(false)
		deps.gateway.EXPECT().
			Send(gomock.Any(), l.Phone, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msg string) bool {
				assert.Contains(t, msg, "Name E8")
				return true
			}).
			Times(1)

		res, err := deps.service.Complete(ctx, "E8", "REQ000001")

		require.NoError(t, err)
		assert.True(t, res.RequesterNotified)
		assert.Equal(t, leave.StatusCompleted, res.Leave.Status)
		assert.NotNil(t, res.Leave.CompletedAt)
		assert.Equal(t, 1, deps.directory.workload("E8"))
		assert.Equal(t, []string{events.LeaveCompleted}, deps.outbox.eventTypes())

		_, err = deps.service.Complete(ctx, "E8", "REQ000001")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.Equal(t, 1, deps.directory.workload("E8"))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("workload kept when release disabled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{ReleaseWorkloadOnComplete: false}, engineeringTeam()...)
		l := assignedLeave("REQ000001", "E1", "E8")
		l.CompletedTasks = leave.DefaultTasks()
		deps.ledger.rows[l.RequestID] = l
		deps.expectTx(true)
		deps.gateway.EXPECT().Send(gomock.Any(), l.Phone, gomock.Any()).Return(true)

		_, err := deps.service.Complete(ctx, "E8", "REQ000001")

		require.NoError(t, err)
		assert.Equal(t, 2, deps.directory.workload("E8"))
		assert.Empty(t, deps.directory.adjustCalls)
	})

	t.Run("failed completion notice is queued", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		l := assignedLeave("REQ000001", "E1", "E8")
		l.CompletedTasks = leave.DefaultTasks()
		deps.ledger.rows[l.RequestID] = l
		deps.expectTx(true)
		deps.gateway.EXPECT().Send(gomock.Any(), l.Phone, gomock.Any()).Return(false)

		res, err := deps.service.Complete(ctx, "E8", "REQ000001")

		require.NoError(t, err)
		assert.False(t, res.RequesterNotified)
		assert.Equal(t, leave.StatusCompleted, deps.ledger.get("REQ000001").Status)
		retries := deps.outbox.byTopic(events.NotificationRetryTopic)
		require.Len(t, retries, 1)
		assert.Contains(t, string(retries[0].Payload), `"recipient":"requester"`)
	})

	t.Run("not the assignee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		l := assignedLeave("REQ000001", "E1", "E8")
		l.CompletedTasks = leave.DefaultTasks()
		deps.ledger.rows[l.RequestID] = l
		deps.expectTx(false)

		_, err := deps.service.Complete(ctx, "E2", "REQ000001")

		assert.ErrorIs(t, err, leaveerrors.ErrNotAssignee)
		assert.Equal(t, leave.StatusAssigned, deps.ledger.get("REQ000001").Status)
	})
}

func TestLeaveService_RetryAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns once capacity frees up", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = unassignedLeave("REQ000001", "E1")
		deps.expectTx(true)
		deps.gateway.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(2)

		res, err := deps.service.RetryAssignment(ctx, "REQ000001")

		require.NoError(t, err)
		assert.True(t, res.Covered)
		assert.Equal(t, leave.StatusAssigned, deps.ledger.get("REQ000001").Status)
		assert.Equal(t, "E8", *deps.ledger.get("REQ000001").AssignedTo)
		assert.Len(t, deps.ledger.get("REQ000001").Tasks, 10)
		assert.Equal(t, 3, deps.directory.workload("E8"))
	})

	t.Run("still nobody available", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{},
			staffMember("E1", "Senior Developer", "Engineering", 3),
			staffMember("E2", "Junior Developer", "Engineering", 5),
		)
		deps.ledger.rows["REQ000001"] = unassignedLeave("REQ000001", "E1")
		deps.expectTx(true)

		res, err := deps.service.RetryAssignment(ctx, "REQ000001")

		require.NoError(t, err)
		assert.False(t, res.Covered)
		assert.Equal(t, leave.StatusUnassigned, res.Leave.Status)
		assert.Empty(t, deps.outbox.eventTypes())
	})

	t.Run("already assigned", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = assignedLeave("REQ000001", "E1", "E8")
		deps.expectTx(false)

		_, err := deps.service.RetryAssignment(ctx, "REQ000001")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.Equal(t, 2, deps.directory.workload("E8"))
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("unassigned request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = unassignedLeave("REQ000001", "E1")
		deps.expectTx(true)

		res, err := deps.service.Reject(ctx, "REQ000001", "  Peak release week  ")

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, res.Status)
		assert.Equal(t, "Peak release week", *res.RejectionReason)
		assert.Equal(t, []string{events.LeaveRejected}, deps.outbox.eventTypes())
	})

	t.Run("blank reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = unassignedLeave("REQ000001", "E1")

		_, err := deps.service.Reject(ctx, "REQ000001", "   ")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("assigned request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
		deps.ledger.rows["REQ000001"] = assignedLeave("REQ000001", "E1", "E8")
		deps.expectTx(false)

		_, err := deps.service.Reject(ctx, "REQ000001", "Peak release week")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.Equal(t, leave.StatusAssigned, deps.ledger.get("REQ000001").Status)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
	deps.ledger.rows["REQ000001"] = assignedLeave("REQ000001", "E1", "E8")

	tests := []struct {
		name       string
		actor      string
		canReadAll bool
		wantErr    error
	}{
		{name: "requester", actor: "E1"},
		{name: "assignee", actor: "E8"},
		{name: "manager", actor: "E5", canReadAll: true},
		{name: "unrelated employee", actor: "E2", wantErr: leaveerrors.ErrLeaveAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := deps.service.GetByID(ctx, tt.actor, tt.canReadAll, "REQ000001")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "REQ000001", res.RequestID)
		})
	}

	_, err := deps.service.GetByID(ctx, "E1", false, "REQ000404")
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestLeaveService_Queries(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t, leave.Options{}, engineeringTeam()...)
	deps.ledger.rows["REQ000001"] = assignedLeave("REQ000001", "E1", "E8")
	deps.ledger.rows["REQ000002"] = unassignedLeave("REQ000002", "E1")
	deps.ledger.rows["REQ000003"] = assignedLeave("REQ000003", "E2", "E8")

	mine, err := deps.service.GetMyLeaves(ctx, "E1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	assignments, err := deps.service.GetMyAssignments(ctx, "E8")
	require.NoError(t, err)
	assert.Len(t, assignments, 2)

	uncovered, err := deps.service.GetUncovered(ctx)
	require.NoError(t, err)
	require.Len(t, uncovered, 1)
	assert.Equal(t, "REQ000002", uncovered[0].RequestID)
	assert.Equal(t, []string{}, uncovered[0].Tasks)
}
