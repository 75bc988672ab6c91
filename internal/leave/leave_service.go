package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go-coverage/internal/coverage"
	"go-coverage/internal/employee"
	employeeerrors "go-coverage/internal/employee/errors"
	"go-coverage/internal/events"
	leaveerrors "go-coverage/internal/leave/errors"
	"go-coverage/internal/messaging/kafka"
	"go-coverage/internal/notifier"
	"go-coverage/internal/shared/contextutil"
	"go-coverage/internal/shared/counter"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const aggregateType = "leave_request"

type Options struct {
	// ReleaseWorkloadOnComplete decrements the assignee's workload when an
	// assignment is completed.
	ReleaseWorkloadOnComplete bool
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, requesterID string, req CreateLeaveRequest) (SubmitResult, error)
	GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (LeaveResponse, error)
	GetMyLeaves(ctx context.Context, requesterID string) ([]LeaveResponse, error)
	GetMyAssignments(ctx context.Context, assigneeID string) ([]LeaveResponse, error)
	GetUncovered(ctx context.Context) ([]LeaveResponse, error)
	SetTaskStatus(ctx context.Context, assigneeID, requestID, task string, done bool) (LeaveResponse, error)
	Complete(ctx context.Context, assigneeID, requestID string) (CompleteResult, error)
	RetryAssignment(ctx context.Context, requestID string) (SubmitResult, error)
	Reject(ctx context.Context, requestID, reason string) (LeaveResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	gateway   notifier.Gateway
	opts      Options
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	gateway notifier.Gateway,
	opts Options,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, counterRepo, nil, gateway, opts, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	gateway notifier.Gateway,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		counter:   counterRepo,
		outbox:    outboxRepo,
		gateway:   gateway,
		opts:      opts,
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) Submit(ctx context.Context, requesterID string, req CreateLeaveRequest) (SubmitResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested", zap.String("employee_id", requesterID))

	start, end, reason, err := validateRequest(req)
	if err != nil {
		log.Warn("submit leave rejected", zap.String("employee_id", requesterID), zap.Error(err))
		return SubmitResult{}, err
	}

	requester, found, err := s.employees.FindByID(ctx, requesterID)
	if err != nil {
		log.Error("submit leave load requester failed", zap.Error(err))
		return SubmitResult{}, err
	}
	if !found {
		return SubmitResult{}, employeeerrors.ErrEmployeeNotFound
	}

	var (
		l       LeaveRequest
		match   coverage.Match
		covered bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeLeaveRequest)
		if err != nil {
			return err
		}
		l = newLeaveRequest(formatRequestID(seq), requester, start, end, reason, s.now())

		match, covered, err = s.reserveCover(ctx, s.employees.WithTx(tx), criteriaFor(&l))
		if err != nil {
			return err
		}
		if covered {
			if err := s.assign(ctx, &l, match); err != nil {
				return err
			}
		} else if err := setStatus(&l, StatusUnassigned); err != nil {
			return err
		}

		if err := s.repo.WithTx(tx).Create(ctx, &l); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueLifecycle(ctx, tx, &l)
	})
	if err != nil {
		log.Error("submit leave failed", zap.String("employee_id", requesterID), zap.Error(err))
		return SubmitResult{}, err
	}

	result := SubmitResult{Leave: mapToResponse(l), Covered: covered}
	if covered {
		result.Notifications = s.notifyAssignment(ctx, &l, match.Employee)
		result.FullyNotified = result.Notifications.Assignee && result.Notifications.Requester
	}
	result.Message = submitMessage(ctx, &l, covered, result.FullyNotified)

	log.Info("submit leave success",
		zap.String("leave_request_id", l.RequestID),
		zap.String("status", l.Status),
		zap.String("coverage_tier", l.CoverageTier),
		zap.Bool("fully_notified", result.FullyNotified),
	)
	return result, nil
}

func (s *service) GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (LeaveResponse, error) {
	l, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !found {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if !canReadAll && l.EmployeeID != actorID && !l.IsAssignedTo(actorID) {
		return LeaveResponse{}, leaveerrors.ErrLeaveAccessDenied
	}
	return mapToResponse(l), nil
}

func (s *service) GetMyLeaves(ctx context.Context, requesterID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, requesterID)
	if err != nil {
		s.logger.Error("get my leaves failed", zap.String("employee_id", requesterID), zap.Error(err))
		return nil, err
	}
	return mapToResponses(leaves), nil
}

func (s *service) GetMyAssignments(ctx context.Context, assigneeID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByAssignee(ctx, assigneeID, StatusAssigned)
	if err != nil {
		s.logger.Error("get my assignments failed", zap.String("employee_id", assigneeID), zap.Error(err))
		return nil, err
	}
	return mapToResponses(leaves), nil
}

func (s *service) GetUncovered(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByStatus(ctx, StatusUnassigned)
	if err != nil {
		s.logger.Error("get uncovered leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToResponses(leaves), nil
}

func (s *service) SetTaskStatus(ctx context.Context, assigneeID, requestID, task string, done bool) (LeaveResponse, error) {
	var l LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		l, err = s.lockAssignment(ctx, repo, assigneeID, requestID)
		if err != nil {
			return err
		}
		if !l.SetTask(task, done) {
			return leaveerrors.ErrUnknownTask
		}
		return repo.Update(ctx, &l)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	p := l.Progress()
	contextutil.GetLogger(ctx, s.logger).Debug("task status updated",
		zap.String("leave_request_id", requestID),
		zap.Bool("done", done),
		zap.Int("completed", p.Completed),
		zap.Int("total", p.Total),
	)
	return mapToResponse(l), nil
}

func (s *service) Complete(ctx context.Context, assigneeID, requestID string) (CompleteResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var l LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		l, err = s.lockAssignment(ctx, repo, assigneeID, requestID)
		if err != nil {
			return err
		}
		if !l.AllTasksDone() {
			return leaveerrors.ErrTasksIncomplete
		}
		if err := setStatus(&l, StatusCompleted); err != nil {
			return err
		}
		completedAt := s.now().UTC()
		l.CompletedAt = &completedAt

		if err := repo.Update(ctx, &l); err != nil {
			return err
		}

		if s.opts.ReleaseWorkloadOnComplete {
			released, err := s.employees.WithTx(tx).AdjustWorkload(ctx, assigneeID, -1, employee.MaxConcurrentLoad)
			if err != nil {
				return err
			}
			if !released {
				log.Warn("assignee workload already zero", zap.String("employee_id", assigneeID))
			}
		}
		return s.enqueueLifecycle(ctx, tx, &l)
	})
	if err != nil {
		log.Warn("complete assignment failed", zap.String("leave_request_id", requestID), zap.Error(err))
		return CompleteResult{}, err
	}

	msg := completionMessage(ctx, &l)
	notified := s.gateway.Send(ctx, l.Phone, msg)
	if !notified {
		s.enqueueNotificationRetry(ctx, &l, events.RecipientRequester, l.Phone, msg)
	}

	log.Info("assignment completed",
		zap.String("leave_request_id", l.RequestID),
		zap.String("assignee_id", assigneeID),
		zap.Bool("requester_notified", notified),
	)
	return CompleteResult{Leave: mapToResponse(l), RequesterNotified: notified}, nil
}

func (s *service) RetryAssignment(ctx context.Context, requestID string) (SubmitResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var (
		l       LeaveRequest
		match   coverage.Match
		covered bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var (
			found bool
			err   error
		)
		l, found, err = repo.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if !found {
			return leaveerrors.ErrLeaveNotFound
		}
		if !canTransition(l.Status, StatusAssigned) {
			return leaveerrors.ErrInvalidStatusTransition
		}

		match, covered, err = s.reserveCover(ctx, s.employees.WithTx(tx), criteriaFor(&l))
		if err != nil || !covered {
			return err
		}
		if err := s.assign(ctx, &l, match); err != nil {
			return err
		}
		if err := repo.Update(ctx, &l); err != nil {
			return err
		}
		return s.enqueueLifecycle(ctx, tx, &l)
	})
	if err != nil {
		log.Warn("retry assignment failed", zap.String("leave_request_id", requestID), zap.Error(err))
		return SubmitResult{}, err
	}

	result := SubmitResult{Leave: mapToResponse(l), Covered: covered}
	if covered {
		result.Notifications = s.notifyAssignment(ctx, &l, match.Employee)
		result.FullyNotified = result.Notifications.Assignee && result.Notifications.Requester
	}
	result.Message = submitMessage(ctx, &l, covered, result.FullyNotified)

	log.Info("retry assignment finished",
		zap.String("leave_request_id", requestID),
		zap.Bool("covered", covered),
	)
	return result, nil
}

func (s *service) Reject(ctx context.Context, requestID, reason string) (LeaveResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	var l LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var (
			found bool
			err   error
		)
		l, found, err = repo.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if !found {
			return leaveerrors.ErrLeaveNotFound
		}
		if err := setStatus(&l, StatusRejected); err != nil {
			return err
		}
		l.RejectionReason = &reason

		if err := repo.Update(ctx, &l); err != nil {
			return err
		}
		return s.enqueueLifecycle(ctx, tx, &l)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("leave request rejected", zap.String("leave_request_id", requestID))
	return mapToResponse(l), nil
}

// reserveCover selects a cover employee and takes one unit of their
// capacity. A candidate whose conditional increment fails has filled up
// since the pool was read and is dropped before selecting again.
func (s *service) reserveCover(ctx context.Context, employees employee.Repository, c coverage.Criteria) (coverage.Match, bool, error) {
	pool, err := employees.FindAvailable(ctx, c.ExcludeID, employee.MaxConcurrentLoad)
	if err != nil {
		return coverage.Match{}, false, err
	}

	for attempts := len(pool); attempts > 0; attempts-- {
		m, ok := coverage.Select(pool, c)
		if !ok {
			return coverage.Match{}, false, nil
		}

		reserved, err := employees.AdjustWorkload(ctx, m.Employee.EmployeeID, 1, employee.MaxConcurrentLoad)
		if err != nil {
			return coverage.Match{}, false, err
		}
		if reserved {
			m.Employee.CurrentWorkload++
			return m, true, nil
		}

		contextutil.GetLogger(ctx, s.logger).Info("cover candidate filled up, selecting again",
			zap.String("employee_id", m.Employee.EmployeeID),
		)
		pool = without(pool, m.Employee.EmployeeID)
	}
	return coverage.Match{}, false, nil
}

func (s *service) assign(ctx context.Context, l *LeaveRequest, m coverage.Match) error {
	if err := setStatus(l, StatusAssigned); err != nil {
		return err
	}
	cover := m.Employee
	l.AssignedTo = &cover.EmployeeID
	l.AssignedToName = &cover.Name
	l.AssignedToPhone = &cover.Phone
	l.CoverageTier = string(m.Tier)
	l.Tasks = DefaultTasks()
	l.CompletedTasks = []string{}
	l.WorkDetails = buildWorkDetails(ctx, l, l.Tasks)
	return nil
}

// lockAssignment loads an active assignment owned by assigneeID.
func (s *service) lockAssignment(ctx context.Context, repo Repository, assigneeID, requestID string) (LeaveRequest, error) {
	l, found, err := repo.FindByIDForUpdate(ctx, requestID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if !found {
		return LeaveRequest{}, leaveerrors.ErrLeaveNotFound
	}
	if !l.IsAssignedTo(assigneeID) {
		return LeaveRequest{}, leaveerrors.ErrNotAssignee
	}
	if l.Status != StatusAssigned {
		return LeaveRequest{}, leaveerrors.ErrInvalidStatusTransition
	}
	return l, nil
}

// notifyAssignment sends both messages concurrently. Failures are queued for
// retry and never undo the assignment.
func (s *service) notifyAssignment(ctx context.Context, l *LeaveRequest, cover employee.Employee) NotificationStatus {
	assigneeMsg := assignmentMessage(ctx, l)
	requesterMsg := approvalMessage(ctx, l, cover)

	var (
		status NotificationStatus
		g      errgroup.Group
	)
	g.Go(func() error {
		status.Assignee = s.gateway.Send(ctx, cover.Phone, assigneeMsg)
		return nil
	})
	g.Go(func() error {
		status.Requester = s.gateway.Send(ctx, l.Phone, requesterMsg)
		return nil
	})
	_ = g.Wait()

	if !status.Assignee {
		s.enqueueNotificationRetry(ctx, l, events.RecipientAssignee, cover.Phone, assigneeMsg)
	}
	if !status.Requester {
		s.enqueueNotificationRetry(ctx, l, events.RecipientRequester, l.Phone, requesterMsg)
	}
	return status
}

func (s *service) enqueueLifecycle(ctx context.Context, tx *gorm.DB, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveLifecycleEvent{
		EventType:      lifecycleEventType(l.Status),
		RequestID:      rid,
		LeaveRequestID: l.RequestID,
		EmployeeID:     l.EmployeeID,
		CoverageTier:   l.CoverageTier,
		Status:         l.Status,
		OccurredAt:     s.now().UTC(),
	}
	if l.AssignedTo != nil {
		event.AssignedTo = *l.AssignedTo
	}

	row, err := kafka.NewOutboxEvent(rid, aggregateType, l.RequestID, event.EventType, events.LeaveLifecycleTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func (s *service) enqueueNotificationRetry(ctx context.Context, l *LeaveRequest, recipient, phone, message string) {
	log := contextutil.GetLogger(ctx, s.logger)
	if s.outbox == nil {
		log.Warn("notification failed, no retry queue configured",
			zap.String("leave_request_id", l.RequestID),
			zap.String("recipient", recipient),
		)
		return
	}

	rid := contextutil.GetRequestID(ctx)
	row, err := kafka.NewOutboxEvent(rid, aggregateType, l.RequestID, events.NotificationFailed, events.NotificationRetryTopic,
		events.NotificationRetryEvent{
			EventType:      events.NotificationFailed,
			RequestID:      rid,
			LeaveRequestID: l.RequestID,
			Recipient:      recipient,
			Phone:          phone,
			Message:        message,
			Attempt:        1,
			OccurredAt:     s.now().UTC(),
		})
	if err == nil {
		err = s.outbox.Create(ctx, row)
	}
	if err != nil {
		log.Error("queue notification retry failed",
			zap.String("leave_request_id", l.RequestID),
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return
	}
	log.Info("notification retry queued",
		zap.String("leave_request_id", l.RequestID),
		zap.String("recipient", recipient),
	)
}

func validateRequest(req CreateLeaveRequest) (time.Time, time.Time, string, error) {
	start, err := time.Parse(DateLayout, strings.TrimSpace(req.LeaveStart))
	if err != nil {
		return time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(req.LeaveEnd))
	if err != nil {
		return time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidDateRange
	}

	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) < MinReasonLength {
		return time.Time{}, time.Time{}, "", leaveerrors.ErrReasonTooShort
	}
	return start, end, reason, nil
}

func newLeaveRequest(id string, requester employee.Employee, start, end time.Time, reason string, now time.Time) LeaveRequest {
	return LeaveRequest{
		RequestID:      id,
		EmployeeID:     requester.EmployeeID,
		EmployeeName:   requester.Name,
		Position:       requester.Position,
		Department:     requester.Department,
		Phone:          requester.Phone,
		Email:          requester.Email,
		LeaveStart:     start,
		LeaveEnd:       end,
		Reason:         reason,
		Status:         StatusPending,
		Tasks:          []string{},
		CompletedTasks: []string{},
		SubmissionDate: now.UTC(),
	}
}

func formatRequestID(seq int64) string {
	return fmt.Sprintf("REQ%06d", seq)
}

func criteriaFor(l *LeaveRequest) coverage.Criteria {
	return coverage.Criteria{
		Position:   l.Position,
		Department: l.Department,
		ExcludeID:  l.EmployeeID,
	}
}

func setStatus(l *LeaveRequest, next string) error {
	if !canTransition(l.Status, next) {
		return leaveerrors.ErrInvalidStatusTransition
	}
	l.Status = next
	return nil
}

func lifecycleEventType(status string) string {
	switch status {
	case StatusAssigned:
		return events.LeaveAssigned
	case StatusUnassigned:
		return events.LeaveUnassigned
	case StatusCompleted:
		return events.LeaveCompleted
	case StatusRejected:
		return events.LeaveRejected
	}
	return strings.ToLower("leave_" + status)
}

func without(pool []employee.Employee, id string) []employee.Employee {
	out := make([]employee.Employee, 0, len(pool))
	for _, e := range pool {
		if e.EmployeeID != id {
			out = append(out, e)
		}
	}
	return out
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return leaveerrors.ErrLeaveAlreadyExists
	}
	return err
}

func mapToResponses(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		resp = append(resp, mapToResponse(l))
	}
	return resp
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	tasks := l.Tasks
	if tasks == nil {
		tasks = []string{}
	}
	completed := l.CompletedTasks
	if completed == nil {
		completed = []string{}
	}

	resp := LeaveResponse{
		RequestID:       l.RequestID,
		EmployeeID:      l.EmployeeID,
		EmployeeName:    l.EmployeeName,
		Position:        l.Position,
		Department:      l.Department,
		LeaveStart:      l.LeaveStart.Format(DateLayout),
		LeaveEnd:        l.LeaveEnd.Format(DateLayout),
		Reason:          l.Reason,
		Status:          l.Status,
		AssignedTo:      l.AssignedTo,
		AssignedToName:  l.AssignedToName,
		AssignedToPhone: l.AssignedToPhone,
		CoverageTier:    l.CoverageTier,
		WorkDetails:     l.WorkDetails,
		Tasks:           tasks,
		CompletedTasks:  completed,
		Progress:        l.Progress(),
		SubmissionDate:  l.SubmissionDate.Format(time.RFC3339),
		RejectionReason: l.RejectionReason,
	}
	if l.CompletedAt != nil {
		v := l.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	return resp
}
