package leave_test

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"go-coverage/internal/employee"
	"go-coverage/internal/leave"
	"go-coverage/internal/messaging/kafka"

	"gorm.io/gorm"
)

// memDirectory is an employee.Repository whose AdjustWorkload honours the
// same conditional update as the SQL implementation.
type memDirectory struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	adjustCalls []string
	// beforeAdjust runs before each conditional update, e.g. to simulate a
	// concurrent submitter filling a candidate up.
	beforeAdjust func(d *memDirectory, id string)
}

func newMemDirectory(list ...employee.Employee) *memDirectory {
	d := &memDirectory{employees: make(map[string]employee.Employee, len(list))}
	for _, e := range list {
		d.employees[e.EmployeeID] = e
	}
	return d
}

func (d *memDirectory) WithTx(tx *gorm.DB) employee.Repository { return d }

func (d *memDirectory) Create(ctx context.Context, e *employee.Employee) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.employees[e.EmployeeID]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	d.employees[e.EmployeeID] = *e
	return nil
}

func (d *memDirectory) FindByID(ctx context.Context, id string) (employee.Employee, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.employees[id]
	return e, ok, nil
}

func (d *memDirectory) sorted() []employee.Employee {
	out := make([]employee.Employee, 0, len(d.employees))
	for _, e := range d.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}

func (d *memDirectory) FindAll(ctx context.Context) ([]employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sorted(), nil
}

func (d *memDirectory) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return d.FindAll(ctx)
}

func (d *memDirectory) FindAvailable(ctx context.Context, excludeID string, maxWorkload int) ([]employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []employee.Employee
	for _, e := range d.sorted() {
		if e.EmployeeID != excludeID && e.CurrentWorkload < maxWorkload {
			out = append(out, e)
		}
	}
	return out, nil
}

func (d *memDirectory) AdjustWorkload(ctx context.Context, id string, delta, ceiling int) (bool, error) {
	if d.beforeAdjust != nil {
		d.beforeAdjust(d, id)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.adjustCalls = append(d.adjustCalls, id)

	e, ok := d.employees[id]
	if !ok {
		return false, nil
	}
	next := e.CurrentWorkload + delta
	if next < 0 || (delta > 0 && next > ceiling) {
		return false, nil
	}
	e.CurrentWorkload = next
	d.employees[id] = e
	return true, nil
}

func (d *memDirectory) Count(ctx context.Context) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.employees)), nil
}

func (d *memDirectory) setWorkload(id string, w int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.employees[id]
	e.CurrentWorkload = w
	d.employees[id] = e
}

func (d *memDirectory) workload(id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.employees[id].CurrentWorkload
}

type memLedger struct {
	mu        sync.Mutex
	rows      map[string]leave.LeaveRequest
	createErr error
}

func newMemLedger(rows ...leave.LeaveRequest) *memLedger {
	l := &memLedger{rows: map[string]leave.LeaveRequest{}}
	for _, r := range rows {
		l.rows[r.RequestID] = r
	}
	return l
}

func (l *memLedger) WithTx(tx *gorm.DB) leave.Repository { return l }

func (l *memLedger) Create(ctx context.Context, r *leave.LeaveRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.createErr != nil {
		return l.createErr
	}
	if _, ok := l.rows[r.RequestID]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	l.rows[r.RequestID] = clone(*r)
	return nil
}

func (l *memLedger) FindByID(ctx context.Context, id string) (leave.LeaveRequest, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.rows[id]
	return clone(r), ok, nil
}

func (l *memLedger) FindByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, bool, error) {
	return l.FindByID(ctx, id)
}

func (l *memLedger) filter(keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []leave.LeaveRequest
	for _, r := range l.rows {
		if keep(r) {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveStart.After(out[j].LeaveStart) })
	return out
}

func (l *memLedger) FindByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return l.filter(func(r leave.LeaveRequest) bool { return r.EmployeeID == employeeID }), nil
}

func (l *memLedger) FindByAssignee(ctx context.Context, assigneeID, status string) ([]leave.LeaveRequest, error) {
	return l.filter(func(r leave.LeaveRequest) bool { return r.IsAssignedTo(assigneeID) && r.Status == status }), nil
}

func (l *memLedger) FindByStatus(ctx context.Context, status string) ([]leave.LeaveRequest, error) {
	return l.filter(func(r leave.LeaveRequest) bool { return r.Status == status }), nil
}

func (l *memLedger) Update(ctx context.Context, r *leave.LeaveRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows[r.RequestID] = clone(*r)
	return nil
}

func (l *memLedger) get(id string) leave.LeaveRequest {
	r, _, _ := l.FindByID(context.Background(), id)
	return r
}

func clone(r leave.LeaveRequest) leave.LeaveRequest {
	r.Tasks = slices.Clone(r.Tasks)
	r.CompletedTasks = slices.Clone(r.CompletedTasks)
	return r
}

type memOutbox struct {
	mu     sync.Mutex
	events []kafka.OutboxEvent
}

func (o *memOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return o }

func (o *memOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

func (o *memOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (o *memOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (o *memOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func (o *memOutbox) eventTypes() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.EventType)
	}
	return out
}

func (o *memOutbox) byTopic(topic string) []kafka.OutboxEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []kafka.OutboxEvent
	for _, e := range o.events {
		if strings.EqualFold(e.Topic, topic) {
			out = append(out, e)
		}
	}
	return out
}
