package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaveRequest_SetTask(t *testing.T) {
	l := LeaveRequest{Tasks: DefaultTasks()}

	assert.True(t, l.SetTask(l.Tasks[4], true))
	assert.True(t, l.SetTask(l.Tasks[1], true))
	assert.Equal(t, []string{l.Tasks[1], l.Tasks[4]}, l.CompletedTasks)

	assert.True(t, l.SetTask(l.Tasks[1], true), "marking twice is a no-op")
	assert.Len(t, l.CompletedTasks, 2)

	assert.False(t, l.SetTask("Order lunch", true))
	assert.Len(t, l.CompletedTasks, 2)

	assert.True(t, l.SetTask(l.Tasks[4], false))
	assert.Equal(t, []string{l.Tasks[1]}, l.CompletedTasks)
}

func TestLeaveRequest_Progress(t *testing.T) {
	l := LeaveRequest{}
	assert.Equal(t, Progress{}, l.Progress())
	assert.False(t, l.AllTasksDone())

	l.Tasks = DefaultTasks()
	l.CompletedTasks = l.Tasks[:5]
	p := l.Progress()
	assert.Equal(t, 5, p.Completed)
	assert.Equal(t, 10, p.Total)
	assert.InDelta(t, 0.5, p.Fraction, 1e-9)
	assert.False(t, l.AllTasksDone())

	l.CompletedTasks = DefaultTasks()
	assert.True(t, l.AllTasksDone())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusUnassigned, true},
		{StatusUnassigned, StatusAssigned, true},
		{StatusUnassigned, StatusRejected, true},
		{StatusAssigned, StatusCompleted, true},
		{StatusAssigned, StatusUnassigned, false},
		{StatusAssigned, StatusRejected, false},
		{StatusCompleted, StatusAssigned, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusRejected, StatusAssigned, false},
		{StatusPending, StatusCompleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestDefaultTasks_ReturnsCopy(t *testing.T) {
	a := DefaultTasks()
	a[0] = "changed"
	assert.Equal(t, "Review all pending pull requests (5 minimum)", DefaultTasks()[0])
}

func TestFormatRequestID(t *testing.T) {
	assert.Equal(t, "REQ000001", formatRequestID(1))
	assert.Equal(t, "REQ001234", formatRequestID(1234))
}
