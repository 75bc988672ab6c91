package leaveerrors

import (
	"net/http"

	"go-coverage/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"leave_end must be on or after leave_start",
		http.StatusBadRequest,
	)
	ErrReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"reason must be at least 20 characters",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrNotAssignee = apperror.New(
		apperror.CodeForbidden,
		"only the assigned employee can update this assignment",
		http.StatusForbidden,
	)
	ErrLeaveAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"you do not have access to this leave request",
		http.StatusForbidden,
	)
	ErrUnknownTask = apperror.New(
		apperror.CodeInvalidInput,
		"task is not part of this assignment",
		http.StatusBadRequest,
	)
	ErrTasksIncomplete = apperror.New(
		apperror.CodeInvalidState,
		"every task must be completed before the assignment can be closed",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required",
		http.StatusBadRequest,
	)
	ErrLeaveAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"leave request id already used",
		http.StatusConflict,
	)
)
