package employeeerrors

import (
	"net/http"

	"go-coverage/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same id or email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrWorkloadOverflow = apperror.New(
		apperror.CodeConflict,
		"Workload must stay between 0 and the concurrent assignment limit",
		http.StatusConflict,
	)
)
