package apperror

import "fmt"

// AppError is the error type every service returns for expected failures.
// Handlers translate it with ToHTTP.
type AppError struct {
	Code       string // machine code, e.g. INVALID_INPUT
	Message    string // safe to show to the user
	HTTPStatus int
	Err        error // optional cause, never sent to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches a cause to a new AppError. A nil cause yields nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
