package autherrors

import (
	"net/http"

	"go-coverage/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid employee id or password",
		http.StatusUnauthorized,
	)
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		"INVALID_REFRESH_TOKEN",
		"invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate token",
		http.StatusInternalServerError,
	)
	ErrMissingAuthContext = apperror.New(
		apperror.CodeUnauthorized,
		"missing auth context",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to access this resource",
		http.StatusForbidden,
	)
)
