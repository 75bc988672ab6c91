package auth

import (
	"net/http"

	"go-coverage/internal/middleware"
	"go-coverage/internal/shared/apperror"
	"go-coverage/internal/shared/request"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const refreshTokenCookie = "refresh_token"

type Handler struct {
	service       Service
	secureCookies bool
	logger        *zap.Logger
}

// NewHandler takes secureCookies from the environment; cookies are marked
// Secure in production only.
func NewHandler(s Service, secureCookies bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, secureCookies: secureCookies, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setTokenCookies(c *gin.Context, access, refresh string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    access,
		Path:     "/",
		MaxAge:   int(AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	clientType := request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))

	access, refresh, user, err := h.service.Login(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if request.IsWebClient(clientType) {
		h.setTokenCookies(c, access, refresh)
	}
	h.logger.Debug("http login", zap.String("employee_id", user.EmployeeID), zap.String("client_type", clientType))

	response.Success(c, http.StatusOK, TokenResponse{User: user, AccessToken: access, RefreshToken: refresh}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetMe(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "logged out")
}

func (h *Handler) RefreshToken(c *gin.Context) {
	clientType := request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	isWeb := request.IsWebClient(clientType)

	var refreshToken string
	if isWeb {
		cookie, err := c.Cookie(refreshTokenCookie)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "NO_REFRESH_TOKEN", "missing refresh token", nil)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	access, refresh, user, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if isWeb {
		h.setTokenCookies(c, access, refresh)
	}

	response.Success(c, http.StatusOK, TokenResponse{User: user, AccessToken: access, RefreshToken: refresh}, nil)
}
