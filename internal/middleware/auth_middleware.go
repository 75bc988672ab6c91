package middleware

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	autherrors "go-coverage/internal/auth/errors"
	"go-coverage/internal/shared/apperror"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// AuthMiddleware accepts a bearer token or the access_token cookie and puts
// employee_id and role on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, autherrors.ErrTokenExpired)
				return
			}
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}
		if typ, _ := claims["token_type"].(string); typ != "" && typ != "access" {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}
		role, _ := claims["role"].(string)

		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(allowedRoles, c.GetString("role")) {
			abortWith(c, autherrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
