package middleware

import (
	autherrors "go-coverage/internal/auth/errors"
	"go-coverage/internal/domain"
	"go-coverage/internal/shared/apperror"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can decide an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		role := c.GetString("role")
		if employeeID == "" || role == "" {
			abortWith(c, autherrors.ErrMissingAuthContext)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID,
			Role:       role,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			abortWith(c, apperror.ErrInternal)
			return
		}
		if !allowed {
			err := autherrors.ErrForbidden
			response.Error(c, err.HTTPStatus, err.Code, err.Message, gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
