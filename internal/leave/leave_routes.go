package leave

import (
	"go-coverage/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	jwtSecret string,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	leaves.Use(middleware.ContextLogger(logger))
	{
		submit := []gin.HandlerFunc{
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
		}
		if rdb != nil {
			submit = append(submit, middleware.Idempotency(rdb))
		}
		leaves.POST("", append(submit, handler.Submit)...)

		leaves.GET("/mine",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetMine,
		)
		leaves.GET("/uncovered",
			middleware.RBACAuthorize(rbacService, "leave", "escalate"),
			handler.GetUncovered,
		)
		leaves.GET("/:id",
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetByID,
		)
		leaves.POST("/:id/retry",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave", "escalate"),
			handler.Retry,
		)
		leaves.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, "leave", "escalate"),
			handler.Reject,
		)
	}

	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware(jwtSecret))
	assignments.Use(middleware.ContextLogger(logger))
	{
		assignments.GET("",
			middleware.RBACAuthorize(rbacService, "assignment", "read"),
			handler.GetAssignments,
		)
		assignments.PUT("/:id/tasks",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "assignment", "update"),
			handler.SetTask,
		)
		assignments.POST("/:id/complete",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "assignment", "update"),
			handler.Complete,
		)
	}
}
