package app

import (
	"net/http"

	"go-coverage/internal/auth"
	"go-coverage/internal/config"
	"go-coverage/internal/employee"
	"go-coverage/internal/leave"
	"go-coverage/internal/messaging/kafka"
	"go-coverage/internal/notifier"
	"go-coverage/internal/rbac"
	"go-coverage/internal/rbac/infra"
	"go-coverage/internal/shared/apperror"
	"go-coverage/internal/shared/counter"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)
	if err := rbacService.LoadPolicy(rbac.DefaultPolicy, rbac.RoleInheritance); err != nil {
		return err
	}

	gateway := notifier.New(cfg.Notifier, logger)

	// --- Services ---
	authService := auth.NewService(employeeRepo, cfg.JWTSecret, logger)
	employeeService := employee.NewService(employeeRepo, rdb, logger)
	leaveService := leave.NewServiceWithOutbox(
		gormDB,
		leaveRepo,
		employeeRepo,
		counterRepo,
		outboxRepo,
		gateway,
		leave.Options{ReleaseWorkloadOnComplete: cfg.ReleaseWorkloadOnComplete},
		logger,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, rdb, logger)

	router.GET("/health", healthHandler(gormDB))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.JWTSecret, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb, cfg.JWTSecret, logger)
	}

	return nil
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}
