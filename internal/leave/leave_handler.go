package leave

import (
	"encoding/json"
	"net/http"
	"time"

	"go-coverage/internal/employee"
	"go-coverage/internal/shared/apperror"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func getActorID(c *gin.Context) string {
	return c.GetString("employee_id")
}

func isManager(c *gin.Context) bool {
	return c.GetString("role") == employee.RoleManager
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	cacheKey := c.GetString("idempotency_cache_key")
	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	actorID := getActorID(c)
	h.logger.Debug("http submit leave", zap.String("employee_id", actorID))

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.Submit(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		if payload, marshalErr := json.Marshal(result); marshalErr == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, string(payload), idempotencyTTL).Err(); err != nil {
				h.logger.Warn("store idempotent response failed", zap.Error(err))
			}
		}
	}

	response.SuccessWithMessage(c, http.StatusCreated, result, result.Message)
}

func (h *Handler) GetMine(c *gin.Context) {
	resp, err := h.service.GetMyLeaves(c.Request.Context(), getActorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]LeaveResponse, 0, len(resp))
		for _, l := range resp {
			if l.Status == status {
				filtered = append(filtered, l)
			}
		}
		resp = filtered
	}

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetUncovered(c *gin.Context) {
	resp, err := h.service.GetUncovered(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), getActorID(c), isManager(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Retry(c *gin.Context) {
	result, err := h.service.RetryAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, result, result.Message)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAssignments(c *gin.Context) {
	resp, err := h.service.GetMyAssignments(c.Request.Context(), getActorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetTask(c *gin.Context) {
	var req SetTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.SetTaskStatus(c.Request.Context(), getActorID(c), c.Param("id"), req.Task, *req.Done)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Complete(c *gin.Context) {
	result, err := h.service.Complete(c.Request.Context(), getActorID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}
