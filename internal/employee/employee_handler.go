package employee

import (
	"net/http"
	"sort"
	"strings"

	"go-coverage/internal/shared/apperror"
	"go-coverage/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Position), q) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	if dept := strings.TrimSpace(c.Query("department")); dept != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.EqualFold(e.Department, dept) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "id")))
	desc := strings.EqualFold(c.DefaultQuery("sort_dir", "asc"), "desc")
	sort.SliceStable(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = strings.ToLower(resp[i].Name) < strings.ToLower(resp[j].Name)
		case "workload":
			less = resp[i].CurrentWorkload < resp[j].CurrentWorkload
		default:
			less = resp[i].EmployeeID < resp[j].EmployeeID
		}
		if desc {
			return !less
		}
		return less
	})

	items, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AdjustWorkload(c *gin.Context) {
	var req AdjustWorkloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.AdjustWorkload(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
