package employee

import (
	"context"
	"encoding/json"
	"time"

	employeeerrors "go-coverage/internal/employee/errors"
	"go-coverage/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = 1 * time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	AdjustWorkload(ctx context.Context, id string, delta int) (EmployeeResponse, error)
	InvalidateOptions(ctx context.Context)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, mapToResponse(e))
	}
	return resp, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result()
		if err == nil {
			var resp []EmployeeOptionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
			s.logger.Warn("employee options cache corrupted", zap.String("key", EmployeeOptionsKey))
		} else if err != redis.Nil {
			s.logger.Warn("employee options cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (any, error) {
		employees, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeOptionResponse, 0, len(employees))
		for _, e := range employees {
			resp = append(resp, EmployeeOptionResponse{
				EmployeeID: e.EmployeeID,
				Name:       e.Name,
				Position:   e.Position,
				Department: e.Department,
			})
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, string(payload), optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("employee options cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}
	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if id == "" {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !found {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return mapToResponse(e), nil
}

// AdjustWorkload is the manual correction path for a manager. The engine
// reserves capacity through the repository directly inside its own
// transaction.
func (s *service) AdjustWorkload(ctx context.Context, id string, delta int) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	ok, err := s.repo.AdjustWorkload(ctx, id, delta, MaxConcurrentLoad)
	if err != nil {
		log.Error("adjust workload failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	e, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !found {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	if !ok {
		log.Warn("adjust workload rejected",
			zap.String("employee_id", id),
			zap.Int("current_workload", e.CurrentWorkload),
			zap.Int("delta", delta),
		)
		return EmployeeResponse{}, employeeerrors.ErrWorkloadOverflow
	}

	log.Info("workload adjusted",
		zap.String("employee_id", id),
		zap.Int("delta", delta),
		zap.Int("current_workload", e.CurrentWorkload),
	)
	return mapToResponse(e), nil
}

func (s *service) InvalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	canCover := e.CanCover
	if canCover == nil {
		canCover = []string{}
	}
	return EmployeeResponse{
		EmployeeID:      e.EmployeeID,
		Name:            e.Name,
		Position:        e.Position,
		Department:      e.Department,
		Phone:           e.Phone,
		Email:           e.Email,
		Role:            e.Role,
		CurrentWorkload: e.CurrentWorkload,
		Available:       e.HasCapacity(),
		Skills:          skills,
		CanCover:        canCover,
	}
}
