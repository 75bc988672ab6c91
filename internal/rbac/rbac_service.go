package rbac

import (
	"strings"
	"sync"

	"go-coverage/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	LoadPolicy(policy map[string][]Permission, inheritance map[string]string) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

// LoadPolicy replaces every rule held by the enforcer.
func (s *service) LoadPolicy(policy map[string][]Permission, inheritance map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	rules := 0
	for role, perms := range policy {
		for _, p := range perms {
			if _, err := s.enforcer.AddPolicy(role, p.Resource, p.Action); err != nil {
				return err
			}
			rules++
		}
	}
	for role, parent := range inheritance {
		if _, err := s.enforcer.AddGroupingPolicy(role, parent); err != nil {
			return err
		}
	}
	if err := s.enforcer.BuildRoleLinks(); err != nil {
		return err
	}

	s.logger.Info("rbac policy loaded", zap.Int("rules", rules), zap.Int("inherited_roles", len(inheritance)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("role", role),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
