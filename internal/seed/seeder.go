package seed

import (
	"context"
	"fmt"

	"go-coverage/internal/employee"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	repo   employee.Repository
	cost   int
	logger *zap.Logger
}

func NewSeeder(repo employee.Repository, logger ...*zap.Logger) *Seeder {
	l := zap.L().Named("seed")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("seed")
	}
	return &Seeder{repo: repo, cost: bcrypt.DefaultCost, logger: l}
}

// WithCost overrides the bcrypt cost, mostly for tests.
func (s *Seeder) WithCost(cost int) *Seeder {
	s.cost = cost
	return s
}

// Run inserts dir when the directory table is empty and returns how many
// employees were created. A populated table is left untouched.
func (s *Seeder) Run(ctx context.Context, dir Directory) (int, error) {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: count employees: %w", err)
	}
	if existing > 0 {
		s.logger.Info("directory already populated, skipping seed", zap.Int64("employees", existing))
		return 0, nil
	}

	employees, err := dir.ToEmployees(s.cost)
	if err != nil {
		return 0, err
	}
	for i := range employees {
		if err := s.repo.Create(ctx, &employees[i]); err != nil {
			return i, fmt.Errorf("seed: create %s: %w", employees[i].EmployeeID, err)
		}
	}

	s.logger.Info("directory seeded", zap.Int("employees", len(employees)))
	return len(employees), nil
}
