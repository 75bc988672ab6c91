package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-coverage/internal/auth/errors"
	"go-coverage/internal/employee"
	employeeerrors "go-coverage/internal/employee/errors"
	"go-coverage/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	// Authenticate reports whether password belongs to employeeID.
	Authenticate(ctx context.Context, employeeID, password string) bool
	Login(ctx context.Context, employeeID, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (AuthResponse, error)
}

type service struct {
	employees employee.Repository
	secret    []byte
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(employees employee.Repository, jwtSecret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		employees: employees,
		secret:    []byte(jwtSecret),
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) Authenticate(ctx context.Context, employeeID, password string) bool {
	_, ok := s.verify(ctx, employeeID, password)
	return ok
}

// verify never tells the caller which half of the credential was wrong.
func (s *service) verify(ctx context.Context, employeeID, password string) (employee.Employee, bool) {
	e, found, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load employee for login failed", zap.Error(err))
		return employee.Employee{}, false
	}
	if !found || e.PasswordHash == "" {
		return employee.Employee{}, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return employee.Employee{}, false
	}
	return e, true
}

func (s *service) Login(ctx context.Context, employeeID, password string) (string, string, AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	e, ok := s.verify(ctx, employeeID, password)
	if !ok {
		log.Info("login rejected", zap.String("employee_id", employeeID))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(e)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	log.Info("login success", zap.String("employee_id", e.EmployeeID), zap.String("role", e.Role))
	return access, refresh, toAuthResponse(e), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["token_type"].(string); typ != tokenTypeRefresh {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	e, found, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	if !found {
		return "", "", AuthResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	access, refresh, err := s.issueTokens(e)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return access, refresh, toAuthResponse(e), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (AuthResponse, error) {
	e, found, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return AuthResponse{}, err
	}
	if !found {
		return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return toAuthResponse(e), nil
}

func (s *service) issueTokens(e employee.Employee) (string, string, error) {
	access, err := s.generateToken(e, tokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return "", "", errors.Join(autherrors.ErrTokenGenerationFailed, err)
	}
	refresh, err := s.generateToken(e, tokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return "", "", errors.Join(autherrors.ErrTokenGenerationFailed, err)
	}
	return access, refresh, nil
}

func (s *service) generateToken(e employee.Employee, tokenType string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"employee_id": e.EmployeeID,
		"role":        e.Role,
		"token_type":  tokenType,
		"iat":         now.Unix(),
		"exp":         now.Add(expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func toAuthResponse(e employee.Employee) AuthResponse {
	return AuthResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		Role:       e.Role,
	}
}
