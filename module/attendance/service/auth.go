package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

type Claims struct {
	EmployeeID string      `json:"employee_id"`
	CompanyID  string      `json:"company_id"`
	Role       domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type employeeFinder interface {
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
}

type AuthService struct {
	employees employeeFinder
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(employees employeeFinder, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		employees: employees,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Login checks the credentials and returns a signed HS256 token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	emp, err := s.employees.GetEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrUnauthorized
	}

	now := s.now()
	claims := Claims{
		EmployeeID: emp.ID,
		CompanyID:  emp.CompanyID,
		Role:       emp.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   emp.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, emp, nil
}

func (s *AuthService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return claims, nil
}
