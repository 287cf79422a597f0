package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/database"
)

type RegisterCompany struct {
	CompanyName string
	Document    string
	OwnerName   string
	Email       string
	Password    string
}

type NewEmployee struct {
	CompanyID       string
	EstablishmentID string
	FullName        string
	Email           string
	Role            domain.Role
	Password        string
}

// DirectoryService manages companies, their establishments and employees.
// Every read and write is scoped to the caller's company.
type DirectoryService struct {
	repo          database.DirectoryRepository
	defaultRadius float64
}

func NewDirectoryService(repo database.DirectoryRepository, defaultRadius float64) *DirectoryService {
	return &DirectoryService{repo: repo, defaultRadius: defaultRadius}
}

func (s *DirectoryService) Register(ctx context.Context, req RegisterCompany) (*domain.Company, *domain.Employee, error) {
	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		return nil, nil, fmt.Errorf("company_name: required: %w", domain.ErrInvalidInput)
	}

	company := &domain.Company{
		ID:       uuid.NewString(),
		Name:     name,
		Document: strings.TrimSpace(req.Document),
	}
	owner, err := newEmployee(NewEmployee{
		CompanyID: company.ID,
		FullName:  req.OwnerName,
		Email:     req.Email,
		Role:      domain.RoleOwner,
		Password:  req.Password,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.CreateCompanyWithOwner(ctx, company, owner); err != nil {
		return nil, nil, err
	}
	return company, owner, nil
}

func (s *DirectoryService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.repo.GetCompany(ctx, companyID)
}

func (s *DirectoryService) CreateEstablishment(ctx context.Context, e *domain.Establishment) error {
	if err := validateEstablishment(e); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	return s.repo.CreateEstablishment(ctx, e)
}

func (s *DirectoryService) GetEstablishment(ctx context.Context, companyID, id string) (*domain.Establishment, error) {
	e, err := s.repo.GetEstablishment(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CompanyID != companyID {
		return nil, fmt.Errorf("establishment %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

func (s *DirectoryService) ListEstablishments(ctx context.Context, companyID string) ([]domain.Establishment, error) {
	return s.repo.ListEstablishments(ctx, companyID)
}

func (s *DirectoryService) UpdateEstablishment(ctx context.Context, e *domain.Establishment) error {
	if err := validateEstablishment(e); err != nil {
		return err
	}
	if _, err := s.GetEstablishment(ctx, e.CompanyID, e.ID); err != nil {
		return err
	}
	return s.repo.UpdateEstablishment(ctx, e)
}

func (s *DirectoryService) DeleteEstablishment(ctx context.Context, companyID, id string) error {
	if _, err := s.GetEstablishment(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.DeleteEstablishment(ctx, id)
}

func (s *DirectoryService) CreateEmployee(ctx context.Context, req NewEmployee) (*domain.Employee, error) {
	if req.Role == "" {
		req.Role = domain.RoleEmployee
	}
	emp, err := newEmployee(req)
	if err != nil {
		return nil, err
	}
	if emp.EstablishmentID != "" {
		if _, err := s.GetEstablishment(ctx, emp.CompanyID, emp.EstablishmentID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateEmployee(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *DirectoryService) GetEmployee(ctx context.Context, companyID, id string) (*domain.Employee, error) {
	e, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CompanyID != companyID {
		return nil, fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

func (s *DirectoryService) ListEmployees(ctx context.Context, companyID string) ([]domain.Employee, error) {
	return s.repo.ListEmployees(ctx, companyID)
}

func (s *DirectoryService) AssignEstablishment(ctx context.Context, companyID, employeeID, establishmentID string) (*domain.Employee, error) {
	emp, err := s.GetEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetEstablishment(ctx, companyID, establishmentID); err != nil {
		return nil, err
	}

	emp.EstablishmentID = establishmentID
	if err := s.repo.UpdateEmployee(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *DirectoryService) DeleteEmployee(ctx context.Context, companyID, id string) error {
	if _, err := s.GetEmployee(ctx, companyID, id); err != nil {
		return err
	}
	return s.repo.DeleteEmployee(ctx, id)
}

// ResolveTarget returns the clock-in target of an employee: the coordinate of
// the assigned establishment and its radius, falling back to the configured
// default radius when the establishment has none.
func (s *DirectoryService) ResolveTarget(ctx context.Context, employeeID string) (domain.Target, error) {
	emp, err := s.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return domain.Target{}, err
	}
	if emp.EstablishmentID == "" {
		return domain.Target{}, fmt.Errorf("employee %s has no establishment: %w", employeeID, domain.ErrNotFound)
	}

	est, err := s.repo.GetEstablishment(ctx, emp.EstablishmentID)
	if err != nil {
		return domain.Target{}, err
	}

	radius := est.RadiusMeters
	if radius <= 0 {
		radius = s.defaultRadius
	}
	return domain.Target{
		EstablishmentID: est.ID,
		Coordinate:      est.Coordinate,
		RadiusMeters:    radius,
	}, nil
}

func validateEstablishment(e *domain.Establishment) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Address = strings.TrimSpace(e.Address)
	if e.CompanyID == "" {
		return fmt.Errorf("company_id: required: %w", domain.ErrInvalidInput)
	}
	if e.Name == "" {
		return fmt.Errorf("name: required: %w", domain.ErrInvalidInput)
	}
	if !e.Coordinate.Valid() {
		return fmt.Errorf("coordinate %v: %w", e.Coordinate, domain.ErrInvalidInput)
	}
	if !(e.RadiusMeters >= 0) {
		return fmt.Errorf("radius_meters: must not be negative: %w", domain.ErrInvalidInput)
	}
	return nil
}

func newEmployee(req NewEmployee) (*domain.Employee, error) {
	name := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.CompanyID == "" {
		return nil, fmt.Errorf("company_id: required: %w", domain.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("full_name: required: %w", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("email: %w", domain.ErrInvalidInput)
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("role %q: %w", req.Role, domain.ErrInvalidInput)
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &domain.Employee{
		ID:              uuid.NewString(),
		CompanyID:       req.CompanyID,
		EstablishmentID: req.EstablishmentID,
		FullName:        name,
		Email:           email,
		Role:            req.Role,
		PasswordHash:    string(hash),
	}, nil
}

var errWeakPassword = errors.New("password must have at least 8 characters with lower case, upper case and a digit")

func validatePassword(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("%v: %w", errWeakPassword, domain.ErrInvalidInput)
	}
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return fmt.Errorf("%v: %w", errWeakPassword, domain.ErrInvalidInput)
	}
	return nil
}
