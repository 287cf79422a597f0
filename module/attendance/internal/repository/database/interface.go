package database

import (
	"context"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

type LocationRepository interface {
	Insert(ctx context.Context, loc *domain.EmployeeLocation) error
	GetLatest(ctx context.Context, employeeID string) (*domain.EmployeeLocation, error)
}

type ClockRepository interface {
	// Append stores entry if check accepts the employee's latest entry (nil
	// when there is none). Appends for one employee are serialized.
	Append(ctx context.Context, entry *domain.ClockEntry, check func(last *domain.ClockEntry) error) error
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClockEntry, error)
}

type DirectoryRepository interface {
	CreateCompanyWithOwner(ctx context.Context, c *domain.Company, owner *domain.Employee) error
	GetCompany(ctx context.Context, id string) (*domain.Company, error)

	CreateEstablishment(ctx context.Context, e *domain.Establishment) error
	GetEstablishment(ctx context.Context, id string) (*domain.Establishment, error)
	ListEstablishments(ctx context.Context, companyID string) ([]domain.Establishment, error)
	UpdateEstablishment(ctx context.Context, e *domain.Establishment) error
	// DeleteEstablishment fails with ErrInUse while employees are assigned to it.
	DeleteEstablishment(ctx context.Context, id string) error

	CreateEmployee(ctx context.Context, e *domain.Employee) error
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, companyID string) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, e *domain.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}
