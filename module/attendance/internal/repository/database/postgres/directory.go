package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/database"
)

var _ database.DirectoryRepository = (*DirectoryRepo)(nil)

type companyRow struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Name      string `gorm:"not null"`
	Document  string `gorm:"type:varchar(32);index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (companyRow) TableName() string { return "companies" }

type establishmentRow struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	CompanyID    string  `gorm:"type:varchar(36);index;not null"`
	Name         string  `gorm:"not null"`
	Address      string
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`
	RadiusMeters float64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (establishmentRow) TableName() string { return "establishments" }

type employeeRow struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	CompanyID       string `gorm:"type:varchar(36);index;not null"`
	EstablishmentID string `gorm:"type:varchar(36);index"`
	FullName        string `gorm:"not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	Role            string `gorm:"type:varchar(20);not null"`
	PasswordHash    string `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (employeeRow) TableName() string { return "employees" }

type DirectoryRepo struct {
	db *gorm.DB
}

func NewDirectoryRepo(db *gorm.DB) *DirectoryRepo {
	return &DirectoryRepo{db: db}
}

// CreateCompanyWithOwner inserts a company and its first employee in one transaction.
func (r *DirectoryRepo) CreateCompanyWithOwner(ctx context.Context, c *domain.Company, owner *domain.Employee) error {
	company := companyRow{ID: c.ID, Name: c.Name, Document: c.Document}
	emp := fromEmployee(owner)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		return tx.Create(&emp).Error
	})
	if err != nil {
		return translate(err, "company "+c.Name)
	}

	c.CreatedAt, c.UpdatedAt = company.CreatedAt, company.UpdatedAt
	owner.CreatedAt, owner.UpdatedAt = emp.CreatedAt, emp.UpdatedAt
	return nil
}

func (r *DirectoryRepo) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	var row companyRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, "company "+id)
	}
	c := toCompany(row)
	return &c, nil
}

func (r *DirectoryRepo) CreateEstablishment(ctx context.Context, e *domain.Establishment) error {
	row := fromEstablishment(e)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "establishment")
	}
	e.CreatedAt, e.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *DirectoryRepo) GetEstablishment(ctx context.Context, id string) (*domain.Establishment, error) {
	var row establishmentRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err, "establishment "+id)
	}
	e := toEstablishment(row)
	return &e, nil
}

func (r *DirectoryRepo) ListEstablishments(ctx context.Context, companyID string) ([]domain.Establishment, error) {
	var rows []establishmentRow
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	results := make([]domain.Establishment, len(rows))
	for i, row := range rows {
		results[i] = toEstablishment(row)
	}
	return results, nil
}

func (r *DirectoryRepo) UpdateEstablishment(ctx context.Context, e *domain.Establishment) error {
	res := r.db.WithContext(ctx).Model(&establishmentRow{}).Where("id = ?", e.ID).Updates(map[string]any{
		"name":          e.Name,
		"address":       e.Address,
		"latitude":      e.Coordinate.Lat,
		"longitude":     e.Coordinate.Lon,
		"radius_meters": e.RadiusMeters,
		"updated_at":    time.Now(),
	})
	if res.Error != nil {
		return translate(res.Error, "establishment "+e.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("establishment %s: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *DirectoryRepo) DeleteEstablishment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assigned int64
		if err := tx.Model(&employeeRow{}).Where("establishment_id = ?", id).Count(&assigned).Error; err != nil {
			return err
		}
		if assigned > 0 {
			return fmt.Errorf("establishment %s has %d employees: %w", id, assigned, domain.ErrInUse)
		}

		res := tx.Where("id = ?", id).Delete(&establishmentRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("establishment %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func (r *DirectoryRepo) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	row := fromEmployee(e)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "employee "+e.Email)
	}
	e.CreatedAt, e.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *DirectoryRepo) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	return r.findEmployee(ctx, "id = ?", id)
}

func (r *DirectoryRepo) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findEmployee(ctx, "email = ?", email)
}

func (r *DirectoryRepo) findEmployee(ctx context.Context, cond string, arg string) (*domain.Employee, error) {
	var row employeeRow
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error; err != nil {
		return nil, translate(err, "employee "+arg)
	}
	e := toEmployee(row)
	return &e, nil
}

func (r *DirectoryRepo) ListEmployees(ctx context.Context, companyID string) ([]domain.Employee, error) {
	var rows []employeeRow
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("full_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	results := make([]domain.Employee, len(rows))
	for i, row := range rows {
		results[i] = toEmployee(row)
	}
	return results, nil
}

func (r *DirectoryRepo) UpdateEmployee(ctx context.Context, e *domain.Employee) error {
	res := r.db.WithContext(ctx).Model(&employeeRow{}).Where("id = ?", e.ID).Updates(map[string]any{
		"establishment_id": e.EstablishmentID,
		"full_name":        e.FullName,
		"role":             string(e.Role),
		"updated_at":       time.Now(),
	})
	if res.Error != nil {
		return translate(res.Error, "employee "+e.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("employee %s: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *DirectoryRepo) DeleteEmployee(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&employeeRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func translate(err error, what string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, domain.ErrAlreadyExists)
	}
	return err
}

func toCompany(row companyRow) domain.Company {
	return domain.Company{
		ID:        row.ID,
		Name:      row.Name,
		Document:  row.Document,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func fromEstablishment(e *domain.Establishment) establishmentRow {
	return establishmentRow{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		Name:         e.Name,
		Address:      e.Address,
		Latitude:     e.Coordinate.Lat,
		Longitude:    e.Coordinate.Lon,
		RadiusMeters: e.RadiusMeters,
	}
}

func toEstablishment(row establishmentRow) domain.Establishment {
	return domain.Establishment{
		ID:           row.ID,
		CompanyID:    row.CompanyID,
		Name:         row.Name,
		Address:      row.Address,
		Coordinate:   domain.Coordinate{Lat: row.Latitude, Lon: row.Longitude},
		RadiusMeters: row.RadiusMeters,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func fromEmployee(e *domain.Employee) employeeRow {
	return employeeRow{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		EstablishmentID: e.EstablishmentID,
		FullName:        e.FullName,
		Email:           e.Email,
		Role:            string(e.Role),
		PasswordHash:    e.PasswordHash,
	}
}

func toEmployee(row employeeRow) domain.Employee {
	return domain.Employee{
		ID:              row.ID,
		CompanyID:       row.CompanyID,
		EstablishmentID: row.EstablishmentID,
		FullName:        row.FullName,
		Email:           row.Email,
		Role:            domain.Role(row.Role),
		PasswordHash:    row.PasswordHash,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
