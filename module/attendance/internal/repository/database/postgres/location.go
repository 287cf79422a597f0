package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/database"
)

var _ database.LocationRepository = (*LocationRepo)(nil)

type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Insert(ctx context.Context, loc *domain.EmployeeLocation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employee_locations (employee_id, latitude, longitude, timestamp) VALUES ($1, $2, $3, $4)`,
		loc.EmployeeID, loc.Fix.Lat, loc.Fix.Lon, loc.Fix.Timestamp,
	)
	return err
}

func (r *LocationRepo) GetLatest(ctx context.Context, employeeID string) (*domain.EmployeeLocation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT employee_id, latitude, longitude, timestamp FROM employee_locations WHERE employee_id = $1 ORDER BY timestamp DESC LIMIT 1`,
		employeeID,
	)

	var el domain.EmployeeLocation
	if err := row.Scan(&el.EmployeeID, &el.Fix.Lat, &el.Fix.Lon, &el.Fix.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("location of %s: %w", employeeID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &el, nil
}
