package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/database"
)

var _ database.ClockRepository = (*ClockRepo)(nil)

const clockColumns = `id, employee_id, establishment_id, kind, latitude, longitude, distance_meters, recorded_at`

type ClockRepo struct {
	db *sql.DB
}

func NewClockRepo(db *sql.DB) *ClockRepo {
	return &ClockRepo{db: db}
}

// Append runs under a transaction-scoped advisory lock on the employee so
// concurrent clock-ins see each other's entries.
func (r *ClockRepo) Append(ctx context.Context, e *domain.ClockEntry, check func(last *domain.ClockEntry) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, e.EmployeeID); err != nil {
		return fmt.Errorf("lock employee %s: %w", e.EmployeeID, err)
	}

	last, err := scanClockEntry(tx.QueryRowContext(ctx,
		`SELECT `+clockColumns+` FROM clock_entries WHERE employee_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		e.EmployeeID,
	))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		last = nil
	case err != nil:
		return fmt.Errorf("last clock entry of %s: %w", e.EmployeeID, err)
	}

	if err := check(last); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO clock_entries (`+clockColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.EmployeeID, e.EstablishmentID, string(e.Kind), e.Location.Lat, e.Location.Lon, e.DistanceMeters, e.RecordedAt,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ClockRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClockEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clockColumns+` FROM clock_entries WHERE employee_id = $1 AND recorded_at >= $2 AND recorded_at <= $3 ORDER BY recorded_at ASC`,
		query.EmployeeID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.ClockEntry
	for rows.Next() {
		e, err := scanClockEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *e)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClockEntry(s scanner) (*domain.ClockEntry, error) {
	var (
		e    domain.ClockEntry
		kind string
	)
	if err := s.Scan(&e.ID, &e.EmployeeID, &e.EstablishmentID, &kind,
		&e.Location.Lat, &e.Location.Lon, &e.DistanceMeters, &e.RecordedAt); err != nil {
		return nil, err
	}
	e.Kind = domain.ClockKind(kind)
	return &e, nil
}
