package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

var establishmentColumns = []string{"id", "company_id", "name", "address", "latitude", "longitude", "radius_meters", "created_at", "updated_at"}

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	return gdb, mock
}

func TestGetEstablishment_Success(t *testing.T) {
	gdb, mock := newGormMock(t)

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows(establishmentColumns).
		AddRow("est-1", "co-1", "Matriz", "Av. Paulista, 1000", -23.5614, -46.6559, 150.0, ts, ts)
	mock.ExpectQuery(`SELECT \* FROM "establishments" WHERE id = \$1`).
		WillReturnRows(rows)

	repo := NewDirectoryRepo(gdb)
	e, err := repo.GetEstablishment(context.Background(), "est-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name != "Matriz" {
		t.Errorf("expected Matriz, got %s", e.Name)
	}
	if e.Coordinate.Lat != -23.5614 || e.Coordinate.Lon != -46.6559 {
		t.Errorf("unexpected coordinate %+v", e.Coordinate)
	}
	if e.RadiusMeters != 150 {
		t.Errorf("expected radius 150, got %f", e.RadiusMeters)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetEstablishment_NotFound(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectQuery(`SELECT \* FROM "establishments"`).
		WillReturnRows(sqlmock.NewRows(establishmentColumns))

	repo := NewDirectoryRepo(gdb)
	_, err := repo.GetEstablishment(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListEstablishments_Success(t *testing.T) {
	gdb, mock := newGormMock(t)

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows(establishmentColumns).
		AddRow("est-1", "co-1", "Filial", "", -23.0, -46.0, 0.0, ts, ts).
		AddRow("est-2", "co-1", "Matriz", "", -23.5, -46.6, 100.0, ts, ts)
	mock.ExpectQuery(`SELECT \* FROM "establishments" WHERE company_id = \$1 ORDER BY name`).
		WillReturnRows(rows)

	repo := NewDirectoryRepo(gdb)
	results, err := repo.ListEstablishments(context.Background(), "co-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 establishments, got %d", len(results))
	}
	if results[1].ID != "est-2" {
		t.Errorf("expected est-2, got %s", results[1].ID)
	}
}

func TestUpdateEstablishment_NotFound(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectExec(`UPDATE "establishments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewDirectoryRepo(gdb)
	err := repo.UpdateEstablishment(context.Background(), &domain.Establishment{ID: "missing", Name: "x"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func expectAssignedCount(mock sqlmock.Sqlmock, n int) {
	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE establishment_id = \$1`).
		WithArgs("est-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
}

func TestDeleteEstablishment(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectBegin()
	expectAssignedCount(mock, 0)
	mock.ExpectExec(`DELETE FROM "establishments" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	expectAssignedCount(mock, 0)
	mock.ExpectExec(`DELETE FROM "establishments" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewDirectoryRepo(gdb)
	if err := repo.DeleteEstablishment(context.Background(), "est-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteEstablishment(context.Background(), "est-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteEstablishment_EmployeesAssigned(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectBegin()
	expectAssignedCount(mock, 2)
	mock.ExpectRollback()

	repo := NewDirectoryRepo(gdb)
	err := repo.DeleteEstablishment(context.Background(), "est-1")
	if !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetEmployeeByEmail_Success(t *testing.T) {
	gdb, mock := newGormMock(t)

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows([]string{"id", "company_id", "establishment_id", "full_name", "email", "role", "password_hash", "created_at", "updated_at"}).
		AddRow("emp-1", "co-1", "est-1", "Ana Souza", "ana@example.com", "EMPLOYEE", "hash", ts, ts)
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE email = \$1`).
		WillReturnRows(rows)

	repo := NewDirectoryRepo(gdb)
	e, err := repo.GetEmployeeByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != "emp-1" || e.Role != domain.RoleEmployee {
		t.Errorf("unexpected employee %+v", e)
	}
	if e.PasswordHash != "hash" {
		t.Errorf("expected password hash to be loaded")
	}
}
