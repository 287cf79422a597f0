package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/service"
)

type mockDirectory struct {
	getCompanyFn          func(ctx context.Context, companyID string) (*domain.Company, error)
	createEstablishmentFn func(ctx context.Context, e *domain.Establishment) error
	getEstablishmentFn    func(ctx context.Context, companyID, id string) (*domain.Establishment, error)
	listEstablishmentsFn  func(ctx context.Context, companyID string) ([]domain.Establishment, error)
	updateEstablishmentFn func(ctx context.Context, e *domain.Establishment) error
	deleteEstablishmentFn func(ctx context.Context, companyID, id string) error
	createEmployeeFn      func(ctx context.Context, req service.NewEmployee) (*domain.Employee, error)
	getEmployeeFn         func(ctx context.Context, companyID, id string) (*domain.Employee, error)
	listEmployeesFn       func(ctx context.Context, companyID string) ([]domain.Employee, error)
	assignFn              func(ctx context.Context, companyID, employeeID, establishmentID string) (*domain.Employee, error)
	deleteEmployeeFn      func(ctx context.Context, companyID, id string) error
}

func (m *mockDirectory) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	return m.getCompanyFn(ctx, companyID)
}

func (m *mockDirectory) CreateEstablishment(ctx context.Context, e *domain.Establishment) error {
	return m.createEstablishmentFn(ctx, e)
}

func (m *mockDirectory) GetEstablishment(ctx context.Context, companyID, id string) (*domain.Establishment, error) {
	return m.getEstablishmentFn(ctx, companyID, id)
}

func (m *mockDirectory) ListEstablishments(ctx context.Context, companyID string) ([]domain.Establishment, error) {
	return m.listEstablishmentsFn(ctx, companyID)
}

func (m *mockDirectory) UpdateEstablishment(ctx context.Context, e *domain.Establishment) error {
	return m.updateEstablishmentFn(ctx, e)
}

func (m *mockDirectory) DeleteEstablishment(ctx context.Context, companyID, id string) error {
	return m.deleteEstablishmentFn(ctx, companyID, id)
}

func (m *mockDirectory) CreateEmployee(ctx context.Context, req service.NewEmployee) (*domain.Employee, error) {
	return m.createEmployeeFn(ctx, req)
}

func (m *mockDirectory) GetEmployee(ctx context.Context, companyID, id string) (*domain.Employee, error) {
	return m.getEmployeeFn(ctx, companyID, id)
}

func (m *mockDirectory) ListEmployees(ctx context.Context, companyID string) ([]domain.Employee, error) {
	return m.listEmployeesFn(ctx, companyID)
}

func (m *mockDirectory) AssignEstablishment(ctx context.Context, companyID, employeeID, establishmentID string) (*domain.Employee, error) {
	return m.assignFn(ctx, companyID, employeeID, establishmentID)
}

func (m *mockDirectory) DeleteEmployee(ctx context.Context, companyID, id string) error {
	return m.deleteEmployeeFn(ctx, companyID, id)
}

var adminClaims = &service.Claims{EmployeeID: "adm-1", CompanyID: "co-1", Role: domain.RoleAdmin}

func setupDirectoryRouter(dir directoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewDirectoryHandler(dir).Register(r.Group("/admin", withClaims(adminClaims)))
	return r
}

func TestGetCompany_ScopedToCaller(t *testing.T) {
	dir := &mockDirectory{
		getCompanyFn: func(_ context.Context, companyID string) (*domain.Company, error) {
			return &domain.Company{ID: companyID, Name: "Acme"}, nil
		},
	}
	r := setupDirectoryRouter(dir)

	w := serve(r, "GET", "/admin/company", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var company domain.Company
	if err := json.Unmarshal(w.Body.Bytes(), &company); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if company.ID != "co-1" {
		t.Errorf("expected caller company, got %s", company.ID)
	}
}

func TestCreateEstablishment(t *testing.T) {
	dir := &mockDirectory{
		createEstablishmentFn: func(_ context.Context, e *domain.Establishment) error {
			if e.CompanyID != "co-1" || e.Coordinate.Lat != -23.5505 || e.RadiusMeters != 150 {
				t.Fatalf("unexpected establishment %+v", e)
			}
			e.ID = "est-1"
			return nil
		},
	}
	r := setupDirectoryRouter(dir)

	w := postJSON(r, "/admin/establishments", gin.H{
		"name":          "Matriz",
		"address":       "Av. Paulista, 1000",
		"latitude":      -23.5505,
		"longitude":     -46.6333,
		"radius_meters": 150,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var e domain.Establishment
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.ID != "est-1" {
		t.Errorf("expected generated id, got %q", e.ID)
	}
}

func TestCreateEstablishment_MissingCoordinate(t *testing.T) {
	r := setupDirectoryRouter(&mockDirectory{})

	w := postJSON(r, "/admin/establishments", gin.H{"name": "Matriz", "latitude": 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetEstablishment_NotFound(t *testing.T) {
	dir := &mockDirectory{
		getEstablishmentFn: func(_ context.Context, companyID, id string) (*domain.Establishment, error) {
			return nil, fmt.Errorf("establishment %s: %w", id, domain.ErrNotFound)
		},
	}
	r := setupDirectoryRouter(dir)

	if w := serve(r, "GET", "/admin/establishments/missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpdateAndDeleteEstablishment(t *testing.T) {
	var updated *domain.Establishment
	var deleted string
	dir := &mockDirectory{
		updateEstablishmentFn: func(_ context.Context, e *domain.Establishment) error {
			updated = e
			return nil
		},
		deleteEstablishmentFn: func(_ context.Context, _, id string) error {
			deleted = id
			return nil
		},
	}
	r := setupDirectoryRouter(dir)

	w := serveJSON(r, "PUT", "/admin/establishments/est-1", gin.H{"name": "Filial", "latitude": 1, "longitude": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if updated == nil || updated.ID != "est-1" || updated.CompanyID != "co-1" {
		t.Errorf("unexpected update %+v", updated)
	}

	if w := serve(r, "DELETE", "/admin/establishments/est-1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if deleted != "est-1" {
		t.Errorf("unexpected delete %q", deleted)
	}
}

func TestDeleteEstablishment_WithEmployeesConflicts(t *testing.T) {
	dir := &mockDirectory{
		deleteEstablishmentFn: func(_ context.Context, _, id string) error {
			return fmt.Errorf("establishment %s has 3 employees: %w", id, domain.ErrInUse)
		},
	}
	r := setupDirectoryRouter(dir)

	if w := serve(r, "DELETE", "/admin/establishments/est-1", nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestListEstablishments_EmptyIsArray(t *testing.T) {
	dir := &mockDirectory{
		listEstablishmentsFn: func(context.Context, string) ([]domain.Establishment, error) {
			return nil, nil
		},
	}
	r := setupDirectoryRouter(dir)

	if w := serve(r, "GET", "/admin/establishments", nil); w.Body.String() != "[]" {
		t.Errorf("expected [], got %s", w.Body.String())
	}
}

func TestCreateEmployee(t *testing.T) {
	dir := &mockDirectory{
		createEmployeeFn: func(_ context.Context, req service.NewEmployee) (*domain.Employee, error) {
			if req.CompanyID != "co-1" || req.EstablishmentID != "est-1" {
				t.Fatalf("unexpected request %+v", req)
			}
			return &domain.Employee{ID: "emp-9", CompanyID: req.CompanyID, Email: req.Email, Role: domain.RoleEmployee}, nil
		},
	}
	r := setupDirectoryRouter(dir)

	w := postJSON(r, "/admin/employees", gin.H{
		"establishment_id": "est-1",
		"full_name":        "Bruno Lima",
		"email":            "bruno@acme.com",
		"password":         "Secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
}

func TestCreateEmployee_Conflict(t *testing.T) {
	dir := &mockDirectory{
		createEmployeeFn: func(context.Context, service.NewEmployee) (*domain.Employee, error) {
			return nil, fmt.Errorf("create employee: %w", domain.ErrAlreadyExists)
		},
	}
	r := setupDirectoryRouter(dir)

	w := postJSON(r, "/admin/employees", gin.H{"full_name": "Bruno", "email": "bruno@acme.com", "password": "Secret123"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestAssignEstablishment(t *testing.T) {
	dir := &mockDirectory{
		assignFn: func(_ context.Context, companyID, employeeID, establishmentID string) (*domain.Employee, error) {
			return &domain.Employee{ID: employeeID, CompanyID: companyID, EstablishmentID: establishmentID}, nil
		},
	}
	r := setupDirectoryRouter(dir)

	w := serveJSON(r, "PUT", "/admin/employees/emp-9/establishment", gin.H{"establishment_id": "est-2"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var emp domain.Employee
	if err := json.Unmarshal(w.Body.Bytes(), &emp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if emp.EstablishmentID != "est-2" {
		t.Errorf("unexpected establishment %q", emp.EstablishmentID)
	}

	if w := serveJSON(r, "PUT", "/admin/employees/emp-9/establishment", gin.H{}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	dir := &mockDirectory{
		deleteEmployeeFn: func(_ context.Context, _, id string) error {
			return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
		},
	}
	r := setupDirectoryRouter(dir)

	if w := serve(r, "DELETE", "/admin/employees/ghost", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
