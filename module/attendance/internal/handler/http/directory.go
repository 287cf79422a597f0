package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/service"
)

type directoryService interface {
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)

	CreateEstablishment(ctx context.Context, e *domain.Establishment) error
	GetEstablishment(ctx context.Context, companyID, id string) (*domain.Establishment, error)
	ListEstablishments(ctx context.Context, companyID string) ([]domain.Establishment, error)
	UpdateEstablishment(ctx context.Context, e *domain.Establishment) error
	DeleteEstablishment(ctx context.Context, companyID, id string) error

	CreateEmployee(ctx context.Context, req service.NewEmployee) (*domain.Employee, error)
	GetEmployee(ctx context.Context, companyID, id string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, companyID string) ([]domain.Employee, error)
	AssignEstablishment(ctx context.Context, companyID, employeeID, establishmentID string) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, companyID, id string) error
}

type establishmentRequest struct {
	coordinateBody
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address"`
	RadiusMeters float64 `json:"radius_meters"`
}

func (r establishmentRequest) establishment(companyID string) *domain.Establishment {
	return &domain.Establishment{
		CompanyID:    companyID,
		Name:         r.Name,
		Address:      r.Address,
		Coordinate:   r.coordinate(),
		RadiusMeters: r.RadiusMeters,
	}
}

type employeeRequest struct {
	EstablishmentID string `json:"establishment_id"`
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Role            string `json:"role"`
	Password        string `json:"password" binding:"required"`
}

type assignRequest struct {
	EstablishmentID string `json:"establishment_id" binding:"required"`
}

// DirectoryHandler serves the admin screens. Every route is scoped to the
// caller's company.
type DirectoryHandler struct {
	directory directoryService
}

func NewDirectoryHandler(directory directoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

func (h *DirectoryHandler) Register(r *gin.RouterGroup) {
	r.GET("/company", h.GetCompany)

	r.POST("/establishments", h.CreateEstablishment)
	r.GET("/establishments", h.ListEstablishments)
	r.GET("/establishments/:id", h.GetEstablishment)
	r.PUT("/establishments/:id", h.UpdateEstablishment)
	r.DELETE("/establishments/:id", h.DeleteEstablishment)

	r.POST("/employees", h.CreateEmployee)
	r.GET("/employees", h.ListEmployees)
	r.GET("/employees/:id", h.GetEmployee)
	r.PUT("/employees/:id/establishment", h.AssignEstablishment)
	r.DELETE("/employees/:id", h.DeleteEmployee)
}

func (h *DirectoryHandler) GetCompany(c *gin.Context) {
	company, err := h.directory.GetCompany(c.Request.Context(), companyOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *DirectoryHandler) CreateEstablishment(c *gin.Context) {
	var req establishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	e := req.establishment(companyOf(c))
	if err := h.directory.CreateEstablishment(c.Request.Context(), e); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *DirectoryHandler) ListEstablishments(c *gin.Context) {
	results, err := h.directory.ListEstablishments(c.Request.Context(), companyOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if results == nil {
		results = []domain.Establishment{}
	}
	c.JSON(http.StatusOK, results)
}

func (h *DirectoryHandler) GetEstablishment(c *gin.Context) {
	e, err := h.directory.GetEstablishment(c.Request.Context(), companyOf(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *DirectoryHandler) UpdateEstablishment(c *gin.Context) {
	var req establishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	e := req.establishment(companyOf(c))
	e.ID = c.Param("id")
	if err := h.directory.UpdateEstablishment(c.Request.Context(), e); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *DirectoryHandler) DeleteEstablishment(c *gin.Context) {
	if err := h.directory.DeleteEstablishment(c.Request.Context(), companyOf(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DirectoryHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	emp, err := h.directory.CreateEmployee(c.Request.Context(), service.NewEmployee{
		CompanyID:       companyOf(c),
		EstablishmentID: req.EstablishmentID,
		FullName:        req.FullName,
		Email:           req.Email,
		Role:            domain.Role(req.Role),
		Password:        req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

func (h *DirectoryHandler) ListEmployees(c *gin.Context) {
	results, err := h.directory.ListEmployees(c.Request.Context(), companyOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if results == nil {
		results = []domain.Employee{}
	}
	c.JSON(http.StatusOK, results)
}

func (h *DirectoryHandler) GetEmployee(c *gin.Context) {
	emp, err := h.directory.GetEmployee(c.Request.Context(), companyOf(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *DirectoryHandler) AssignEstablishment(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	emp, err := h.directory.AssignEstablishment(c.Request.Context(), companyOf(c), c.Param("id"), req.EstablishmentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *DirectoryHandler) DeleteEmployee(c *gin.Context) {
	if err := h.directory.DeleteEmployee(c.Request.Context(), companyOf(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
