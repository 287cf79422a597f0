package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/service"
)

type authService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Employee, error)
}

type registrar interface {
	Register(ctx context.Context, req service.RegisterCompany) (*domain.Company, *domain.Employee, error)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Document    string `json:"document"`
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type AuthHandler struct {
	auth      authService
	registrar registrar
}

func NewAuthHandler(auth authService, registrar registrar) *AuthHandler {
	return &AuthHandler{auth: auth, registrar: registrar}
}

func (h *AuthHandler) Register(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.RegisterCompany)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	token, emp, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "employee": emp})
}

func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	company, owner, err := h.registrar.Register(c.Request.Context(), service.RegisterCompany{
		CompanyName: req.CompanyName,
		Document:    req.Document,
		OwnerName:   req.FullName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company, "owner": owner})
}
