package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/service"
)

const claimsKey = "claims"

type tokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

func AuthRequired(parser tokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := parser.ParseToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil || !claims.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

type employeeLookup interface {
	GetEmployee(ctx context.Context, companyID, id string) (*domain.Employee, error)
}

// RequireSelfOrAdmin lets employees act on their own :employee_id only, and
// admins on employees of their own company.
func RequireSelfOrAdmin(employees employeeLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
			return
		}

		id := c.Param("employee_id")
		if claims.EmployeeID == id {
			c.Next()
			return
		}
		if !claims.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed for this employee"})
			return
		}
		if _, err := employees.GetEmployee(c.Request.Context(), claims.CompanyID, id); err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *service.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}

// companyOf returns the company id of the authenticated caller.
func companyOf(c *gin.Context) string {
	if claims := claimsFrom(c); claims != nil {
		return claims.CompanyID
	}
	return ""
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrInUse), errors.Is(err, domain.ErrInvalidSequence):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotEligible):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrLocationUnavailable):
		status = http.StatusServiceUnavailable
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
