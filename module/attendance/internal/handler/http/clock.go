package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

type clockService interface {
	Record(ctx context.Context, employeeID string, kind domain.ClockKind, observer domain.Coordinate) (*domain.ClockEntry, error)
	History(ctx context.Context, query *domain.HistoryQuery) ([]domain.ClockEntry, error)
}

type clockRequest struct {
	coordinateBody
	Kind string `json:"kind" binding:"required"`
}

type ClockHandler struct {
	clockSvc clockService
}

func NewClockHandler(clockSvc clockService) *ClockHandler {
	return &ClockHandler{clockSvc: clockSvc}
}

func (h *ClockHandler) Register(r *gin.RouterGroup) {
	r.POST("/clock-ins", h.Record)
	r.GET("/clock-ins", h.History)
}

func (h *ClockHandler) Record(c *gin.Context) {
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	entry, err := h.clockSvc.Record(c.Request.Context(), c.Param("employee_id"), domain.ClockKind(req.Kind), req.coordinate())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ClockHandler) History(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		EmployeeID: c.Param("employee_id"),
		Start:      time.Unix(start, 0),
		End:        time.Unix(end, 0),
	}

	entries, err := h.clockSvc.History(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.ClockEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
