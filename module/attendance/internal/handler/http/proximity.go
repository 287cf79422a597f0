package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/service"
)

// streamBuffer bounds how many states a slow SSE client may lag behind;
// further states are dropped rather than blocking the location feed.
const streamBuffer = 16

type locationService interface {
	Report(ctx context.Context, el *domain.EmployeeLocation) error
	GetLatest(ctx context.Context, employeeID string) (*domain.EmployeeLocation, error)
}

type proximityChecker interface {
	Check(ctx context.Context, employeeID string, observer domain.Coordinate) (domain.ProximityState, domain.Target, error)
}

type trackingService interface {
	Watch(ctx context.Context, employeeID string, onUpdate func(domain.ProximityState)) (*service.Session, domain.Target, error)
}

type coordinateBody struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (b coordinateBody) coordinate() domain.Coordinate {
	return domain.Coordinate{Lat: *b.Latitude, Lon: *b.Longitude}
}

type evaluateRequest struct {
	Observer     coordinateBody `json:"observer" binding:"required"`
	Target       coordinateBody `json:"target" binding:"required"`
	RadiusMeters float64        `json:"radius_meters"`
}

type locationRequest struct {
	coordinateBody
	Timestamp int64 `json:"timestamp"`
}

type proximityResponse struct {
	domain.ProximityState
	Target domain.Target `json:"target"`
}

type ProximityHandler struct {
	locationSvc locationService
	checker     proximityChecker
	tracking    trackingService
	now         func() time.Time
}

func NewProximityHandler(locationSvc locationService, checker proximityChecker, tracking trackingService) *ProximityHandler {
	return &ProximityHandler{
		locationSvc: locationSvc,
		checker:     checker,
		tracking:    tracking,
		now:         time.Now,
	}
}

func (h *ProximityHandler) RegisterPublic(r *gin.RouterGroup) {
	r.POST("/proximity/evaluate", h.Evaluate)
}

func (h *ProximityHandler) Register(r *gin.RouterGroup) {
	r.POST("/location", h.ReportLocation)
	r.GET("/location", h.GetLatestLocation)
	r.GET("/proximity", h.Check)
	r.GET("/proximity/stream", h.Stream)
}

func (h *ProximityHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	st, err := service.Evaluate(req.Observer.coordinate(), req.Target.coordinate(), req.RadiusMeters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *ProximityHandler) ReportLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ts := h.now()
	if req.Timestamp > 0 {
		ts = time.Unix(req.Timestamp, 0)
	}

	el := &domain.EmployeeLocation{
		EmployeeID: c.Param("employee_id"),
		Fix:        domain.Fix{Coordinate: req.coordinate(), Timestamp: ts},
	}
	if err := h.locationSvc.Report(c.Request.Context(), el); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *ProximityHandler) GetLatestLocation(c *gin.Context) {
	el, err := h.locationSvc.GetLatest(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, el)
}

func (h *ProximityHandler) Check(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat parameter"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon parameter"})
		return
	}

	st, target, err := h.checker.Check(c.Request.Context(), c.Param("employee_id"), domain.Coordinate{Lat: lat, Lon: lon})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, proximityResponse{ProximityState: st, Target: target})
}

// Stream pushes a server-sent "proximity" event for every location the
// employee's devices report until the client goes away.
func (h *ProximityHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	updates := make(chan domain.ProximityState, streamBuffer)

	session, target, err := h.tracking.Watch(ctx, c.Param("employee_id"), func(st domain.ProximityState) {
		select {
		case updates <- st:
		default:
		}
	})
	if err != nil {
		writeError(c, err)
		return
	}
	defer session.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("target", target)
	c.Writer.Flush()

	send := func(st domain.ProximityState) {
		c.SSEvent("proximity", st)
		c.Writer.Flush()
	}

	for {
		// drain pending states before honouring cancellation
		select {
		case st := <-updates:
			send(st)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return
		case st := <-updates:
			send(st)
		}
	}
}
