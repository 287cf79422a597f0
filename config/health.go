package config

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type amqpConn interface {
	IsClosed() bool
}

type mqttConn interface {
	IsConnected() bool
}

// HealthChecker reports the state of every backing service the server needs
// to record clock-ins: Postgres, RabbitMQ for clock events and the MQTT feed.
type HealthChecker struct {
	db   pinger
	amqp amqpConn
	mqtt mqttConn
}

func NewHealthChecker(db pinger, amqp amqpConn, mqtt mqttConn) *HealthChecker {
	return &HealthChecker{db: db, amqp: amqp, mqtt: mqtt}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	deps := gin.H{}
	healthy := true

	report := func(name, problem string) {
		if problem != "" {
			deps[name] = gin.H{"status": "down", "error": problem}
			healthy = false
			return
		}
		deps[name] = gin.H{"status": "up"}
	}

	var dbProblem string
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		dbProblem = err.Error()
	}
	report("postgres", dbProblem)

	var amqpProblem string
	if h.amqp.IsClosed() {
		amqpProblem = "connection closed"
	}
	report("rabbitmq", amqpProblem)

	var mqttProblem string
	if !h.mqtt.IsConnected() {
		mqttProblem = "not connected"
	}
	report("mqtt", mqttProblem)

	status, overall := http.StatusOK, "healthy"
	if !healthy {
		status, overall = http.StatusServiceUnavailable, "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
