package attendance

import (
	"database/sql"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	handler "github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/handler/http"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/handler/subscriber"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/locationhub"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/database/postgres"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/publisher/rabbitmq"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/service"
)

type Options struct {
	JWTSecret           string
	JWTTTL              time.Duration
	DefaultRadiusMeters float64
}

type Module struct {
	LocationSvc  *service.LocationService
	DirectorySvc *service.DirectoryService
	ClockSvc     *service.ClockService
	TrackingSvc  *service.TrackingService
	AuthSvc      *service.AuthService

	authHandler      *handler.AuthHandler
	proximityHandler *handler.ProximityHandler
	clockHandler     *handler.ClockHandler
	directoryHandler *handler.DirectoryHandler
	subscriber       *subscriber.LocationSubscriber
}

// Build wires the attendance module. db and gdb share one connection pool:
// locations and clock entries go through database/sql, the directory through gorm.
func Build(db *sql.DB, gdb *gorm.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, opts Options) (*Module, error) {
	hub := locationhub.New()

	locationRepo := postgres.NewLocationRepo(db)
	clockRepo := postgres.NewClockRepo(db)
	directoryRepo := postgres.NewDirectoryRepo(gdb)

	clockPub, err := rabbitmq.NewClockPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("clock publisher: %w", err)
	}

	locationSvc := service.NewLocationService(locationRepo, hub)
	directorySvc := service.NewDirectoryService(directoryRepo, opts.DefaultRadiusMeters)
	clockSvc := service.NewClockService(clockRepo, directorySvc, clockPub)
	trackingSvc := service.NewTrackingService(directorySvc, func(employeeID string) service.LocationSource {
		return hub.Source(employeeID)
	})
	authSvc := service.NewAuthService(directoryRepo, opts.JWTSecret, opts.JWTTTL)

	return &Module{
		LocationSvc:  locationSvc,
		DirectorySvc: directorySvc,
		ClockSvc:     clockSvc,
		TrackingSvc:  trackingSvc,
		AuthSvc:      authSvc,

		authHandler:      handler.NewAuthHandler(authSvc, directorySvc),
		proximityHandler: handler.NewProximityHandler(locationSvc, clockSvc, trackingSvc),
		clockHandler:     handler.NewClockHandler(clockSvc),
		directoryHandler: handler.NewDirectoryHandler(directorySvc),
		subscriber:       subscriber.NewLocationSubscriber(mqttClient, locationSvc),
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.authHandler.Register(r)
	m.proximityHandler.RegisterPublic(r)

	authed := r.Group("", handler.AuthRequired(m.AuthSvc))

	employee := authed.Group("/employees/:employee_id", handler.RequireSelfOrAdmin(m.DirectorySvc))
	m.proximityHandler.Register(employee)
	m.clockHandler.Register(employee)

	admin := authed.Group("/admin", handler.RequireAdmin())
	m.directoryHandler.Register(admin)
}

// Migrate creates or updates the tables the module owns.
func Migrate(gdb *gorm.DB) error {
	return postgres.Migrate(gdb)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
