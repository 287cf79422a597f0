package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/config"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	gdb, err := config.NewGorm(db)
	if err != nil {
		log.Fatalf("gorm: %v", err)
	}
	if err := attendance.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	attendanceModule, err := attendance.Build(db, gdb, amqpConn, mqttClient, attendance.Options{
		JWTSecret:           cfg.JWTSecret,
		JWTTTL:              cfg.JWTTTL,
		DefaultRadiusMeters: cfg.DefaultRadiusMeters,
	})
	if err != nil {
		log.Fatalf("attendance module: %v", err)
	}

	if err := attendanceModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()

	health := config.NewHealthChecker(db, amqpConn, mqttClient)
	health.Register(r)

	attendanceModule.RegisterRoutes(r.Group("/api/v1"))

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
