package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/internal/repository/publisher"
)

var _ publisher.ClockPublisher = (*ClockPublisher)(nil)

const (
	ExchangeName = "ponto.events"
	QueueName    = "clock_entries"
	RoutingKey   = "clock.recorded"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type ClockPublisher struct {
	ch channel
}

func NewClockPublisher(conn *amqp.Connection) (*ClockPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := Declare(ch); err != nil {
		return nil, err
	}

	return &ClockPublisher{ch: ch}, nil
}

// Declare sets up the topic exchange and the durable queue bound to clock events.
func Declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(QueueName, "clock.*", ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

type clockMessage struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EstablishmentID string  `json:"establishment_id"`
	Kind            string  `json:"kind"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	DistanceMeters  float64 `json:"distance_meters"`
	RecordedAt      int64   `json:"recorded_at"`
	Timestamp       int64   `json:"timestamp"`
}

func (p *ClockPublisher) PublishClock(ctx context.Context, event *domain.ClockEvent) error {
	e := event.Entry
	msg := clockMessage{
		ID:              e.ID,
		EmployeeID:      e.EmployeeID,
		EstablishmentID: e.EstablishmentID,
		Kind:            string(e.Kind),
		Latitude:        e.Location.Lat,
		Longitude:       e.Location.Lon,
		DistanceMeters:  e.DistanceMeters,
		RecordedAt:      e.RecordedAt.Unix(),
		Timestamp:       event.Timestamp,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal clock event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, ExchangeName, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Body:         body,
	})
}
