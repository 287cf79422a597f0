package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/GabrielSLange/evolua-ponto-sistema-sub000/module/attendance/domain"
)

const TopicPattern = "/ponto/employee/+/location"

type locationReporter interface {
	Report(ctx context.Context, el *domain.EmployeeLocation) error
}

type locationMessage struct {
	EmployeeID string  `json:"employee_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
}

// LocationSubscriber feeds device fixes published over MQTT into the
// location service, which stores them and fans them out to open sessions.
type LocationSubscriber struct {
	client      mqtt.Client
	locationSvc locationReporter
}

func NewLocationSubscriber(client mqtt.Client, locationSvc locationReporter) *LocationSubscriber {
	return &LocationSubscriber{
		client:      client,
		locationSvc: locationSvc,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw locationMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid location message: %v", err)
		return
	}

	topicID := employeeFromTopic(msg.Topic())
	if raw.EmployeeID == "" {
		raw.EmployeeID = topicID
	}
	if topicID != "" && raw.EmployeeID != topicID {
		log.Printf("validation error: employee_id %q does not match topic %q", raw.EmployeeID, msg.Topic())
		return
	}

	if err := validateLocationMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	el := &domain.EmployeeLocation{
		EmployeeID: raw.EmployeeID,
		Fix: domain.Fix{
			Coordinate: domain.Coordinate{Lat: raw.Latitude, Lon: raw.Longitude},
			Timestamp:  time.Unix(raw.Timestamp, 0),
		},
	}

	if err := s.locationSvc.Report(context.Background(), el); err != nil {
		log.Printf("report location error: %v", err)
	}
}

// employeeFromTopic extracts the wildcard segment of TopicPattern.
func employeeFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) != 5 || parts[1] != "ponto" || parts[2] != "employee" || parts[4] != "location" {
		return ""
	}
	return parts[3]
}

func validateLocationMessage(msg *locationMessage) error {
	if msg.EmployeeID == "" {
		return fmt.Errorf("employee_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
