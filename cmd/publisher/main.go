package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

type locationMessage struct {
	EmployeeID string  `json:"employee_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
}

const metersPerDegree = 111320.0

// jitter returns a point up to maxMeters away from (lat, lon).
func jitter(lat, lon, maxMeters float64) (float64, float64) {
	d := rand.Float64() * maxMeters
	bearing := rand.Float64() * 2 * math.Pi
	dLat := d * math.Cos(bearing) / metersPerDegree
	dLon := d * math.Sin(bearing) / (metersPerDegree * math.Cos(lat*math.Pi/180))
	return math.Max(-90, math.Min(90, lat+dLat)), math.Max(-180, math.Min(180, lon+dLon))
}

func parseFloat(name, s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s must be a number\n", name)
		os.Exit(1)
	}
	return v
}

// Simulates an employee's phone reporting fixes around a point. Most fixes
// land within 50m; some wander up to 500m to exercise the not-eligible path.
func main() {
	if len(os.Args) < 5 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds> <employee_id> <lat> <lon>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}
	employeeID := os.Args[2]
	lat := parseFloat("lat", os.Args[3])
	lon := parseFloat("lon", os.Args[4])

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("ponto-device-" + uuid.NewString()[:8])

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("/ponto/employee/%s/location", employeeID)
	log.Printf("connected to %s, publishing to %s every %ds...", broker, topic, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		spread := 50.0
		if rand.Float64() < 0.3 {
			spread = 500
		}
		fixLat, fixLon := jitter(lat, lon, spread)

		msg := locationMessage{
			EmployeeID: employeeID,
			Latitude:   fixLat,
			Longitude:  fixLon,
			Timestamp:  time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		token := client.Publish(topic, 1, false, payload)
		token.Wait()
		if err := token.Error(); err != nil {
			log.Printf("publish: %v", err)
			continue
		}

		log.Printf("published to %s: %s", topic, payload)
	}
}
