package config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeDB struct{ err error }

func (f fakeDB) PingContext(context.Context) error { return f.err }

type fakeAMQP struct{ closed bool }

func (f fakeAMQP) IsClosed() bool { return f.closed }

type fakeMQTT struct{ connected bool }

func (f fakeMQTT) IsConnected() bool { return f.connected }

func checkHealth(t *testing.T, h *HealthChecker) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return w.Code, body
}

func TestHealth_AllUp(t *testing.T) {
	code, body := checkHealth(t, NewHealthChecker(fakeDB{}, fakeAMQP{}, fakeMQTT{connected: true}))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", body["status"])
	}
}

func TestHealth_Down(t *testing.T) {
	tests := []struct {
		name string
		h    *HealthChecker
		dep  string
	}{
		{"postgres", NewHealthChecker(fakeDB{err: errors.New("refused")}, fakeAMQP{}, fakeMQTT{connected: true}), "postgres"},
		{"rabbitmq", NewHealthChecker(fakeDB{}, fakeAMQP{closed: true}, fakeMQTT{connected: true}), "rabbitmq"},
		{"mqtt", NewHealthChecker(fakeDB{}, fakeAMQP{}, fakeMQTT{}), "mqtt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := checkHealth(t, tt.h)
			if code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", code)
			}
			deps := body["dependencies"].(map[string]any)
			dep := deps[tt.dep].(map[string]any)
			if dep["status"] != "down" {
				t.Errorf("expected %s down, got %v", tt.dep, dep["status"])
			}
		})
	}
}
