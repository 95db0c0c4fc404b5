package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brokerage-client/src/logger"
	"brokerage-client/src/models"

	"github.com/gin-gonic/gin"
)

func TestGetHealth_TracksConnections(t *testing.T) {
	cfg := &models.MConfig{Name: "test", LogLevel: "ERROR"}
	log := logger.NewLogger(cfg.LogLevel, cfg.Name)
	s := NewAPIServer(cfg, log, nil, nil)
	go s.handleWebsockets()

	client := &Client{hub: s, send: make(chan *models.MLatestData, 1)}
	s.register <- client
	// The initial state arrives only after the hub has recorded the client.
	<-client.send

	if got := healthConnections(t, s); got != 1 {
		t.Errorf("expected 1 connection, got %d", got)
	}

	s.unregister <- client
	// The send channel closes once the hub has dropped the client.
	for range client.send {
	}

	if got := healthConnections(t, s); got != 0 {
		t.Errorf("expected 0 connections, got %d", got)
	}
}

func healthConnections(t *testing.T, s *APIServer) int {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	s.getHealth(c)

	var resp struct {
		Connections int `json:"connections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse health response: %v", err)
	}
	return resp.Connections
}
