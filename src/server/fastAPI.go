package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"brokerage-client/src/interfaces"
	"brokerage-client/src/logger"
	"brokerage-client/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
//
// Read-only HTTP and websocket facade over the polling loop: REST endpoints
// serve the latest quote snapshot and stored history, the websocket pushes
// every new snapshot to subscribed clients.
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	Market interfaces.IMarketClient
	DB     interfaces.IDatabase
	engine *gin.Engine
	httpd  *http.Server

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MLatestData
	register   chan *Client
	unregister chan *Client

	// Local cache
	latestState *models.MLatestData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, log *logger.Logger, market interfaces.IMarketClient, db interfaces.IDatabase) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:  cfg,
		Logger:  log,
		Market:  market,
		DB:      db,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered channel so a burst of updates never blocks the poll loop
		broadcast:  make(chan *models.MLatestData, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		latestState: &models.MLatestData{
			Type:      "INITIAL",
			Quotes:    make(map[string]models.MQuote),
			Errors:    make(map[string]string),
			Timestamp: 0,
		},
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/quotes", s.getQuotes)
	s.engine.GET("/api/history", s.getHistory)
	s.engine.GET("/api/symbols", s.getSymbols)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	s.httpd = &http.Server{Addr: addr, Handler: s.engine}
	if err := s.httpd.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	if s.httpd != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpd.Shutdown(ctx)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": timestamp,
	})
}

// -----------------------------------------------------------------------------

// getQuotes serves the latest polled snapshot, optionally filtered by a
// comma-separated symbols parameter.
func (s *APIServer) getQuotes(c *gin.Context) {
	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	s.stateMutex.RLock()
	response := s.snapshotResponse(symbols)
	s.stateMutex.RUnlock()

	c.JSON(200, response)
}

// -----------------------------------------------------------------------------

// getHistory serves stored daily bars for one symbol between optional unix
// second bounds.
func (s *APIServer) getHistory(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		c.JSON(400, gin.H{"error": "symbol parameter is required"})
		return
	}

	from := parseUnixParam(c.Query("from"), 0)
	to := parseUnixParam(c.Query("to"), time.Now().UTC().Unix())

	bars, err := s.DB.LoadPriceBars(symbol, from, to)
	if err != nil {
		s.Logger.Error("History load failed for %s: %v", symbol, err)
		c.JSON(500, gin.H{"error": "storage failure"})
		return
	}

	c.JSON(200, gin.H{
		"symbol": symbol,
		"bars":   bars,
	})
}

// -----------------------------------------------------------------------------

// getSymbols proxies a symbol lookup to the brokerage service and records
// the matches.
func (s *APIServer) getSymbols(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	if search == "" {
		c.JSON(400, gin.H{"error": "search parameter is required"})
		return
	}

	matches, err := s.Market.FindSymbols(c.Request.Context(), search)
	if err != nil {
		s.Logger.Error("Symbol lookup failed for %q: %v", search, err)
		c.JSON(502, gin.H{"error": "lookup failure"})
		return
	}

	if err := s.DB.SaveSymbolMatches(matches); err != nil {
		s.Logger.Warning("Failed to record symbol matches: %v", err)
	}

	c.JSON(200, gin.H{"matches": matches})
}
