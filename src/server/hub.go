package server

import (
	"encoding/json"
	"net/http"

	"brokerage-client/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop. The client map is shared with the
// health endpoint, so every mutation happens under stateMutex.
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			state := s.latestState
			s.stateMutex.Unlock()

			// Send initial state on connect
			if state != nil {
				client.send <- state
			}

		case client := <-s.unregister:
			s.stateMutex.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()

		case message := <-s.broadcast:
			// Update state and broadcast
			s.stateMutex.Lock()
			s.latestState = message
			for client := range s.clients {
				select {
				case client.send <- client.filtered(message):
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.stateMutex.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateAllDatas replaces the cached snapshot without waking any clients.
func (s *APIServer) UpdateAllDatas(data *models.MLatestData) {
	s.stateMutex.Lock()
	data.Type = "UPDATE"
	s.latestState = data
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// Broadcast queues a snapshot for the Hub loop to cache and push out.
func (s *APIServer) Broadcast(data *models.MLatestData) {
	data.Type = "UPDATE"
	s.broadcast <- data
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MLatestData, 256),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	client.setSubscription(cmd.Symbols)

	s.stateMutex.RLock()
	response := s.snapshotResponse(cmd.Symbols)
	s.stateMutex.RUnlock()

	select {
	case client.send <- response:
	default:
		// Client buffer full, skip; the next broadcast catches it up.
	}
}

// -----------------------------------------------------------------------------
// Response Filtering
// -----------------------------------------------------------------------------

// snapshotResponse builds an INITIAL view of the cached state limited to the
// given symbols. An empty list means everything. Caller holds stateMutex.
func (s *APIServer) snapshotResponse(symbols []string) *models.MLatestData {
	return &models.MLatestData{
		Type:      "INITIAL",
		Quotes:    filterQuotes(s.latestState.Quotes, symbols),
		Errors:    filterErrors(s.latestState.Errors, symbols),
		Timestamp: s.latestState.Timestamp,
	}
}
