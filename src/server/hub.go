package server

import (
	"encoding/json"
	"net/http"
	"time"

	"sentiment-dashboard/src/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			s.clientsMu.Lock()
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.clientsMu.Unlock()
			return

		case client := <-s.register:
			s.clientsMu.Lock()
			s.clients[client] = struct{}{}
			s.Metrics.LiveClients.Set(float64(len(s.clients)))
			s.clientsMu.Unlock()
			s.Logger.Debug("Client %s connected", client.id)
			// Send initial state on connect
			if state := s.snapshot(); state != nil {
				initial := *state
				initial.Type = "INITIAL"
				client.send <- &initial
			}

		case client := <-s.unregister:
			s.clientsMu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.Metrics.LiveClients.Set(float64(len(s.clients)))
			s.clientsMu.Unlock()

		case message := <-s.broadcast:
			s.clientsMu.Lock()
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.Metrics.LiveClients.Set(float64(len(s.clients)))
			s.clientsMu.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Publish replaces the served snapshot and queues it for live clients.
func (s *DashboardServer) Publish(state *models.MDashboardState) {
	if state == nil {
		return
	}
	if state.Timestamp == 0 {
		state.Timestamp = time.Now().Unix()
	}

	s.stateMutex.Lock()
	s.latestState = state
	s.lastError = ""
	s.stateMutex.Unlock()
	s.Metrics.Observe(state)

	if s.Status != nil {
		s.Status.SetServing(true)
	}

	select {
	case s.broadcast <- state:
	default:
		s.Logger.Warning("Broadcast queue full, live clients will catch up on next publish")
	}
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

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Warning("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(s, conn, uuid.NewString())

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.deliver()
	go client.listen()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage answers a subscribe command with the records in the
// requested date range. Unparseable messages close the connection.
func (s *DashboardServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Warning("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	var response interface{}
	state := s.snapshot()
	switch {
	case !validDate(cmd.From) || !validDate(cmd.To):
		response = gin.H{"type": "ERROR", "error": "dates must be YYYY-MM-DD"}
	case state == nil:
		response = gin.H{"type": "ERROR", "error": "no data loaded"}
	default:
		filtered := withRecords(state, filterRecords(state.Records, cmd.From, cmd.To))
		filtered.Type = "INITIAL"
		response = filtered
	}

	// The hub closes send channels under clientsMu
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if _, ok := s.clients[client]; !ok {
		return
	}
	select {
	case client.send <- response:
	default:
		s.Logger.Debug("Client buffer full, dropping subscribe response")
	}
}
