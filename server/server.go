package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/feltpoker/holdem/server/connection"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server upgrades HTTP connections to WebSocket and pumps table commands
type Server struct {
	table   *Table
	connMgr *connection.Manager
	logger  *log.Logger
}

// NewServer wires a WebSocket front end onto a table host
func NewServer(table *Table, connMgr *connection.Manager, logger *log.Logger) *Server {
	return &Server{
		table:   table,
		connMgr: connMgr,
		logger:  logger,
	}
}

// Start launches the connection manager loop. Call once before serving.
func (s *Server) Start() {
	go s.connMgr.Start()
}

// HandleWebSocket handles incoming WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	client := &connection.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	s.logger.Info("client connected", "addr", r.RemoteAddr, "client", client.ID)

	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("websocket read failed", "client", client.ID, "err", err)
			}
			break
		}

		if err := s.table.HandleCommand(client, message); err != nil {
			s.logger.Error("command handling failed", "client", client.ID, "err", err)
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer func() {
		client.Conn.Close()
	}()

	for {
		message, ok := <-client.Send
		if !ok {
			// Channel closed
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.Error("websocket write failed", "client", client.ID, "err", err)
			return
		}
	}
}
