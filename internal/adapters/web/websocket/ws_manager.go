// Package websocket pushes live audit events (new findings, completed
// analyses, log lines) to connected browser clients.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lcalzada-xor/scaudit/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Allow same-origin (no Origin header)
		if origin == "" {
			return true
		}

		allowedOrigins := []string{
			"http://localhost:8080",
			"http://127.0.0.1:8080",
			"http://[::1]:8080",
		}
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}

		log.Printf("WebSocket: Rejected origin: %s", origin)
		return false
	},
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Manager tracks connected clients and broadcasts audit events to them.
type Manager struct {
	clients map[*websocket.Conn]*domain.User
	mu      sync.Mutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[*websocket.Conn]*domain.User),
	}
}

// HandleWebSocket upgrades an authenticated request to a WebSocket connection.
func (m *Manager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Extract user from context (set by AuthMiddleware)
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = user
	m.mu.Unlock()

	log.Printf("WebSocket connected: user=%s, role=%s", user.Username, user.Role)

	// Clean up on disconnect
	go func() {
		defer conn.Close()
		defer func() {
			m.mu.Lock()
			delete(m.clients, conn)
			m.mu.Unlock()
			log.Printf("WebSocket disconnected: user=%s", user.Username)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// BroadcastFinding notifies clients about a newly recorded finding.
func (m *Manager) BroadcastFinding(f *domain.Finding) {
	m.broadcast(Message{Type: "finding", Payload: f})
}

// BroadcastAnalysis notifies clients that an AI analysis completed.
func (m *Manager) BroadcastAnalysis(a *domain.Analysis) {
	// The full contract source is not re-broadcast
	m.broadcast(Message{Type: "analysis", Payload: map[string]interface{}{
		"id":         a.ID,
		"program_id": a.ProgramID,
		"type":       a.Type,
		"model":      a.Model,
		"created_at": a.CreatedAt,
	}})
}

// BroadcastLog sends a log message to all connected clients
func (m *Manager) BroadcastLog(message, level string) {
	m.broadcast(Message{Type: "log", Payload: map[string]string{
		"message": message,
		"level":   level,
	}})
}

func (m *Manager) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("WebSocket marshal error:", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(m.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
