package api

import (
	"net/http"
	"sync"

	"fitlog/internal/domain/workout"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Event is a live-sync message pushed to a user's connected devices
type Event struct {
	Type      string           `json:"type"`
	Workout   *workout.Workout `json:"workout,omitempty"`
	WorkoutID string           `json:"workout_id,omitempty"`
}

// WebSocketManager fans workout events out to the owner's open
// connections. Implements the workout service's Notifier.
type WebSocketManager struct {
	mu          sync.Mutex
	connections map[string]map[string]*websocket.Conn // userID -> connID -> conn
}

// NewWebSocketManager creates a new WebSocket manager
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		connections: make(map[string]map[string]*websocket.Conn),
	}
}

// Register adds a connection to the manager
func (m *WebSocketManager) Register(userID, connID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.connections[userID]; !exists {
		m.connections[userID] = make(map[string]*websocket.Conn)
	}
	m.connections[userID][connID] = conn
	log.Info().Str("user_id", userID).Str("conn_id", connID).Msg("WebSocket connection registered")
}

// Unregister removes a connection from the manager
func (m *WebSocketManager) Unregister(userID, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conns, exists := m.connections[userID]; exists {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(m.connections, userID)
		}
	}
	log.Info().Str("user_id", userID).Str("conn_id", connID).Msg("WebSocket connection unregistered")
}

// WorkoutCreated implements workout.Notifier
func (m *WebSocketManager) WorkoutCreated(w *workout.Workout) {
	m.broadcast(w.OwnerID, Event{Type: "workout.created", Workout: w})
}

// WorkoutCompleted implements workout.Notifier
func (m *WebSocketManager) WorkoutCompleted(w *workout.Workout) {
	m.broadcast(w.OwnerID, Event{Type: "workout.completed", Workout: w})
}

// WorkoutDeleted implements workout.Notifier
func (m *WebSocketManager) WorkoutDeleted(ownerID, workoutID string) {
	m.broadcast(ownerID, Event{Type: "workout.deleted", WorkoutID: workoutID})
}

// broadcast writes an event to every connection the user has open. The
// manager lock also serializes writes to each connection.
func (m *WebSocketManager) broadcast(userID string, event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for connID, conn := range m.connections[userID] {
		if err := conn.WriteJSON(event); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Str("conn_id", connID).Msg("Failed to push event")
		}
	}
}

// HandleWebSocket godoc
//
// @Summary      Live workout sync
// @Description  Upgrades to a WebSocket that streams the caller's workout events. Authenticate with ?token=<access token>.
// @Tags         sync
// @Param        token query string true "Bearer access token"
// @Success      101
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /ws [get]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}

	claims, err := h.authService.VerifyToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	connID := uuid.New().String()
	h.wsManager.Register(claims.UserID, connID, conn)
	defer func() {
		h.wsManager.Unregister(claims.UserID, connID)
		conn.Close()
	}()

	// Keep connection alive and listen for close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Info().Str("user_id", claims.UserID).Str("conn_id", connID).Msg("WebSocket connection closed")
			break
		}
	}
}
