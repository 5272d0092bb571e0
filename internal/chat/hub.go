package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultHistorySize = 50

// Message is one line in a household's dinner-planning chat. RecipeID
// is set when a member shares a recipe into the conversation.
type Message struct {
	Type        string    `json:"type"`
	HouseholdID string    `json:"household_id"`
	User        string    `json:"user"`
	Text        string    `json:"text,omitempty"`
	RecipeID    string    `json:"recipe_id,omitempty"`
	At          time.Time `json:"at"`
}

type room struct {
	connections map[*websocket.Conn]string
	history     []Message
}

// Hub keeps one in-memory room per household.
type Hub struct {
	mu          sync.Mutex
	rooms       map[string]*room
	historySize int
}

func NewHub(historySize int) *Hub {
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &Hub{
		rooms:       make(map[string]*room),
		historySize: historySize,
	}
}

func (h *Hub) Join(householdID string, ws *websocket.Conn, user string) []Message {
	var history []Message
	h.mu.Lock()
	r := h.roomLocked(householdID)
	r.connections[ws] = user
	history = append(history, r.history...)
	h.mu.Unlock()

	h.Broadcast(Message{
		Type:        "user_join",
		HouseholdID: householdID,
		User:        user,
		At:          time.Now().UTC(),
	})

	return history
}

func (h *Hub) Leave(householdID string, ws *websocket.Conn) {
	var user string
	h.mu.Lock()
	if r, ok := h.rooms[householdID]; ok {
		if u, exists := r.connections[ws]; exists {
			user = u
		}
		delete(r.connections, ws)
	}
	h.mu.Unlock()

	_ = ws.Close()

	if user != "" {
		h.Broadcast(Message{
			Type:        "user_leave",
			HouseholdID: householdID,
			User:        user,
			At:          time.Now().UTC(),
		})
	}
}

func (h *Hub) Broadcast(msg Message) {
	if msg.At.IsZero() {
		msg.At = time.Now().UTC()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[msg.HouseholdID]
	if !ok {
		return
	}

	if msg.Type == "message" || msg.Type == "recipe_share" {
		r.history = append(r.history, msg)
		if len(r.history) > h.historySize {
			r.history = r.history[len(r.history)-h.historySize:]
		}
	}

	for ws := range r.connections {
		if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = ws.Close()
			delete(r.connections, ws)
		}
	}
}

func (h *Hub) History(householdID string) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[householdID]; ok {
		return append([]Message(nil), r.history...)
	}
	return nil
}

func (h *Hub) User(householdID string, ws *websocket.Conn) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[householdID]; ok {
		return r.connections[ws]
	}
	return ""
}

func (h *Hub) roomLocked(householdID string) *room {
	r, ok := h.rooms[householdID]
	if !ok {
		r = &room{connections: make(map[*websocket.Conn]string)}
		h.rooms[householdID] = r
	}
	return r
}
