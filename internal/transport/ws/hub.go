package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// MsgMonitorConnected is sent to a monitor right after it joins the
// feed. Alert events arrive with the type the emitting service chose,
// e.g. service.EmergencyAlertEvent.
const MsgMonitorConnected MessageType = "monitor_connected"

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans emergency assessment alerts out to every connected monitor
type Hub struct {
	monitors map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
}

// Connection represents one monitoring client
type Connection struct {
	ClinicianID string
	Send        chan []byte
	Hub         *Hub
}

// NewHub creates a new alert hub
func NewHub() *Hub {
	h := &Hub{
		monitors:   make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.monitors[conn] = true
			h.mu.Unlock()
			log.Printf("Monitor %s connected to alert feed", conn.ClinicianID)

			payload, _ := json.Marshal(map[string]string{"clinicianId": conn.ClinicianID})
			welcome, _ := json.Marshal(&Message{Type: MsgMonitorConnected, Payload: payload})
			select {
			case conn.Send <- welcome:
			default:
			}

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.monitors[conn] {
				delete(h.monitors, conn)
				close(conn.Send)
				log.Printf("Monitor %s disconnected from alert feed", conn.ClinicianID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg)
			for conn := range h.monitors {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a monitor connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a monitor connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastAlert sends an event to all monitors (implements
// service.Broadcaster)
func (h *Hub) BroadcastAlert(msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &Message{
		Type:    MessageType(msgType),
		Payload: data,
	}
}
