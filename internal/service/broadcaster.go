package service

// EmergencyAlertEvent is the message type broadcast when an assessment
// finishes with CRITICAL_ALERTS status
const EmergencyAlertEvent = "emergency_alert"

// Broadcaster pushes assessment events to connected monitoring clients.
// Implemented by the WebSocket alert hub.
type Broadcaster interface {
	BroadcastAlert(msgType string, payload interface{})
}
