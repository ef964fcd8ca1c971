package services

// Broadcaster pushes events to live viewers of a tournament. Satisfied by
// *live.Hub; a nil-safe no-op implementation is handy in tests.
type Broadcaster interface {
	BroadcastToRoom(roomID string, eventType string, payload interface{})
}

// NopBroadcaster drops every event.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastToRoom(string, string, interface{}) {}
