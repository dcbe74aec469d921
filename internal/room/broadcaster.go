package room

// Broadcaster delivers outbound events. Implementations must take whatever
// they need from data before returning; callers keep mutating rooms.
type Broadcaster interface {
	Broadcast(conns []string, action string, data interface{})
	BroadcastAll(action string, data interface{})
}

// Loop runs posted functions one at a time on the goroutine that owns the
// registry. Every Manager method must be called from that goroutine.
type Loop interface {
	Post(fn func())
}
