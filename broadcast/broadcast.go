package broadcast

import (
	"shoplist-server/metrics"

	"github.com/sirupsen/logrus"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

// Channel naming. A connection subscribed to ListRoom(id) observes every
// mutation of that list; UserRoom(id) is the user's private channel.
func ListRoom(listID string) socketio.Room {
	return socketio.Room("list:" + listID)
}

func UserRoom(userID string) socketio.Room {
	return socketio.Room("user:" + userID)
}

// SocketBroadcaster fans events out over socket.io rooms. Per-room FIFO
// ordering and membership cleanup on disconnect come from the socket.io
// adapter.
type SocketBroadcaster struct {
	io *socketio.Server
}

// New wraps a socket.io server as a Broadcaster.
func New(io *socketio.Server) *SocketBroadcaster {
	return &SocketBroadcaster{io: io}
}

func (b *SocketBroadcaster) ToList(listID, event string, payload any) {
	b.emit(ListRoom(listID), event, payload)
}

func (b *SocketBroadcaster) ToUser(userID, event string, payload any) {
	b.emit(UserRoom(userID), event, payload)
}

// Noop drops every event. Used when no socket server is attached.
type Noop struct{}

func Discard() Noop { return Noop{} }

func (Noop) ToList(listID, event string, payload any) {}
func (Noop) ToUser(userID, event string, payload any) {}

func (b *SocketBroadcaster) emit(room socketio.Room, event string, payload any) {
	metrics.BroadcastsTotal.WithLabelValues(event).Inc()
	if err := b.io.To(room).Emit(event, payload); err != nil {
		// Delivery is best-effort; nothing upstream waits on it.
		logrus.WithFields(logrus.Fields{
			"room":  room,
			"event": event,
		}).WithError(err).Warn("Broadcast emit failed")
	}
}
