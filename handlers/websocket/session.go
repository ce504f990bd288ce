package websocket

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"shoplist-server/broadcast"
	"shoplist-server/core"
	"shoplist-server/handlers/auth"
	"shoplist-server/metrics"
	"shoplist-server/service"
	"shoplist-server/state"

	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

// Each live connection walks connecting -> authenticating -> active ->
// closed. A connection that presents no valid credential goes straight to
// closed without ever subscribing to anything; an active connection is
// subscribed to its user's private channel plus the channel of every list
// the user participated in at authentication time, and thereafter changes
// membership only through explicit join-list / leave-list signals.
// Disconnect tears down every channel membership unconditionally (socket.io
// removes the socket from all rooms on close).

const listRoomPrefix = "list:"

var (
	activeChannels = make(map[string]int)
	channelsMutex  sync.RWMutex
)

// GetActiveChannels returns the number of live connections per list channel.
func GetActiveChannels() map[string]int {
	channelsMutex.RLock()
	defer channelsMutex.RUnlock()

	channels := make(map[string]int, len(activeChannels))
	for k, v := range activeChannels {
		channels[k] = v
	}
	return channels
}

func bumpChannel(listID string, delta int) {
	channelsMutex.Lock()
	defer channelsMutex.Unlock()

	next := activeChannels[listID] + delta
	if next <= 0 {
		delete(activeChannels, listID)
		return
	}
	activeChannels[listID] = next
}

// NewServer creates the socket.io server with the same transport options the
// HTTP surface uses for CORS.
func NewServer() *socketio.Server {
	opts := socketio.DefaultServerOptions()
	opts.SetMaxHttpBufferSize(1000000)
	opts.SetPath("/socket.io")
	opts.SetAllowEIO3(true)
	localhostOrigin := regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1|\[::1\])(:\d+)?$`)
	opts.SetCors(&types.Cors{
		Origin: []any{
			localhostOrigin,
		},
		Credentials: true,
	})
	return socketio.NewServer(nil, opts)
}

// Register wires the connection lifecycle onto the server.
//
//nolint:errcheck // Socket.IO event handlers do not return useful errors
func Register(srv *socketio.Server, st *state.Store, svc *service.Service) {
	srv.On("connection", func(clients ...any) {
		socket, ok := clients[0].(*socketio.Socket)
		if !ok {
			return
		}
		me := socket.Id()

		claims, err := authenticate(socket)
		if err != nil {
			logrus.WithField("socket_id", me).WithError(err).Warn("Connection rejected")
			_ = socket.Emit("unauthorized", map[string]any{"error": "invalid credential"})
			socket.Disconnect(true)
			return
		}
		userID := claims.Subject
		metrics.ActiveConnections.Inc()

		socket.Join(broadcast.UserRoom(userID))

		// Membership snapshot at this instant; later changes need an
		// explicit join-list signal from this connection.
		var listIDs []string
		st.Read(func(snap *core.Snapshot) {
			if user, ok := snap.Users[userID]; ok {
				listIDs = append([]string(nil), user.ListIDs...)
			}
		})
		for _, listID := range listIDs {
			socket.Join(broadcast.ListRoom(listID))
			bumpChannel(listID, 1)
		}

		logrus.WithFields(logrus.Fields{
			"socket_id": me,
			"user_id":   userID,
			"channels":  len(listIDs),
		}).Info("Connection active")
		_ = socket.Emit("session-ready", map[string]any{
			"userId":  userID,
			"listIds": listIDs,
		})

		socket.On("join-list", func(datas ...any) {
			ack, args := extractAck(datas)
			listID, err := stringArg(args, 0)
			if err != nil {
				respondWithAck(socket, ack, "join-list-ack", errPayload(err), err)
				return
			}

			if !socket.Rooms().Has(broadcast.ListRoom(listID)) {
				socket.Join(broadcast.ListRoom(listID))
				bumpChannel(listID, 1)
			}
			respondWithAck(socket, ack, "join-list-ack", map[string]any{
				"status": "ok",
				"listId": listID,
			}, nil)
		})

		socket.On("leave-list", func(datas ...any) {
			ack, args := extractAck(datas)
			listID, err := stringArg(args, 0)
			if err != nil {
				respondWithAck(socket, ack, "leave-list-ack", errPayload(err), err)
				return
			}

			if socket.Rooms().Has(broadcast.ListRoom(listID)) {
				socket.Leave(broadcast.ListRoom(listID))
				bumpChannel(listID, -1)
			}
			respondWithAck(socket, ack, "leave-list-ack", map[string]any{
				"status": "ok",
				"listId": listID,
			}, nil)
		})

		// The one mutating command carried over the realtime connection;
		// everything else mutates over HTTP.
		socket.On("toggle-reaction", func(datas ...any) {
			ack, args := extractAck(datas)
			itemID, err := stringArg(args, 0)
			if err != nil {
				respondWithAck(socket, ack, "toggle-reaction-ack", errPayload(err), err)
				return
			}
			kind, err := stringArg(args, 1)
			if err != nil {
				respondWithAck(socket, ack, "toggle-reaction-ack", errPayload(err), err)
				return
			}

			counts, err := svc.ToggleReaction(itemID, userID, core.ReactionKind(kind))
			if err != nil {
				respondWithAck(socket, ack, "toggle-reaction-ack", errPayload(err), err)
				return
			}
			respondWithAck(socket, ack, "toggle-reaction-ack", map[string]any{
				"status":   "ok",
				"itemId":   counts.ItemID,
				"likes":    counts.Likes,
				"dislikes": counts.Dislikes,
			}, nil)
		})

		socket.On("disconnecting", func(datas ...any) {
			for _, room := range socket.Rooms().Keys() {
				if listID, ok := strings.CutPrefix(string(room), listRoomPrefix); ok {
					bumpChannel(listID, -1)
				}
			}
			logrus.WithFields(logrus.Fields{
				"socket_id": me,
				"user_id":   userID,
			}).Info("Connection closing")
		})

		socket.On("disconnect", func(datas ...any) {
			metrics.ActiveConnections.Dec()
			socket.RemoveAllListeners("")
		})
	})
}

// authenticate reads the credential from the handshake's auth payload and
// verifies it. No credential or an invalid one rejects the connection.
func authenticate(socket *socketio.Socket) (*auth.AppClaims, error) {
	handshake := socket.Handshake()
	if handshake == nil {
		return nil, fmt.Errorf("missing handshake")
	}

	token := ""
	if authData, ok := handshake.Auth.(map[string]any); ok {
		token, _ = authData["token"].(string)
	}
	if token == "" {
		return nil, fmt.Errorf("credential is required")
	}
	return auth.ParseJWT(token)
}

func stringArg(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("argument %d is required", i)
	}
	value, ok := args[i].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("argument %d must be a non-empty string", i)
	}
	return value, nil
}
