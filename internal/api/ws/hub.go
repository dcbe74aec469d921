package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"tabletop-arena/internal/auth"
	"tabletop-arena/internal/game"
	"tabletop-arena/internal/room"
	"tabletop-arena/internal/shared"
)

var (
	ErrStopped          = errors.New("hub stopped")
	errIdentityMismatch = errors.New("Invalid or expired token")
	errInternal         = errors.New("Something went wrong")
)

// Hub is the single goroutine that owns every room and connection. Anything
// that reads or changes them is posted to it and runs in arrival order.
type Hub struct {
	tasks    chan func()
	done     chan struct{}
	clients  map[string]*Client
	rooms    RoomManager
	resolver *auth.Resolver
	decoder  *decoder
}

func NewHub(resolver *auth.Resolver) *Hub {
	return &Hub{
		tasks:    make(chan func(), 1024),
		done:     make(chan struct{}),
		clients:  make(map[string]*Client),
		resolver: resolver,
		decoder:  newDecoder(),
	}
}

// Use attaches the room manager. It must be called before Run.
func (h *Hub) Use(rm RoomManager) { h.rooms = rm }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Run processes posted work until ctx is cancelled, then closes every
// connection.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	log.Info().Msg("hub started")
	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clients {
				h.drop(c)
			}
			log.Info().Msg("hub stopped")
			return nil
		case fn := <-h.tasks:
			h.safely(fn)
		}
	}
}

func (h *Hub) safely(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("recovered in hub loop")
		}
	}()
	fn()
}

// Post queues fn for the hub goroutine. Work posted after Run returned is
// dropped.
func (h *Hub) Post(fn func()) {
	select {
	case h.tasks <- fn:
	case <-h.done:
	}
}

// Do runs fn on the hub goroutine and waits for it to finish.
func (h *Hub) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	h.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return nil
	case <-h.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Broadcast marshals once and queues the frame for each listed connection.
func (h *Hub) Broadcast(conns []string, action string, data interface{}) {
	msg, ok := encode(action, data)
	if !ok {
		return
	}
	for _, id := range conns {
		if c, ok := h.clients[id]; ok {
			h.deliver(c, msg)
		}
	}
}

func (h *Hub) BroadcastAll(action string, data interface{}) {
	msg, ok := encode(action, data)
	if !ok {
		return
	}
	for _, c := range h.clients {
		h.deliver(c, msg)
	}
}

func encode(action string, data interface{}) ([]byte, bool) {
	msg, err := json.Marshal(shared.Outbound{Action: action, Data: data})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to encode message")
		return nil, false
	}
	return msg, true
}

// deliver never blocks the loop; a client that cannot keep up is dropped.
func (h *Hub) deliver(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		log.Warn().Str("conn", c.id).Msg("send buffer full, dropping connection")
		h.drop(c)
	}
}

// drop forgets c and closes its send queue, which makes the writer flush what
// is queued and close the socket.
func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
}

// HandleWS resolves the caller's identity and upgrades the connection.
func (h *Hub) HandleWS(c *gin.Context) {
	identity, err := h.resolver.Resolve(auth.TokenFromRequest(c.Request))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade connection")
		return
	}

	client := &Client{
		id:       "conn_" + uuid.NewString(),
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		identity: identity,
	}
	h.Post(func() { h.register(client) })

	go client.writePump()
	client.readPump()
}

func (h *Hub) register(c *Client) {
	h.clients[c.id] = c
	log.Info().Str("conn", c.id).Str("user", c.identity.ID).Msg("client connected")
	h.rooms.SendLobby(c.id)
}

func (h *Hub) unregister(c *Client) {
	h.drop(c)
	log.Info().Str("conn", c.id).Str("user", c.identity.ID).Msg("client disconnected")
	h.rooms.OnDisconnect(c.id)
}

// dispatch handles one decoded event from c on the hub goroutine. Rejections
// go back to c alone.
func (h *Hub) dispatch(c *Client, ev interface{}) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("conn", c.id).Msg("event handler panicked")
			h.rooms.Reject(c.id, errInternal)
		}
	}()
	a := room.Actor{Conn: c.id, Identity: c.identity.ID, DisplayName: c.identity.DisplayName}

	var err error
	switch e := ev.(type) {
	case createRoomEvent:
		err = h.rooms.CreateRoom(a, room.CreateRequest{
			Type:  game.Type(e.Type),
			Stake: e.Stake,
			Options: game.Options{
				MaxPlayers:  e.MaxPlayers,
				WinPinCount: e.WinPinCount,
			},
		})
	case joinEvent:
		err = h.rooms.JoinRoom(a, e.RoomID)
	case leaveEvent:
		err = h.rooms.LeaveRoom(a, e.RoomID)
	case moveCommand:
		err = h.rooms.Move(a, e.RoomID, e.Move)
	case lobbyEvent:
		h.rooms.SendLobby(c.id)
	case refreshEvent:
		h.refresh(c, e.Token)
	default:
		err = errUnknownAction
	}
	if err != nil {
		h.rooms.Reject(c.id, err)
	}
}

// refresh re-verifies the connection with a new token. A token that fails or
// names someone else closes the connection.
func (h *Hub) refresh(c *Client, token string) {
	identity, err := h.resolver.Resolve(token)
	if err != nil || identity.ID != c.identity.ID {
		log.Info().Str("conn", c.id).Str("user", c.identity.ID).Msg("token refresh rejected")
		h.rooms.Reject(c.id, errIdentityMismatch)
		h.drop(c)
		return
	}
	c.identity.DisplayName = identity.DisplayName
	h.Broadcast([]string{c.id}, shared.EventRefreshed, gin.H{"userId": identity.ID})
}
