package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tabletop-arena/internal/game"
	"tabletop-arena/internal/ledger"
	"tabletop-arena/internal/shared"
)

type Config struct {
	MinStake         int64
	TurnTimeout      time.Duration
	FirstTurnTimeout time.Duration
	LedgerTimeout    time.Duration
}

// Actor is the connection and resolved identity an event arrived from.
type Actor struct {
	Conn        string
	Identity    string
	DisplayName string
}

type CreateRequest struct {
	Type    game.Type
	Stake   int64
	Options game.Options
}

// slot is an identity's single active-room claim. pending is set while the
// balance check that created it is still in flight.
type slot struct {
	room    string
	conn    string
	pending bool
}

// Manager runs the room lifecycle. It is not safe for concurrent use; every
// method runs on the Loop goroutine.
type Manager struct {
	store    Store
	registry *game.Registry
	ledger   ledger.Ledger
	out      Broadcaster
	loop     Loop
	turns    *TurnCoordinator
	cfg      Config
	slots    map[string]*slot
	spawn    func(func())
}

func NewManager(s Store, reg *game.Registry, l ledger.Ledger, out Broadcaster, loop Loop, cfg Config) *Manager {
	if cfg.LedgerTimeout <= 0 {
		cfg.LedgerTimeout = 5 * time.Second
	}
	if cfg.FirstTurnTimeout <= 0 {
		cfg.FirstTurnTimeout = cfg.TurnTimeout
	}
	m := &Manager{
		store:    s,
		registry: reg,
		ledger:   l,
		out:      out,
		loop:     loop,
		cfg:      cfg,
		slots:    map[string]*slot{},
		spawn:    func(f func()) { go f() },
	}
	m.turns = NewTurnCoordinator(loop, m.onTurnExpired)
	return m
}

func (m *Manager) CreateRoom(a Actor, req CreateRequest) error {
	eng, err := m.registry.Get(req.Type)
	if err != nil {
		return err
	}
	maxPlayers, err := eng.Configure(req.Options)
	if err != nil {
		return err
	}
	if req.Stake < m.cfg.MinStake {
		return fmt.Errorf("%w %d", ErrStakeTooLow, m.cfg.MinStake)
	}
	if _, busy := m.slots[a.Identity]; busy {
		return ErrAlreadyInRoom
	}

	id := "room_" + uuid.NewString()
	sl := &slot{room: id, conn: a.Conn, pending: true}
	m.slots[a.Identity] = sl

	m.checkBalance(a.Identity, req.Stake, func(status ledger.Status) {
		if m.slots[a.Identity] != sl {
			return
		}
		if !status.OK() {
			m.fail(a, errors.New(string(status)))
			return
		}
		state, err := eng.Initialize(req.Options, a.Identity)
		if err != nil {
			m.fail(a, err)
			return
		}
		r := &Room{
			ID:         id,
			Type:       req.Type,
			Status:     StatusWaiting,
			Board:      state,
			MaxPlayers: maxPlayers,
			Stake:      req.Stake,
			Options:    req.Options,
			CreatedAt:  time.Now(),
			engine:     eng,
			Players: []*Player{{
				Identity:      a.Identity,
				DisplayName:   a.DisplayName,
				Conn:          a.Conn,
				Participation: Active,
			}},
		}
		sl.pending = false
		m.store.Save(r)
		log.Info().Str("room", r.ID).Str("user", a.Identity).Str("type", string(r.Type)).Int64("stake", r.Stake).Int("open", m.store.Len()).Msg("room created")

		m.out.Broadcast([]string{a.Conn}, shared.EventWaiting, m.view(r))
		m.broadcastLobby()
	})
	return nil
}

func (m *Manager) JoinRoom(a Actor, roomID string) error {
	r, ok := m.store.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	if r.Status != StatusWaiting {
		return ErrGameStarted
	}
	if r.player(a.Identity) != nil {
		return ErrAlreadyJoined
	}
	if _, busy := m.slots[a.Identity]; busy {
		return ErrAlreadyInRoom
	}
	if len(r.Players)+r.pending >= r.MaxPlayers {
		return ErrRoomFull
	}

	sl := &slot{room: r.ID, conn: a.Conn, pending: true}
	m.slots[a.Identity] = sl
	r.pending++

	m.checkBalance(a.Identity, r.Stake, func(status ledger.Status) {
		r.pending--
		if m.slots[a.Identity] != sl {
			return
		}
		if !status.OK() {
			m.fail(a, errors.New(string(status)))
			return
		}
		if cur, ok := m.store.Get(r.ID); !ok || cur != r {
			m.fail(a, ErrRoomNotFound)
			return
		}
		if r.Status != StatusWaiting {
			m.fail(a, ErrGameStarted)
			return
		}
		if err := r.engine.Seat(r.Board, a.Identity); err != nil {
			m.fail(a, err)
			return
		}
		r.Players = append(r.Players, &Player{
			Identity:      a.Identity,
			DisplayName:   a.DisplayName,
			Conn:          a.Conn,
			Participation: Active,
		})
		sl.pending = false
		log.Info().Str("room", r.ID).Str("user", a.Identity).Msg("player joined")

		if len(r.Players) == r.MaxPlayers {
			m.start(r)
		} else {
			m.out.Broadcast(r.conns(), shared.EventWaiting, m.view(r))
		}
		m.broadcastLobby()
	})
	return nil
}

func (m *Manager) LeaveRoom(a Actor, roomID string) error {
	r, ok := m.store.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	p := r.player(a.Identity)
	if p == nil || p.Participation != Active {
		return ErrNotInRoom
	}
	m.depart(r, p, "left")
	m.broadcastLobby()
	return nil
}

// OnDisconnect drops any reservation held by conn and leaves the first room
// the connection is active in.
func (m *Manager) OnDisconnect(conn string) {
	for id, sl := range m.slots {
		if sl.conn == conn && sl.pending {
			delete(m.slots, id)
		}
	}
	for _, r := range m.store.List() {
		if p := r.playerByConn(conn); p != nil && p.Participation == Active {
			m.depart(r, p, "disconnected")
			m.broadcastLobby()
			return
		}
	}
}

func (m *Manager) Move(a Actor, roomID string, mv game.Move) error {
	r, ok := m.store.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	p := r.player(a.Identity)
	if p == nil || p.Participation != Active {
		return ErrNotInRoom
	}
	if r.Status != StatusPlaying {
		return ErrGameNotPlaying
	}
	if err := applySafely(r.engine, r.Board, a.Identity, mv); err != nil {
		return err
	}

	if outcome := r.engine.IsTerminal(r.Board); outcome.Ended {
		m.finish(r, outcome)
		m.broadcastLobby()
		return nil
	}
	m.turns.Restart(r.ID, r.engine.NextActor(r.Board), m.cfg.TurnTimeout)
	m.out.Broadcast(r.conns(), shared.EventGameUpdate, m.view(r))
	return nil
}

func applySafely(e game.Engine, s game.State, actor string, mv game.Move) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("user", actor).Msg("engine panicked")
			err = fmt.Errorf("move failed: %v", rec)
		}
	}()
	return e.ApplyMove(s, actor, mv)
}

func (m *Manager) start(r *Room) {
	r.Status = StatusPlaying
	m.turns.Restart(r.ID, r.engine.NextActor(r.Board), m.cfg.FirstTurnTimeout)
	log.Info().Str("room", r.ID).Str("type", string(r.Type)).Msg("game started")
	m.out.Broadcast(r.conns(), shared.EventGameStarted, m.view(r))
}

// depart applies leave semantics for p: removal while waiting, otherwise
// forfeiture, which ends two-player games in the opponent's favour.
func (m *Manager) depart(r *Room, p *Player, reason string) {
	m.release(p.Identity, r.ID)
	log.Info().Str("room", r.ID).Str("user", p.Identity).Str("reason", reason).Msg("player left")

	if r.Status == StatusWaiting {
		_ = r.engine.Unseat(r.Board, p.Identity)
		r.removePlayer(p.Identity)
		if len(r.Players) == 0 {
			m.evict(r)
			return
		}
		m.out.Broadcast(append(r.conns(), p.Conn), shared.EventPlayerLeft, m.leftPayload(r, p, reason))
		m.out.Broadcast(r.conns(), shared.EventWaiting, m.view(r))
		return
	}

	active := r.activePlayers()
	p.Participation = Inactive
	if len(active) <= 2 {
		var winner string
		for _, o := range active {
			if o != p {
				winner = o.Identity
			}
		}
		m.out.Broadcast(r.conns(), shared.EventPlayerLeft, m.leftPayload(r, p, reason))
		m.finish(r, game.Outcome{Ended: true, Winner: winner}, p.Conn)
		return
	}

	before := r.engine.NextActor(r.Board)
	r.engine.Deactivate(r.Board, p.Identity)
	if holder := r.engine.NextActor(r.Board); holder != before {
		m.turns.Restart(r.ID, holder, m.cfg.TurnTimeout)
	}
	m.out.Broadcast(append(r.conns(), p.Conn), shared.EventPlayerLeft, m.leftPayload(r, p, reason))
}

func (m *Manager) leftPayload(r *Room, p *Player, reason string) gin.H {
	return gin.H{
		"userId": p.Identity,
		"reason": reason,
		"room":   m.view(r),
	}
}

func (m *Manager) onTurnExpired(roomID, holder string) {
	r, ok := m.store.Get(roomID)
	if !ok || r.Status != StatusPlaying || r.engine.NextActor(r.Board) != holder {
		return
	}
	p := r.player(holder)
	if p == nil || p.Participation != Active {
		return
	}
	log.Info().Str("room", r.ID).Str("user", holder).Msg("turn timed out")
	m.depart(r, p, "timeout")
	m.broadcastLobby()
}

// finish ends the room, settles a decided game and evicts the room. extra
// names connections that should see the result although no longer active.
func (m *Manager) finish(r *Room, outcome game.Outcome, extra ...string) {
	m.turns.Cancel(r.ID)
	r.Status = StatusEnded
	r.Winner = outcome.Winner
	r.Draw = outcome.Draw
	log.Info().Str("room", r.ID).Str("winner", r.Winner).Bool("draw", r.Draw).Msg("game over")
	m.out.Broadcast(append(r.conns(), extra...), shared.EventGameOver, m.view(r))

	if r.Winner != "" && !r.Draw {
		var losers []string
		for _, p := range r.Players {
			if p.Identity != r.Winner {
				losers = append(losers, p.Identity)
			}
		}
		m.settle(ledger.Settlement{
			RoomID:   r.ID,
			GameType: string(r.Type),
			Stake:    r.Stake,
			Winner:   r.Winner,
			Losers:   losers,
		})
	}
	m.evict(r)
}

func (m *Manager) evict(r *Room) {
	m.turns.Cancel(r.ID)
	for _, p := range r.Players {
		m.release(p.Identity, r.ID)
	}
	m.store.Delete(r.ID)
	log.Debug().Str("room", r.ID).Int("open", m.store.Len()).Msg("room evicted")
}

func (m *Manager) release(identity, roomID string) {
	if sl, ok := m.slots[identity]; ok && sl.room == roomID {
		delete(m.slots, identity)
	}
}

func (m *Manager) fail(a Actor, err error) {
	if sl, ok := m.slots[a.Identity]; ok && sl.pending {
		delete(m.slots, a.Identity)
	}
	m.Reject(a.Conn, err)
}

// Reject reports err to a single connection.
func (m *Manager) Reject(conn string, err error) {
	log.Debug().Str("conn", conn).Err(err).Msg("request rejected")
	m.out.Broadcast([]string{conn}, shared.EventError, gin.H{"message": err.Error()})
}

// checkBalance runs the ledger call off the loop and posts then back onto it.
func (m *Manager) checkBalance(identity string, amount int64, then func(ledger.Status)) {
	timeout := m.cfg.LedgerTimeout
	m.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		status := m.ledger.CheckBalance(ctx, identity, amount)
		if !status.OK() {
			log.Debug().Str("user", identity).Str("status", string(status)).Msg("balance check declined")
		}
		m.loop.Post(func() { then(status) })
	})
}

func (m *Manager) settle(s ledger.Settlement) {
	timeout := m.cfg.LedgerTimeout
	m.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := m.ledger.Settle(ctx, s); err != nil {
			log.Error().Err(err).Str("room", s.RoomID).Str("winner", s.Winner).Strs("losers", s.Losers).Msg("settlement failed")
			return
		}
		log.Info().Str("room", s.RoomID).Str("winner", s.Winner).Int64("stake", s.Stake).Msg("settled")
	})
}

func (m *Manager) view(r *Room) View {
	return Project(r, m.turns.Deadline(r.ID))
}

func (m *Manager) Lobby() []Summary {
	rooms := m.store.List()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		if r.Status != StatusEnded {
			out = append(out, Summarize(r))
		}
	}
	return out
}

func (m *Manager) SendLobby(conn string) {
	m.out.Broadcast([]string{conn}, shared.EventLobbySummary, m.Lobby())
}

func (m *Manager) broadcastLobby() {
	m.out.BroadcastAll(shared.EventLobbySummary, m.Lobby())
}

func (m *Manager) RoomView(id string) (View, bool) {
	r, ok := m.store.Get(id)
	if !ok {
		return View{}, false
	}
	return m.view(r), true
}

// RoomOf returns the room identity currently holds a claim on, or "".
func (m *Manager) RoomOf(identity string) string {
	if sl, ok := m.slots[identity]; ok {
		return sl.room
	}
	return ""
}
