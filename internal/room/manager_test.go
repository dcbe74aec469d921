package room

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop-arena/internal/game"
	"tabletop-arena/internal/game/checkers"
	"tabletop-arena/internal/game/ludo"
	"tabletop-arena/internal/game/tictactoe"
	"tabletop-arena/internal/ledger"
	"tabletop-arena/internal/shared"
)

type mapStore map[string]*Room

func (s mapStore) Get(id string) (*Room, bool) {
	r, ok := s[id]
	return r, ok
}

func (s mapStore) Save(r *Room)     { s[r.ID] = r }
func (s mapStore) Delete(id string) { delete(s, id) }
func (s mapStore) Len() int         { return len(s) }

func (s mapStore) List() []*Room {
	out := make([]*Room, 0, len(s))
	for _, r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type queueLoop struct{ fns []func() }

func (l *queueLoop) Post(fn func()) { l.fns = append(l.fns, fn) }

func (l *queueLoop) drain() {
	for len(l.fns) > 0 {
		fn := l.fns[0]
		l.fns = l.fns[1:]
		fn()
	}
}

type sent struct {
	conns  []string
	action string
	data   interface{}
}

type recorder struct{ msgs []sent }

func (r *recorder) Broadcast(conns []string, action string, data interface{}) {
	r.msgs = append(r.msgs, sent{conns: conns, action: action, data: data})
}

func (r *recorder) BroadcastAll(action string, data interface{}) {
	r.msgs = append(r.msgs, sent{action: action, data: data})
}

func (r *recorder) last(action string) (sent, bool) {
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].action == action {
			return r.msgs[i], true
		}
	}
	return sent{}, false
}

func (r *recorder) errorsFor(conn string) []string {
	var out []string
	for _, m := range r.msgs {
		if m.action == shared.EventError && len(m.conns) == 1 && m.conns[0] == conn {
			out = append(out, m.data.(gin.H)["message"].(string))
		}
	}
	return out
}

type fakeLedger struct {
	mu       sync.Mutex
	statuses map[string]ledger.Status
	settled  []ledger.Settlement
	fail     error
}

func (f *fakeLedger) CheckBalance(_ context.Context, identity string, _ int64) ledger.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.statuses[identity]; ok {
		return s
	}
	return ledger.HasEnough
}

func (f *fakeLedger) Settle(_ context.Context, s ledger.Settlement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.settled = append(f.settled, s)
	return nil
}

type fakeTimer struct {
	f       func()
	d       time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fixture struct {
	m      *Manager
	store  mapStore
	loop   *queueLoop
	out    *recorder
	ledger *fakeLedger
	timers []*fakeTimer
}

func newFixture(t *testing.T, engines ...game.Engine) *fixture {
	t.Helper()
	if len(engines) == 0 {
		engines = []game.Engine{tictactoe.Engine{}, checkers.Engine{}}
	}
	f := &fixture{
		store:  mapStore{},
		loop:   &queueLoop{},
		out:    &recorder{},
		ledger: &fakeLedger{statuses: map[string]ledger.Status{}},
	}
	f.m = NewManager(f.store, game.NewRegistry(engines...), f.ledger, f.out, f.loop, Config{
		MinStake:         5,
		TurnTimeout:      15 * time.Second,
		FirstTurnTimeout: 19 * time.Second,
	})
	f.m.spawn = func(fn func()) { fn() }
	f.m.turns.schedule = func(d time.Duration, fn func()) Timer {
		ft := &fakeTimer{f: fn, d: d}
		f.timers = append(f.timers, ft)
		return ft
	}
	return f
}

func actor(id string) Actor {
	return Actor{Conn: "conn-" + id, Identity: id, DisplayName: id}
}

func (f *fixture) only() *Room {
	for _, r := range f.store {
		return r
	}
	return nil
}

// open creates a room for creator and seats the others, draining the loop
// after each step.
func (f *fixture) open(t *testing.T, typ game.Type, opts game.Options, creator string, others ...string) *Room {
	t.Helper()
	require.NoError(t, f.m.CreateRoom(actor(creator), CreateRequest{Type: typ, Stake: 10, Options: opts}))
	f.loop.drain()
	var r *Room
	for _, cand := range f.store {
		if cand.Players[0].Identity == creator {
			r = cand
		}
	}
	require.NotNil(t, r)
	for _, id := range others {
		require.NoError(t, f.m.JoinRoom(actor(id), r.ID))
		f.loop.drain()
	}
	return r
}

func (f *fixture) lastTimer() *fakeTimer { return f.timers[len(f.timers)-1] }

func (f *fixture) expire(tm *fakeTimer) {
	tm.f()
	f.loop.drain()
}

func TestTicTacToeWagerEndToEnd(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r := f.open(t, game.TicTacToe, game.Options{}, "alice", "bob")

	assert.Equal(StatusPlaying, r.Status)
	started, ok := f.out.last(shared.EventGameStarted)
	require.True(t, ok)
	assert.ElementsMatch([]string{"conn-alice", "conn-bob"}, started.conns)
	assert.Equal(19*time.Second, f.lastTimer().d, "first turn gets the grace period")

	for i, cell := range []int{0, 3, 1, 4, 2} {
		mover := []string{"alice", "bob"}[i%2]
		require.NoError(t, f.m.Move(actor(mover), r.ID, game.CellMove{Cell: cell}))
	}

	over, ok := f.out.last(shared.EventGameOver)
	require.True(t, ok)
	view := over.data.(View)
	require.NotNil(t, view.Winner)
	assert.Equal("alice", *view.Winner)
	assert.Equal(StatusEnded, view.Status)

	require.Len(t, f.ledger.settled, 1)
	assert.Equal(ledger.Settlement{RoomID: r.ID, GameType: "Tic Tac Toe", Stake: 10, Winner: "alice", Losers: []string{"bob"}}, f.ledger.settled[0])
	assert.Empty(f.store, "ended room is evicted")
	assert.Empty(f.m.RoomOf("alice"))
	assert.True(f.lastTimer().stopped)
}

func TestDrawSettlesNothing(t *testing.T) {
	f := newFixture(t)
	r := f.open(t, game.TicTacToe, game.Options{}, "alice", "bob")
	for i, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
		require.NoError(t, f.m.Move(actor([]string{"alice", "bob"}[i%2]), r.ID, game.CellMove{Cell: cell}))
	}
	over, ok := f.out.last(shared.EventGameOver)
	require.True(t, ok)
	assert.True(t, over.data.(View).Draw)
	assert.Empty(t, f.ledger.settled)
	assert.Empty(t, f.store)
}

func TestCreateRejections(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)

	assert.ErrorIs(f.m.CreateRoom(actor("a"), CreateRequest{Type: "Go", Stake: 10}), game.ErrUnsupportedType)
	err := f.m.CreateRoom(actor("a"), CreateRequest{Type: game.TicTacToe, Stake: 4})
	assert.ErrorIs(err, ErrStakeTooLow)
	assert.EqualError(err, "Minimum amount to join a game is 5")

	f.ledger.statuses["poor"] = ledger.NotEnough
	require.NoError(t, f.m.CreateRoom(actor("poor"), CreateRequest{Type: game.TicTacToe, Stake: 10}))
	f.loop.drain()
	assert.Equal([]string{"doesn't have enough coins"}, f.out.errorsFor("conn-poor"))
	assert.Empty(f.store)
	assert.Empty(f.m.RoomOf("poor"), "reservation rolled back")
}

func TestSingleActiveRoom(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r1 := f.open(t, game.TicTacToe, game.Options{}, "alice")
	r2 := f.open(t, game.Checkers, game.Options{}, "carol")

	assert.ErrorIs(f.m.CreateRoom(actor("alice"), CreateRequest{Type: game.TicTacToe, Stake: 10}), ErrAlreadyInRoom)
	assert.ErrorIs(f.m.JoinRoom(actor("alice"), r2.ID), ErrAlreadyInRoom)
	assert.ErrorIs(f.m.JoinRoom(actor("alice"), r1.ID), ErrAlreadyJoined)
	assert.ErrorIs(f.m.JoinRoom(actor("bob"), "room_missing"), ErrRoomNotFound)
}

func TestReservationBlocksConcurrentJoins(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r1 := f.open(t, game.TicTacToe, game.Options{}, "alice")
	r2 := f.open(t, game.TicTacToe, game.Options{}, "carol")

	// both joins are issued before either balance check completes
	require.NoError(t, f.m.JoinRoom(actor("bob"), r1.ID))
	assert.ErrorIs(f.m.JoinRoom(actor("bob"), r2.ID), ErrAlreadyInRoom)
	assert.ErrorIs(f.m.JoinRoom(actor("dave"), r1.ID), ErrRoomFull, "pending seat counts against capacity")
	f.loop.drain()

	assert.Equal(StatusPlaying, r1.Status)
	assert.Equal(StatusWaiting, r2.Status)
	assert.Equal(r1.ID, f.m.RoomOf("bob"))
}

func TestJoinAbortsWhenRoomVanishesDuringCheck(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r := f.open(t, game.TicTacToe, game.Options{}, "alice")

	require.NoError(t, f.m.JoinRoom(actor("bob"), r.ID))
	require.NoError(t, f.m.LeaveRoom(actor("alice"), r.ID))
	f.loop.drain()

	assert.Equal([]string{"Game not found"}, f.out.errorsFor("conn-bob"))
	assert.Empty(f.m.RoomOf("bob"))
	assert.Empty(f.store)
}

func TestDisconnectDuringCheckDropsReservation(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.m.CreateRoom(actor("alice"), CreateRequest{Type: game.TicTacToe, Stake: 10}))
	f.m.OnDisconnect("conn-alice")
	f.loop.drain()
	assert.Empty(t, f.store)
	assert.Empty(t, f.m.RoomOf("alice"))
}

func TestLeaveWhileWaiting(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, ludo.Engine{})
	r := f.open(t, game.Ludo, game.Options{MaxPlayers: 4, WinPinCount: 1}, "a", "b")

	require.NoError(t, f.m.LeaveRoom(actor("a"), r.ID))
	assert.Equal(StatusWaiting, r.Status)
	require.Len(t, r.Players, 1)
	assert.Equal("b", r.Players[0].Identity)
	left, ok := f.out.last(shared.EventPlayerLeft)
	require.True(t, ok)
	assert.ElementsMatch([]string{"conn-a", "conn-b"}, left.conns)
	waiting, ok := f.out.last(shared.EventWaiting)
	require.True(t, ok)
	assert.Equal([]string{"conn-b"}, waiting.conns)
	assert.Len(waiting.data.(View).Players, 1)
	assert.Equal("b", waiting.data.(View).Players[0].Identity)

	lobby, ok := f.out.last(shared.EventLobbySummary)
	require.True(t, ok)
	assert.Equal([]Summary{{ID: r.ID, Type: game.Ludo, Status: StatusWaiting, Players: 1, MaxPlayers: 4, Stake: 10}}, lobby.data)

	require.NoError(t, f.m.LeaveRoom(actor("b"), r.ID))
	assert.Empty(f.store, "empty waiting room is deleted")
	assert.ErrorIs(f.m.LeaveRoom(actor("b"), r.ID), ErrRoomNotFound)
}

func TestDisconnectMidGameForfeitsTwoPlayerGame(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r := f.open(t, game.TicTacToe, game.Options{}, "alice", "bob")

	f.m.OnDisconnect("conn-bob")
	over, ok := f.out.last(shared.EventGameOver)
	require.True(t, ok)
	assert.Equal("alice", *over.data.(View).Winner)
	assert.Equal([]ledger.Settlement{{RoomID: r.ID, GameType: "Tic Tac Toe", Stake: 10, Winner: "alice", Losers: []string{"bob"}}}, f.ledger.settled)
	assert.Empty(f.store)
}

func TestLeaveMidGameWithMorePlayersContinues(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t, ludo.Engine{Roll: func() int { return 1 }})
	r := f.open(t, game.Ludo, game.Options{MaxPlayers: 4, WinPinCount: 1}, "a", "b", "c", "d")
	require.Equal(t, StatusPlaying, r.Status)

	require.NoError(t, f.m.LeaveRoom(actor("a"), r.ID))
	assert.Equal(StatusPlaying, r.Status)
	assert.Equal(Inactive, r.player("a").Participation)
	assert.Equal("b", r.engine.NextActor(r.Board))
	assert.Equal(15*time.Second, f.lastTimer().d, "deadline re-armed for b")
	assert.False(f.lastTimer().stopped)
	assert.ErrorIs(f.m.Move(actor("a"), r.ID, game.RollMove{}), ErrNotInRoom)
	assert.Empty(f.m.RoomOf("a"), "a may join another room")

	require.NoError(t, f.m.LeaveRoom(actor("b"), r.ID))
	require.NoError(t, f.m.LeaveRoom(actor("c"), r.ID))
	over, ok := f.out.last(shared.EventGameOver)
	require.True(t, ok)
	assert.Equal("d", *over.data.(View).Winner)
	require.Len(t, f.ledger.settled, 1)
	assert.ElementsMatch([]string{"a", "b", "c"}, f.ledger.settled[0].Losers)
}

func TestTurnTimeoutForfeits(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r := f.open(t, game.TicTacToe, game.Options{}, "alice", "bob")

	first := f.lastTimer()
	require.NoError(t, f.m.Move(actor("alice"), r.ID, game.CellMove{Cell: 4}))
	assert.True(first.stopped, "accepted move cancels the running deadline")
	second := f.lastTimer()
	assert.Equal(15*time.Second, second.d)

	f.expire(first)
	assert.Equal(StatusPlaying, r.Status, "stale timer is ignored")

	f.expire(second)
	over, ok := f.out.last(shared.EventGameOver)
	require.True(t, ok)
	assert.Equal("alice", *over.data.(View).Winner)
	assert.ElementsMatch([]string{"conn-alice", "conn-bob"}, over.conns)
	assert.Empty(f.store)
}

func TestMoveRejectionsReachOnlyTheMover(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r := f.open(t, game.TicTacToe, game.Options{}, "alice")

	assert.ErrorIs(f.m.Move(actor("alice"), r.ID, game.CellMove{Cell: 0}), ErrGameNotPlaying)
	require.NoError(t, f.m.JoinRoom(actor("bob"), r.ID))
	f.loop.drain()
	assert.ErrorIs(f.m.Move(actor("bob"), r.ID, game.CellMove{Cell: 0}), game.ErrNotYourTurn)
	assert.ErrorIs(f.m.Move(actor("eve"), r.ID, game.CellMove{Cell: 0}), ErrNotInRoom)
	assert.ErrorIs(f.m.JoinRoom(actor("eve"), r.ID), ErrGameStarted)
}

func TestCheckersMandatoryCaptureThroughRoom(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r := f.open(t, game.Checkers, game.Options{}, "red", "black")

	var b checkers.Board
	b[5][2] = &checkers.Piece{Color: checkers.Red}
	b[7][6] = &checkers.Piece{Color: checkers.Red}
	b[4][3] = &checkers.Piece{Color: checkers.Black}
	b[2][5] = &checkers.Piece{Color: checkers.Black}
	b[0][7] = &checkers.Piece{Color: checkers.Black}
	r.Board.(*checkers.State).Board = b

	err := f.m.Move(actor("red"), r.ID, game.BoardMove{From: game.Point{X: 6, Y: 7}, To: game.Point{X: 5, Y: 6}})
	assert.EqualError(err, "A capture is available. You must capture.")

	require.NoError(t, f.m.Move(actor("red"), r.ID, game.BoardMove{From: game.Point{X: 2, Y: 5}, To: game.Point{X: 4, Y: 3}}))
	update, ok := f.out.last(shared.EventGameUpdate)
	require.True(t, ok)
	assert.Equal("red", update.data.(View).Turn, "multi-jump keeps the turn")
}

func TestLudoGameThroughRoom(t *testing.T) {
	assert := assert.New(t)
	rolls := []int{6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 2}
	i := 0
	roll := func() int {
		v := rolls[i]
		i++
		return v
	}
	f := newFixture(t, ludo.Engine{Roll: roll})
	r := f.open(t, game.Ludo, game.Options{MaxPlayers: 2, WinPinCount: 1}, "red", "yellow")

	for range rolls {
		require.NoError(t, f.m.Move(actor("red"), r.ID, game.RollMove{}))
		require.NoError(t, f.m.Move(actor("red"), r.ID, game.PinMove{Pin: 0}))
	}

	over, ok := f.out.last(shared.EventGameOver)
	require.True(t, ok)
	view := over.data.(View)
	assert.Equal("red", *view.Winner)
	st := view.Board.(*ludo.State)
	assert.Equal(ludo.NewPins(st.Colors), st.Pins)
	assert.Equal("yellow", f.ledger.settled[0].Losers[0])
}

func TestPanickingEngineIsContained(t *testing.T) {
	f := newFixture(t, panicEngine{tictactoe.Engine{}})
	r := f.open(t, game.TicTacToe, game.Options{}, "alice", "bob")
	err := f.m.Move(actor("alice"), r.ID, game.CellMove{Cell: 0})
	assert.ErrorContains(t, err, "move failed")
	assert.Equal(t, StatusPlaying, r.Status)
}

type panicEngine struct{ tictactoe.Engine }

func (panicEngine) ApplyMove(game.State, string, game.Move) error { panic("boom") }

func TestRoomViewAndLobby(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	r := f.open(t, game.TicTacToe, game.Options{}, "alice")

	v, ok := f.m.RoomView(r.ID)
	require.True(t, ok)
	assert.Equal(StatusWaiting, v.Status)
	assert.Nil(v.Winner)
	assert.Equal([]Player{{Identity: "alice", DisplayName: "alice", Conn: "conn-alice", Participation: Active}}, v.Players)
	_, ok = f.m.RoomView("nope")
	assert.False(ok)

	f.m.SendLobby("conn-x")
	lobby, _ := f.out.last(shared.EventLobbySummary)
	assert.Equal([]string{"conn-x"}, lobby.conns)
	assert.Len(lobby.data, 1)
}
