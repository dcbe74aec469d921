package room

import (
	"errors"
	"time"

	"tabletop-arena/internal/game"
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

type Participation string

const (
	Active   Participation = "active"
	Inactive Participation = "inactive"
)

type Player struct {
	Identity      string        `json:"userId"`
	DisplayName   string        `json:"displayName"`
	Conn          string        `json:"-"`
	Participation Participation `json:"participation"`
}

// Room is one game session. Board is engine-owned and only ever leaves the
// process through Project.
type Room struct {
	ID         string
	Type       game.Type
	Status     Status
	Board      game.State
	Players    []*Player
	MaxPlayers int
	Winner     string
	Draw       bool
	Stake      int64
	Options    game.Options
	CreatedAt  time.Time

	engine game.Engine
	// pending counts seats reserved by joins still waiting on a balance check.
	pending int
}

type Store interface {
	Get(id string) (*Room, bool)
	Save(r *Room)
	Delete(id string)
	// List returns rooms oldest first.
	List() []*Room
	Len() int
}

var (
	ErrRoomNotFound   = errors.New("Game not found")
	ErrNotInRoom      = errors.New("You're not in this game")
	ErrAlreadyJoined  = errors.New("Already in this game")
	ErrAlreadyInRoom  = errors.New("Already playing a game")
	ErrGameStarted    = errors.New("Game already started")
	ErrGameNotPlaying = errors.New("Game is not in progress")
	ErrRoomFull       = errors.New("Game is full")
	ErrStakeTooLow    = errors.New("Minimum amount to join a game is")
)

func (r *Room) player(identity string) *Player {
	for _, p := range r.Players {
		if p.Identity == identity {
			return p
		}
	}
	return nil
}

func (r *Room) playerByConn(conn string) *Player {
	for _, p := range r.Players {
		if p.Conn == conn {
			return p
		}
	}
	return nil
}

func (r *Room) activePlayers() []*Player {
	var out []*Player
	for _, p := range r.Players {
		if p.Participation == Active {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) removePlayer(identity string) {
	for i, p := range r.Players {
		if p.Identity == identity {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}

// conns lists the connections of active players.
func (r *Room) conns() []string {
	out := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Conn != "" && p.Participation == Active {
			out = append(out, p.Conn)
		}
	}
	return out
}

// View is the client-facing projection of a room.
type View struct {
	ID         string    `json:"id"`
	Type       game.Type `json:"type"`
	Status     Status    `json:"status"`
	Board      any       `json:"board"`
	Players    []Player  `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	Turn       string    `json:"turn"`
	TurnEndsAt int64     `json:"turnEndsAt,omitempty"`
	Winner     *string   `json:"winner"`
	Draw       bool      `json:"draw"`
	Stake      int64     `json:"stake"`
}

// Summary is the reduced lobby entry for a room.
type Summary struct {
	ID         string    `json:"id"`
	Type       game.Type `json:"type"`
	Status     Status    `json:"status"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	Stake      int64     `json:"stake"`
}

// Project is the only way room state is turned into something sendable.
// deadline is the current turn's expiry, zero when no timer runs.
func Project(r *Room, deadline time.Time) View {
	v := View{
		ID:         r.ID,
		Type:       r.Type,
		Status:     r.Status,
		MaxPlayers: r.MaxPlayers,
		Draw:       r.Draw,
		Stake:      r.Stake,
		Players:    make([]Player, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		v.Players = append(v.Players, *p)
	}
	if r.Board != nil {
		v.Board = r.Board.Public()
		if r.Status == StatusPlaying {
			v.Turn = r.engine.NextActor(r.Board)
		}
	}
	if r.Status == StatusEnded && r.Winner != "" {
		w := r.Winner
		v.Winner = &w
	}
	if !deadline.IsZero() {
		v.TurnEndsAt = deadline.UnixMilli()
	}
	return v
}

func Summarize(r *Room) Summary {
	return Summary{
		ID:         r.ID,
		Type:       r.Type,
		Status:     r.Status,
		Players:    len(r.Players),
		MaxPlayers: r.MaxPlayers,
		Stake:      r.Stake,
	}
}
