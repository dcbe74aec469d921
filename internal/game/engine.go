package game

import (
	"errors"
	"sort"
)

// Engine validates and applies moves for one game type. Implementations are
// free of rooms and connections; they only see identities and board state.
type Engine interface {
	Type() Type
	// Configure validates opts and returns the number of seats the room needs.
	Configure(opts Options) (int, error)
	Initialize(opts Options, creator string) (State, error)
	Seat(s State, identity string) error
	Unseat(s State, identity string) error
	// ApplyMove leaves s untouched when it returns an error.
	ApplyMove(s State, actor string, mv Move) error
	IsTerminal(s State) Outcome
	NextActor(s State) string
	// Deactivate drops a participant from turn rotation mid-game.
	Deactivate(s State, identity string)
}

var ErrUnsupportedType = errors.New("Unsupported game type")

type Registry struct {
	engines map[Type]Engine
}

func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{engines: make(map[Type]Engine, len(engines))}
	for _, e := range engines {
		r.engines[e.Type()] = e
	}
	return r
}

func (r *Registry) Get(t Type) (Engine, error) {
	e, ok := r.engines[t]
	if !ok {
		return nil, ErrUnsupportedType
	}
	return e, nil
}

func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.engines))
	for t := range r.engines {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
