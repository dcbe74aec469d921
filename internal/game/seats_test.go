package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatsAddAssignsNextUnusedColor(t *testing.T) {
	assert := assert.New(t)
	palette := []string{"red", "green", "yellow", "blue"}

	var s Seats
	c, err := s.Add("a", palette)
	assert.NoError(err)
	assert.Equal("red", c)
	c, _ = s.Add("b", palette)
	assert.Equal("green", c)

	assert.NoError(s.Remove("a"))
	c, _ = s.Add("c", palette)
	assert.Equal("red", c, "freed colour is reused first")

	_, err = s.Add("b", palette)
	assert.ErrorIs(err, ErrSeatTaken)
}

func TestSeatsAddKeepsPaletteOrder(t *testing.T) {
	palette := []string{"red", "green", "yellow", "blue"}
	var s Seats
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Add(id, palette)
		assert.NoError(t, err)
	}
	assert.NoError(t, s.Remove("b"))
	for _, id := range []string{"d", "e"} {
		_, err := s.Add(id, palette)
		assert.NoError(t, err)
	}

	assert.Equal(t, Seats{
		{Identity: "a", Color: "red"},
		{Identity: "d", Color: "green"},
		{Identity: "c", Color: "yellow"},
		{Identity: "e", Color: "blue"},
	}, s)
	assert.Equal(t, "c", s.After("d"))
}

func TestSeatsAddFull(t *testing.T) {
	var s Seats
	_, _ = s.Add("a", []string{"w"})
	_, err := s.Add("b", []string{"w"})
	assert.ErrorIs(t, err, ErrNoFreeSeat)
}

func TestSeatsAfterSkipsInactive(t *testing.T) {
	assert := assert.New(t)
	s := Seats{{Identity: "a"}, {Identity: "b"}, {Identity: "c"}, {Identity: "d"}}

	assert.Equal("b", s.After("a"))
	assert.Equal("a", s.After("d"))

	s.Deactivate("b")
	assert.Equal("c", s.After("a"))

	s.Deactivate("c")
	s.Deactivate("d")
	assert.Equal("a", s.After("a"), "last one standing keeps the turn")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get(Ludo)
	assert.EqualError(t, err, "Unsupported game type")
	assert.Empty(t, r.Types())
}
