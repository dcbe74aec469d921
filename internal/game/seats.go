package game

// Seat binds a participant to a colour (or mark) inside one board state.
type Seat struct {
	Identity string `json:"userId"`
	Color    string `json:"color"`
	Out      bool   `json:"out,omitempty"`
}

// Seats is the ordered seat list; order defines turn rotation.
type Seats []Seat

func (s Seats) Index(identity string) int {
	for i := range s {
		if s[i].Identity == identity {
			return i
		}
	}
	return -1
}

func (s Seats) ColorOf(identity string) string {
	if i := s.Index(identity); i >= 0 {
		return s[i].Color
	}
	return ""
}

func (s Seats) ByColor(color string) (Seat, bool) {
	for _, seat := range s {
		if seat.Color == color {
			return seat, true
		}
	}
	return Seat{}, false
}

// Add seats identity on the first palette colour not yet in use. Seats stay
// in palette order, so a colour freed by a departed player is filled in
// place rather than at the end of the rotation.
func (s *Seats) Add(identity string, palette []string) (string, error) {
	if s.Index(identity) >= 0 {
		return "", ErrSeatTaken
	}
	rank := make(map[string]int, len(palette))
	for i, c := range palette {
		rank[c] = i
	}
	used := make(map[string]bool, len(*s))
	for _, seat := range *s {
		used[seat.Color] = true
	}
	for i, c := range palette {
		if used[c] {
			continue
		}
		at := len(*s)
		for j, seat := range *s {
			if r, ok := rank[seat.Color]; ok && r > i {
				at = j
				break
			}
		}
		*s = append(*s, Seat{})
		copy((*s)[at+1:], (*s)[at:])
		(*s)[at] = Seat{Identity: identity, Color: c}
		return c, nil
	}
	return "", ErrNoFreeSeat
}

func (s *Seats) Remove(identity string) error {
	i := s.Index(identity)
	if i < 0 {
		return ErrNotSeated
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return nil
}

func (s Seats) Deactivate(identity string) {
	if i := s.Index(identity); i >= 0 {
		s[i].Out = true
	}
}

// After returns the next seated identity after identity that is still in the
// game, wrapping around. It returns identity itself when nobody else is left.
func (s Seats) After(identity string) string {
	i := s.Index(identity)
	if i < 0 {
		for _, seat := range s {
			if !seat.Out {
				return seat.Identity
			}
		}
		return ""
	}
	for step := 1; step <= len(s); step++ {
		next := s[(i+step)%len(s)]
		if !next.Out {
			return next.Identity
		}
	}
	return identity
}
