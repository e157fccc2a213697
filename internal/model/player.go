package model

// Player is someone holding a seat in a game.
type Player struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
}

// Seats maps each color to the player sitting there, empty when open.
type Seats struct {
	White Player `json:"white"`
	Black Player `json:"black"`
}

// Take seats playerID in the first open color. Taking a seat twice returns
// the color already held.
func (s *Seats) Take(playerID string) (Color, bool) {
	if c, ok := s.ColorOf(playerID); ok {
		return c, true
	}
	if s.White.ID == "" {
		s.White = Player{ID: playerID, Color: White}
		return White, true
	}
	if s.Black.ID == "" {
		s.Black = Player{ID: playerID, Color: Black}
		return Black, true
	}
	return "", false
}

func (s *Seats) ColorOf(playerID string) (Color, bool) {
	if playerID == "" {
		return "", false
	}
	if s.White.ID == playerID {
		return White, true
	}
	if s.Black.ID == playerID {
		return Black, true
	}
	return "", false
}
