package models

// Color is one entry of a player's color history.
type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
	ColorBye   Color = "bye"
)

// Player holds the cumulative state of a participant within one tournament.
type Player struct {
	ID              string   `json:"id" db:"id"`
	TournamentID    string   `json:"tournament_id" db:"tournament_id"`
	Name            string   `json:"name" db:"name"`
	Rating          *int     `json:"rating,omitempty" db:"rating"`
	Points          float64  `json:"points" db:"points"`
	Buchholz        float64  `json:"buchholz" db:"buchholz"`
	ColorHistory    []Color  `json:"color_history" db:"color_history"`
	OpponentsPlayed []string `json:"opponents_played" db:"opponents_played"`
	HadBye          bool     `json:"had_bye" db:"had_bye"`
	Wins            int      `json:"wins" db:"wins"`
	Draws           int      `json:"draws" db:"draws"`
	Losses          int      `json:"losses" db:"losses"`
}

// Clone returns a copy that shares no slices with p.
func (p Player) Clone() Player {
	out := p
	out.ColorHistory = make([]Color, len(p.ColorHistory))
	copy(out.ColorHistory, p.ColorHistory)
	out.OpponentsPlayed = make([]string, len(p.OpponentsPlayed))
	copy(out.OpponentsPlayed, p.OpponentsPlayed)
	if p.Rating != nil {
		r := *p.Rating
		out.Rating = &r
	}
	return out
}

// HasPlayed reports whether opponentID is already in the player's opponent history.
func (p Player) HasPlayed(opponentID string) bool {
	for _, id := range p.OpponentsPlayed {
		if id == opponentID {
			return true
		}
	}
	return false
}

// WhiteCount returns the number of games played with the white pieces.
func (p Player) WhiteCount() int {
	n := 0
	for _, c := range p.ColorHistory {
		if c == ColorWhite {
			n++
		}
	}
	return n
}

// ClonePlayers copies a slice of players element by element.
func ClonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
