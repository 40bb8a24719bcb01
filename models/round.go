package models

import (
	"encoding/json"
	"fmt"
)

type RoundStatus string

const (
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
)

// Result is the outcome of a pairing. The zero value means the game is still pending.
type Result string

const (
	ResultPending   Result = ""
	ResultWhiteWins Result = "1-0"
	ResultBlackWins Result = "0-1"
	ResultDraw      Result = "0.5-0.5"
)

// ParseResult converts the wire form of a result. An empty string is a pending result.
func ParseResult(s string) (Result, error) {
	switch r := Result(s); r {
	case ResultPending, ResultWhiteWins, ResultBlackWins, ResultDraw:
		return r, nil
	default:
		return ResultPending, fmt.Errorf("unknown result %q", s)
	}
}

func (r Result) IsPending() bool { return r == ResultPending }

func (r Result) IsDecisive() bool { return r == ResultWhiteWins || r == ResultBlackWins }

// PointsFor returns the points earned by the white or black side.
func (r Result) PointsFor(isWhite bool) float64 {
	switch r {
	case ResultWhiteWins:
		if isWhite {
			return 1
		}
		return 0
	case ResultBlackWins:
		if isWhite {
			return 0
		}
		return 1
	case ResultDraw:
		return 0.5
	default:
		return 0
	}
}

// MarshalJSON encodes a pending result as null.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsPending() {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

func (r *Result) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ResultPending
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseResult(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Pairing is one board of a round. A nil BlackPlayerID marks a bye for the white player.
type Pairing struct {
	ID            string  `json:"id" db:"id"`
	BoardNumber   int     `json:"board_number" db:"board_number"`
	WhitePlayerID string  `json:"white_player_id" db:"white_player_id"`
	BlackPlayerID *string `json:"black_player_id" db:"black_player_id"`
	Result        Result  `json:"result" db:"result"`
}

func (p Pairing) IsBye() bool { return p.BlackPlayerID == nil }

// Involves reports whether playerID sits at this board and, if so, on which side.
func (p Pairing) Involves(playerID string) (found, isWhite bool) {
	if p.WhitePlayerID == playerID {
		return true, true
	}
	if p.BlackPlayerID != nil && *p.BlackPlayerID == playerID {
		return true, false
	}
	return false, false
}

type Round struct {
	ID           string      `json:"id" db:"id"`
	TournamentID string      `json:"tournament_id" db:"tournament_id"`
	RoundNumber  int         `json:"round_number" db:"round_number"`
	Status       RoundStatus `json:"status" db:"status"`
	Pairings     []Pairing   `json:"pairings" db:"-"`
}

// AllResultsEntered reports whether every non-bye board has a result.
func (r Round) AllResultsEntered() bool {
	for _, p := range r.Pairings {
		if !p.IsBye() && p.Result.IsPending() {
			return false
		}
	}
	return true
}

// ResultsProgress returns how many non-bye boards have a result and how many there are.
func (r Round) ResultsProgress() (entered, total int) {
	for _, p := range r.Pairings {
		if p.IsBye() {
			continue
		}
		total++
		if !p.Result.IsPending() {
			entered++
		}
	}
	return entered, total
}

// PairingByID returns a pointer into r.Pairings, or nil.
func (r *Round) PairingByID(id string) *Pairing {
	for i := range r.Pairings {
		if r.Pairings[i].ID == id {
			return &r.Pairings[i]
		}
	}
	return nil
}
