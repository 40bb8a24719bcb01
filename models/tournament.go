package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusActive   TournamentStatus = "active"
	StatusFinished TournamentStatus = "finished"
)

const (
	MinRounds     = 3
	MaxRounds     = 7
	DefaultRounds = 5
	MaxPlayers    = 64
)

// Tournament представляет швейцарский турнир.
type Tournament struct {
	ID              string           `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Date            time.Time        `json:"date" db:"date"`
	TimeControl     string           `json:"time_control" db:"time_control"`
	RoundsTotal     int              `json:"rounds_total" db:"rounds_total"`
	RoundsCompleted int              `json:"rounds_completed" db:"rounds_completed"`
	Status          TournamentStatus `json:"status" db:"status"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	PasscodeHash    string           `json:"-" db:"passcode_hash"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Players []Player `json:"players,omitempty" db:"-"`
	Rounds  []Round  `json:"rounds,omitempty" db:"-"`
}

// IsFinished reports whether the tournament reached its terminal status.
func (t Tournament) IsFinished() bool {
	return t.Status == StatusFinished
}

// CurrentRoundNumber is the number of the round currently being played.
// For a finished tournament it is the last round.
func (t Tournament) CurrentRoundNumber() int {
	if t.IsFinished() {
		return t.RoundsTotal
	}
	return t.RoundsCompleted + 1
}
