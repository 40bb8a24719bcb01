package brackets

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/google/uuid"
)

// ErrNotEnoughPlayers is returned when a round is requested for fewer than two players.
var ErrNotEnoughPlayers = errors.New("not enough players to generate a round (minimum 2)")

type GenerateRoundParams struct {
	TournamentID string
	RoundNumber  int
	Players      []models.Player
}

// Draw is the outcome of a pairing run: the new round and the full player list with
// bye bookkeeping applied. Players are copies, the input slice is never modified.
type Draw struct {
	Round       *models.Round
	Players     []models.Player
	ByePlayerID string
}

type PairingGenerator interface {
	GenerateRound(ctx context.Context, params GenerateRoundParams) (*Draw, error)

	GetName() string
}

// GeneratorFor picks the generator for a round: random draw for round 1, Swiss afterwards.
// A nil rng falls back to the global source.
func GeneratorFor(roundNumber int, rng *rand.Rand) PairingGenerator {
	if roundNumber <= 1 {
		return NewRoundOneGenerator(rng)
	}
	return NewSwissGenerator()
}

func newRound(tournamentID string, roundNumber int, pairings []models.Pairing) *models.Round {
	return &models.Round{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		RoundNumber:  roundNumber,
		Status:       models.RoundStatusActive,
		Pairings:     pairings,
	}
}

func newGamePairing(board int, whiteID, blackID string) models.Pairing {
	black := blackID
	return models.Pairing{
		ID:            uuid.NewString(),
		BoardNumber:   board,
		WhitePlayerID: whiteID,
		BlackPlayerID: &black,
		Result:        models.ResultPending,
	}
}

// newByePairing builds the bye board. Its result is final from the start.
func newByePairing(board int, playerID string) models.Pairing {
	return models.Pairing{
		ID:            uuid.NewString(),
		BoardNumber:   board,
		WhitePlayerID: playerID,
		Result:        models.ResultWhiteWins,
	}
}

// assignBye marks the player as having received the bye for this round.
func assignBye(p *models.Player) {
	p.HadBye = true
	p.ColorHistory = append(p.ColorHistory, models.ColorBye)
}
