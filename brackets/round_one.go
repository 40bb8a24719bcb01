package brackets

import (
	"context"
	"math/rand/v2"

	"github.com/Dosada05/swiss-tournament/models"
)

// RoundOneGenerator draws the first round at random.
type RoundOneGenerator struct {
	rng *rand.Rand
}

func NewRoundOneGenerator(rng *rand.Rand) *RoundOneGenerator {
	return &RoundOneGenerator{rng: rng}
}

func (g *RoundOneGenerator) GetName() string {
	return "RoundOne"
}

func (g *RoundOneGenerator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}

// GenerateRound shuffles the field (Fisher-Yates), gives the bye to the last player of
// the shuffled order when the count is odd, and pairs neighbours. Colors on every board
// come from a separate coin flip.
func (g *RoundOneGenerator) GenerateRound(ctx context.Context, params GenerateRoundParams) (*Draw, error) {
	if len(params.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated := models.ClonePlayers(params.Players)

	order := make([]*models.Player, len(updated))
	for i := range updated {
		order[i] = &updated[i]
	}
	for i := len(order) - 1; i > 0; i-- {
		j := g.intN(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	var bye *models.Player
	if len(order)%2 == 1 {
		bye = order[len(order)-1]
		assignBye(bye)
		order = order[:len(order)-1]
	}

	pairings := make([]models.Pairing, 0, len(order)/2+1)
	for i := 0; i+1 < len(order); i += 2 {
		first, second := order[i], order[i+1]
		if g.intN(2) == 1 {
			first, second = second, first
		}
		pairings = append(pairings, newGamePairing(len(pairings)+1, first.ID, second.ID))
	}

	draw := &Draw{Players: updated}
	if bye != nil {
		pairings = append(pairings, newByePairing(len(pairings)+1, bye.ID))
		draw.ByePlayerID = bye.ID
	}
	draw.Round = newRound(params.TournamentID, 1, pairings)

	return draw, nil
}
