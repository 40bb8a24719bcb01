package brackets

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/Dosada05/swiss-tournament/models"
)

// SwissGenerator pairs rounds 2..N greedily: highest-ranked unpaired player first,
// never a repeat opponent unless nobody else is left, color-compatible opponents
// preferred, then the closest score.
type SwissGenerator struct{}

func NewSwissGenerator() *SwissGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

// compareRank orders by points then Buchholz, both descending.
func compareRank(a, b *models.Player) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	return cmp.Compare(b.Buchholz, a.Buchholz)
}

// rankPlayers returns pointers into players in ranking order. The sort is stable, so
// players level on points and Buchholz keep their input order.
func rankPlayers(players []models.Player) []*models.Player {
	ranked := make([]*models.Player, len(players))
	for i := range players {
		ranked[i] = &players[i]
	}
	slices.SortStableFunc(ranked, compareRank)
	return ranked
}

// pickByePlayer scans from the bottom of the ranking for the first player without a bye.
// When everyone already had one, the lowest-ranked player gets it again.
func pickByePlayer(ranked []*models.Player) *models.Player {
	for i := len(ranked) - 1; i >= 0; i-- {
		if !ranked[i].HadBye {
			return ranked[i]
		}
	}
	return ranked[len(ranked)-1]
}

func (g *SwissGenerator) GenerateRound(ctx context.Context, params GenerateRoundParams) (*Draw, error) {
	if len(params.Players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated := models.ClonePlayers(params.Players)
	draw := &Draw{Players: updated}

	var bye *models.Player
	if len(updated)%2 == 1 {
		bye = pickByePlayer(rankPlayers(updated))
		assignBye(bye)
		draw.ByePlayerID = bye.ID
	}

	// One full resort of the pool; the loop below keeps that order.
	unpaired := make([]*models.Player, 0, len(updated))
	for _, p := range rankPlayers(updated) {
		if p != bye {
			unpaired = append(unpaired, p)
		}
	}

	pairings := make([]models.Pairing, 0, len(updated)/2+1)
	for len(unpaired) >= 2 {
		top := unpaired[0]
		rest := unpaired[1:]

		opponentIdx := pickOpponent(top, rest) + 1
		opponent := unpaired[opponentIdx]

		white, black := assignColors(top, opponent)
		pairings = append(pairings, newGamePairing(len(pairings)+1, white.ID, black.ID))

		unpaired = slices.Delete(unpaired, opponentIdx, opponentIdx+1)
		unpaired = unpaired[1:]
	}

	if bye != nil {
		pairings = append(pairings, newByePairing(len(pairings)+1, bye.ID))
	}
	draw.Round = newRound(params.TournamentID, params.RoundNumber, pairings)

	return draw, nil
}

// pickOpponent returns the index in rest of the best opponent for top.
// Repeat opponents are only considered when every remaining player is one.
func pickOpponent(top *models.Player, rest []*models.Player) int {
	candidates := make([]int, 0, len(rest))
	for i, p := range rest {
		if !top.HasPlayed(p.ID) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		for i := range rest {
			candidates = append(candidates, i)
		}
	}

	best := candidates[0]
	bestCompatible := ColorsCompatible(*top, *rest[best])
	bestDiff := math.Abs(rest[best].Points - top.Points)
	for _, i := range candidates[1:] {
		compatible := ColorsCompatible(*top, *rest[i])
		diff := math.Abs(rest[i].Points - top.Points)
		switch {
		case compatible && !bestCompatible:
		case compatible == bestCompatible && diff < bestDiff:
		default:
			continue
		}
		best, bestCompatible, bestDiff = i, compatible, diff
	}
	return best
}
