package brackets

import (
	"github.com/Dosada05/swiss-tournament/models"
)

// PointsForResult returns what the white or black side earns from a result.
// A pending result is worth nothing yet.
func PointsForResult(result models.Result, isWhite bool) float64 {
	return result.PointsFor(isWhite)
}

// ApplyRoundResults credits a round to the players and returns updated copies.
//
// Every board with a result appends the played colors and the opponent ids, and
// updates points and the win/draw/loss counters. A bye is worth one point but is not a
// win. Boards still pending are skipped.
//
// The function is not idempotent: it must run exactly once per round. Callers guard
// this with the round status.
func ApplyRoundResults(players []models.Player, round models.Round) []models.Player {
	updated := models.ClonePlayers(players)
	byID := make(map[string]*models.Player, len(updated))
	for i := range updated {
		byID[updated[i].ID] = &updated[i]
	}

	for _, pairing := range round.Pairings {
		white := byID[pairing.WhitePlayerID]

		if pairing.IsBye() {
			if white == nil {
				continue
			}
			// The generator records the bye when it assigns it; only add it here if
			// this round has no entry yet.
			if len(white.ColorHistory) < round.RoundNumber {
				white.ColorHistory = append(white.ColorHistory, models.ColorBye)
			}
			white.HadBye = true
			white.Points++
			continue
		}

		if pairing.Result.IsPending() {
			continue
		}

		black := byID[*pairing.BlackPlayerID]
		if white != nil {
			white.ColorHistory = append(white.ColorHistory, models.ColorWhite)
			white.OpponentsPlayed = append(white.OpponentsPlayed, *pairing.BlackPlayerID)
		}
		if black != nil {
			black.ColorHistory = append(black.ColorHistory, models.ColorBlack)
			black.OpponentsPlayed = append(black.OpponentsPlayed, pairing.WhitePlayerID)
		}

		switch pairing.Result {
		case models.ResultWhiteWins:
			if white != nil {
				white.Points++
				white.Wins++
			}
			if black != nil {
				black.Losses++
			}
		case models.ResultBlackWins:
			if black != nil {
				black.Points++
				black.Wins++
			}
			if white != nil {
				white.Losses++
			}
		case models.ResultDraw:
			if white != nil {
				white.Points += 0.5
				white.Draws++
			}
			if black != nil {
				black.Points += 0.5
				black.Draws++
			}
		}
	}

	return updated
}

// RecalculateBuchholz recomputes every player's Buchholz from scratch as the sum of the
// current points of all opponents faced. Run it after all points of the round are in.
func RecalculateBuchholz(players []models.Player) []models.Player {
	updated := models.ClonePlayers(players)
	points := make(map[string]float64, len(updated))
	for _, p := range updated {
		points[p.ID] = p.Points
	}
	for i := range updated {
		sum := 0.0
		for _, oppID := range updated[i].OpponentsPlayed {
			sum += points[oppID]
		}
		updated[i].Buchholz = sum
	}
	return updated
}
