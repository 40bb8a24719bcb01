package brackets

import (
	"cmp"
	"slices"

	"github.com/Dosada05/swiss-tournament/models"
)

// LivePoints adds the player's result in the round in progress to the stored points.
// Read only; a player absent from the round or without a result keeps basePoints.
func LivePoints(playerID string, round *models.Round, basePoints float64) float64 {
	if round == nil {
		return basePoints
	}
	for _, pairing := range round.Pairings {
		if found, isWhite := pairing.Involves(playerID); found {
			return basePoints + PointsForResult(pairing.Result, isWhite)
		}
	}
	return basePoints
}

func compareStanding(aPoints, bPoints float64, a, b models.Player) int {
	if c := cmp.Compare(bPoints, aPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Buchholz, a.Buchholz); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// SortStandings returns copies of players ordered by points, Buchholz, then name.
// The first element is the tournament winner once the last round is applied.
func SortStandings(players []models.Player) []models.Player {
	sorted := models.ClonePlayers(players)
	slices.SortStableFunc(sorted, func(a, b models.Player) int {
		return compareStanding(a.Points, b.Points, a, b)
	})
	return sorted
}

// LiveStandings ranks players by live points, then Buchholz, then name.
// Pass a nil round (or a completed one) to rank on stored points only.
func LiveStandings(players []models.Player, round *models.Round) []models.Standing {
	if round != nil && round.Status == models.RoundStatusCompleted {
		round = nil
	}

	standings := make([]models.Standing, len(players))
	for i, p := range players {
		standings[i] = models.Standing{
			Player:     p.Clone(),
			LivePoints: LivePoints(p.ID, round, p.Points),
		}
	}

	slices.SortStableFunc(standings, func(a, b models.Standing) int {
		return compareStanding(a.LivePoints, b.LivePoints, a.Player, b.Player)
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
