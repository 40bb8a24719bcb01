package brackets

import "github.com/Dosada05/swiss-tournament/models"

// ColorLookback is how many of the most recent non-bye games are inspected when checking
// whether two players can meet without a third game in a row on the same color.
const ColorLookback = 2

// recentColors returns up to n most recent non-bye colors, oldest first.
func recentColors(history []models.Color, n int) []models.Color {
	out := make([]models.Color, 0, n)
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		if history[i] == models.ColorBye {
			continue
		}
		out = append(out, history[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// colorStreak reports the color a player has had for the last ColorLookback games,
// if those games were all on the same color.
func colorStreak(history []models.Color) (models.Color, bool) {
	recent := recentColors(history, ColorLookback)
	if len(recent) < ColorLookback {
		return "", false
	}
	for _, c := range recent[1:] {
		if c != recent[0] {
			return "", false
		}
	}
	return recent[0], true
}

// ColorsCompatible is false only when both players are on a streak of the same color,
// since one of them would then get that color a third time.
func ColorsCompatible(a, b models.Player) bool {
	ca, okA := colorStreak(a.ColorHistory)
	cb, okB := colorStreak(b.ColorHistory)
	return !(okA && okB && ca == cb)
}

// assignColors gives white to whoever has played white fewer times.
// On an exact tie the higher-ranked player (the one being paired) takes white.
func assignColors(ranked, opponent *models.Player) (white, black *models.Player) {
	if ranked.WhiteCount() <= opponent.WhiteCount() {
		return ranked, opponent
	}
	return opponent, ranked
}
