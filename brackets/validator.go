package brackets

import "github.com/Dosada05/swiss-tournament/models"

// Violation is a board whose players already met earlier in the tournament.
type Violation struct {
	WhiteID string `json:"white_id"`
	BlackID string `json:"black_id"`
}

type ValidationResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// ValidateNoRepeatOpponents checks a freshly generated round against the opponent
// history. It only reports; a repeat is legal when the generator had no other choice.
func ValidateNoRepeatOpponents(players []models.Player, round models.Round) ValidationResult {
	byID := make(map[string]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	violations := make([]Violation, 0)
	for _, pairing := range round.Pairings {
		if pairing.IsBye() {
			continue
		}
		white, okW := byID[pairing.WhitePlayerID]
		black, okB := byID[*pairing.BlackPlayerID]
		if !okW || !okB {
			continue
		}
		if white.HasPlayed(black.ID) || black.HasPlayed(white.ID) {
			violations = append(violations, Violation{WhiteID: white.ID, BlackID: black.ID})
		}
	}

	return ValidationResult{Valid: len(violations) == 0, Violations: violations}
}
