package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// roundPlanner generates the next round and stores it together with the bye bookkeeping.
type roundPlanner struct {
	playerRepo repositories.PlayerRepository
	roundRepo  repositories.RoundRepository
	rng        *rand.Rand
	logger     *slog.Logger
}

type plannedRound struct {
	draw       *brackets.Draw
	validation brackets.ValidationResult
	generator  string
}

// plan runs inside the caller's transaction. Players must already hold the results of
// every previous round.
func (p *roundPlanner) plan(ctx context.Context, exec repositories.SQLExecutor, tournamentID string, roundNumber int, players []models.Player) (*plannedRound, error) {
	gen := brackets.GeneratorFor(roundNumber, p.rng)
	draw, err := gen.GenerateRound(ctx, brackets.GenerateRoundParams{
		TournamentID: tournamentID,
		RoundNumber:  roundNumber,
		Players:      players,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate round %d: %w", roundNumber, err)
	}

	validation := brackets.ValidateNoRepeatOpponents(players, *draw.Round)
	if !validation.Valid {
		p.logger.Warn("generated round repeats opponents",
			slog.String("tournament_id", tournamentID),
			slog.Int("round_number", roundNumber),
			slog.Any("violations", validation.Violations),
		)
	}

	if err := p.playerRepo.ReplaceForTournament(ctx, exec, tournamentID, draw.Players); err != nil {
		return nil, fmt.Errorf("failed to save players for round %d: %w", roundNumber, mapRepositoryError(err))
	}
	if err := p.roundRepo.Create(ctx, exec, draw.Round); err != nil {
		return nil, fmt.Errorf("failed to save round %d: %w", roundNumber, mapRepositoryError(err))
	}

	return &plannedRound{draw: draw, validation: validation, generator: gen.GetName()}, nil
}

// record updates metrics once the transaction holding the round has committed.
func (r *plannedRound) record() {
	metrics.RoundsGenerated.WithLabelValues(r.generator).Inc()
	if n := len(r.validation.Violations); n > 0 {
		metrics.RepeatOpponentViolations.Add(float64(n))
	}
}

// RoundCreatedPayload is published with EventRoundCreated.
type RoundCreatedPayload struct {
	Round       *models.Round `json:"round"`
	ByePlayerID string        `json:"bye_player_id,omitempty"`
}
