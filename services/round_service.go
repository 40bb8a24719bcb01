package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// AdvanceResult describes what happened when the current round was closed.
type AdvanceResult struct {
	CompletedRound *models.Round              `json:"completed_round"`
	NextRound      *models.Round              `json:"next_round,omitempty"`
	ByePlayerID    string                     `json:"bye_player_id,omitempty"`
	Validation     *brackets.ValidationResult `json:"validation,omitempty"`
	Finished       bool                       `json:"finished"`
	Winner         *models.Player             `json:"winner,omitempty"`
	Standings      []models.Standing          `json:"standings"`
}

// ResultUpdatedPayload is published with EventResultUpdated.
type ResultUpdatedPayload struct {
	RoundNumber int            `json:"round_number"`
	Pairing     models.Pairing `json:"pairing"`
	Entered     int            `json:"entered"`
	Total       int            `json:"total"`
}

// TournamentFinishedPayload is published with EventTournamentFinished.
type TournamentFinishedPayload struct {
	Winner    *models.Player    `json:"winner"`
	Standings []models.Standing `json:"standings"`
}

type RoundService interface {
	GetRound(ctx context.Context, tournamentID string, roundNumber int) (*models.Round, error)
	ListRounds(ctx context.Context, tournamentID string) ([]models.Round, error)
	// SetPairingResult записывает результат партии. Повторная отправка того же результата
	// очищает его.
	SetPairingResult(ctx context.Context, tournamentID string, roundNumber int, pairingID string, result models.Result) (*models.Round, error)
	AdvanceRound(ctx context.Context, tournamentID string) (*AdvanceResult, error)
	Standings(ctx context.Context, tournamentID string) ([]models.Standing, error)
}

type roundService struct {
	tx             Transactor
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	roundRepo      repositories.RoundRepository
	locks          *TournamentLocks
	notifier       Notifier
	archiver       Archiver
	planner        *roundPlanner
	logger         *slog.Logger
}

// NewRoundService creates the service. archiver may be nil.
func NewRoundService(
	tx Transactor,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	locks *TournamentLocks,
	notifier Notifier,
	archiver Archiver,
	logger *slog.Logger,
) RoundService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &roundService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		roundRepo:      roundRepo,
		locks:          locks,
		notifier:       notifier,
		archiver:       archiver,
		planner:        &roundPlanner{playerRepo: playerRepo, roundRepo: roundRepo, logger: logger},
		logger:         logger,
	}
}

func (s *roundService) GetRound(ctx context.Context, tournamentID string, roundNumber int) (*models.Round, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	round, err := s.roundRepo.GetByNumber(ctx, nil, tournamentID, roundNumber)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return round, nil
}

func (s *roundService) ListRounds(ctx context.Context, tournamentID string) ([]models.Round, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	rounds, err := s.roundRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds of tournament %s: %w", tournamentID, err)
	}
	return rounds, nil
}

func (s *roundService) SetPairingResult(ctx context.Context, tournamentID string, roundNumber int, pairingID string, result models.Result) (*models.Round, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadActiveTournament(ctx, s.tournamentRepo, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	round, err := s.roundRepo.GetByNumber(ctx, nil, tournamentID, roundNumber)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if round.Status != models.RoundStatusActive || roundNumber != t.CurrentRoundNumber() {
		return nil, ErrRoundNotActive
	}

	pairing := round.PairingByID(pairingID)
	if pairing == nil {
		return nil, ErrPairingNotFound
	}
	if pairing.IsBye() {
		return nil, ErrPairingIsBye
	}

	next := result
	if pairing.Result == result {
		next = models.ResultPending
	}
	if err := s.roundRepo.UpdatePairingResult(ctx, nil, pairing.ID, next); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", mapRepositoryError(err))
	}
	pairing.Result = next

	label := string(next)
	if next.IsPending() {
		label = "cleared"
	}
	metrics.ResultsRecorded.WithLabelValues(label).Inc()

	entered, total := round.ResultsProgress()
	s.logger.Info("result recorded",
		slog.String("tournament_id", tournamentID),
		slog.Int("round_number", roundNumber),
		slog.Int("board", pairing.BoardNumber),
		slog.String("result", label),
	)
	s.notifier.PublishTournamentEvent(tournamentID, brackets.EventResultUpdated, ResultUpdatedPayload{
		RoundNumber: roundNumber,
		Pairing:     *pairing,
		Entered:     entered,
		Total:       total,
	})
	return round, nil
}

// AdvanceRound closes the current round: results are credited, Buchholz recomputed and
// either the next round is drawn or the tournament is finished. All writes share one
// transaction, so a failure leaves the round open and untouched.
func (s *roundService) AdvanceRound(ctx context.Context, tournamentID string) (*AdvanceResult, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	var (
		out     = &AdvanceResult{}
		planned *plannedRound
		final   *models.Tournament
	)
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := loadActiveTournament(ctx, s.tournamentRepo, exec, tournamentID)
		if err != nil {
			return err
		}

		current := t.CurrentRoundNumber()
		round, err := s.roundRepo.GetByNumber(ctx, exec, tournamentID, current)
		if err != nil {
			if errors.Is(err, repositories.ErrRoundNotFound) {
				return ErrTournamentNotStarted
			}
			return mapRepositoryError(err)
		}
		if round.Status != models.RoundStatusActive {
			return ErrRoundNotActive
		}
		if !round.AllResultsEntered() {
			entered, total := round.ResultsProgress()
			return fmt.Errorf("%w: %d of %d boards", ErrRoundResultsIncomplete, entered, total)
		}

		players, err := s.playerRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load players of tournament %s: %w", tournamentID, err)
		}
		updated := brackets.RecalculateBuchholz(brackets.ApplyRoundResults(players, *round))
		if err := s.playerRepo.ReplaceForTournament(ctx, exec, tournamentID, updated); err != nil {
			return fmt.Errorf("failed to save players after round %d: %w", current, mapRepositoryError(err))
		}

		round.Status = models.RoundStatusCompleted
		if err := s.roundRepo.Update(ctx, exec, round); err != nil {
			return fmt.Errorf("failed to complete round %d: %w", current, mapRepositoryError(err))
		}
		out.CompletedRound = round

		if current >= t.RoundsTotal {
			t.Status = models.StatusFinished
			t.RoundsCompleted = t.RoundsTotal
			out.Finished = true
			winner := brackets.SortStandings(updated)[0]
			out.Winner = &winner
			out.Standings = brackets.LiveStandings(updated, nil)
			t.Players = updated
			final = t
		} else {
			planned, err = s.planner.plan(ctx, exec, tournamentID, current+1, updated)
			if err != nil {
				return err
			}
			t.RoundsCompleted = current
			out.NextRound = planned.draw.Round
			out.ByePlayerID = planned.draw.ByePlayerID
			out.Validation = &planned.validation
			out.Standings = brackets.LiveStandings(planned.draw.Players, nil)
		}

		if err := s.tournamentRepo.Update(ctx, exec, t); err != nil {
			return fmt.Errorf("failed to update tournament %s: %w", tournamentID, mapRepositoryError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.PublishTournamentEvent(tournamentID, brackets.EventRoundCompleted, out.CompletedRound)

	if out.Finished {
		metrics.TournamentsFinished.Inc()
		s.logger.Info("tournament finished",
			slog.String("tournament_id", tournamentID),
			slog.String("winner_id", out.Winner.ID),
			slog.Float64("winner_points", out.Winner.Points),
		)
		s.notifier.PublishTournamentEvent(tournamentID, brackets.EventTournamentFinished, TournamentFinishedPayload{
			Winner:    out.Winner,
			Standings: out.Standings,
		})
		s.archive(ctx, final)
		return out, nil
	}

	planned.record()
	s.logger.Info("round advanced",
		slog.String("tournament_id", tournamentID),
		slog.Int("round_number", out.NextRound.RoundNumber),
		slog.Bool("repeat_free", out.Validation.Valid),
	)
	s.notifier.PublishTournamentEvent(tournamentID, brackets.EventRoundCreated, RoundCreatedPayload{
		Round:       out.NextRound,
		ByePlayerID: out.ByePlayerID,
	})
	return out, nil
}

// archive пишет снимок завершённого турнира. Ошибка архивации не отменяет завершение.
func (s *roundService) archive(ctx context.Context, t *models.Tournament) {
	if s.archiver == nil || t == nil {
		return
	}
	rounds, err := s.roundRepo.ListByTournament(ctx, nil, t.ID)
	if err != nil {
		s.logger.Error("failed to load rounds for archive", slog.String("tournament_id", t.ID), slog.Any("error", err))
		return
	}
	t.Rounds = rounds
	if err := s.archiver.ArchiveTournament(ctx, t); err != nil {
		s.logger.Error("failed to archive tournament", slog.String("tournament_id", t.ID), slog.Any("error", err))
		return
	}
	s.logger.Info("tournament archived", slog.String("tournament_id", t.ID))
}

// Standings ranks players with the results already entered in the running round.
func (s *roundService) Standings(ctx context.Context, tournamentID string) ([]models.Standing, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	players, err := s.playerRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players of tournament %s: %w", tournamentID, err)
	}

	var current *models.Round
	if !t.IsFinished() {
		current, err = s.roundRepo.GetByNumber(ctx, nil, tournamentID, t.CurrentRoundNumber())
		if err != nil && !errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, fmt.Errorf("failed to load current round: %w", err)
		}
	}
	return brackets.LiveStandings(players, current), nil
}
