package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

const (
	maxPlayerName = 100
	maxRating     = 4000
)

type AddPlayerInput struct {
	Name   string `json:"name"`
	Rating *int   `json:"rating,omitempty"`
}

// RosterPayload is published with EventRosterUpdated.
type RosterPayload struct {
	Players []models.Player `json:"players"`
}

type PlayerService interface {
	AddPlayer(ctx context.Context, tournamentID string, input AddPlayerInput) (*models.Player, error)
	AddPlayersBulk(ctx context.Context, tournamentID string, inputs []AddPlayerInput) ([]models.Player, error)
	ListPlayers(ctx context.Context, tournamentID string) ([]models.Player, error)
	DeletePlayer(ctx context.Context, tournamentID, playerID string) error
}

type playerService struct {
	tx             Transactor
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	roundRepo      repositories.RoundRepository
	locks          *TournamentLocks
	notifier       Notifier
	logger         *slog.Logger
}

func NewPlayerService(
	tx Transactor,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	locks *TournamentLocks,
	notifier Notifier,
	logger *slog.Logger,
) PlayerService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		roundRepo:      roundRepo,
		locks:          locks,
		notifier:       notifier,
		logger:         logger,
	}
}

func validatePlayerInput(input AddPlayerInput) (AddPlayerInput, error) {
	input.Name = normalizeName(input.Name)
	if input.Name == "" {
		return input, ErrPlayerNameRequired
	}
	if len([]rune(input.Name)) > maxPlayerName {
		return input, ErrPlayerNameTooLong
	}
	if input.Rating != nil && (*input.Rating < 0 || *input.Rating > maxRating) {
		return input, ErrInvalidRating
	}
	return input, nil
}

func newPlayer(tournamentID string, input AddPlayerInput) *models.Player {
	return &models.Player{
		TournamentID:    tournamentID,
		Name:            input.Name,
		Rating:          input.Rating,
		ColorHistory:    []models.Color{},
		OpponentsPlayed: []string{},
	}
}

func (s *playerService) AddPlayer(ctx context.Context, tournamentID string, input AddPlayerInput) (*models.Player, error) {
	players, err := s.AddPlayersBulk(ctx, tournamentID, []AddPlayerInput{input})
	if err != nil {
		return nil, err
	}
	return &players[0], nil
}

// AddPlayersBulk регистрирует всех игроков в одной транзакции: либо все, либо никто.
func (s *playerService) AddPlayersBulk(ctx context.Context, tournamentID string, inputs []AddPlayerInput) ([]models.Player, error) {
	if len(inputs) == 0 {
		return nil, ErrPlayerNameRequired
	}
	validated := make([]AddPlayerInput, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		v, err := validatePlayerInput(in)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNameConflict, v.Name)
		}
		seen[v.Name] = true
		validated[i] = v
	}

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	created := make([]models.Player, 0, len(validated))
	var roster []models.Player
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.ensureRosterOpen(ctx, exec, tournamentID); err != nil {
			return err
		}

		existing, err := s.playerRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load players of tournament %s: %w", tournamentID, err)
		}
		if len(existing)+len(validated) > models.MaxPlayers {
			return ErrTooManyPlayers
		}

		for _, in := range validated {
			p := newPlayer(tournamentID, in)
			if err := s.playerRepo.Create(ctx, exec, p); err != nil {
				return fmt.Errorf("failed to add player %q: %w", in.Name, mapRepositoryError(err))
			}
			created = append(created, *p)
		}
		roster = append(existing, created...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("players added", slog.String("tournament_id", tournamentID), slog.Int("count", len(created)))
	s.notifier.PublishTournamentEvent(tournamentID, brackets.EventRosterUpdated, RosterPayload{Players: roster})
	return created, nil
}

func (s *playerService) ListPlayers(ctx context.Context, tournamentID string) ([]models.Player, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	players, err := s.playerRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of tournament %s: %w", tournamentID, err)
	}
	return players, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, tournamentID, playerID string) error {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	var roster []models.Player
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.ensureRosterOpen(ctx, exec, tournamentID); err != nil {
			return err
		}
		if err := s.playerRepo.Delete(ctx, exec, tournamentID, playerID); err != nil {
			return mapRepositoryError(err)
		}
		var err error
		roster, err = s.playerRepo.ListByTournament(ctx, exec, tournamentID)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("player removed", slog.String("tournament_id", tournamentID), slog.String("player_id", playerID))
	s.notifier.PublishTournamentEvent(tournamentID, brackets.EventRosterUpdated, RosterPayload{Players: roster})
	return nil
}

// ensureRosterOpen rejects roster edits once round 1 exists or the tournament is closed.
func (s *playerService) ensureRosterOpen(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) error {
	if _, err := loadActiveTournament(ctx, s.tournamentRepo, exec, tournamentID); err != nil {
		return err
	}
	started, err := isStarted(ctx, s.roundRepo, exec, tournamentID)
	if err != nil {
		return err
	}
	if started {
		return ErrTournamentAlreadyStarted
	}
	return nil
}
