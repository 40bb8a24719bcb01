package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/utils"
	"golang.org/x/sync/errgroup"
)

const (
	minPasscodeLength        = 4
	maxTournamentName        = 200
	defaultListLimit         = 50
	maxListLimit             = 200
	defaultOrganizerTokenTTL = 12 * time.Hour
)

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TimeControl string    `json:"time_control"`
	RoundsTotal int       `json:"rounds_total"`
	Passcode    string    `json:"passcode"`
}

// TournamentServiceConfig задаёт параметры, приходящие из конфигурации приложения.
type TournamentServiceConfig struct {
	DefaultRounds int
	TokenSecret   []byte
	TokenTTL      time.Duration
	// Rand seeds the round 1 draw. Nil uses the global source.
	Rand *rand.Rand
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	GetTournamentDetails(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	IssueOrganizerToken(ctx context.Context, id, passcode string) (string, error)
	StartTournament(ctx context.Context, id string) (*models.Round, error)
}

type tournamentService struct {
	tx             Transactor
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	roundRepo      repositories.RoundRepository
	locks          *TournamentLocks
	notifier       Notifier
	planner        *roundPlanner
	cfg            TournamentServiceConfig
	logger         *slog.Logger
	now            func() time.Time
}

func NewTournamentService(
	tx Transactor,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	locks *TournamentLocks,
	notifier Notifier,
	cfg TournamentServiceConfig,
	logger *slog.Logger,
) TournamentService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultRounds == 0 {
		cfg.DefaultRounds = models.DefaultRounds
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaultOrganizerTokenTTL
	}
	return &tournamentService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		roundRepo:      roundRepo,
		locks:          locks,
		notifier:       notifier,
		planner:        &roundPlanner{playerRepo: playerRepo, roundRepo: roundRepo, rng: cfg.Rand, logger: logger},
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := normalizeName(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if len(name) > maxTournamentName {
		return nil, ErrTournamentNameTooLong
	}
	if input.Date.IsZero() {
		return nil, ErrTournamentDateRequired
	}
	rounds := input.RoundsTotal
	if rounds == 0 {
		rounds = s.cfg.DefaultRounds
	}
	if rounds < models.MinRounds || rounds > models.MaxRounds {
		return nil, ErrInvalidRoundsTotal
	}
	if len(input.Passcode) < minPasscodeLength {
		return nil, ErrPasscodeTooShort
	}

	hash, err := utils.HashPassword(input.Passcode)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passcode: %w", err)
	}

	t := &models.Tournament{
		Name:         name,
		Date:         input.Date,
		TimeControl:  normalizeName(input.TimeControl),
		RoundsTotal:  rounds,
		Status:       models.StatusActive,
		PasscodeHash: hash,
	}
	if err := s.tournamentRepo.Create(ctx, nil, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", mapRepositoryError(err))
	}

	s.logger.Info("tournament created", slog.String("tournament_id", t.ID), slog.Int("rounds_total", t.RoundsTotal))
	return t, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return t, nil
}

// GetTournamentDetails загружает турнир вместе с игроками и турами.
func (s *tournamentService) GetTournamentDetails(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		players, err := s.playerRepo.ListByTournament(gCtx, nil, id)
		if err != nil {
			return fmt.Errorf("failed to load players of tournament %s: %w", id, err)
		}
		t.Players = players
		return nil
	})

	g.Go(func() error {
		rounds, err := s.roundRepo.ListByTournament(gCtx, nil, id)
		if err != nil {
			return fmt.Errorf("failed to load rounds of tournament %s: %w", id, err)
		}
		t.Rounds = rounds
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.tournamentRepo.Delete(ctx, nil, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("tournament deleted", slog.String("tournament_id", id))
	return nil
}

func (s *tournamentService) IssueOrganizerToken(ctx context.Context, id, passcode string) (string, error) {
	t, err := s.GetTournament(ctx, id)
	if err != nil {
		return "", err
	}
	if !utils.CheckPasswordHash(passcode, t.PasscodeHash) {
		return "", ErrInvalidPasscode
	}
	token, err := utils.GenerateOrganizerToken(s.cfg.TokenSecret, t.ID, s.cfg.TokenTTL, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to issue organizer token: %w", err)
	}
	return token, nil
}

// StartTournament draws round 1. The roster is frozen from this point on.
func (s *tournamentService) StartTournament(ctx context.Context, id string) (*models.Round, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	var planned *plannedRound
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := loadActiveTournament(ctx, s.tournamentRepo, exec, id); err != nil {
			return err
		}

		started, err := isStarted(ctx, s.roundRepo, exec, id)
		if err != nil {
			return err
		}
		if started {
			return ErrTournamentAlreadyStarted
		}

		players, err := s.playerRepo.ListByTournament(ctx, exec, id)
		if err != nil {
			return fmt.Errorf("failed to load players of tournament %s: %w", id, err)
		}
		if len(players) < 2 {
			return ErrNotEnoughPlayers
		}

		planned, err = s.planner.plan(ctx, exec, id, 1, players)
		return err
	})
	if err != nil {
		return nil, err
	}

	planned.record()
	s.logger.Info("tournament started",
		slog.String("tournament_id", id),
		slog.Int("boards", len(planned.draw.Round.Pairings)),
		slog.String("bye_player_id", planned.draw.ByePlayerID),
	)
	s.notifier.PublishTournamentEvent(id, brackets.EventRoundCreated, RoundCreatedPayload{
		Round:       planned.draw.Round,
		ByePlayerID: planned.draw.ByePlayerID,
	})
	return planned.draw.Round, nil
}
