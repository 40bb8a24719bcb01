package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// Transactor runs fn inside one database transaction. fn receives the executor that
// repositories must use for every write of the step.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

type sqlTransactor struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLTransactor(db *sql.DB, logger *slog.Logger) Transactor {
	return &sqlTransactor{db: db, logger: logger}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (txErr error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				t.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}

// Notifier доставляет события турнира подписчикам (websocket-комнатам).
type Notifier interface {
	PublishTournamentEvent(tournamentID, eventType string, payload interface{})
}

type noopNotifier struct{}

func (noopNotifier) PublishTournamentEvent(string, string, interface{}) {}

// Archiver stores the final state of a finished tournament.
type Archiver interface {
	ArchiveTournament(ctx context.Context, tournament *models.Tournament) error
}

// TournamentLocks serializes mutations of one tournament across all services.
type TournamentLocks struct {
	mu    sync.Mutex
	locks map[string]*tournamentLock
}

type tournamentLock struct {
	mu   sync.Mutex
	refs int
}

func NewTournamentLocks() *TournamentLocks {
	return &TournamentLocks{locks: make(map[string]*tournamentLock)}
}

// Lock blocks until the tournament is free and returns the matching unlock function.
func (l *TournamentLocks) Lock(tournamentID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[tournamentID]
	if !ok {
		lock = &tournamentLock{}
		l.locks[tournamentID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, tournamentID)
		}
		l.mu.Unlock()
	}
}

// loadActiveTournament returns the tournament or ErrTournamentFinished when it is closed.
func loadActiveTournament(ctx context.Context, repo repositories.TournamentRepository, exec repositories.SQLExecutor, id string) (*models.Tournament, error) {
	t, err := repo.GetByID(ctx, exec, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if t.IsFinished() {
		return nil, ErrTournamentFinished
	}
	return t, nil
}

// isStarted reports whether round 1 of the tournament exists.
func isStarted(ctx context.Context, repo repositories.RoundRepository, exec repositories.SQLExecutor, tournamentID string) (bool, error) {
	_, err := repo.GetByNumber(ctx, exec, tournamentID, 1)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repositories.ErrRoundNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check round 1 of tournament %s: %w", tournamentID, err)
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
