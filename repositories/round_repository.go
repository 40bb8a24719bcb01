package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/google/uuid"
)

var (
	ErrRoundNotFound      = errors.New("round not found")
	ErrRoundAlreadyExists = errors.New("round with this number already exists")
	ErrPairingNotFound    = errors.New("pairing not found")
)

type RoundRepository interface {
	// Create сохраняет тур вместе со всеми парами.
	Create(ctx context.Context, exec SQLExecutor, round *models.Round) error
	GetByNumber(ctx context.Context, exec SQLExecutor, tournamentID string, roundNumber int) (*models.Round, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]models.Round, error)
	// Update пишет статус тура и результаты всех его пар.
	Update(ctx context.Context, exec SQLExecutor, round *models.Round) error
	UpdatePairingResult(ctx context.Context, exec SQLExecutor, pairingID string, result models.Result) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// resultValue maps a pending result to NULL.
func resultValue(result models.Result) interface{} {
	if result.IsPending() {
		return nil
	}
	return string(result)
}

func (r *postgresRoundRepository) Create(ctx context.Context, exec SQLExecutor, round *models.Round) error {
	executor := r.getExecutor(exec)
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if round.Status == "" {
		round.Status = models.RoundStatusActive
	}

	_, err := executor.ExecContext(ctx,
		`INSERT INTO rounds (id, tournament_id, round_number, status) VALUES ($1, $2, $3, $4)`,
		round.ID, round.TournamentID, round.RoundNumber, round.Status,
	)
	if err != nil {
		return r.handleRoundError(err)
	}

	query := `
		INSERT INTO pairings (id, round_id, board_number, white_player_id, black_player_id, result)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range round.Pairings {
		p := &round.Pairings[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, err := executor.ExecContext(ctx, query,
			p.ID, round.ID, p.BoardNumber, p.WhitePlayerID, p.BlackPlayerID, resultValue(p.Result),
		); err != nil {
			return fmt.Errorf("failed to insert pairing on board %d: %w", p.BoardNumber, r.handleRoundError(err))
		}
	}
	return nil
}

func (r *postgresRoundRepository) GetByNumber(ctx context.Context, exec SQLExecutor, tournamentID string, roundNumber int) (*models.Round, error) {
	if _, err := uuid.Parse(tournamentID); err != nil {
		return nil, ErrRoundNotFound
	}
	executor := r.getExecutor(exec)

	round := &models.Round{}
	err := executor.QueryRowContext(ctx,
		`SELECT id, tournament_id, round_number, status FROM rounds WHERE tournament_id = $1 AND round_number = $2`,
		tournamentID, roundNumber,
	).Scan(&round.ID, &round.TournamentID, &round.RoundNumber, &round.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	rows, err := executor.QueryContext(ctx, `
		SELECT id, round_id, board_number, white_player_id, black_player_id, result
		FROM pairings
		WHERE round_id = $1
		ORDER BY board_number`, round.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairings of round %s: %w", round.ID, err)
	}
	defer rows.Close()

	round.Pairings = make([]models.Pairing, 0)
	for rows.Next() {
		p, _, scanErr := scanPairing(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		round.Pairings = append(round.Pairings, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during pairing rows iteration: %w", err)
	}
	return round, nil
}

func scanPairing(row rowScanner) (models.Pairing, string, error) {
	var (
		p       models.Pairing
		roundID string
		result  sql.NullString
	)
	if err := row.Scan(&p.ID, &roundID, &p.BoardNumber, &p.WhitePlayerID, &p.BlackPlayerID, &result); err != nil {
		return p, "", fmt.Errorf("failed to scan pairing: %w", err)
	}
	if result.Valid {
		parsed, err := models.ParseResult(result.String)
		if err != nil {
			return p, "", fmt.Errorf("pairing %s: %w", p.ID, err)
		}
		p.Result = parsed
	}
	return p, roundID, nil
}

// ListByTournament возвращает туры по возрастанию номера, пары внутри тура по номеру доски.
func (r *postgresRoundRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]models.Round, error) {
	rounds := make([]models.Round, 0)
	if _, err := uuid.Parse(tournamentID); err != nil {
		return rounds, nil
	}
	executor := r.getExecutor(exec)

	roundRows, err := executor.QueryContext(ctx, `
		SELECT id, tournament_id, round_number, status
		FROM rounds
		WHERE tournament_id = $1
		ORDER BY round_number`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds of tournament %s: %w", tournamentID, err)
	}
	defer roundRows.Close()

	index := make(map[string]int)
	for roundRows.Next() {
		var round models.Round
		if scanErr := roundRows.Scan(&round.ID, &round.TournamentID, &round.RoundNumber, &round.Status); scanErr != nil {
			return nil, fmt.Errorf("failed to scan round: %w", scanErr)
		}
		round.Pairings = make([]models.Pairing, 0)
		index[round.ID] = len(rounds)
		rounds = append(rounds, round)
	}
	if err = roundRows.Err(); err != nil {
		return nil, fmt.Errorf("error during round rows iteration: %w", err)
	}
	if len(rounds) == 0 {
		return rounds, nil
	}

	pairingRows, err := executor.QueryContext(ctx, `
		SELECT p.id, p.round_id, p.board_number, p.white_player_id, p.black_player_id, p.result
		FROM pairings p
		JOIN rounds r ON r.id = p.round_id
		WHERE r.tournament_id = $1
		ORDER BY r.round_number, p.board_number`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairings of tournament %s: %w", tournamentID, err)
	}
	defer pairingRows.Close()

	for pairingRows.Next() {
		p, roundID, scanErr := scanPairing(pairingRows)
		if scanErr != nil {
			return nil, scanErr
		}
		if i, ok := index[roundID]; ok {
			rounds[i].Pairings = append(rounds[i].Pairings, p)
		}
	}
	if err = pairingRows.Err(); err != nil {
		return nil, fmt.Errorf("error during pairing rows iteration: %w", err)
	}
	return rounds, nil
}

func (r *postgresRoundRepository) Update(ctx context.Context, exec SQLExecutor, round *models.Round) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE rounds SET status = $1 WHERE id = $2`, round.Status, round.ID)
	if err != nil {
		return fmt.Errorf("failed to update round %s: %w", round.ID, err)
	}
	if err := checkAffectedRows(result, ErrRoundNotFound); err != nil {
		return err
	}

	for _, p := range round.Pairings {
		if err := r.UpdatePairingResult(ctx, executor, p.ID, p.Result); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRoundRepository) UpdatePairingResult(ctx context.Context, exec SQLExecutor, pairingID string, result models.Result) error {
	if _, err := uuid.Parse(pairingID); err != nil {
		return ErrPairingNotFound
	}
	executor := r.getExecutor(exec)
	res, err := executor.ExecContext(ctx, `UPDATE pairings SET result = $1 WHERE id = $2`, resultValue(result), pairingID)
	if err != nil {
		return fmt.Errorf("failed to update result of pairing %s: %w", pairingID, err)
	}
	return checkAffectedRows(res, ErrPairingNotFound)
}

func (r *postgresRoundRepository) handleRoundError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr := asPQError(err); pqErr != nil {
		switch pqErr.Code {
		case pqUniqueViolation:
			if pqErr.Constraint == "rounds_tournament_id_round_number_key" {
				return ErrRoundAlreadyExists
			}
		case pqForeignKeyViolation:
			if pqErr.Constraint == "rounds_tournament_id_fkey" {
				return ErrTournamentNotFound
			}
			return ErrPlayerNotFound
		}
	}
	return err
}
