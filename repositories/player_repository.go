package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player with this name already registered in the tournament")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]models.Player, error)
	// ReplaceForTournament перезаписывает накопленное состояние (очки, бухгольц, цвета,
	// соперники, бай, счётчики) каждого переданного игрока турнира.
	ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID string, players []models.Player) error
	Delete(ctx context.Context, exec SQLExecutor, tournamentID, playerID string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func colorsToStrings(colors []models.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = string(c)
	}
	return out
}

func stringsToColors(values []string) []models.Color {
	out := make([]models.Color, len(values))
	for i, v := range values {
		out[i] = models.Color(v)
	}
	return out
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Player) error {
	executor := r.getExecutor(exec)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO players (
			id, tournament_id, name, rating, points, buchholz,
			color_history, opponents_played, had_bye, wins, draws, losses
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := executor.ExecContext(ctx, query,
		p.ID, p.TournamentID, p.Name, p.Rating, p.Points, p.Buchholz,
		pq.Array(colorsToStrings(p.ColorHistory)), pq.Array(nonNilStrings(p.OpponentsPlayed)),
		p.HadBye, p.Wins, p.Draws, p.Losses,
	)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]models.Player, error) {
	if _, err := uuid.Parse(tournamentID); err != nil {
		return []models.Player{}, nil
	}
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, name, rating, points, buchholz,
		       color_history, opponents_played, had_bye, wins, draws, losses
		FROM players
		WHERE tournament_id = $1
		ORDER BY created_at, name`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players of tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var (
			p         models.Player
			colors    pq.StringArray
			opponents pq.StringArray
		)
		if scanErr := rows.Scan(
			&p.ID, &p.TournamentID, &p.Name, &p.Rating, &p.Points, &p.Buchholz,
			&colors, &opponents, &p.HadBye, &p.Wins, &p.Draws, &p.Losses,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan player: %w", scanErr)
		}
		p.ColorHistory = stringsToColors(colors)
		p.OpponentsPlayed = nonNilStrings(opponents)
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) ReplaceForTournament(ctx context.Context, exec SQLExecutor, tournamentID string, players []models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players SET
			points = $1,
			buchholz = $2,
			color_history = $3,
			opponents_played = $4,
			had_bye = $5,
			wins = $6,
			draws = $7,
			losses = $8
		WHERE id = $9 AND tournament_id = $10`

	for _, p := range players {
		result, err := executor.ExecContext(ctx, query,
			p.Points, p.Buchholz,
			pq.Array(colorsToStrings(p.ColorHistory)), pq.Array(nonNilStrings(p.OpponentsPlayed)),
			p.HadBye, p.Wins, p.Draws, p.Losses,
			p.ID, tournamentID,
		)
		if err != nil {
			return fmt.Errorf("failed to update player %s: %w", p.ID, err)
		}
		if err := checkAffectedRows(result, ErrPlayerNotFound); err != nil {
			return fmt.Errorf("player %s: %w", p.ID, err)
		}
	}
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, exec SQLExecutor, tournamentID, playerID string) error {
	if _, err := uuid.Parse(playerID); err != nil {
		return ErrPlayerNotFound
	}
	if _, err := uuid.Parse(tournamentID); err != nil {
		return ErrPlayerNotFound
	}
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM players WHERE id = $1 AND tournament_id = $2`, playerID, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr := asPQError(err); pqErr != nil {
		switch pqErr.Code {
		case pqUniqueViolation:
			if pqErr.Constraint == "players_tournament_id_name_key" {
				return ErrPlayerNameConflict
			}
		case pqForeignKeyViolation:
			return ErrTournamentNotFound
		}
	}
	return err
}
