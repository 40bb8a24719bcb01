package services

import (
	"errors"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrPairingNotFound    = errors.New("pairing not found")

	// Ошибки валидации
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTournamentNameTooLong  = errors.New("tournament name is too long")
	ErrTournamentDateRequired = errors.New("tournament date is required")
	ErrInvalidRoundsTotal     = errors.New("rounds total must be between 3 and 7")
	ErrPasscodeTooShort       = errors.New("passcode must be at least 4 characters")
	ErrPlayerNameRequired     = errors.New("player name is required")
	ErrPlayerNameTooLong      = errors.New("player name is too long")
	ErrInvalidRating          = errors.New("rating must be between 0 and 4000")
	ErrInvalidResult          = errors.New("invalid result, expected 1-0, 0-1, 0.5-0.5 or null")

	// Конфликты
	ErrPlayerNameConflict = errors.New("player with this name is already registered")
	ErrTooManyPlayers     = errors.New("tournament roster is full")
	ErrRoundAlreadyExists = errors.New("round already exists")

	// Нарушение предусловий турнира
	ErrNotEnoughPlayers         = brackets.ErrNotEnoughPlayers
	ErrTournamentAlreadyStarted = errors.New("tournament has already started")
	ErrTournamentNotStarted     = errors.New("tournament has not started yet")
	ErrTournamentFinished       = errors.New("tournament is finished")
	ErrRoundResultsIncomplete   = errors.New("not all results of the current round are entered")
	ErrRoundNotActive           = errors.New("round is not active")
	ErrPairingIsBye             = errors.New("bye result cannot be changed")

	// Аутентификация
	ErrInvalidPasscode = errors.New("invalid tournament passcode")
)

// mapRepositoryError переводит ошибки репозиториев в ошибки сервисного слоя.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrRoundNotFound):
		return ErrRoundNotFound
	case errors.Is(err, repositories.ErrPairingNotFound):
		return ErrPairingNotFound
	case errors.Is(err, repositories.ErrPlayerNameConflict):
		return ErrPlayerNameConflict
	case errors.Is(err, repositories.ErrRoundAlreadyExists):
		return ErrRoundAlreadyExists
	default:
		return err
	}
}
