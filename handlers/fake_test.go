package handlers

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
)

// ------------------------
// Fake Tournament Service
// ------------------------

type FakeTournamentService struct {
	CreateTournamentFunc     func(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error)
	GetTournamentFunc        func(ctx context.Context, id string) (*models.Tournament, error)
	GetTournamentDetailsFunc func(ctx context.Context, id string) (*models.Tournament, error)
	ListTournamentsFunc      func(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	DeleteTournamentFunc     func(ctx context.Context, id string) error
	IssueOrganizerTokenFunc  func(ctx context.Context, id, passcode string) (string, error)
	StartTournamentFunc      func(ctx context.Context, id string) (*models.Round, error)
}

func (f *FakeTournamentService) CreateTournament(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, input)
	}
	return &models.Tournament{ID: "t-1", Name: input.Name}, nil
}

func (f *FakeTournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, id)
	}
	return &models.Tournament{ID: id}, nil
}

func (f *FakeTournamentService) GetTournamentDetails(ctx context.Context, id string) (*models.Tournament, error) {
	if f.GetTournamentDetailsFunc != nil {
		return f.GetTournamentDetailsFunc(ctx, id)
	}
	return &models.Tournament{ID: id}, nil
}

func (f *FakeTournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx, filter)
	}
	return []models.Tournament{}, nil
}

func (f *FakeTournamentService) DeleteTournament(ctx context.Context, id string) error {
	if f.DeleteTournamentFunc != nil {
		return f.DeleteTournamentFunc(ctx, id)
	}
	return nil
}

func (f *FakeTournamentService) IssueOrganizerToken(ctx context.Context, id, passcode string) (string, error) {
	if f.IssueOrganizerTokenFunc != nil {
		return f.IssueOrganizerTokenFunc(ctx, id, passcode)
	}
	return "token", nil
}

func (f *FakeTournamentService) StartTournament(ctx context.Context, id string) (*models.Round, error) {
	if f.StartTournamentFunc != nil {
		return f.StartTournamentFunc(ctx, id)
	}
	return &models.Round{TournamentID: id, RoundNumber: 1}, nil
}

var _ services.TournamentService = (*FakeTournamentService)(nil)

// ------------------------
// Fake Player Service
// ------------------------

type FakePlayerService struct {
	AddPlayerFunc      func(ctx context.Context, tournamentID string, input services.AddPlayerInput) (*models.Player, error)
	AddPlayersBulkFunc func(ctx context.Context, tournamentID string, inputs []services.AddPlayerInput) ([]models.Player, error)
	ListPlayersFunc    func(ctx context.Context, tournamentID string) ([]models.Player, error)
	DeletePlayerFunc   func(ctx context.Context, tournamentID, playerID string) error
}

func (f *FakePlayerService) AddPlayer(ctx context.Context, tournamentID string, input services.AddPlayerInput) (*models.Player, error) {
	if f.AddPlayerFunc != nil {
		return f.AddPlayerFunc(ctx, tournamentID, input)
	}
	return &models.Player{ID: "p-1", TournamentID: tournamentID, Name: input.Name}, nil
}

func (f *FakePlayerService) AddPlayersBulk(ctx context.Context, tournamentID string, inputs []services.AddPlayerInput) ([]models.Player, error) {
	if f.AddPlayersBulkFunc != nil {
		return f.AddPlayersBulkFunc(ctx, tournamentID, inputs)
	}
	out := make([]models.Player, len(inputs))
	for i, in := range inputs {
		out[i] = models.Player{TournamentID: tournamentID, Name: in.Name}
	}
	return out, nil
}

func (f *FakePlayerService) ListPlayers(ctx context.Context, tournamentID string) ([]models.Player, error) {
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, tournamentID)
	}
	return []models.Player{}, nil
}

func (f *FakePlayerService) DeletePlayer(ctx context.Context, tournamentID, playerID string) error {
	if f.DeletePlayerFunc != nil {
		return f.DeletePlayerFunc(ctx, tournamentID, playerID)
	}
	return nil
}

var _ services.PlayerService = (*FakePlayerService)(nil)

// ------------------------
// Fake Round Service
// ------------------------

type FakeRoundService struct {
	GetRoundFunc         func(ctx context.Context, tournamentID string, roundNumber int) (*models.Round, error)
	ListRoundsFunc       func(ctx context.Context, tournamentID string) ([]models.Round, error)
	SetPairingResultFunc func(ctx context.Context, tournamentID string, roundNumber int, pairingID string, result models.Result) (*models.Round, error)
	AdvanceRoundFunc     func(ctx context.Context, tournamentID string) (*services.AdvanceResult, error)
	StandingsFunc        func(ctx context.Context, tournamentID string) ([]models.Standing, error)
}

func (f *FakeRoundService) GetRound(ctx context.Context, tournamentID string, roundNumber int) (*models.Round, error) {
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, tournamentID, roundNumber)
	}
	return &models.Round{TournamentID: tournamentID, RoundNumber: roundNumber}, nil
}

func (f *FakeRoundService) ListRounds(ctx context.Context, tournamentID string) ([]models.Round, error) {
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx, tournamentID)
	}
	return []models.Round{}, nil
}

func (f *FakeRoundService) SetPairingResult(ctx context.Context, tournamentID string, roundNumber int, pairingID string, result models.Result) (*models.Round, error) {
	if f.SetPairingResultFunc != nil {
		return f.SetPairingResultFunc(ctx, tournamentID, roundNumber, pairingID, result)
	}
	return &models.Round{TournamentID: tournamentID, RoundNumber: roundNumber}, nil
}

func (f *FakeRoundService) AdvanceRound(ctx context.Context, tournamentID string) (*services.AdvanceResult, error) {
	if f.AdvanceRoundFunc != nil {
		return f.AdvanceRoundFunc(ctx, tournamentID)
	}
	return &services.AdvanceResult{}, nil
}

func (f *FakeRoundService) Standings(ctx context.Context, tournamentID string) ([]models.Standing, error) {
	if f.StandingsFunc != nil {
		return f.StandingsFunc(ctx, tournamentID)
	}
	return []models.Standing{}, nil
}

var _ services.RoundService = (*FakeRoundService)(nil)
