package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPasscode = "e2e4-e7e5"

var testSecret = []byte("test-secret")

type testEnv struct {
	store       *memStore
	tx          *FakeTx
	tournaments *FakeTournamentRepo
	players     *FakePlayerRepo
	rounds      *FakeRoundRepo
	notifier    *FakeNotifier
	archiver    *FakeArchiver

	tournamentSvc TournamentService
	playerSvc     PlayerService
	roundSvc      RoundService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.BcryptCost = bcrypt.MinCost

	store := newMemStore()
	env := &testEnv{
		store:       store,
		tx:          &FakeTx{store: store},
		tournaments: &FakeTournamentRepo{store: store},
		players:     &FakePlayerRepo{store: store},
		rounds:      &FakeRoundRepo{store: store},
		notifier:    &FakeNotifier{},
		archiver:    &FakeArchiver{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	locks := NewTournamentLocks()

	env.tournamentSvc = NewTournamentService(env.tx, env.tournaments, env.players, env.rounds, locks, env.notifier,
		TournamentServiceConfig{
			DefaultRounds: models.DefaultRounds,
			TokenSecret:   testSecret,
			TokenTTL:      time.Hour,
			Rand:          rand.New(rand.NewPCG(7, 7)),
		}, logger)
	env.playerSvc = NewPlayerService(env.tx, env.tournaments, env.players, env.rounds, locks, env.notifier, logger)
	env.roundSvc = NewRoundService(env.tx, env.tournaments, env.players, env.rounds, locks, env.notifier, env.archiver, logger)
	return env
}

func (e *testEnv) createTournament(t *testing.T, rounds int) *models.Tournament {
	t.Helper()
	tournament, err := e.tournamentSvc.CreateTournament(context.Background(), CreateTournamentInput{
		Name:        "Club Championship",
		Date:        time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		TimeControl: "15+10",
		RoundsTotal: rounds,
		Passcode:    testPasscode,
	})
	require.NoError(t, err)
	return tournament
}

func (e *testEnv) addPlayers(t *testing.T, tournamentID string, n int) []models.Player {
	t.Helper()
	inputs := make([]AddPlayerInput, n)
	for i := range inputs {
		inputs[i] = AddPlayerInput{Name: fmt.Sprintf("Player %02d", i+1)}
	}
	players, err := e.playerSvc.AddPlayersBulk(context.Background(), tournamentID, inputs)
	require.NoError(t, err)
	return players
}

// startedTournament creates a tournament with n players and draws round 1.
func (e *testEnv) startedTournament(t *testing.T, rounds, n int) (*models.Tournament, *models.Round) {
	t.Helper()
	tournament := e.createTournament(t, rounds)
	e.addPlayers(t, tournament.ID, n)
	round, err := e.tournamentSvc.StartTournament(context.Background(), tournament.ID)
	require.NoError(t, err)
	return tournament, round
}

// enterAll records result on every game board of the round.
func (e *testEnv) enterAll(t *testing.T, round *models.Round, result models.Result) {
	t.Helper()
	for _, p := range round.Pairings {
		if p.IsBye() {
			continue
		}
		_, err := e.roundSvc.SetPairingResult(context.Background(), round.TournamentID, round.RoundNumber, p.ID, result)
		require.NoError(t, err)
	}
}

func (e *testEnv) storedPlayers(t *testing.T, tournamentID string) []models.Player {
	t.Helper()
	players, err := e.players.ListByTournament(context.Background(), nil, tournamentID)
	require.NoError(t, err)
	return players
}

func firstGameBoard(t *testing.T, round *models.Round) models.Pairing {
	t.Helper()
	for _, p := range round.Pairings {
		if !p.IsBye() {
			return p
		}
	}
	t.Fatal("round has no game boards")
	return models.Pairing{}
}
