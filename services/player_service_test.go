package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPlayerService_AddPlayer(t *testing.T) {
	tests := []struct {
		name    string
		input   AddPlayerInput
		wantErr error
	}{
		{name: "name only", input: AddPlayerInput{Name: "Magnus"}},
		{name: "with rating", input: AddPlayerInput{Name: "Hikaru", Rating: intPtr(2780)}},
		{name: "blank name", input: AddPlayerInput{Name: "  "}, wantErr: ErrPlayerNameRequired},
		{name: "negative rating", input: AddPlayerInput{Name: "Ding", Rating: intPtr(-1)}, wantErr: ErrInvalidRating},
		{name: "rating out of range", input: AddPlayerInput{Name: "Ding", Rating: intPtr(5000)}, wantErr: ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tournament := env.createTournament(t, 5)

			got, err := env.playerSvc.AddPlayer(context.Background(), tournament.ID, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, env.storedPlayers(t, tournament.ID))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.input.Name, got.Name)
			assert.Equal(t, tt.input.Rating, got.Rating)
			assert.Zero(t, got.Points)
			assert.False(t, got.HadBye)
			assert.Equal(t, []string{brackets.EventRosterUpdated}, env.notifier.Types())
		})
	}
}

func TestPlayerService_DuplicateNames(t *testing.T) {
	env := newTestEnv(t)
	tournament := env.createTournament(t, 5)

	_, err := env.playerSvc.AddPlayer(context.Background(), tournament.ID, AddPlayerInput{Name: "Anna"})
	require.NoError(t, err)

	_, err = env.playerSvc.AddPlayer(context.Background(), tournament.ID, AddPlayerInput{Name: " Anna "})
	assert.ErrorIs(t, err, ErrPlayerNameConflict, "names are compared after trimming")

	_, err = env.playerSvc.AddPlayersBulk(context.Background(), tournament.ID, []AddPlayerInput{
		{Name: "Boris"}, {Name: "Boris"},
	})
	assert.ErrorIs(t, err, ErrPlayerNameConflict)

	_, err = env.playerSvc.AddPlayersBulk(context.Background(), tournament.ID, []AddPlayerInput{
		{Name: "Clara"}, {Name: "Anna"},
	})
	assert.ErrorIs(t, err, ErrPlayerNameConflict)

	players := env.storedPlayers(t, tournament.ID)
	require.Len(t, players, 1, "a failed bulk add registers nobody")
	assert.Equal(t, "Anna", players[0].Name)

	other := env.createTournament(t, 5)
	_, err = env.playerSvc.AddPlayer(context.Background(), other.ID, AddPlayerInput{Name: "Anna"})
	assert.NoError(t, err, "the same name is allowed in another tournament")
}

func TestPlayerService_RosterLimits(t *testing.T) {
	t.Run("too many players", func(t *testing.T) {
		env := newTestEnv(t)
		tournament := env.createTournament(t, 5)
		env.addPlayers(t, tournament.ID, models.MaxPlayers)

		_, err := env.playerSvc.AddPlayer(context.Background(), tournament.ID, AddPlayerInput{Name: "Late Entry"})
		assert.ErrorIs(t, err, ErrTooManyPlayers)
	})

	t.Run("roster frozen after start", func(t *testing.T) {
		env := newTestEnv(t)
		tournament, _ := env.startedTournament(t, 5, 4)

		_, err := env.playerSvc.AddPlayer(context.Background(), tournament.ID, AddPlayerInput{Name: "Late Entry"})
		assert.ErrorIs(t, err, ErrTournamentAlreadyStarted)

		players := env.storedPlayers(t, tournament.ID)
		err = env.playerSvc.DeletePlayer(context.Background(), tournament.ID, players[0].ID)
		assert.ErrorIs(t, err, ErrTournamentAlreadyStarted)
		assert.Len(t, env.storedPlayers(t, tournament.ID), 4)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.playerSvc.AddPlayer(context.Background(), "missing", AddPlayerInput{Name: "Anna"})
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})
}

func TestPlayerService_DeletePlayer(t *testing.T) {
	env := newTestEnv(t)
	tournament := env.createTournament(t, 5)
	added := env.addPlayers(t, tournament.ID, 3)

	require.NoError(t, env.playerSvc.DeletePlayer(context.Background(), tournament.ID, added[1].ID))

	players, err := env.playerSvc.ListPlayers(context.Background(), tournament.ID)
	require.NoError(t, err)
	var names []string
	for _, p := range players {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Player 01", "Player 03"}, names)

	err = env.playerSvc.DeletePlayer(context.Background(), tournament.ID, added[1].ID)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = env.playerSvc.ListPlayers(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestPlayerService_BulkOrder(t *testing.T) {
	env := newTestEnv(t)
	tournament := env.createTournament(t, 5)

	inputs := make([]AddPlayerInput, 6)
	for i := range inputs {
		inputs[i] = AddPlayerInput{Name: fmt.Sprintf("Entrant %d", i+1)}
	}
	created, err := env.playerSvc.AddPlayersBulk(context.Background(), tournament.ID, inputs)
	require.NoError(t, err)
	require.Len(t, created, 6)
	for i, p := range created {
		assert.Equal(t, inputs[i].Name, p.Name)
	}
	assert.Equal(t, 1, env.tx.commits, "one transaction for the whole batch")
}
