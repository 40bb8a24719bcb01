package brackets

import (
	"fmt"
	"testing"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/stretchr/testify/require"
)

func makePlayers(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{
			ID:              fmt.Sprintf("p%02d", i+1),
			TournamentID:    "t1",
			Name:            fmt.Sprintf("Player %02d", i+1),
			ColorHistory:    []models.Color{},
			OpponentsPlayed: []string{},
		}
	}
	return players
}

func strPtr(s string) *string { return &s }

func game(board int, white, black string, result models.Result) models.Pairing {
	return models.Pairing{
		ID:            fmt.Sprintf("b%d", board),
		BoardNumber:   board,
		WhitePlayerID: white,
		BlackPlayerID: strPtr(black),
		Result:        result,
	}
}

func byeBoard(board int, playerID string) models.Pairing {
	return models.Pairing{
		ID:            fmt.Sprintf("b%d", board),
		BoardNumber:   board,
		WhitePlayerID: playerID,
		Result:        models.ResultWhiteWins,
	}
}

func playerByID(t *testing.T, players []models.Player, id string) models.Player {
	t.Helper()
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	require.FailNowf(t, "player not found", "id %s", id)
	return models.Player{}
}

// requireWellFormedRound checks the structural guarantees every generated round has.
func requireWellFormedRound(t *testing.T, round *models.Round, playerCount int) {
	t.Helper()
	require.NotNil(t, round)

	wantBoards := playerCount / 2
	if playerCount%2 == 1 {
		wantBoards++
	}
	require.Len(t, round.Pairings, wantBoards)

	seen := make(map[string]bool, playerCount)
	byes := 0
	for i, p := range round.Pairings {
		require.Equal(t, i+1, p.BoardNumber, "boards must be numbered densely from 1")
		require.NotEmpty(t, p.ID)
		require.False(t, seen[p.WhitePlayerID], "player %s appears twice", p.WhitePlayerID)
		seen[p.WhitePlayerID] = true
		if p.IsBye() {
			byes++
			require.Equal(t, len(round.Pairings), p.BoardNumber, "bye must be on the last board")
			require.Equal(t, models.ResultWhiteWins, p.Result)
			continue
		}
		require.Equal(t, models.ResultPending, p.Result)
		require.False(t, seen[*p.BlackPlayerID], "player %s appears twice", *p.BlackPlayerID)
		seen[*p.BlackPlayerID] = true
	}
	require.Len(t, seen, playerCount)
	require.Equal(t, playerCount%2, byes)
}
