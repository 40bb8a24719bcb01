package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

type bulkPlayersRequest struct {
	Players []services.AddPlayerInput `json:"players"`
}

// ListHandler godoc
// @Summary Players of a tournament
// @Tags Players
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {array} models.Player
// @Router /tournaments/{tournamentID}/players [get]
func (h *PlayerHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListPlayers(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddHandler godoc
// @Summary Register a player
// @Tags Players
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body services.AddPlayerInput true "Player"
// @Success 201 {object} models.Player
// @Failure 409 {object} map[string]string
// @Router /tournaments/{tournamentID}/players [post]
// @Security Bearer
func (h *PlayerHandler) AddHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.AddPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.AddPlayer(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddBulkHandler godoc
// @Summary Register several players at once
// @Tags Players
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body bulkPlayersRequest true "Players"
// @Success 201 {array} models.Player
// @Router /tournaments/{tournamentID}/players/bulk [post]
// @Security Bearer
func (h *PlayerHandler) AddBulkHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var req bulkPlayersRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.AddPlayersBulk(r.Context(), tournamentID, req.Players)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler godoc
// @Summary Remove a player before the start
// @Tags Players
// @Param tournamentID path string true "Tournament ID"
// @Param playerID path string true "Player ID"
// @Success 204
// @Router /tournaments/{tournamentID}/players/{playerID} [delete]
// @Security Bearer
func (h *PlayerHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), tournamentID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
