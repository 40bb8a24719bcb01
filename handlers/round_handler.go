package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
)

type RoundHandler struct {
	roundService services.RoundService
}

func NewRoundHandler(rs services.RoundService) *RoundHandler {
	return &RoundHandler{roundService: rs}
}

// resultRequest: null очищает результат.
type resultRequest struct {
	Result *string `json:"result" example:"1-0"`
}

// ListHandler godoc
// @Summary Rounds of a tournament
// @Tags Rounds
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {array} models.Round
// @Router /tournaments/{tournamentID}/rounds [get]
func (h *RoundHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rounds, err := h.roundService.ListRounds(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler godoc
// @Summary One round with its pairings
// @Tags Rounds
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param roundNumber path int true "Round number"
// @Success 200 {object} models.Round
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/rounds/{roundNumber} [get]
func (h *RoundHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	roundNumber, err := getIntFromURL(r, "roundNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.GetRound(r.Context(), tournamentID, roundNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetResultHandler godoc
// @Summary Enter, replace or clear a board result
// @Description Sending the result already stored clears it. null clears as well.
// @Tags Rounds
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param roundNumber path int true "Round number"
// @Param pairingID path string true "Pairing ID"
// @Param body body resultRequest true "1-0, 0-1, 0.5-0.5 or null"
// @Success 200 {object} models.Round
// @Failure 409 {object} map[string]string
// @Router /tournaments/{tournamentID}/rounds/{roundNumber}/pairings/{pairingID}/result [put]
// @Security Bearer
func (h *RoundHandler) SetResultHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	roundNumber, err := getIntFromURL(r, "roundNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	pairingID, err := getIDFromURL(r, "pairingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req resultRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result := models.ResultPending
	if req.Result != nil {
		result, err = models.ParseResult(*req.Result)
		if err != nil {
			mapServiceErrorToHTTP(w, r, fmt.Errorf("%w: %v", services.ErrInvalidResult, err))
			return
		}
	}

	round, err := h.roundService.SetPairingResult(r.Context(), tournamentID, roundNumber, pairingID, result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvanceHandler godoc
// @Summary Close the current round and draw the next one
// @Tags Rounds
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} services.AdvanceResult
// @Failure 409 {object} map[string]string
// @Router /tournaments/{tournamentID}/rounds/advance [post]
// @Security Bearer
func (h *RoundHandler) AdvanceHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.roundService.AdvanceRound(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler godoc
// @Summary Live standings
// @Tags Rounds
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {array} models.Standing
// @Router /tournaments/{tournamentID}/standings [get]
func (h *RoundHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.roundService.Standings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
