package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
)

const dateLayout = "2006-01-02"

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

type createTournamentRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date" example:"2026-10-17"`
	TimeControl string `json:"time_control" example:"15+10"`
	RoundsTotal int    `json:"rounds_total" example:"5"`
	Passcode    string `json:"passcode"`
}

type tokenRequest struct {
	Passcode string `json:"passcode"`
}

// parseDate принимает как дату, так и полный RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// CreateHandler godoc
// @Summary Create a tournament
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param body body createTournamentRequest true "Tournament"
// @Success 201 {object} models.Tournament
// @Failure 422 {object} map[string]string
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), services.CreateTournamentInput{
		Name:        req.Name,
		Date:        date,
		TimeControl: req.TimeControl,
		RoundsTotal: req.RoundsTotal,
		Passcode:    req.Passcode,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler godoc
// @Summary Tournament with players and rounds
// @Tags Tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetTournamentDetails(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler godoc
// @Summary List tournaments
// @Tags Tournaments
// @Produce json
// @Param status query string false "active or finished"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Tournament
// @Router /tournaments [get]
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListTournamentsFilter
	query := r.URL.Query()

	if statusStr := query.Get("status"); statusStr != "" {
		status := models.TournamentStatus(statusStr)
		if status != models.StatusActive && status != models.StatusFinished {
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
		filter.Status = &status
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
		filter.Limit = limit
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			badRequestResponse(w, r, errors.New("invalid offset query parameter"))
			return
		}
		filter.Offset = offset
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler godoc
// @Summary Delete a tournament
// @Tags Tournaments
// @Param tournamentID path string true "Tournament ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID} [delete]
// @Security Bearer
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TokenHandler godoc
// @Summary Exchange the tournament passcode for an organizer token
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body tokenRequest true "Passcode"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /tournaments/{tournamentID}/token [post]
func (h *TournamentHandler) TokenHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var req tokenRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	token, err := h.tournamentService.IssueOrganizerToken(r.Context(), id, req.Passcode)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": token}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartHandler godoc
// @Summary Freeze the roster and draw round 1
// @Tags Rounds
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 201 {object} models.Round
// @Failure 409 {object} map[string]string
// @Router /tournaments/{tournamentID}/start [post]
// @Security Bearer
func (h *TournamentHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.tournamentService.StartTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
