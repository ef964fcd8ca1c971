package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/services"
)

type MatchHandler struct {
	matchService    services.MatchService
	scheduleService services.ScheduleService
	resultService   services.ResultService
}

func NewMatchHandler(ms services.MatchService, ss services.ScheduleService, rs services.ResultService) *MatchHandler {
	return &MatchHandler{matchService: ms, scheduleService: ss, resultService: rs}
}

// GenerateHandler handles POST /tournaments/{tournamentID}/matches/generate.
// A "regenerate=true" query parameter wipes and rebuilds an existing schedule.
func (h *MatchHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	regenerate := r.URL.Query().Get("regenerate") == "true"

	result, err := h.scheduleService.Generate(r.Context(), tournamentID, regenerate)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByTournamentHandler handles GET /tournaments/{tournamentID}/matches
func (h *MatchHandler) ListByTournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StatsHandler handles GET /tournaments/{tournamentID}/matches/stats
func (h *MatchHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.matchService.Stats(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DirectWinnersHandler handles GET /tournaments/{tournamentID}/matches/winners
func (h *MatchHandler) DirectWinnersHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	winners, err := h.matchService.DirectWinners(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"winners": winners}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RunningOrderHandler handles GET /tournaments/{tournamentID}/matches/order.
// Optional query parameters: spacing (minimum matches between two bouts of
// the same fighter) and seed (reproducible shuffle).
func (h *MatchHandler) RunningOrderHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	query := r.URL.Query()

	spacing := 0
	if spacingStr := query.Get("spacing"); spacingStr != "" {
		spacing, err = strconv.Atoi(spacingStr)
		if err != nil || spacing < 0 {
			badRequestResponse(w, r, errors.New("invalid spacing query parameter"))
			return
		}
	}

	var seed int64 = 1
	if seedStr := query.Get("seed"); seedStr != "" {
		seed, err = strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			badRequestResponse(w, r, errors.New("invalid seed query parameter"))
			return
		}
	}

	order, err := h.matchService.RunningOrder(r.Context(), tournamentID, spacing, seed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"order": order}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type manualMatchInput struct {
	Fighter1ID int `json:"fighter1_id"`
	Fighter2ID int `json:"fighter2_id"`
}

// CreateManualHandler handles POST /tournaments/{tournamentID}/matches/manual
func (h *MatchHandler) CreateManualHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input manualMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateManual(r.Context(), tournamentID, input.Fighter1ID, input.Fighter2ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /matches/{matchID}
func (h *MatchHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type resultInput struct {
	WinnerID *int   `json:"winner_id"`
	Status   string `json:"status"`
}

// RecordResultHandler handles PUT /matches/{matchID}/result
func (h *MatchHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input resultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.resultService.RecordResult(r.Context(), id, input.WinnerID, models.MatchStatus(input.Status))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type secondFighterInput struct {
	FighterID int `json:"fighter_id"`
}

// SetSecondFighterHandler handles PATCH /matches/{matchID}/fighter2
func (h *MatchHandler) SetSecondFighterHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input secondFighterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.SetSecondFighter(r.Context(), id, input.FighterID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /matches/{matchID}
func (h *MatchHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
