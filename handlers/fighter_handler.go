package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/services"
)

type FighterHandler struct {
	fighterService services.FighterService
}

func NewFighterHandler(fs services.FighterService) *FighterHandler {
	return &FighterHandler{fighterService: fs}
}

type fighterInput struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Sex             string  `json:"sex"`
	BirthYear       *int    `json:"birth_year"`
	Weight          float64 `json:"weight"`
	Gloves          string  `json:"gloves"`
	CompetitionType string  `json:"competition_type"`
	ClubID          int     `json:"club_id"`
}

func (in fighterInput) toModel(id int) *models.Fighter {
	return &models.Fighter{
		ID:              id,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Sex:             models.Sex(in.Sex),
		BirthYear:       in.BirthYear,
		Weight:          in.Weight,
		Gloves:          in.Gloves,
		CompetitionType: models.CompetitionType(in.CompetitionType),
		ClubID:          in.ClubID,
	}
}

// CreateHandler handles POST /fighters
func (h *FighterHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input fighterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	fighter := input.toModel(0)
	if err := h.fighterService.Create(r.Context(), fighter); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"fighter": fighter}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /fighters/{fighterID}
func (h *FighterHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "fighterID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	fighter, err := h.fighterService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"fighter": fighter}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /fighters with optional club_id and sex filters.
func (h *FighterHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var clubID *int
	var sex *models.Sex

	query := r.URL.Query()
	if clubIDStr := query.Get("club_id"); clubIDStr != "" {
		id, err := strconv.Atoi(clubIDStr)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, errors.New("invalid club_id query parameter"))
			return
		}
		clubID = &id
	}
	if sexStr := query.Get("sex"); sexStr != "" {
		s := models.Sex(sexStr)
		if s != models.SexMale && s != models.SexFemale {
			badRequestResponse(w, r, errors.New("invalid sex query parameter, expected M or F"))
			return
		}
		sex = &s
	}

	fighters, err := h.fighterService.List(r.Context(), clubID, sex)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"fighters": fighters}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /fighters/{fighterID}
func (h *FighterHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "fighterID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input fighterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	fighter := input.toModel(id)
	if err := h.fighterService.Update(r.Context(), fighter); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"fighter": fighter}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /fighters/{fighterID}
func (h *FighterHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "fighterID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.fighterService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
