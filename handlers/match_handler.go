package handlers

import (
	"net/http"

	"github.com/Dosada05/referee-review/services"
)

type MatchHandler struct {
	matchService  services.MatchService
	momentService services.MomentService
}

func NewMatchHandler(matchService services.MatchService, momentService services.MomentService) *MatchHandler {
	return &MatchHandler{
		matchService:  matchService,
		momentService: momentService,
	}
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListMoments(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	moments, err := h.momentService.ListMatchMoments(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"moments": moments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMoment доступен только администраторам, проверка в роутере.
func (h *MatchHandler) CreateMoment(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateMomentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	moment, err := h.momentService.CreateMoment(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"moment": moment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
