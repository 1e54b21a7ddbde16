package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/referee-review/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
	matchService  services.MatchService
}

func NewLeagueHandler(leagueService services.LeagueService, matchService services.MatchService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
		matchService:  matchService,
	}
}

// ListLeagues GET /leagues?season=2025
func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	var season *int
	if raw := r.URL.Query().Get("season"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("season must be a number"))
			return
		}
		season = &v
	}

	leagues, err := h.leagueService.ListLeagues(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leagues": leagues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) ListRounds(w http.ResponseWriter, r *http.Request) {
	leagueID, err := parseIDParam(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rounds, err := h.leagueService.ListRounds(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetFocusRound отдает текущий тур лиги вместе с матчами.
func (h *LeagueHandler) GetFocusRound(w http.ResponseWriter, r *http.Request) {
	leagueID, err := parseIDParam(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.leagueService.GetFocusRound(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) ListRoundMatches(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseIDParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListRoundMatches(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
