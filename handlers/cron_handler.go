package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/referee-review/services"
	"github.com/rs/zerolog"
)

// CronHandler exposes the batch jobs to an external scheduler.
type CronHandler struct {
	matchStatus services.MatchStatusService
	roundFocus  services.RoundFocusService
	now         func() time.Time
}

func NewCronHandler(matchStatus services.MatchStatusService, roundFocus services.RoundFocusService) *CronHandler {
	return &CronHandler{
		matchStatus: matchStatus,
		roundFocus:  roundFocus,
		now:         time.Now,
	}
}

// MatchStatus runs the window gate and, when it is open, the status pass.
func (h *CronHandler) MatchStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.matchStatus.Run(r.Context(), h.now())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("updated", result.Updated).Msg("match status trigger failed")
		h.failure(w, r, services.ErrStatusUpdateFailed.Error(), result.Updated)
		return
	}

	response := jsonResponse{"ran": result.Ran}
	if result.Ran {
		response["updated"] = result.Updated
	} else {
		response["reason"] = result.Reason
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CronHandler) RoundFocus(w http.ResponseWriter, r *http.Request) {
	updated, err := h.roundFocus.UpdateFocus(r.Context(), h.now())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("updated", updated).Msg("round focus trigger failed")
		h.failure(w, r, services.ErrFocusUpdateFailed.Error(), updated)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ran": true, "updated": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CronHandler) failure(w http.ResponseWriter, r *http.Request, message string, updated int) {
	response := jsonResponse{"ran": false, "error": message, "updated": updated}
	if err := writeJSON(w, http.StatusInternalServerError, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
