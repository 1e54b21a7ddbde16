package handlers

import (
	"net/http"

	"github.com/Dosada05/referee-review/services"
)

type MomentHandler struct {
	momentService  services.MomentService
	commentService services.CommentService
	reportService  services.ReportService
}

func NewMomentHandler(
	momentService services.MomentService,
	commentService services.CommentService,
	reportService services.ReportService,
) *MomentHandler {
	return &MomentHandler{
		momentService:  momentService,
		commentService: commentService,
		reportService:  reportService,
	}
}

func (h *MomentHandler) GetMoment(w http.ResponseWriter, r *http.Request) {
	momentID, err := parseIDParam(r, "momentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	moment, err := h.momentService.GetMoment(r.Context(), momentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"moment": moment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MomentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	momentID, err := parseIDParam(r, "momentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comments, err := h.commentService.ListMomentComments(r.Context(), momentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"comments": comments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MomentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	momentID, err := parseIDParam(r, "momentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, _, err := currentUser(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), userID, momentID, input.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"comment": comment}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MomentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, role, err := currentUser(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), userID, role, commentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MomentHandler) ReportComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, _, err := currentUser(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.reportService.CreateReport(r.Context(), userID, commentID, input.Reason)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MomentHandler) ListOpenReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListOpenReports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"reports": reports}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MomentHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := parseIDParam(r, "reportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.reportService.ResolveReport(r.Context(), reportID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
