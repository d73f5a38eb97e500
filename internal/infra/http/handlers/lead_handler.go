package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/marketvibe/doorrenew-api/internal/usecase"
)

type LeadHandler struct {
	SubmitUseCase *usecase.SubmitLeadUseCase
	UpdateUseCase *usecase.UpdateLeadUseCase
}

func NewLeadHandler(submitUC *usecase.SubmitLeadUseCase, updateUC *usecase.UpdateLeadUseCase) *LeadHandler {
	return &LeadHandler{
		SubmitUseCase: submitUC,
		UpdateUseCase: updateUC,
	}
}

// SubmitLead handles the step-one form post. UTM parameters ride on the
// query string; IP and user agent come from the request itself.
func (h *LeadHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	query := r.URL.Query()
	input.UTMSource = query.Get("utm_source")
	input.UTMMedium = query.Get("utm_medium")
	input.UTMCampaign = query.Get("utm_campaign")
	input.UserAgent = r.UserAgent()
	input.IPAddress = getClientIP(r)
	input.SourceURL = r.Referer()

	output, err := h.SubmitUseCase.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

// UpdateLead handles the step-two enrichment post. Matching prefers leadId;
// email is the legacy fallback.
func (h *LeadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	output, err := h.UpdateUseCase.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}
