package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/marketvibe/doorrenew-api/internal/infra/http/middleware"
	"github.com/marketvibe/doorrenew-api/internal/infra/integration/meta"
	"github.com/marketvibe/doorrenew-api/internal/usecase"
)

// eventNameMap translates front-end interaction names to the standard
// events the attribution API optimizes on. Only "Lead" events are forwarded;
// the rest are acknowledged and logged.
var eventNameMap = map[string]string{
	"FormStart":       "FormStart",
	"FormSubmit":      "Lead",
	"FormAbandon":     "FormAbandon",
	"CallButtonClick": "Lead",
}

type TrackHandler struct {
	Tracker usecase.ConversionTracker
}

func NewTrackHandler(tracker usecase.ConversionTracker) *TrackHandler {
	return &TrackHandler{Tracker: tracker}
}

type trackViewRequest struct {
	Location string `json:"location"`
	URL      string `json:"url"`
	FBP      string `json:"fbp,omitempty"`
	FBC      string `json:"fbc,omitempty"`
}

// TrackView fires a ViewContent event for a landing-page view.
func (h *TrackHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	var req trackViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	resp := h.Tracker.Send(r.Context(), meta.Event{
		EventName:      "ViewContent",
		EventTime:      time.Now().Unix(),
		EventSourceURL: req.URL,
		UserData: meta.UserData{
			ClientIPAddress: getClientIP(r),
			ClientUserAgent: r.UserAgent(),
			Fbp:             req.FBP,
			Fbc:             req.FBC,
		},
		CustomData: map[string]any{
			"location": req.Location,
		},
	})
	recordEventMetric("ViewContent", resp)

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type trackEventRequest struct {
	EventName string `json:"eventName"`
	Location  string `json:"location"`
	URL       string `json:"url"`
	FBP       string `json:"fbp,omitempty"`
	FBC       string `json:"fbc,omitempty"`
}

// TrackEvent fires a conversion event for a front-end interaction. Call
// button clicks count as phone leads, form submits as form leads.
func (h *TrackHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req trackEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	mapped := eventNameMap[req.EventName]
	if mapped != "Lead" {
		log.Printf("track-event: non-lead event %q (mapped %q), not forwarded", req.EventName, mapped)
		respondJSON(w, http.StatusOK, map[string]bool{"success": true})
		return
	}

	leadSource := "form"
	if req.EventName == "CallButtonClick" {
		leadSource = "phone"
	}

	resp := h.Tracker.Send(r.Context(), meta.Event{
		EventName:      mapped,
		EventTime:      time.Now().Unix(),
		EventSourceURL: req.URL,
		UserData: meta.UserData{
			ClientIPAddress: getClientIP(r),
			ClientUserAgent: r.UserAgent(),
			Fbp:             req.FBP,
			Fbc:             req.FBC,
		},
		CustomData: map[string]any{
			"location":    req.Location,
			"lead_source": leadSource,
		},
	})
	recordEventMetric(mapped, resp)

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func recordEventMetric(event string, resp *meta.EventResponse) {
	if resp == nil {
		middleware.RecordConversionEvent(event, "dropped")
		return
	}
	middleware.RecordConversionEvent(event, "delivered")
}
