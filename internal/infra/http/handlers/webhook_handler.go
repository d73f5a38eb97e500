package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/marketvibe/doorrenew-api/internal/usecase"
)

// WebhookHandler ingests leads pushed by the ad-platform integrations.
// LeadBridge and Zapier differ only in payload field names and in which
// header/body field carries the shared secret.
type WebhookHandler struct {
	WebhookUseCase   *usecase.WebhookLeadUseCase
	LeadBridgeSecret string
	ZapierSecret     string
}

func NewWebhookHandler(webhookUC *usecase.WebhookLeadUseCase, leadBridgeSecret, zapierSecret string) *WebhookHandler {
	return &WebhookHandler{
		WebhookUseCase:   webhookUC,
		LeadBridgeSecret: leadBridgeSecret,
		ZapierSecret:     zapierSecret,
	}
}

// Status answers provider URL-verification GETs.
func (h *WebhookHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "webhook endpoint active"})
}

type leadBridgePayload struct {
	FormID       string `json:"form_id"`
	FormName     string `json:"form_name"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CampaignName string `json:"campaign_name"`
	AdName       string `json:"ad_name"`
	Platform     string `json:"platform"`
	UTMSource    string `json:"utm_source"`
	UTMMedium    string `json:"utm_medium"`
	UTMCampaign  string `json:"utm_campaign"`
	Secret       string `json:"secret"`
}

func (h *WebhookHandler) HandleLeadBridge(w http.ResponseWriter, r *http.Request) {
	raw, payload, err := readWebhookBody(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}

	var data leadBridgePayload
	if err := json.Unmarshal(payload, &data); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload", Details: err.Error()})
		return
	}

	token := r.Header.Get("X-Leadbridge-Token")
	if token == "" {
		token = data.Secret
	}
	if h.LeadBridgeSecret == "" || token != h.LeadBridgeSecret {
		log.Printf("leadbridge-webhook: token verification failed")
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "Invalid token"})
		return
	}

	input := usecase.WebhookLeadInput{
		Source:       "facebook_leadbridge",
		FormID:       data.FormID,
		FormName:     data.FormName,
		FullName:     firstNonEmpty(data.FullName, data.Name),
		Phone:        firstNonEmpty(data.PhoneNumber, data.Phone),
		Email:        data.Email,
		CampaignName: data.CampaignName,
		AdName:       data.AdName,
		Platform:     data.Platform,
		UTMSource:    data.UTMSource,
		UTMMedium:    data.UTMMedium,
		UTMCampaign:  data.UTMCampaign,
		RawPayload:   raw,
	}

	output, err := h.WebhookUseCase.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

type zapierPayload struct {
	ID           string `json:"id"` // Facebook form id
	FormName     string `json:"form_name"`
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email"`
	CampaignName string `json:"campaign_name"`
	AdName       string `json:"ad_name"`
	Platform     string `json:"platform"`
	UTMSource    string `json:"utm_source"`
	UTMMedium    string `json:"utm_medium"`
	UTMCampaign  string `json:"utm_campaign"`
	ZapierSecret string `json:"zapier_secret"`
}

func (h *WebhookHandler) HandleZapier(w http.ResponseWriter, r *http.Request) {
	raw, payload, err := readWebhookBody(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}

	var data zapierPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload", Details: err.Error()})
		return
	}

	// Zapier deployments without a configured secret skip the check.
	if h.ZapierSecret != "" {
		token := data.ZapierSecret
		if token == "" {
			token = r.Header.Get("X-Zapier-Secret")
		}
		if token != h.ZapierSecret {
			log.Printf("zapier-webhook: token verification failed")
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "Invalid authentication token"})
			return
		}
	}

	input := usecase.WebhookLeadInput{
		Source:       "facebook_zapier",
		FormID:       data.ID,
		FormName:     data.FormName,
		FullName:     data.FullName,
		Phone:        data.PhoneNumber,
		Email:        data.Email,
		CampaignName: data.CampaignName,
		AdName:       data.AdName,
		Platform:     data.Platform,
		UTMSource:    data.UTMSource,
		UTMMedium:    data.UTMMedium,
		UTMCampaign:  data.UTMCampaign,
		RawPayload:   raw,
	}

	output, err := h.WebhookUseCase.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

// payloadExtractors are the accepted webhook envelope shapes, tried in
// order: the first array element, the object nested under a wrapper key
// ("body" or "DATA"), then the body as-is.
var payloadExtractors = []func(raw []byte) ([]byte, bool){
	func(raw []byte) ([]byte, bool) {
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
			return arr[0], true
		}
		return nil, false
	},
	func(raw []byte) ([]byte, bool) { return nestedObject(raw, "body") },
	func(raw []byte) ([]byte, bool) { return nestedObject(raw, "DATA") },
	func(raw []byte) ([]byte, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err == nil {
			return raw, true
		}
		return nil, false
	},
}

func nestedObject(raw []byte, key string) ([]byte, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	inner, ok := obj[key]
	if !ok {
		return nil, false
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(inner, &nested); err != nil {
		return nil, false
	}
	return inner, true
}

// readWebhookBody returns the raw body (for the warning email) and the
// unwrapped lead object.
func readWebhookBody(r *http.Request) (raw []byte, payload []byte, err error) {
	raw, err = io.ReadAll(r.Body)
	if err != nil {
		return nil, nil, err
	}

	for _, extract := range payloadExtractors {
		if candidate, ok := extract(raw); ok {
			return raw, candidate, nil
		}
	}
	return raw, nil, io.ErrUnexpectedEOF
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
