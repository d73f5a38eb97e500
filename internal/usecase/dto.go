package usecase

import "io"

type SubmitLeadInput struct {
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	DoorIssue string `json:"doorIssue"`
	Location  string `json:"location"`

	// Captured by the handler, not supplied by the form body.
	UTMSource   string `json:"-"`
	UTMMedium   string `json:"-"`
	UTMCampaign string `json:"-"`
	UserAgent   string `json:"-"`
	IPAddress   string `json:"-"`
	SourceURL   string `json:"-"`

	// Browser correlation tokens, passed through unhashed.
	FBP string `json:"fbp,omitempty"`
	FBC string `json:"fbc,omitempty"`
}

type SubmitLeadOutput struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId"`
	EventID string `json:"eventId"`
}

type UpdateLeadInput struct {
	LeadID    string   `json:"leadId,omitempty"`
	Email     string   `json:"email,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty"`
	Comments  string   `json:"comments,omitempty"`
	DoorIssue string   `json:"doorIssue,omitempty"`
}

type UpdateLeadOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WebhookLeadInput is the normalized form of a provider push, after the
// handler has unwrapped the payload and collapsed field aliases.
type WebhookLeadInput struct {
	Source       string
	FormID       string
	FormName     string
	FullName     string
	Phone        string
	Email        string
	CampaignName string
	AdName       string
	Platform     string
	UTMSource    string
	UTMMedium    string
	UTMCampaign  string
	RawPayload   []byte
}

type WebhookLeadOutput struct {
	Success  bool   `json:"success"`
	LeadID   string `json:"leadId"`
	Location string `json:"location,omitempty"`
	LeadType string `json:"leadType,omitempty"`
	FormID   string `json:"formId,omitempty"`
}

// UploadFile is one image from the multipart batch. Body is opened by the
// handler and read exactly once by the upload use case.
type UploadFile struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

type UploadImagesOutput struct {
	Success bool     `json:"success"`
	URLs    []string `json:"urls"`
}
