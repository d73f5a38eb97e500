package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead is the persistent record of one prospective customer. It is created by
// the landing-page form or by a webhook integration, and optionally enriched
// once by the second form step (images + comments).
type Lead struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	DoorIssue string `json:"door_issue,omitempty"`
	Location  string `json:"location,omitempty"`
	LeadType  string `json:"lead_type,omitempty"` // door, cabinet
	Source    string `json:"source,omitempty"`    // website, facebook_leadbridge, facebook_zapier

	UTMSource    string `json:"utm_source,omitempty"`
	UTMMedium    string `json:"utm_medium,omitempty"`
	UTMCampaign  string `json:"utm_campaign,omitempty"`
	CampaignName string `json:"campaign_name,omitempty"`
	AdName       string `json:"ad_name,omitempty"`
	FormID       string `json:"form_id,omitempty"`
	FormName     string `json:"form_name,omitempty"`

	UserAgent string `json:"user_agent,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`

	ImageURLs []string `json:"image_urls"`
	Comments  string   `json:"comments,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	SecondStepAt *time.Time `json:"second_step_at,omitempty"`
}

// LeadUpdate carries the fields the second form step may merge into an
// existing lead. Empty fields are left untouched; second_step_at is always
// stamped by the repository.
type LeadUpdate struct {
	ImageURLs []string
	Comments  string
	DoorIssue string
	Email     string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindLatestByEmail(ctx context.Context, email string) (*Lead, error)
	Update(ctx context.Context, id string, update LeadUpdate) (*Lead, error)
}
