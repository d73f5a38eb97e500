package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/marketvibe/doorrenew-api/internal/config"
	"github.com/marketvibe/doorrenew-api/internal/entity"
	"github.com/marketvibe/doorrenew-api/internal/infra/http/middleware"
)

// WebhookLeadUseCase persists leads pushed by third-party integrations
// (LeadBridge, Zapier). Providers deliver at-least-once and carry no
// idempotency key, so repeated deliveries create duplicate rows.
type WebhookLeadUseCase struct {
	Repo         entity.LeadRepositoryInterface
	EmailService EmailService
}

func NewWebhookLeadUseCase(repo entity.LeadRepositoryInterface, emailService EmailService) *WebhookLeadUseCase {
	return &WebhookLeadUseCase{Repo: repo, EmailService: emailService}
}

func (uc *WebhookLeadUseCase) Execute(ctx context.Context, input WebhookLeadInput) (*WebhookLeadOutput, error) {
	formConfig, known := config.FormConfigByID(input.FormID)

	lead := &entity.Lead{
		FirstName:    input.FullName,
		Phone:        strings.TrimPrefix(input.Phone, "+"),
		Email:        input.Email,
		Location:     formConfig.Location,
		LeadType:     formConfig.LeadType,
		Source:       input.Source,
		UTMSource:    input.UTMSource,
		UTMMedium:    input.UTMMedium,
		UTMCampaign:  input.UTMCampaign,
		CampaignName: input.CampaignName,
		AdName:       input.AdName,
		FormID:       input.FormID,
		FormName:     input.FormName,
		ImageURLs:    []string{},
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist webhook lead: " + err.Error(),
		}
	}
	middleware.RecordLeadCreated(input.Source)

	if known {
		if err := uc.EmailService.SendWebhookLeadNotification(lead, input.Platform); err != nil {
			log.Printf("webhook: notification email failed for lead %s: %v", lead.ID, err)
			middleware.RecordNotificationError("email")
		}
	} else {
		// Unregistered ad form: the lead is kept, untagged, and the master
		// mailbox gets a warning with the raw payload so the form can be
		// added to the mapping.
		log.Printf("webhook: unrecognized form id %q from %s", input.FormID, input.Source)
		if err := uc.EmailService.SendUnknownFormWarning(lead, input.RawPayload); err != nil {
			log.Printf("webhook: warning email failed for lead %s: %v", lead.ID, err)
			middleware.RecordNotificationError("email")
		}
	}

	return &WebhookLeadOutput{
		Success:  true,
		LeadID:   lead.ID,
		Location: lead.Location,
		LeadType: lead.LeadType,
		FormID:   lead.FormID,
	}, nil
}
