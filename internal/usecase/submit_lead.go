package usecase

import (
	"context"
	"log"

	"github.com/marketvibe/doorrenew-api/internal/entity"
	"github.com/marketvibe/doorrenew-api/internal/infra/http/middleware"
	"github.com/marketvibe/doorrenew-api/internal/infra/integration/meta"
)

type SubmitLeadUseCase struct {
	Repo         entity.LeadRepositoryInterface
	RateLimiter  RateLimiter
	Tracker      ConversionTracker
	EmailService EmailService
}

func NewSubmitLeadUseCase(
	repo entity.LeadRepositoryInterface,
	rateLimiter RateLimiter,
	tracker ConversionTracker,
	emailService EmailService,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Repo:         repo,
		RateLimiter:  rateLimiter,
		Tracker:      tracker,
		EmailService: emailService,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	if !uc.RateLimiter.Allow(input.IPAddress) {
		return nil, &DomainError{
			Code:    CodeRateLimited,
			Message: "Too many requests. Please try again later.",
		}
	}

	validationErrors := ValidateSubmitLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: joinValidationErrors(validationErrors),
		}
	}

	lead := &entity.Lead{
		FirstName:   input.FirstName,
		Phone:       input.Phone,
		Email:       input.Email,
		DoorIssue:   input.DoorIssue,
		Location:    input.Location,
		Source:      "website",
		UTMSource:   input.UTMSource,
		UTMMedium:   input.UTMMedium,
		UTMCampaign: input.UTMCampaign,
		UserAgent:   input.UserAgent,
		IPAddress:   input.IPAddress,
		ImageURLs:   []string{},
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}
	middleware.RecordLeadCreated("website")

	// The lead is saved; everything below is best-effort and must not undo
	// the success the caller is about to see.
	eventID := uc.trackLeadEvent(ctx, lead, input)
	uc.notify(lead)

	return &SubmitLeadOutput{
		Success: true,
		LeadID:  lead.ID,
		EventID: eventID,
	}, nil
}

// trackLeadEvent fires the "Lead" conversion event. The event id is derived
// from email, phone and the creation time so the browser pixel's own firing
// of the same logical event deduplicates against it.
func (uc *SubmitLeadUseCase) trackLeadEvent(ctx context.Context, lead *entity.Lead, input SubmitLeadInput) string {
	eventID := meta.LeadEventID(lead.Email, lead.Phone, lead.CreatedAt)

	resp := uc.Tracker.Send(ctx, meta.Event{
		EventName:      "Lead",
		EventTime:      lead.CreatedAt.Unix(),
		EventSourceURL: input.SourceURL,
		EventID:        eventID,
		UserData: meta.UserData{
			ClientIPAddress: lead.IPAddress,
			ClientUserAgent: lead.UserAgent,
			Em:              []string{lead.Email},
			Ph:              []string{lead.Phone},
			Fbp:             input.FBP,
			Fbc:             input.FBC,
		},
		CustomData: map[string]any{
			"location":   lead.Location,
			"door_issue": lead.DoorIssue,
		},
	})

	if resp == nil {
		middleware.RecordConversionEvent("Lead", "dropped")
	} else {
		middleware.RecordConversionEvent("Lead", "delivered")
	}
	return eventID
}

func (uc *SubmitLeadUseCase) notify(lead *entity.Lead) {
	if err := uc.EmailService.SendLeadNotification(lead); err != nil {
		log.Printf("submit-lead: notification email failed for lead %s: %v", lead.ID, err)
		middleware.RecordNotificationError("email")
	}
}
