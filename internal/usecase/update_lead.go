package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/marketvibe/doorrenew-api/internal/entity"
	"github.com/marketvibe/doorrenew-api/internal/infra/http/middleware"
)

type UpdateLeadUseCase struct {
	Repo         entity.LeadRepositoryInterface
	EmailService EmailService
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface, emailService EmailService) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo, EmailService: emailService}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, input UpdateLeadInput) (*UpdateLeadOutput, error) {
	if strings.TrimSpace(input.LeadID) == "" && strings.TrimSpace(input.Email) == "" {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "leadId or email is required to match the lead",
		}
	}

	leadID := input.LeadID
	if leadID == "" {
		// Legacy fallback for clients that lost the id between steps: the
		// most recent lead with that email wins.
		lead, err := uc.Repo.FindLatestByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				return nil, &DomainError{Code: CodeNotFound, Message: "Lead not found"}
			}
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		leadID = lead.ID
	}

	updated, err := uc.Repo.Update(ctx, leadID, entity.LeadUpdate{
		ImageURLs: input.ImageURLs,
		Comments:  input.Comments,
		DoorIssue: input.DoorIssue,
		Email:     input.Email,
	})
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "Lead not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if err := uc.EmailService.SendSecondStepNotification(updated); err != nil {
		log.Printf("update-lead: notification email failed for lead %s: %v", updated.ID, err)
		middleware.RecordNotificationError("email")
	}

	return &UpdateLeadOutput{
		Success: true,
		Message: "Lead updated successfully and notifications sent",
	}, nil
}
