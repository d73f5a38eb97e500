package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marketvibe/doorrenew-api/internal/entity"
)

func enrichedLead() *entity.Lead {
	now := time.Now()
	return &entity.Lead{
		ID:           "lead-123",
		FirstName:    "Sam",
		Phone:        "5551234567",
		Email:        "sam@example.com",
		DoorIssue:    "weathered",
		Location:     "chicago",
		ImageURLs:    []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		Comments:     "south-facing door",
		CreatedAt:    now.Add(-10 * time.Minute),
		SecondStepAt: &now,
	}
}

func TestUpdateLeadByID(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockEmail := new(MockEmailService)

	urls := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	mockRepo.On("Update", mock.Anything, "lead-123", mock.Anything).Return(enrichedLead(), nil)
	mockEmail.On("SendSecondStepNotification", mock.Anything).Return(nil)

	uc := NewUpdateLeadUseCase(mockRepo, mockEmail)

	output, err := uc.Execute(context.Background(), UpdateLeadInput{
		LeadID:    "lead-123",
		ImageURLs: urls,
		Comments:  "south-facing door",
	})

	assert.NoError(t, err)
	assert.True(t, output.Success)

	update := mockRepo.Calls[0].Arguments.Get(2).(entity.LeadUpdate)
	assert.Equal(t, urls, update.ImageURLs)

	// The id path must not touch the email lookup.
	mockRepo.AssertNotCalled(t, "FindLatestByEmail", mock.Anything, mock.Anything)
	mockEmail.AssertCalled(t, "SendSecondStepNotification", mock.Anything)
}

func TestUpdateLeadByEmailFallback(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockEmail := new(MockEmailService)

	mockRepo.On("FindLatestByEmail", mock.Anything, "sam@example.com").Return(enrichedLead(), nil)
	mockRepo.On("Update", mock.Anything, "lead-123", mock.Anything).Return(enrichedLead(), nil)
	mockEmail.On("SendSecondStepNotification", mock.Anything).Return(nil)

	uc := NewUpdateLeadUseCase(mockRepo, mockEmail)

	output, err := uc.Execute(context.Background(), UpdateLeadInput{
		Email:    "sam@example.com",
		Comments: "no photos",
	})

	assert.NoError(t, err)
	assert.True(t, output.Success)
	mockRepo.AssertCalled(t, "Update", mock.Anything, "lead-123", mock.Anything)
}

func TestUpdateLeadNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockEmail := new(MockEmailService)

	mockRepo.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, entity.ErrLeadNotFound)

	uc := NewUpdateLeadUseCase(mockRepo, mockEmail)

	output, err := uc.Execute(context.Background(), UpdateLeadInput{LeadID: "missing"})

	assert.Nil(t, output)
	assert.Equal(t, CodeNotFound, DomainErrorCode(err))
	mockEmail.AssertNotCalled(t, "SendSecondStepNotification", mock.Anything)
}

func TestUpdateLeadNoMatchKey(t *testing.T) {
	uc := NewUpdateLeadUseCase(new(MockLeadRepository), new(MockEmailService))

	output, err := uc.Execute(context.Background(), UpdateLeadInput{Comments: "orphan"})

	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, DomainErrorCode(err))
}

func TestUpdateLeadEmailFailureStillSucceeds(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockEmail := new(MockEmailService)

	mockRepo.On("Update", mock.Anything, "lead-123", mock.Anything).Return(enrichedLead(), nil)
	mockEmail.On("SendSecondStepNotification", mock.Anything).Return(assert.AnError)

	uc := NewUpdateLeadUseCase(mockRepo, mockEmail)

	output, err := uc.Execute(context.Background(), UpdateLeadInput{LeadID: "lead-123"})

	assert.NoError(t, err)
	assert.True(t, output.Success)
}
