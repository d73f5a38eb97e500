package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marketvibe/doorrenew-api/internal/entity"
	"github.com/marketvibe/doorrenew-api/internal/infra/integration/meta"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	if args.Error(0) == nil {
		lead.ID = "lead-123"
		lead.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, id string, update entity.LeadUpdate) (*entity.Lead, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

// MockTracker
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Send(ctx context.Context, event meta.Event) *meta.EventResponse {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*meta.EventResponse)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendLeadNotification(lead *entity.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockEmailService) SendSecondStepNotification(lead *entity.Lead) error {
	args := m.Called(lead)
	return args.Error(0)
}

func (m *MockEmailService) SendWebhookLeadNotification(lead *entity.Lead, via string) error {
	args := m.Called(lead, via)
	return args.Error(0)
}

func (m *MockEmailService) SendUnknownFormWarning(lead *entity.Lead, rawPayload []byte) error {
	args := m.Called(lead, rawPayload)
	return args.Error(0)
}

// allowAllLimiter / denyAllLimiter
type stubLimiter struct{ allow bool }

func (s stubLimiter) Allow(key string) bool { return s.allow }

func validSubmitInput() SubmitLeadInput {
	return SubmitLeadInput{
		FirstName: "Sam",
		Phone:     "5551234567",
		Email:     "sam@example.com",
		DoorIssue: "weathered",
		Location:  "chicago",
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	}
}

func TestSubmitLeadSuccess(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockTracker := new(MockTracker)
	mockEmail := new(MockEmailService)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockTracker.On("Send", mock.Anything, mock.Anything).Return(&meta.EventResponse{EventsReceived: 1})
	mockEmail.On("SendLeadNotification", mock.Anything).Return(nil)

	uc := NewSubmitLeadUseCase(mockRepo, stubLimiter{allow: true}, mockTracker, mockEmail)

	output, err := uc.Execute(context.Background(), validSubmitInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "lead-123", output.LeadID)
	assert.NotEmpty(t, output.EventID)

	created := mockRepo.Calls[0].Arguments.Get(1).(*entity.Lead)
	assert.Equal(t, "website", created.Source)
	assert.Empty(t, created.LeadType)
	assert.Nil(t, created.SecondStepAt)
	assert.Equal(t, []string{}, created.ImageURLs)

	mockEmail.AssertCalled(t, "SendLeadNotification", mock.Anything)
}

func TestSubmitLeadEventIDMatchesPixelDerivation(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockTracker := new(MockTracker)
	mockEmail := new(MockEmailService)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockTracker.On("Send", mock.Anything, mock.Anything).Return(&meta.EventResponse{EventsReceived: 1})
	mockEmail.On("SendLeadNotification", mock.Anything).Return(nil)

	uc := NewSubmitLeadUseCase(mockRepo, stubLimiter{allow: true}, mockTracker, mockEmail)

	output, err := uc.Execute(context.Background(), validSubmitInput())
	assert.NoError(t, err)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, meta.LeadEventID("sam@example.com", "5551234567", createdAt), output.EventID)

	sent := mockTracker.Calls[0].Arguments.Get(1).(meta.Event)
	assert.Equal(t, "Lead", sent.EventName)
	assert.Equal(t, output.EventID, sent.EventID)
}

func TestSubmitLeadMissingFields(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewSubmitLeadUseCase(mockRepo, stubLimiter{allow: true}, new(MockTracker), new(MockEmailService))

	input := validSubmitInput()
	input.DoorIssue = ""

	output, err := uc.Execute(context.Background(), input)

	assert.Nil(t, output)
	assert.Equal(t, CodeValidation, DomainErrorCode(err))
	assert.Contains(t, err.Error(), "doorIssue")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitLeadRateLimited(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	uc := NewSubmitLeadUseCase(mockRepo, stubLimiter{allow: false}, new(MockTracker), new(MockEmailService))

	output, err := uc.Execute(context.Background(), validSubmitInput())

	assert.Nil(t, output)
	assert.Equal(t, CodeRateLimited, DomainErrorCode(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitLeadPersistenceFailure(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := NewSubmitLeadUseCase(mockRepo, stubLimiter{allow: true}, new(MockTracker), new(MockEmailService))

	output, err := uc.Execute(context.Background(), validSubmitInput())

	assert.Nil(t, output)
	assert.True(t, IsTechnicalError(err))
}

// Delivery of the conversion event and the notification email is
// best-effort: both failing must not fail the submission.
func TestSubmitLeadSucceedsWhenSideEffectsFail(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockTracker := new(MockTracker)
	mockEmail := new(MockEmailService)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockTracker.On("Send", mock.Anything, mock.Anything).Return(nil) // dropped after retries
	mockEmail.On("SendLeadNotification", mock.Anything).Return(errors.New("smtp down"))

	uc := NewSubmitLeadUseCase(mockRepo, stubLimiter{allow: true}, mockTracker, mockEmail)

	output, err := uc.Execute(context.Background(), validSubmitInput())

	assert.NoError(t, err)
	assert.True(t, output.Success)
	assert.NotEmpty(t, output.EventID)
}
