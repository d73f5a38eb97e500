package handlers

import (
	"context"
	"io"
	"sync"
	"time"

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

// stubLimiter
type stubLimiter struct{ allow bool }

func (s stubLimiter) Allow(key string) bool { return s.allow }

// fakeImageStore
type fakeImageStore struct {
	mu   sync.Mutex
	puts []string
}

func (s *fakeImageStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, key)
	return "https://cdn.example.com/" + key, nil
}
