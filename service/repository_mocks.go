package service

import (
	"context"
	"time"

	"streamgate/events"
	"streamgate/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, address string, username *string) (*models.User, error) {
	args := m.Called(ctx, address, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, updates *models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockStreamRepository is a mock implementation of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) GetByID(ctx context.Context, id string) (*models.Stream, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stream), args.Error(1)
}

func (m *MockStreamRepository) GetByUser(ctx context.Context, userID string) ([]*models.Stream, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Stream), args.Error(1)
}

func (m *MockStreamRepository) GetActive(ctx context.Context) ([]*models.Stream, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Stream), args.Error(1)
}

func (m *MockStreamRepository) Create(ctx context.Context, userID, communityAddress, ratePerSecond, totalAmount string, endTime *time.Time, transactionHash, paymentID *string) (*models.Stream, error) {
	args := m.Called(ctx, userID, communityAddress, ratePerSecond, totalAmount, endTime, transactionHash, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stream), args.Error(1)
}

func (m *MockStreamRepository) Update(ctx context.Context, id string, updates *models.StreamUpdate) (*models.Stream, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stream), args.Error(1)
}

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, userID, content string, messageType models.MessageType, metadata map[string]any) (*models.Message, error) {
	args := m.Called(ctx, userID, content, messageType, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetRecentWithAuthors(ctx context.Context, limit int) ([]*models.MessageWithUser, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MessageWithUser), args.Error(1)
}

// MockStatsRepository is a mock implementation of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context) (*models.CommunityStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommunityStats), args.Error(1)
}

func (m *MockStatsRepository) Recompute(ctx context.Context) (*models.CommunityStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommunityStats), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockPaymentProvider is a mock implementation of PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) InitiatePayment(ctx context.Context, amount, destination string) (*PaymentResult, error) {
	args := m.Called(ctx, amount, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentResult), args.Error(1)
}

func (m *MockPaymentProvider) CheckStatus(ctx context.Context, paymentID string) (PaymentStatus, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(PaymentStatus), args.Error(1)
}

// MockAccessService is a mock implementation of AccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) HasAccess(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessService) ActiveStreams(ctx context.Context, userID string) ([]*models.Stream, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Stream), args.Error(1)
}
