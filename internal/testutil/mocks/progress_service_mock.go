package mocks

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProgressService is a mock implementation of services.ProgressService
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) GetProgress(ctx context.Context, userID string) (*models.ProgressStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressStats), args.Error(1)
}
