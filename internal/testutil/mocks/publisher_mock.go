package mocks

import (
	"context"

	"github.com/bbaxromov14/eduhelper/internal/realtime"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of realtime.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e realtime.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
