package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rawstore/internal/model"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) TotalBytes(ctx context.Context, owner string, visibility model.Visibility) (int64, error) {
	args := m.Called(ctx, owner, visibility)
	return args.Get(0).(int64), args.Error(1)
}
