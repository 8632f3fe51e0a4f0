package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rawstore/internal/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authorize(ctx context.Context, token string, req *model.UploadRequest) (*model.AuthorizeResult, error) {
	args := m.Called(ctx, token, req)
	if res, ok := args.Get(0).(*model.AuthorizeResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Presign(ctx context.Context, token, rawURL, ownerID string) (string, error) {
	args := m.Called(ctx, token, rawURL, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Info(ctx context.Context, token string) (*model.InfoResult, error) {
	args := m.Called(ctx, token)
	if res, ok := args.Get(0).(*model.InfoResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}
