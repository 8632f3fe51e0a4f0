package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rawstore/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SignUpload(ctx context.Context, key string, opt storage.SignUploadOptions) (*storage.UploadCredential, error) {
	args := m.Called(ctx, key, opt)
	if cred, ok := args.Get(0).(*storage.UploadCredential); ok {
		return cred, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SignRead(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return args.String(0), args.Error(1)
}
