package mocks

import (
	"github.com/stretchr/testify/mock"

	"rawstore/internal/model"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) ExtractIdentity(token string) *model.Identity {
	args := m.Called(token)
	if id, ok := args.Get(0).(*model.Identity); ok {
		return id
	}
	return nil
}
