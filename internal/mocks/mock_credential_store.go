package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// MockCredentialStore is a mock implementation of ports.CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

var _ ports.CredentialStore = (*MockCredentialStore)(nil)

// MockCredentialStore_Expecter records typed expectations.
type MockCredentialStore_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter.
func (_m *MockCredentialStore) EXPECT() *MockCredentialStore_Expecter {
	return &MockCredentialStore_Expecter{mock: &_m.Mock}
}

// Save provides a mock function.
func (_m *MockCredentialStore) Save(ctx context.Context, s domain.Session) error {
	ret := _m.Called(ctx, s)

	r0 := ret.Error(0)

	return r0
}

// Save sets an expectation for Save.
func (_e *MockCredentialStore_Expecter) Save(ctx any, s any) *mock.Call {
	return _e.mock.On("Save", ctx, s)
}

// Load provides a mock function.
func (_m *MockCredentialStore) Load(ctx context.Context) (*domain.Session, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Session
	if rf, ok := ret.Get(0).(func(context.Context) *domain.Session); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// Load sets an expectation for Load.
func (_e *MockCredentialStore_Expecter) Load(ctx any) *mock.Call {
	return _e.mock.On("Load", ctx)
}

// Clear provides a mock function.
func (_m *MockCredentialStore) Clear(ctx context.Context) error {
	ret := _m.Called(ctx)

	r0 := ret.Error(0)

	return r0
}

// Clear sets an expectation for Clear.
func (_e *MockCredentialStore_Expecter) Clear(ctx any) *mock.Call {
	return _e.mock.On("Clear", ctx)
}

// NewMockCredentialStore creates a mock and asserts its expectations when the test ends.
func NewMockCredentialStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCredentialStore {
	m := &MockCredentialStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
