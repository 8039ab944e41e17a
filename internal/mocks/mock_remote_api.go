// Package mocks holds testify mocks for the ports interfaces, in mockery's expecter style.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// MockRemoteAPI is a mock implementation of ports.RemoteAPI.
type MockRemoteAPI struct {
	mock.Mock
}

var _ ports.RemoteAPI = (*MockRemoteAPI)(nil)

// MockRemoteAPI_Expecter records typed expectations.
type MockRemoteAPI_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter.
func (_m *MockRemoteAPI) EXPECT() *MockRemoteAPI_Expecter {
	return &MockRemoteAPI_Expecter{mock: &_m.Mock}
}

// Login provides a mock function.
func (_m *MockRemoteAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	ret := _m.Called(ctx, creds)

	var r0 *domain.Session
	if rf, ok := ret.Get(0).(func(context.Context, domain.Credentials) *domain.Session); ok {
		r0 = rf(ctx, creds)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// Login sets an expectation for Login.
func (_e *MockRemoteAPI_Expecter) Login(ctx any, creds any) *mock.Call {
	return _e.mock.On("Login", ctx, creds)
}

// Register provides a mock function.
func (_m *MockRemoteAPI) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	ret := _m.Called(ctx, reg)

	var r0 *domain.Session
	if rf, ok := ret.Get(0).(func(context.Context, domain.Registration) *domain.Session); ok {
		r0 = rf(ctx, reg)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Session)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// Register sets an expectation for Register.
func (_e *MockRemoteAPI_Expecter) Register(ctx any, reg any) *mock.Call {
	return _e.mock.On("Register", ctx, reg)
}

// ListQuotes provides a mock function.
func (_m *MockRemoteAPI) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Quote
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Quote); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Quote)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// ListQuotes sets an expectation for ListQuotes.
func (_e *MockRemoteAPI_Expecter) ListQuotes(ctx any) *mock.Call {
	return _e.mock.On("ListQuotes", ctx)
}

// ListFavorites provides a mock function.
func (_m *MockRemoteAPI) ListFavorites(ctx context.Context) ([]domain.Quote, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Quote
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Quote); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Quote)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// ListFavorites sets an expectation for ListFavorites.
func (_e *MockRemoteAPI_Expecter) ListFavorites(ctx any) *mock.Call {
	return _e.mock.On("ListFavorites", ctx)
}

// RandomQuote provides a mock function.
func (_m *MockRemoteAPI) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Quote
	if rf, ok := ret.Get(0).(func(context.Context) *domain.Quote); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// RandomQuote sets an expectation for RandomQuote.
func (_e *MockRemoteAPI_Expecter) RandomQuote(ctx any) *mock.Call {
	return _e.mock.On("RandomQuote", ctx)
}

// PopularQuotes provides a mock function.
func (_m *MockRemoteAPI) PopularQuotes(ctx context.Context) ([]domain.Quote, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Quote
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Quote); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Quote)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// PopularQuotes sets an expectation for PopularQuotes.
func (_e *MockRemoteAPI_Expecter) PopularQuotes(ctx any) *mock.Call {
	return _e.mock.On("PopularQuotes", ctx)
}

// CreateQuote provides a mock function.
func (_m *MockRemoteAPI) CreateQuote(ctx context.Context, in domain.QuoteInput) (*domain.Quote, error) {
	ret := _m.Called(ctx, in)

	var r0 *domain.Quote
	if rf, ok := ret.Get(0).(func(context.Context, domain.QuoteInput) *domain.Quote); ok {
		r0 = rf(ctx, in)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// CreateQuote sets an expectation for CreateQuote.
func (_e *MockRemoteAPI_Expecter) CreateQuote(ctx any, in any) *mock.Call {
	return _e.mock.On("CreateQuote", ctx, in)
}

// UpdateQuote provides a mock function.
func (_m *MockRemoteAPI) UpdateQuote(ctx context.Context, id string, in domain.QuoteInput) (*domain.Quote, error) {
	ret := _m.Called(ctx, id, in)

	var r0 *domain.Quote
	if rf, ok := ret.Get(0).(func(context.Context, string, domain.QuoteInput) *domain.Quote); ok {
		r0 = rf(ctx, id, in)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// UpdateQuote sets an expectation for UpdateQuote.
func (_e *MockRemoteAPI_Expecter) UpdateQuote(ctx any, id any, in any) *mock.Call {
	return _e.mock.On("UpdateQuote", ctx, id, in)
}

// DeleteQuote provides a mock function.
func (_m *MockRemoteAPI) DeleteQuote(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

// DeleteQuote sets an expectation for DeleteQuote.
func (_e *MockRemoteAPI_Expecter) DeleteQuote(ctx any, id any) *mock.Call {
	return _e.mock.On("DeleteQuote", ctx, id)
}

// LikeQuote provides a mock function.
func (_m *MockRemoteAPI) LikeQuote(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

// LikeQuote sets an expectation for LikeQuote.
func (_e *MockRemoteAPI_Expecter) LikeQuote(ctx any, id any) *mock.Call {
	return _e.mock.On("LikeQuote", ctx, id)
}

// FavoriteQuote provides a mock function.
func (_m *MockRemoteAPI) FavoriteQuote(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

// FavoriteQuote sets an expectation for FavoriteQuote.
func (_e *MockRemoteAPI_Expecter) FavoriteQuote(ctx any, id any) *mock.Call {
	return _e.mock.On("FavoriteQuote", ctx, id)
}

// ListCategories provides a mock function.
func (_m *MockRemoteAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Category
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Category); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// ListCategories sets an expectation for ListCategories.
func (_e *MockRemoteAPI_Expecter) ListCategories(ctx any) *mock.Call {
	return _e.mock.On("ListCategories", ctx)
}

// CreateCategory provides a mock function.
func (_m *MockRemoteAPI) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	ret := _m.Called(ctx, name)

	var r0 *domain.Category
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.Category); ok {
		r0 = rf(ctx, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// CreateCategory sets an expectation for CreateCategory.
func (_e *MockRemoteAPI_Expecter) CreateCategory(ctx any, name any) *mock.Call {
	return _e.mock.On("CreateCategory", ctx, name)
}

// UpdateCategory provides a mock function.
func (_m *MockRemoteAPI) UpdateCategory(ctx context.Context, id string, name string) (*domain.Category, error) {
	ret := _m.Called(ctx, id, name)

	var r0 *domain.Category
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *domain.Category); ok {
		r0 = rf(ctx, id, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// UpdateCategory sets an expectation for UpdateCategory.
func (_e *MockRemoteAPI_Expecter) UpdateCategory(ctx any, id any, name any) *mock.Call {
	return _e.mock.On("UpdateCategory", ctx, id, name)
}

// DeleteCategory provides a mock function.
func (_m *MockRemoteAPI) DeleteCategory(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

// DeleteCategory sets an expectation for DeleteCategory.
func (_e *MockRemoteAPI_Expecter) DeleteCategory(ctx any, id any) *mock.Call {
	return _e.mock.On("DeleteCategory", ctx, id)
}

// ListTags provides a mock function.
func (_m *MockRemoteAPI) ListTags(ctx context.Context) ([]domain.Tag, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Tag
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Tag); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Tag)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// ListTags sets an expectation for ListTags.
func (_e *MockRemoteAPI_Expecter) ListTags(ctx any) *mock.Call {
	return _e.mock.On("ListTags", ctx)
}

// CreateTag provides a mock function.
func (_m *MockRemoteAPI) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	ret := _m.Called(ctx, name)

	var r0 *domain.Tag
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.Tag); ok {
		r0 = rf(ctx, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Tag)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// CreateTag sets an expectation for CreateTag.
func (_e *MockRemoteAPI_Expecter) CreateTag(ctx any, name any) *mock.Call {
	return _e.mock.On("CreateTag", ctx, name)
}

// UpdateTag provides a mock function.
func (_m *MockRemoteAPI) UpdateTag(ctx context.Context, id string, name string) (*domain.Tag, error) {
	ret := _m.Called(ctx, id, name)

	var r0 *domain.Tag
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *domain.Tag); ok {
		r0 = rf(ctx, id, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Tag)
	}

	r1 := ret.Error(1)

	return r0, r1
}

// UpdateTag sets an expectation for UpdateTag.
func (_e *MockRemoteAPI_Expecter) UpdateTag(ctx any, id any, name any) *mock.Call {
	return _e.mock.On("UpdateTag", ctx, id, name)
}

// DeleteTag provides a mock function.
func (_m *MockRemoteAPI) DeleteTag(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

// DeleteTag sets an expectation for DeleteTag.
func (_e *MockRemoteAPI_Expecter) DeleteTag(ctx any, id any) *mock.Call {
	return _e.mock.On("DeleteTag", ctx, id)
}

// NewMockRemoteAPI creates a mock and asserts its expectations when the test ends.
func NewMockRemoteAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRemoteAPI {
	m := &MockRemoteAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
