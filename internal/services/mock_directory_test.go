package services

import (
	"context"

	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/stretchr/testify/mock"
)

// MockDirectory implements Directory for testing
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Handshake(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) Lists(ctx context.Context) ([]mailman.List, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailman.List), args.Error(1)
}

func (m *MockDirectory) List(ctx context.Context, fqdn string) (*mailman.List, error) {
	args := m.Called(ctx, fqdn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailman.List), args.Error(1)
}

func (m *MockDirectory) DeleteList(ctx context.Context, fqdn string) error {
	args := m.Called(ctx, fqdn)
	return args.Error(0)
}

func (m *MockDirectory) Members(ctx context.Context, listID string) ([]mailman.Member, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailman.Member), args.Error(1)
}

func (m *MockDirectory) Subscribe(ctx context.Context, req mailman.SubscribeRequest) (*mailman.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailman.Member), args.Error(1)
}

func (m *MockDirectory) Unsubscribe(ctx context.Context, listID, email string) error {
	args := m.Called(ctx, listID, email)
	return args.Error(0)
}

func (m *MockDirectory) Settings(ctx context.Context, listID string) (*mailman.Settings, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailman.Settings), args.Error(1)
}

func (m *MockDirectory) HeldCount(ctx context.Context, listID string) (int, error) {
	args := m.Called(ctx, listID)
	return args.Int(0), args.Error(1)
}

func (m *MockDirectory) HeldMessages(ctx context.Context, listID string) ([]mailman.HeldMessage, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailman.HeldMessage), args.Error(1)
}

func (m *MockDirectory) HeldMessage(ctx context.Context, listID string, requestID int) (*mailman.HeldMessage, error) {
	args := m.Called(ctx, listID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailman.HeldMessage), args.Error(1)
}

func (m *MockDirectory) Configuration(ctx context.Context) (mailman.Configuration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(mailman.Configuration), args.Error(1)
}

// MockSaver implements mailman.SettingsSaver for testing
type MockSaver struct {
	mock.Mock
}

func (m *MockSaver) SaveSettings(ctx context.Context, listID string, changes map[string]mailman.SettingValue) error {
	args := m.Called(ctx, listID, changes)
	return args.Error(0)
}

var antList = &mailman.List{ListID: "ant.example.com", FQDNListname: "ant@example.com"}
