package services

import (
	"context"
	"testing"

	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmsRemoval(t *testing.T) {
	for _, in := range []string{"yes", "YES", "Yes please", "yes!"} {
		assert.True(t, ConfirmsRemoval(in), in)
	}
	for _, in := range []string{"", "y", "no", "ye", "sure", "oyes", "  yes", "\tyes"} {
		assert.False(t, ConfirmsRemoval(in), in)
	}
}

func TestNewSubscription(t *testing.T) {
	req := NewSubscription("ant.example.com", "anne@example.com")
	assert.Equal(t, "anne@example.com", req.Subscriber)
	assert.Equal(t, req.Subscriber, req.DisplayName)
	assert.True(t, req.PreVerified)
	assert.True(t, req.PreConfirmed)
	assert.True(t, req.PreApproved)
}

func TestMembershipService_Roster(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)
	members := []mailman.Member{{Email: "zed@example.com"}, {Email: "amy@example.com"}}
	dir.On("List", ctx, "ant@example.com").Return(antList, nil)
	dir.On("Members", ctx, "ant.example.com").Return(members, nil)

	roster, err := NewMembershipService(dir, nil).Roster(ctx, "ant@example.com")
	require.NoError(t, err)
	assert.Equal(t, members, roster.Members)
	assert.Equal(t, antList, roster.List)
}

func TestMembershipService_Subscribe(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)
	dir.On("List", ctx, "ant@example.com").Return(antList, nil)
	dir.On("Subscribe", ctx, NewSubscription("ant.example.com", "anne@example.com")).
		Return(&mailman.Member{Email: "anne@example.com"}, nil)

	ok, err := NewMembershipService(dir, nil).Subscribe(ctx, "ant@example.com", " anne@example.com ")
	require.NoError(t, err)
	assert.True(t, ok)
	dir.AssertExpectations(t)
}

func TestMembershipService_Subscribe_EmptyInput(t *testing.T) {
	dir := new(MockDirectory)
	ok, err := NewMembershipService(dir, nil).Subscribe(context.Background(), "ant@example.com", "   ")
	require.NoError(t, err)
	assert.False(t, ok)
	dir.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}

func TestMembershipService_Subscribe_Failure(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)
	dir.On("List", ctx, "ant@example.com").Return(antList, nil)
	dir.On("Subscribe", ctx, mock.Anything).Return(nil, mailman.ErrConflict)

	ok, err := NewMembershipService(dir, nil).Subscribe(ctx, "ant@example.com", "anne@example.com")
	assert.False(t, ok)
	assert.ErrorIs(t, err, mailman.ErrConflict)
}

func TestMembershipService_Unsubscribe_RequiresYes(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)

	ok, err := NewMembershipService(dir, nil).Unsubscribe(ctx, "ant@example.com", "anne@example.com", "no")
	require.NoError(t, err)
	assert.False(t, ok)
	dir.AssertNotCalled(t, "Unsubscribe", mock.Anything, mock.Anything, mock.Anything)

	dir.On("List", ctx, "ant@example.com").Return(antList, nil)
	dir.On("Unsubscribe", ctx, "ant.example.com", "anne@example.com").Return(nil)
	ok, err = NewMembershipService(dir, nil).Unsubscribe(ctx, "ant@example.com", "anne@example.com", "Yes")
	require.NoError(t, err)
	assert.True(t, ok)
	dir.AssertExpectations(t)
}
