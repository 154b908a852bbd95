package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListService_Names_KeepsServerOrder(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)
	dir.On("Lists", ctx).Return([]mailman.List{
		{FQDNListname: "zeta@example.com"},
		{FQDNListname: "alpha@example.com"},
	}, nil)

	names, err := NewListService(dir, nil).Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta@example.com", "alpha@example.com"}, names)
}

func TestListService_DeleteList_ExactMatchOnly(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)
	svc := NewListService(dir, nil)

	for _, confirmation := range []string{"", "ant", "ANT@example.com", "ant@example.com ", " ant@example.com"} {
		ok, err := svc.DeleteList(ctx, "ant@example.com", confirmation)
		require.NoError(t, err)
		assert.False(t, ok, confirmation)
	}
	dir.AssertNotCalled(t, "DeleteList", mock.Anything, mock.Anything)

	dir.On("DeleteList", ctx, "ant@example.com").Return(nil)
	ok, err := svc.DeleteList(ctx, "ant@example.com", "ant@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	dir.AssertExpectations(t)
}

func TestListService_DeleteList_Failure(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)
	dir.On("DeleteList", ctx, "ant@example.com").Return(mailman.ErrServiceUnavailable)

	ok, err := NewListService(dir, nil).DeleteList(ctx, "ant@example.com", "ant@example.com")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, mailman.ErrServiceUnavailable))
}

func TestListService_Configuration(t *testing.T) {
	ctx := context.Background()
	dir := new(MockDirectory)
	conf := mailman.Configuration{"mailman": {"site_owner": "owner@example.com"}}
	dir.On("Configuration", ctx).Return(conf, nil)

	got, err := NewListService(dir, nil).Configuration(ctx)
	require.NoError(t, err)
	assert.Equal(t, conf, got)
}
