package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
)

func notifyTwice(t *testing.T, service *ServiceImpl) {
	t.Helper()
	ctx := test_utils.TestContext()
	require.NoError(t, service.NotifyUser(ctx, test_utils.TestUser.Id, Notification{
		Title: "Recurring expense created",
		Type:  TypeRecurringTransaction,
	}))
	require.NoError(t, service.NotifyUser(ctx, test_utils.TestUser.Id, Notification{
		Title: "Monthly budget created",
		Type:  TypeBudgetProvisioned,
	}))
}

func TestUnreadCount(t *testing.T) {
	// given
	repo := NewStubRepo()
	service := NewService(repo)
	notifyTwice(t, service)
	ctx := test_utils.TestContext()

	// when
	count, err := service.UnreadCount(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMarkRead_SingleNotification(t *testing.T) {
	// given
	repo := NewStubRepo()
	service := NewService(repo)
	notifyTwice(t, service)
	ctx := test_utils.TestContext()

	// when
	err := service.MarkRead(ctx, repo.Notifications[0].Id)

	// then
	require.NoError(t, err)
	unread, err := service.GetAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Monthly budget created", unread[0].Title)
}

func TestMarkAllRead(t *testing.T) {
	// given
	repo := NewStubRepo()
	service := NewService(repo)
	notifyTwice(t, service)
	ctx := test_utils.TestContext()

	// when
	err := service.MarkAllRead(ctx)

	// then
	require.NoError(t, err)
	count, err := service.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	all, err := service.GetAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMarkRead_UnknownNotification(t *testing.T) {
	service := NewService(NewStubRepo())

	err := service.MarkRead(test_utils.TestContext(), 42)

	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
