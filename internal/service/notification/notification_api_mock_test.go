package notification

import (
	"context"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var _ notificationAPI = &notificationAPIMock{}

type notificationAPIMock struct {
	ListNotificationsFunc    func(ctx context.Context) ([]domain.UserNotification, error)
	MarkNotificationReadFunc func(ctx context.Context, id int64) error

	calls struct {
		ListNotifications []struct {
			Ctx context.Context
		}
		MarkNotificationRead []struct {
			Ctx context.Context
			ID  int64
		}
	}
	lockListNotifications    sync.RWMutex
	lockMarkNotificationRead sync.RWMutex
}

func (mock *notificationAPIMock) ListNotifications(ctx context.Context) ([]domain.UserNotification, error) {
	if mock.ListNotificationsFunc == nil {
		panic("notificationAPIMock.ListNotificationsFunc: method is nil but notificationAPI.ListNotifications was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListNotifications.Lock()
	mock.calls.ListNotifications = append(mock.calls.ListNotifications, callInfo)
	mock.lockListNotifications.Unlock()
	return mock.ListNotificationsFunc(ctx)
}

func (mock *notificationAPIMock) ListNotificationsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListNotifications.RLock()
	calls := mock.calls.ListNotifications
	mock.lockListNotifications.RUnlock()
	return calls
}

func (mock *notificationAPIMock) MarkNotificationRead(ctx context.Context, id int64) error {
	if mock.MarkNotificationReadFunc == nil {
		panic("notificationAPIMock.MarkNotificationReadFunc: method is nil but notificationAPI.MarkNotificationRead was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockMarkNotificationRead.Lock()
	mock.calls.MarkNotificationRead = append(mock.calls.MarkNotificationRead, callInfo)
	mock.lockMarkNotificationRead.Unlock()
	return mock.MarkNotificationReadFunc(ctx, id)
}

func (mock *notificationAPIMock) MarkNotificationReadCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockMarkNotificationRead.RLock()
	calls := mock.calls.MarkNotificationRead
	mock.lockMarkNotificationRead.RUnlock()
	return calls
}
