package broadcast

import (
	"context"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var _ sender = &senderMock{}

type senderMock struct {
	SendNotificationFunc func(ctx context.Context, p domain.BroadcastPayload) error

	calls struct {
		SendNotification []struct {
			Ctx context.Context
			P   domain.BroadcastPayload
		}
	}
	lockSendNotification sync.RWMutex
}

func (mock *senderMock) SendNotification(ctx context.Context, p domain.BroadcastPayload) error {
	if mock.SendNotificationFunc == nil {
		panic("senderMock.SendNotificationFunc: method is nil but sender.SendNotification was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.BroadcastPayload
	}{Ctx: ctx, P: p}
	mock.lockSendNotification.Lock()
	mock.calls.SendNotification = append(mock.calls.SendNotification, callInfo)
	mock.lockSendNotification.Unlock()
	return mock.SendNotificationFunc(ctx, p)
}

func (mock *senderMock) SendNotificationCalls() []struct {
	Ctx context.Context
	P   domain.BroadcastPayload
} {
	mock.lockSendNotification.RLock()
	calls := mock.calls.SendNotification
	mock.lockSendNotification.RUnlock()
	return calls
}
