package auth

import (
	"context"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var _ portalAPI = &portalAPIMock{}

type portalAPIMock struct {
	ObtainTokenFunc func(ctx context.Context, username, password string) (domain.TokenPair, error)
	CurrentUserFunc func(ctx context.Context) (domain.CurrentUser, error)

	calls struct {
		ObtainToken []struct {
			Ctx      context.Context
			Username string
			Password string
		}
		CurrentUser []struct {
			Ctx context.Context
		}
	}
	lockObtainToken sync.RWMutex
	lockCurrentUser sync.RWMutex
}

func (mock *portalAPIMock) ObtainToken(ctx context.Context, username, password string) (domain.TokenPair, error) {
	if mock.ObtainTokenFunc == nil {
		panic("portalAPIMock.ObtainTokenFunc: method is nil but portalAPI.ObtainToken was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Username string
		Password string
	}{Ctx: ctx, Username: username, Password: password}
	mock.lockObtainToken.Lock()
	mock.calls.ObtainToken = append(mock.calls.ObtainToken, callInfo)
	mock.lockObtainToken.Unlock()
	return mock.ObtainTokenFunc(ctx, username, password)
}

func (mock *portalAPIMock) ObtainTokenCalls() []struct {
	Ctx      context.Context
	Username string
	Password string
} {
	mock.lockObtainToken.RLock()
	calls := mock.calls.ObtainToken
	mock.lockObtainToken.RUnlock()
	return calls
}

func (mock *portalAPIMock) CurrentUser(ctx context.Context) (domain.CurrentUser, error) {
	if mock.CurrentUserFunc == nil {
		panic("portalAPIMock.CurrentUserFunc: method is nil but portalAPI.CurrentUser was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCurrentUser.Lock()
	mock.calls.CurrentUser = append(mock.calls.CurrentUser, callInfo)
	mock.lockCurrentUser.Unlock()
	return mock.CurrentUserFunc(ctx)
}

func (mock *portalAPIMock) CurrentUserCalls() []struct {
	Ctx context.Context
} {
	mock.lockCurrentUser.RLock()
	calls := mock.calls.CurrentUser
	mock.lockCurrentUser.RUnlock()
	return calls
}
