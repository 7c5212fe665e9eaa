package middleware

import (
	"sync"
)

var _ credentialSource = &credentialSourceMock{}

type credentialSourceMock struct {
	TokenFunc      func() string
	InvalidateFunc func(reason string)

	calls struct {
		Token      []struct{}
		Invalidate []struct {
			Reason string
		}
	}
	lockToken      sync.RWMutex
	lockInvalidate sync.RWMutex
}

func (mock *credentialSourceMock) Token() string {
	if mock.TokenFunc == nil {
		panic("credentialSourceMock.TokenFunc: method is nil but credentialSource.Token was just called")
	}
	callInfo := struct{}{}
	mock.lockToken.Lock()
	mock.calls.Token = append(mock.calls.Token, callInfo)
	mock.lockToken.Unlock()
	return mock.TokenFunc()
}

func (mock *credentialSourceMock) TokenCalls() []struct{} {
	mock.lockToken.RLock()
	calls := mock.calls.Token
	mock.lockToken.RUnlock()
	return calls
}

func (mock *credentialSourceMock) Invalidate(reason string) {
	if mock.InvalidateFunc == nil {
		panic("credentialSourceMock.InvalidateFunc: method is nil but credentialSource.Invalidate was just called")
	}
	callInfo := struct {
		Reason string
	}{Reason: reason}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	mock.InvalidateFunc(reason)
}

func (mock *credentialSourceMock) InvalidateCalls() []struct {
	Reason string
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
