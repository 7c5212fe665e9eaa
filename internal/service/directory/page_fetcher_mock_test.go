package directory

import (
	"context"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var _ pageFetcher = &pageFetcherMock{}

type pageFetcherMock struct {
	FetchUserPageFunc func(ctx context.Context, ref string) (domain.UserPage, error)

	calls struct {
		FetchUserPage []struct {
			Ctx context.Context
			Ref string
		}
	}
	lockFetchUserPage sync.RWMutex
}

func (mock *pageFetcherMock) FetchUserPage(ctx context.Context, ref string) (domain.UserPage, error) {
	if mock.FetchUserPageFunc == nil {
		panic("pageFetcherMock.FetchUserPageFunc: method is nil but pageFetcher.FetchUserPage was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref string
	}{Ctx: ctx, Ref: ref}
	mock.lockFetchUserPage.Lock()
	mock.calls.FetchUserPage = append(mock.calls.FetchUserPage, callInfo)
	mock.lockFetchUserPage.Unlock()
	return mock.FetchUserPageFunc(ctx, ref)
}

func (mock *pageFetcherMock) FetchUserPageCalls() []struct {
	Ctx context.Context
	Ref string
} {
	mock.lockFetchUserPage.RLock()
	calls := mock.calls.FetchUserPage
	mock.lockFetchUserPage.RUnlock()
	return calls
}
