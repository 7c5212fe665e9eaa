package dashboard

import (
	"context"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var _ dashboardAPI = &dashboardAPIMock{}

type dashboardAPIMock struct {
	SectionsFunc       func(ctx context.Context) ([]domain.Section, error)
	FormsFunc          func(ctx context.Context) ([]domain.Form, error)
	CurrentUserFunc    func(ctx context.Context) (domain.CurrentUser, error)
	PreviewFormURLFunc func(id string) string

	calls struct {
		Sections []struct {
			Ctx context.Context
		}
		Forms []struct {
			Ctx context.Context
		}
		CurrentUser []struct {
			Ctx context.Context
		}
		PreviewFormURL []struct {
			ID string
		}
	}
	lockSections       sync.RWMutex
	lockForms          sync.RWMutex
	lockCurrentUser    sync.RWMutex
	lockPreviewFormURL sync.RWMutex
}

func (mock *dashboardAPIMock) Sections(ctx context.Context) ([]domain.Section, error) {
	if mock.SectionsFunc == nil {
		panic("dashboardAPIMock.SectionsFunc: method is nil but dashboardAPI.Sections was just called")
	}
	mock.lockSections.Lock()
	mock.calls.Sections = append(mock.calls.Sections, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockSections.Unlock()
	return mock.SectionsFunc(ctx)
}

func (mock *dashboardAPIMock) SectionsCalls() []struct{ Ctx context.Context } {
	mock.lockSections.RLock()
	calls := mock.calls.Sections
	mock.lockSections.RUnlock()
	return calls
}

func (mock *dashboardAPIMock) Forms(ctx context.Context) ([]domain.Form, error) {
	if mock.FormsFunc == nil {
		panic("dashboardAPIMock.FormsFunc: method is nil but dashboardAPI.Forms was just called")
	}
	mock.lockForms.Lock()
	mock.calls.Forms = append(mock.calls.Forms, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockForms.Unlock()
	return mock.FormsFunc(ctx)
}

func (mock *dashboardAPIMock) FormsCalls() []struct{ Ctx context.Context } {
	mock.lockForms.RLock()
	calls := mock.calls.Forms
	mock.lockForms.RUnlock()
	return calls
}

func (mock *dashboardAPIMock) CurrentUser(ctx context.Context) (domain.CurrentUser, error) {
	if mock.CurrentUserFunc == nil {
		panic("dashboardAPIMock.CurrentUserFunc: method is nil but dashboardAPI.CurrentUser was just called")
	}
	mock.lockCurrentUser.Lock()
	mock.calls.CurrentUser = append(mock.calls.CurrentUser, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockCurrentUser.Unlock()
	return mock.CurrentUserFunc(ctx)
}

func (mock *dashboardAPIMock) CurrentUserCalls() []struct{ Ctx context.Context } {
	mock.lockCurrentUser.RLock()
	calls := mock.calls.CurrentUser
	mock.lockCurrentUser.RUnlock()
	return calls
}

func (mock *dashboardAPIMock) PreviewFormURL(id string) string {
	if mock.PreviewFormURLFunc == nil {
		panic("dashboardAPIMock.PreviewFormURLFunc: method is nil but dashboardAPI.PreviewFormURL was just called")
	}
	mock.lockPreviewFormURL.Lock()
	mock.calls.PreviewFormURL = append(mock.calls.PreviewFormURL, struct{ ID string }{ID: id})
	mock.lockPreviewFormURL.Unlock()
	return mock.PreviewFormURLFunc(id)
}

func (mock *dashboardAPIMock) PreviewFormURLCalls() []struct{ ID string } {
	mock.lockPreviewFormURL.RLock()
	calls := mock.calls.PreviewFormURL
	mock.lockPreviewFormURL.RUnlock()
	return calls
}
