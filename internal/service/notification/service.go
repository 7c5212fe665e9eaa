// Package notification keeps the notification panel state: the fetched list,
// its unread badge and opening an item.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/unread"
)

type notificationAPI interface {
	ListNotifications(ctx context.Context) ([]domain.UserNotification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

// Panel holds the last fetched notification list. It is safe for concurrent
// use, so a poller may refresh it while a view reads it.
type Panel struct {
	api notificationAPI
	log *slog.Logger

	mu    sync.RWMutex
	items []domain.UserNotification
}

// NewPanel creates an empty panel.
func NewPanel(log *slog.Logger, api notificationAPI) *Panel {
	return &Panel{
		api: api,
		log: log.With("service", "notification"),
	}
}

// Refresh replaces the list with a fresh fetch. On failure the previous list
// is kept and the error returned; results for a cancelled ctx are dropped.
func (p *Panel) Refresh(ctx context.Context) error {
	items, err := p.api.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("notification.Refresh: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
	return nil
}

// Fetch refreshes the list and returns its unread count. It satisfies
// unread.Fetcher so the panel can back a poller.
func (p *Panel) Fetch(ctx context.Context) (int, error) {
	if err := p.Refresh(ctx); err != nil {
		return 0, err
	}
	return p.UnreadCount(), nil
}

// Items returns the list in server order.
func (p *Panel) Items() []domain.UserNotification {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.items)
}

// UnreadCount counts the unread items of the current list.
func (p *Panel) UnreadCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return unread.CountNotifications(p.items)
}

// Open returns the item with id. An unread item is marked read on the server
// first; the local flag flips only when that call succeeds. A failed mark is
// logged and the item is still returned.
func (p *Panel) Open(ctx context.Context, id int64) (domain.UserNotification, error) {
	item, ok := p.find(id)
	if !ok {
		return domain.UserNotification{}, fmt.Errorf("notification.Open %d: %w", id, domain.ErrNotFound)
	}
	if item.IsRead {
		return item, nil
	}

	if err := p.api.MarkNotificationRead(ctx, id); err != nil {
		p.log.WarnContext(ctx, "mark as read failed",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return item, nil
	}

	p.mu.Lock()
	for i := range p.items {
		if p.items[i].ID == id {
			p.items[i].IsRead = true
		}
	}
	p.mu.Unlock()

	item.IsRead = true
	return item, nil
}

func (p *Panel) find(id int64) (domain.UserNotification, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, it := range p.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.UserNotification{}, false
}
