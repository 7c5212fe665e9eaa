package portalapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// ListNotifications fetches the caller's notifications in server order.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.UserNotification, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/user-notifications/", nil, &raw); err != nil {
		return nil, fmt.Errorf("portalapi.ListNotifications: %w", err)
	}
	items, err := decodeList[apiUserNotification](raw)
	if err != nil {
		return nil, fmt.Errorf("portalapi.ListNotifications: %w", err)
	}

	out := make([]domain.UserNotification, 0, len(items))
	for _, it := range items {
		out = append(out, it.toDomain())
	}
	return out, nil
}

// MarkNotificationRead marks one user-notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/user-notifications/%d/mark_as_read/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("portalapi.MarkNotificationRead: %w", err)
	}
	return nil
}

// SendNotification creates a broadcast. Only 201 Created counts as success.
func (c *Client) SendNotification(ctx context.Context, p domain.BroadcastPayload) error {
	body := broadcastFromDomain(p)
	if err := c.do(ctx, http.MethodPost, "/api/notifications/send_notification/", body, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("portalapi.SendNotification: %w", err)
	}
	c.log.InfoContext(ctx, "notification sent",
		slog.Bool("to_all", p.ToAll),
		slog.Int("recipients", len(p.Usernames)),
		slog.String("importance", p.Importance.String()),
	)
	return nil
}
