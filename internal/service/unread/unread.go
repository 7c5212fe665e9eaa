// Package unread derives unread counts from fetched list snapshots and keeps
// them fresh with a cancellable poller.
package unread

import (
	"context"
	"strconv"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// DefaultCeiling is the largest count rendered as a number.
const DefaultCeiling = 99

// ComplaintUnread reports whether c needs the attention of a user with role.
// Employees see a complaint as unread once it is answered and they have not
// looked at it; recipients until they have seen it. Other roles see nothing.
func ComplaintUnread(role domain.Role, c domain.Complaint) bool {
	switch role {
	case domain.RoleEmployee:
		return c.IsResponded && !c.IsSeenByEmployee
	case domain.RoleManager, domain.RoleHR:
		return !c.IsSeenByRecipient
	default:
		return false
	}
}

// CountComplaints counts the unread complaints in list for role.
func CountComplaints(role domain.Role, list []domain.Complaint) int {
	n := 0
	for _, c := range list {
		if ComplaintUnread(role, c) {
			n++
		}
	}
	return n
}

// CountNotifications counts the notifications not yet read.
func CountNotifications(list []domain.UserNotification) int {
	n := 0
	for _, it := range list {
		if !it.IsRead {
			n++
		}
	}
	return n
}

// Display renders a badge value: empty for zero, "<ceiling>+" above the
// ceiling. The count itself is never capped.
func Display(n, ceiling int) string {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	switch {
	case n <= 0:
		return ""
	case n > ceiling:
		return strconv.Itoa(ceiling) + "+"
	default:
		return strconv.Itoa(n)
	}
}

// Fetcher fetches a fresh snapshot and returns its unread count.
type Fetcher func(ctx context.Context) (int, error)

type complaintLister interface {
	ListComplaints(ctx context.Context, role domain.Role) ([]domain.Complaint, error)
}

type notificationLister interface {
	ListNotifications(ctx context.Context) ([]domain.UserNotification, error)
}

// ComplaintFetcher returns a factory building the complaint fetcher for a
// session. Sessions without a credential or a known role get a nil fetcher.
func ComplaintFetcher(api complaintLister) func(domain.Session) Fetcher {
	return func(s domain.Session) Fetcher {
		if !s.HasCredential() || !s.Role.IsValid() {
			return nil
		}
		role := s.Role
		return func(ctx context.Context) (int, error) {
			list, err := api.ListComplaints(ctx, role)
			if err != nil {
				return 0, err
			}
			return CountComplaints(role, list), nil
		}
	}
}

// NotificationFetcher returns a factory building the notification fetcher for
// a session. Sessions without a credential get a nil fetcher.
func NotificationFetcher(api notificationLister) func(domain.Session) Fetcher {
	return func(s domain.Session) Fetcher {
		if !s.HasCredential() {
			return nil
		}
		return func(ctx context.Context) (int, error) {
			list, err := api.ListNotifications(ctx)
			if err != nil {
				return 0, err
			}
			return CountNotifications(list), nil
		}
	}
}
