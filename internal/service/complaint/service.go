// Package complaint implements the complaint workflow view: the role-based
// list, opening a complaint, replying and submitting new complaints.
package complaint

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/unread"
)

type complaintAPI interface {
	ListComplaints(ctx context.Context, role domain.Role) ([]domain.Complaint, error)
	MarkComplaintSeen(ctx context.Context, id int64) error
	ReplyComplaint(ctx context.Context, id int64, role domain.Role, response string) error
	SubmitComplaint(ctx context.Context, s domain.ComplaintSubmission) error
}

type sessionReader interface {
	Current() domain.Session
}

type seenKey struct {
	username string
	id       int64
}

// Service holds the complaint list of the signed-in user.
type Service struct {
	api  complaintAPI
	sess sessionReader
	log  *slog.Logger

	mu    sync.RWMutex
	items []domain.Complaint

	seenMu sync.Mutex
	seen   map[seenKey]struct{}
	bg     sync.WaitGroup
}

// NewService creates a complaint service.
func NewService(log *slog.Logger, api complaintAPI, sess sessionReader) *Service {
	return &Service{
		api:  api,
		sess: sess,
		log:  log.With("service", "complaint"),
		seen: make(map[seenKey]struct{}),
	}
}

// Refresh re-fetches the list for the current role. Without a known role
// nothing is fetched and the list is left as is.
func (s *Service) Refresh(ctx context.Context) error {
	role := s.sess.Current().Role
	if !role.IsValid() {
		return nil
	}
	items, err := s.api.ListComplaints(ctx, role)
	if err != nil {
		return fmt.Errorf("complaint.Refresh: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns the list in server order.
func (s *Service) Items() []domain.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// UnreadCount applies the unread predicate of the current role to the list.
func (s *Service) UnreadCount() int {
	role := s.sess.Current().Role
	s.mu.RLock()
	defer s.mu.RUnlock()
	return unread.CountComplaints(role, s.items)
}

// Get returns the complaint with id from the current list.
func (s *Service) Get(id int64) (domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.items {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Complaint{}, fmt.Errorf("complaint %d: %w", id, domain.ErrNotFound)
}

// Open returns the complaint for the detail view. The first time the current
// user opens it, a best-effort mark-seen call runs in the background and is
// followed by a list refresh. Wait blocks until that work is done.
func (s *Service) Open(ctx context.Context, id int64) (domain.Complaint, error) {
	c, err := s.Get(id)
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("complaint.Open: %w", err)
	}

	key := seenKey{username: s.sess.Current().Username, id: id}
	s.seenMu.Lock()
	_, already := s.seen[key]
	s.seen[key] = struct{}{}
	s.seenMu.Unlock()
	if already {
		return c, nil
	}

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		if err := s.api.MarkComplaintSeen(ctx, id); err != nil {
			s.log.DebugContext(ctx, "mark seen failed",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
		}
		if err := s.Refresh(ctx); err != nil {
			s.log.DebugContext(ctx, "refresh after mark seen failed", slog.String("error", err.Error()))
		}
	}()
	return c, nil
}

// Wait blocks until background mark-seen work has finished.
func (s *Service) Wait() {
	s.bg.Wait()
}

// Reply answers an open complaint as manager or hr, then refreshes the list.
func (s *Service) Reply(ctx context.Context, in ReplyInput) error {
	role := s.sess.Current().Role
	if !role.IsRecipient() {
		return fmt.Errorf("complaint.Reply: role %q cannot reply: %w", role, domain.ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return err
	}

	c, err := s.Get(in.ComplaintID)
	if err != nil {
		return fmt.Errorf("complaint.Reply: %w", err)
	}
	if c.IsResponded {
		return fmt.Errorf("complaint.Reply: complaint %d already answered: %w", c.ID, domain.ErrConflict)
	}

	if err := s.api.ReplyComplaint(ctx, c.ID, role, in.text()); err != nil {
		return fmt.Errorf("complaint.Reply: %w", err)
	}
	s.log.InfoContext(ctx, "complaint answered", slog.Int64("id", c.ID), slog.String("role", role.String()))

	if err := s.Refresh(ctx); err != nil {
		s.log.DebugContext(ctx, "refresh after reply failed", slog.String("error", err.Error()))
	}
	return nil
}

// Submit files a new complaint. Only employees may submit.
func (s *Service) Submit(ctx context.Context, in SubmitInput) error {
	role := s.sess.Current().Role
	if role != domain.RoleEmployee {
		return fmt.Errorf("complaint.Submit: role %q cannot submit: %w", role, domain.ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return err
	}

	sub := in.submission()
	if err := s.api.SubmitComplaint(ctx, sub); err != nil {
		return fmt.Errorf("complaint.Submit: %w", err)
	}
	s.log.InfoContext(ctx, "complaint submitted", slog.String("recipient", sub.RecipientType.String()))

	if err := s.Refresh(ctx); err != nil {
		s.log.DebugContext(ctx, "refresh after submit failed", slog.String("error", err.Error()))
	}
	return nil
}
