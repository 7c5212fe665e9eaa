// Package broadcast implements the admin notification composer: draft
// validation, payload construction and the send itself.
package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

type sender interface {
	SendNotification(ctx context.Context, p domain.BroadcastPayload) error
}

type audience interface {
	AudienceAll() bool
	Selected() []string
	ResetAudience()
}

// Draft is the editable part of the composer.
type Draft struct {
	Title    string
	Message  string
	Priority domain.Priority
}

// Validate checks the content of a draft. Emptiness is judged after
// trimming; the text itself is sent as typed.
func (d Draft) Validate() error {
	errs := d.fieldErrors()
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (d Draft) fieldErrors() []domain.FieldError {
	var errs []domain.FieldError
	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(d.Message) == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	return errs
}

// BuildPayload validates a draft against an audience and builds the send
// payload. With all set the recipient list is left out entirely.
func BuildPayload(d Draft, all bool, usernames []string) (domain.BroadcastPayload, error) {
	errs := d.fieldErrors()
	if !all && len(usernames) == 0 {
		errs = append(errs, domain.FieldError{Field: "usernames", Message: "select at least one recipient"})
	}
	if len(errs) > 0 {
		return domain.BroadcastPayload{}, &domain.ValidationError{Errors: errs}
	}

	p := domain.BroadcastPayload{
		Title:      d.Title,
		Message:    d.Message,
		Importance: d.Priority.Importance(),
		ToAll:      all,
	}
	if !all {
		p.Usernames = append([]string(nil), usernames...)
	}
	return p, nil
}

// Composer holds a draft and submits it to the audience chosen in the
// directory.
type Composer struct {
	api sender
	aud audience
	log *slog.Logger

	mu       sync.Mutex
	draft    Draft
	inFlight bool
}

// NewComposer creates a composer with an empty normal-priority draft.
func NewComposer(log *slog.Logger, api sender, aud audience) *Composer {
	return &Composer{
		api:   api,
		aud:   aud,
		log:   log.With("service", "broadcast"),
		draft: Draft{Priority: domain.PriorityNormal},
	}
}

// SetDraft replaces the draft.
func (c *Composer) SetDraft(d Draft) {
	c.mu.Lock()
	c.draft = d
	c.mu.Unlock()
}

// Draft returns the current draft.
func (c *Composer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Sending reports whether a submit is in flight.
func (c *Composer) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Submit validates and sends the draft. Validation failures issue no request.
// After a successful send the draft and the audience return to their
// defaults; on failure everything is kept for a retry. A second Submit while
// one is in flight fails with ErrConflict.
func (c *Composer) Submit(ctx context.Context) (domain.BroadcastPayload, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return domain.BroadcastPayload{}, fmt.Errorf("broadcast.Submit: send in progress: %w", domain.ErrConflict)
	}
	p, err := BuildPayload(c.draft, c.aud.AudienceAll(), c.aud.Selected())
	if err != nil {
		c.mu.Unlock()
		return domain.BroadcastPayload{}, err
	}
	c.inFlight = true
	c.mu.Unlock()

	err = c.api.SendNotification(ctx, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		c.log.WarnContext(ctx, "broadcast failed", slog.String("error", err.Error()))
		return domain.BroadcastPayload{}, fmt.Errorf("broadcast.Submit: %w", err)
	}

	c.log.InfoContext(ctx, "broadcast sent",
		slog.Bool("to_all", p.ToAll),
		slog.Int("recipients", len(p.Usernames)),
		slog.String("importance", p.Importance.String()),
	)
	c.draft = Draft{Priority: domain.PriorityNormal}
	c.aud.ResetAudience()
	return p, nil
}
