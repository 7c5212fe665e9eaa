// Package directory builds the addressable audience of a broadcast: it pages
// through a user listing with an ordered list of source strategies, merges
// pages without duplicates and holds the search, selection and audience mode.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

type pageFetcher interface {
	FetchUserPage(ctx context.Context, ref string) (domain.UserPage, error)
}

// Strategy is one user listing source.
type Strategy struct {
	Name string
	Path string
}

// Options configures a Resolver. Strategies are tried in order on Load.
type Options struct {
	Strategies []Strategy
	PageSize   int
}

// Resolver accumulates directory pages and the composer's audience.
type Resolver struct {
	api        pageFetcher
	strategies []Strategy
	pageSize   int
	log        *slog.Logger

	mu      sync.RWMutex
	users   []domain.DirectoryUser
	keyed   map[domain.DirectoryKey]int
	unkeyed map[string]int
	next    string
	source  string

	query       string
	selected    []string
	selectedSet map[string]struct{}
	audienceAll bool
}

// NewResolver creates an empty resolver in "send to all" mode.
func NewResolver(log *slog.Logger, api pageFetcher, opts Options) *Resolver {
	r := &Resolver{
		api:      api,
		pageSize: opts.PageSize,
		log:      log.With("service", "directory"),
	}
	for _, st := range opts.Strategies {
		if st.Path != "" {
			r.strategies = append(r.strategies, st)
		}
	}
	r.resetLocked()
	return r
}

// FirstPageRef is the reference of page one of a listing path.
func FirstPageRef(path string, pageSize int) string {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("page_size", strconv.Itoa(pageSize))
	return path + "?" + q.Encode()
}

// Load discards the accumulated directory and fetches page one from the first
// strategy that yields a usable page. A rejected credential or a cancelled
// context stops the chain. Selection and audience mode are kept.
func (r *Resolver) Load(ctx context.Context) error {
	var errs []error
	for _, st := range r.strategies {
		page, err := r.api.FetchUserPage(ctx, FirstPageRef(st.Path, r.pageSize))
		if err == nil {
			r.mu.Lock()
			r.users = nil
			r.keyed = make(map[domain.DirectoryKey]int)
			r.unkeyed = make(map[string]int)
			r.mergeLocked(page.Records)
			r.next = page.Next
			r.source = st.Name
			n := len(r.users)
			r.mu.Unlock()

			r.log.DebugContext(ctx, "directory loaded",
				slog.String("source", st.Name),
				slog.Int("users", n),
				slog.Bool("has_more", page.Next != ""),
			)
			return nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", st.Name, err))
		if errors.Is(err, domain.ErrSessionInvalidated) || ctx.Err() != nil {
			break
		}
		r.log.WarnContext(ctx, "directory source failed",
			slog.String("source", st.Name),
			slog.String("error", err.Error()),
		)
	}
	if len(errs) == 0 {
		return fmt.Errorf("directory.Load: no sources configured: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("directory.Load: %w", errors.Join(errs...))
}

// LoadMore fetches the page behind the stored cursor and merges it. On failure
// the cursor is kept so the action can be retried. Without a cursor it is a
// no-op.
func (r *Resolver) LoadMore(ctx context.Context) error {
	r.mu.RLock()
	cursor := r.next
	r.mu.RUnlock()
	if cursor == "" {
		return nil
	}

	page, err := r.api.FetchUserPage(ctx, cursor)
	if err != nil {
		return fmt.Errorf("directory.LoadMore: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next != cursor {
		// A Load or another LoadMore moved the cursor meanwhile.
		return nil
	}
	r.mergeLocked(page.Records)
	r.next = page.Next
	return nil
}

// LoadAll loads page one and follows the cursor to the last page. A cursor
// seen twice ends the walk.
func (r *Resolver) LoadAll(ctx context.Context) error {
	if err := r.Load(ctx); err != nil {
		return err
	}
	seen := map[string]struct{}{}
	for {
		cursor := r.Cursor()
		if cursor == "" {
			return nil
		}
		if _, dup := seen[cursor]; dup {
			r.log.WarnContext(ctx, "directory cursor loop", slog.String("cursor", cursor))
			return nil
		}
		seen[cursor] = struct{}{}
		if err := r.LoadMore(ctx); err != nil {
			return err
		}
	}
}

// mergeLocked inserts records. A keyed record replaces an earlier one with the
// same key in place; an unkeyed record is added once per distinct content.
func (r *Resolver) mergeLocked(records []map[string]any) {
	for _, rec := range records {
		u := FromRecord(rec)
		if u.Key.IsKeyed() {
			if i, ok := r.keyed[u.Key]; ok {
				r.users[i] = u
				continue
			}
			r.keyed[u.Key] = len(r.users)
			r.users = append(r.users, u)
			continue
		}
		id := canonical(rec)
		if i, ok := r.unkeyed[id]; ok {
			r.users[i] = u
			continue
		}
		r.unkeyed[id] = len(r.users)
		r.users = append(r.users, u)
	}
}

// HasMore reports whether a next page cursor is held.
func (r *Resolver) HasMore() bool {
	return r.Cursor() != ""
}

// Cursor returns the next page cursor, empty on the last page.
func (r *Resolver) Cursor() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.next
}

// Source is the name of the strategy that served the last Load.
func (r *Resolver) Source() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

// Users returns the whole directory in merge order.
func (r *Resolver) Users() []domain.DirectoryUser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users)
}

// SetQuery sets the search term of the filtered view.
func (r *Resolver) SetQuery(q string) {
	r.mu.Lock()
	r.query = strings.TrimSpace(q)
	r.mu.Unlock()
}

// Query returns the current search term.
func (r *Resolver) Query() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.query
}

// Filtered returns the users whose display name or username contains the
// query, case-insensitively. An empty query matches everyone.
func (r *Resolver) Filtered() []domain.DirectoryUser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filteredLocked()
}

func (r *Resolver) filteredLocked() []domain.DirectoryUser {
	q := strings.ToLower(r.query)
	if q == "" {
		return slices.Clone(r.users)
	}
	var out []domain.DirectoryUser
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.DisplayName), q) ||
			strings.Contains(strings.ToLower(u.Username), q) {
			out = append(out, u)
		}
	}
	return out
}

// lookupLocked finds a user by username, then by key value.
func (r *Resolver) lookupLocked(ref string) (domain.DirectoryUser, bool) {
	for _, u := range r.users {
		if u.Username != "" && u.Username == ref {
			return u, true
		}
	}
	for _, u := range r.users {
		if u.Key.IsKeyed() && u.Key.Value == ref {
			return u, true
		}
	}
	return domain.DirectoryUser{}, false
}

func (r *Resolver) selectable(ref string) (string, error) {
	u, ok := r.lookupLocked(ref)
	if !ok {
		return "", fmt.Errorf("directory: user %q: %w", ref, domain.ErrNotFound)
	}
	if !u.Selectable() {
		return "", domain.NewValidationError("usernames", fmt.Sprintf("%q has no username and cannot be addressed", ref))
	}
	return u.Username, nil
}

// Toggle adds or removes a user from the explicit selection and switches the
// audience to explicit.
func (r *Resolver) Toggle(ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, err := r.selectable(ref)
	if err != nil {
		return fmt.Errorf("directory.Toggle: %w", err)
	}
	r.audienceAll = false
	if _, ok := r.selectedSet[name]; ok {
		delete(r.selectedSet, name)
		r.selected = slices.DeleteFunc(r.selected, func(s string) bool { return s == name })
		return nil
	}
	r.addLocked(name)
	return nil
}

// Select adds a user to the explicit selection. Selecting twice is a no-op.
func (r *Resolver) Select(ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, err := r.selectable(ref)
	if err != nil {
		return fmt.Errorf("directory.Select: %w", err)
	}
	r.audienceAll = false
	r.addLocked(name)
	return nil
}

func (r *Resolver) addLocked(name string) {
	if _, ok := r.selectedSet[name]; ok {
		return
	}
	r.selectedSet[name] = struct{}{}
	r.selected = append(r.selected, name)
}

// SelectAllFiltered adds every selectable user of the filtered view to the
// selection, keeping what was already selected. It returns how many were added.
func (r *Resolver) SelectAllFiltered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audienceAll = false
	added := 0
	for _, u := range r.filteredLocked() {
		if !u.Selectable() {
			continue
		}
		if _, ok := r.selectedSet[u.Username]; ok {
			continue
		}
		r.addLocked(u.Username)
		added++
	}
	return added
}

// ClearSelection empties the explicit selection.
func (r *Resolver) ClearSelection() {
	r.mu.Lock()
	r.selected = nil
	r.selectedSet = make(map[string]struct{})
	r.mu.Unlock()
}

// SetAudienceAll switches the audience mode. Turning "send to all" on clears
// the explicit selection; turning it off leaves the selection as it is.
func (r *Resolver) SetAudienceAll(all bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if all {
		r.selected = nil
		r.selectedSet = make(map[string]struct{})
	}
	r.audienceAll = all
}

// AudienceAll reports whether the broadcast targets everyone.
func (r *Resolver) AudienceAll() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.audienceAll
}

// Selected returns the selected usernames in selection order.
func (r *Resolver) Selected() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.selected)
}

// IsSelected reports whether username is in the explicit selection.
func (r *Resolver) IsSelected(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.selectedSet[username]
	return ok
}

// ResetAudience restores the composer defaults: send to all, no selection,
// no search. The loaded directory is kept.
func (r *Resolver) ResetAudience() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = ""
	r.selected = nil
	r.selectedSet = make(map[string]struct{})
	r.audienceAll = true
}

// Reset drops the directory and restores the composer defaults.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

func (r *Resolver) resetLocked() {
	r.users = nil
	r.keyed = make(map[domain.DirectoryKey]int)
	r.unkeyed = make(map[string]int)
	r.next = ""
	r.source = ""
	r.query = ""
	r.selected = nil
	r.selectedSet = make(map[string]struct{})
	r.audienceAll = true
}
