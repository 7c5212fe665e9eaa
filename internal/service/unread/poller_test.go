package unread

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/adapter/pebblestore"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/session"
	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/ctxutil"
)

const (
	waitFor = 2 * time.Second
	tickDur = 5 * time.Millisecond
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// manualPoller returns a poller driven by the returned tick channel.
func manualPoller(opts Options, obs pollObserver) (*Poller, chan time.Time) {
	p := NewPoller(opts, obs, testLogger())
	ticks := make(chan time.Time)
	p.tick = func(time.Duration) (<-chan time.Time, func()) { return ticks, func() {} }
	return p, ticks
}

type runHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func start(p *Poller, fetch Fetcher) runHandle {
	ctx, cancel := context.WithCancel(context.Background())
	h := runHandle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		_ = p.Run(ctx, fetch)
	}()
	return h
}

func (h runHandle) stop(t *testing.T) {
	t.Helper()
	h.cancel()
	select {
	case <-h.done:
	case <-time.After(waitFor):
		t.Fatal("Run did not return after cancel")
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	polls  []error
	unread []int
}

func (o *recordingObserver) ObservePoll(_ string, err error) {
	o.mu.Lock()
	o.polls = append(o.polls, err)
	o.mu.Unlock()
}

func (o *recordingObserver) SetUnread(_ string, n int) {
	o.mu.Lock()
	o.unread = append(o.unread, n)
	o.mu.Unlock()
}

// ─── Run ────────────────────────────────────────────────────────────────────

func TestPoller_InitialFetchAndTicks(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p, ticks := manualPoller(Options{Source: "complaints"}, nil)
	h := start(p, func(context.Context) (int, error) {
		return int(calls.Add(1)) * 10, nil
	})
	defer h.stop(t)

	require.Eventually(t, func() bool { return p.Count() == 10 }, waitFor, tickDur)

	ticks <- time.Now()
	require.Eventually(t, func() bool { return p.Count() == 20 }, waitFor, tickDur)
}

func TestPoller_TagsFetchOrigin(t *testing.T) {
	t.Parallel()

	origins := make(chan string, 1)
	p, _ := manualPoller(Options{Source: "complaints"}, nil)
	h := start(p, func(ctx context.Context) (int, error) {
		select {
		case origins <- ctxutil.OriginFromCtx(ctx):
		default:
		}
		return 0, nil
	})
	defer h.stop(t)

	select {
	case got := <-origins:
		assert.Equal(t, "poll.complaints", got)
	case <-time.After(waitFor):
		t.Fatal("no fetch")
	}
}

func TestPoller_ErrorKeepsLastCount(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	obs := &recordingObserver{}
	p, ticks := manualPoller(Options{Source: "notifications"}, obs)
	h := start(p, func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 4, nil
		}
		return 0, errors.New("502 bad gateway")
	})
	defer h.stop(t)

	require.Eventually(t, func() bool { return p.Count() == 4 }, waitFor, tickDur)
	ticks <- time.Now()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, waitFor, tickDur)

	h.stop(t)
	assert.Equal(t, 4, p.Count())
	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.polls, 2)
	assert.NoError(t, obs.polls[0])
	assert.Error(t, obs.polls[1])
	assert.Equal(t, []int{4}, obs.unread)
}

func TestPoller_TriggerFetches(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p, _ := manualPoller(Options{}, nil)
	h := start(p, func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	})
	defer h.stop(t)

	require.Eventually(t, func() bool { return p.Count() == 1 }, waitFor, tickDur)
	p.Trigger()
	require.Eventually(t, func() bool { return p.Count() == 2 }, waitFor, tickDur)
}

func TestPoller_LateResultAfterCancelIsDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var calls atomic.Int32
	p, _ := manualPoller(Options{}, nil)

	h := start(p, func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 3, nil
		}
		<-release
		return 99, nil
	})

	require.Eventually(t, func() bool { return p.Count() == 3 }, waitFor, tickDur)
	p.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, waitFor, tickDur)

	h.cancel()
	close(release)
	h.stop(t)

	assert.Equal(t, 3, p.Count())
}

func TestPoller_LastResolvedWins(t *testing.T) {
	t.Parallel()

	slow := make(chan struct{})
	var calls atomic.Int32
	p, _ := manualPoller(Options{}, nil)
	h := start(p, func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			<-slow
			return 3, nil
		}
		return 5, nil
	})
	defer h.stop(t)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, tickDur)
	p.Trigger()
	require.Eventually(t, func() bool { return p.Count() == 5 }, waitFor, tickDur)

	close(slow)
	require.Eventually(t, func() bool { return p.Count() == 3 }, waitFor, tickDur)
}

func TestPoller_NilFetcherKeepsCount(t *testing.T) {
	t.Parallel()

	p, _ := manualPoller(Options{}, nil)
	h := start(p, func(context.Context) (int, error) { return 8, nil })
	require.Eventually(t, func() bool { return p.Count() == 8 }, waitFor, tickDur)
	h.stop(t)

	h = start(p, nil)
	p.Trigger()
	time.Sleep(20 * time.Millisecond)
	h.stop(t)

	assert.Equal(t, 8, p.Count())
}

func TestPoller_OnUpdate(t *testing.T) {
	t.Parallel()

	got := make(chan int, 1)
	p, _ := manualPoller(Options{OnUpdate: func(n int) { got <- n }}, nil)
	h := start(p, func(context.Context) (int, error) { return 2, nil })
	defer h.stop(t)

	select {
	case n := <-got:
		assert.Equal(t, 2, n)
	case <-time.After(waitFor):
		t.Fatal("OnUpdate not called")
	}
}

func TestPoller_TriggerThrottled(t *testing.T) {
	t.Parallel()

	p := NewPoller(Options{TriggerMinGap: time.Hour}, nil, testLogger())

	p.Trigger()
	select {
	case <-p.trigger:
	default:
		t.Fatal("first trigger should pass")
	}

	p.Trigger()
	select {
	case <-p.trigger:
		t.Fatal("second trigger within the gap should be dropped")
	default:
	}
}

func TestPoller_TriggerNeverBlocks(t *testing.T) {
	t.Parallel()

	p := NewPoller(Options{}, nil, testLogger())
	for range 10 {
		p.Trigger()
	}
	assert.Len(t, p.trigger, 1)
}

// ─── Bind ───────────────────────────────────────────────────────────────────

func TestPoller_BindRestartsOnSessionChange(t *testing.T) {
	t.Parallel()

	store, err := pebblestore.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()
	sess := session.NewService(testLogger(), store)
	require.NoError(t, sess.Save(domain.Session{AccessToken: "a", Role: domain.RoleEmployee}))

	counts := map[domain.Role]int{domain.RoleEmployee: 1, domain.RoleHR: 7}
	fetcherFor := func(s domain.Session) Fetcher {
		if !s.HasCredential() {
			return nil
		}
		n := counts[s.Role]
		return func(context.Context) (int, error) { return n, nil }
	}

	p, _ := manualPoller(Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Bind(ctx, sess, fetcherFor)
	}()

	require.Eventually(t, func() bool { return p.Count() == 1 }, waitFor, tickDur)

	require.NoError(t, sess.Save(domain.Session{AccessToken: "b", Role: domain.RoleHR}))
	require.Eventually(t, func() bool { return p.Count() == 7 }, waitFor, tickDur)

	sess.Invalidate("test")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 7, p.Count())

	cancel()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Bind did not return after cancel")
	}
}

func TestComplaintFetcher(t *testing.T) {
	t.Parallel()

	api := complaintListerFunc(func(_ context.Context, role domain.Role) ([]domain.Complaint, error) {
		assert.Equal(t, domain.RoleManager, role)
		return []domain.Complaint{{ID: 1}, {ID: 2, IsSeenByRecipient: true}}, nil
	})
	factory := ComplaintFetcher(api)

	assert.Nil(t, factory(domain.Session{Role: domain.RoleManager}))
	assert.Nil(t, factory(domain.Session{AccessToken: "x", Role: "guest"}))

	fetch := factory(domain.Session{AccessToken: "x", Role: domain.RoleManager})
	require.NotNil(t, fetch)
	n, err := fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNotificationFetcher(t *testing.T) {
	t.Parallel()

	boom := errors.New("timeout")
	api := notificationListerFunc(func(context.Context) ([]domain.UserNotification, error) {
		return nil, boom
	})
	factory := NotificationFetcher(api)

	assert.Nil(t, factory(domain.Session{}))
	_, err := factory(domain.Session{AccessToken: "x"})(context.Background())
	assert.ErrorIs(t, err, boom)
}

type complaintListerFunc func(ctx context.Context, role domain.Role) ([]domain.Complaint, error)

func (f complaintListerFunc) ListComplaints(ctx context.Context, role domain.Role) ([]domain.Complaint, error) {
	return f(ctx, role)
}

type notificationListerFunc func(ctx context.Context) ([]domain.UserNotification, error)

func (f notificationListerFunc) ListNotifications(ctx context.Context) ([]domain.UserNotification, error) {
	return f(ctx)
}
