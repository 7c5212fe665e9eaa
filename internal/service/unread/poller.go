package unread

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/ctxutil"
)

const defaultInterval = 15 * time.Second

type pollObserver interface {
	ObservePoll(source string, err error)
	SetUnread(source string, n int)
}

// Options configure a Poller.
type Options struct {
	// Source labels logs and metrics ("complaints", "notifications").
	Source string
	// Interval between scheduled fetches.
	Interval time.Duration
	// TriggerMinGap throttles passive triggers; zero lets every trigger through.
	TriggerMinGap time.Duration
	// OnUpdate, when set, is called after every accepted result.
	OnUpdate func(count int)
}

// Poller keeps an unread count fresh. Each Run is bound to a context: when it
// is cancelled the timer stops, in-flight fetches are aborted, and results
// arriving afterwards are discarded. The count survives between runs.
type Poller struct {
	source   string
	interval time.Duration
	onUpdate func(int)
	limiter  *rate.Limiter
	trigger  chan struct{}
	obs      pollObserver
	log      *slog.Logger

	// tick is swapped in tests for a manual clock.
	tick func(time.Duration) (<-chan time.Time, func())

	mu    sync.Mutex
	count int
	gen   uint64
}

// NewPoller creates a poller. obs may be nil.
func NewPoller(opts Options, obs pollObserver, log *slog.Logger) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	p := &Poller{
		source:   opts.Source,
		interval: opts.Interval,
		onUpdate: opts.OnUpdate,
		trigger:  make(chan struct{}, 1),
		obs:      obs,
		log:      log.With("service", "unread", "source", opts.Source),
		tick:     realTicker,
	}
	if opts.TriggerMinGap > 0 {
		p.limiter = rate.NewLimiter(rate.Every(opts.TriggerMinGap), 1)
	}
	return p
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Count returns the last accepted unread count.
func (p *Poller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Trigger asks the running poller for an immediate fetch, the equivalent of
// the view regaining focus. It never blocks; triggers closer together than
// TriggerMinGap are dropped.
func (p *Poller) Trigger() {
	if p.limiter != nil && !p.limiter.Allow() {
		return
	}
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run fetches immediately, then on every tick and trigger, until ctx is
// cancelled. Fetches may overlap; the last one to resolve wins. A nil fetch
// means nothing can be polled: Run waits for cancellation and the count keeps
// its last value. Run returns after every fetch it started has finished.
func (p *Poller) Run(ctx context.Context, fetch Fetcher) error {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	// Drop a trigger left over from a previous run.
	select {
	case <-p.trigger:
	default:
	}

	if fetch == nil {
		p.log.DebugContext(ctx, "poller idle, nothing to fetch")
		<-ctx.Done()
		return nil
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	launch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.fetchOnce(ctx, gen, fetch)
		}()
	}

	ticks, stop := p.tick(p.interval)
	defer stop()

	launch()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			launch()
		case <-p.trigger:
			launch()
		}
	}
}

func (p *Poller) fetchOnce(ctx context.Context, gen uint64, fetch Fetcher) {
	n, err := fetch(ctxutil.WithOrigin(ctx, "poll."+p.source))
	if ctx.Err() != nil {
		return
	}
	if p.obs != nil {
		p.obs.ObservePoll(p.source, err)
	}
	if err != nil {
		p.log.DebugContext(ctx, "poll failed, keeping last count", slog.String("error", err.Error()))
		return
	}

	p.mu.Lock()
	if ctx.Err() != nil || gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.count = n
	p.mu.Unlock()

	if p.obs != nil {
		p.obs.SetUnread(p.source, n)
	}
	if p.onUpdate != nil {
		p.onUpdate(n)
	}
}
