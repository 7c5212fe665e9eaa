package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/app"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/unread"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/session"
)

// badges prints a status line whenever an unread count changes.
type badges struct {
	mu      sync.Mutex
	env     *Env
	ceiling int
	counts  map[string]int
	last    string
}

func (b *badges) update(source string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counts[source] = n
	line := fmt.Sprintf("complaints: %s  notifications: %s",
		orZero(unread.Display(b.counts[app.SourceComplaints], b.ceiling)),
		orZero(unread.Display(b.counts[app.SourceNotifications], b.ceiling)),
	)
	if line == b.last {
		return
	}
	b.last = line
	fmt.Fprintf(b.env.Out, "%s  %s\n", time.Now().Format("15:04:05"), line)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func newWatchCmd(env *Env) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep unread complaint and notification counts fresh",
		Long: `watch polls the unread counts until interrupted. Press Enter or send
SIGUSR1 to refresh immediately. The command exits with status 3 when the
backend rejects the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := env.App()
			if !a.Session.Current().HasCredential() {
				return domain.ErrNoSession
			}
			if metricsAddr == "" {
				metricsAddr = a.Config.Metrics.Addr
			}
			return watch(cmd.Context(), env, a, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (overrides metrics.addr)")
	return cmd
}

func watch(parent context.Context, env *Env, a *app.App, metricsAddr string) error {
	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)

	unsubscribe := a.Session.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventInvalidated {
			cancel(fmt.Errorf("watch: %s: %w", ev.Reason, domain.ErrSessionInvalidated))
		}
	})
	defer unsubscribe()

	b := &badges{env: env, ceiling: a.Config.UI.BadgeCeiling, counts: map[string]int{}}
	sources := []string{app.SourceComplaints, app.SourceNotifications}
	pollers := make([]*unread.Poller, 0, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		p := a.NewPoller(src, func(n int) { b.update(src, n) })
		pollers = append(pollers, p)
		g.Go(func() error { return p.Bind(gctx, a.Session, a.FetcherFor(src)) })
	}
	triggerAll := func() {
		for _, p := range pollers {
			p.Trigger()
		}
	}

	usr1 := make(chan os.Signal, 1)
	signal.Notify(usr1, syscall.SIGUSR1)
	defer signal.Stop(usr1)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-usr1:
				triggerAll()
			}
		}
	})

	// The scanner goroutine is not joined: a read on a terminal cannot be
	// interrupted and ends with the process.
	go func() {
		sc := bufio.NewScanner(env.In)
		for sc.Scan() {
			if gctx.Err() != nil {
				return
			}
			triggerAll()
		}
	}()

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: metricsMux(a), ReadHeaderTimeout: 5 * time.Second}
		ln, err := net.Listen("tcp", metricsAddr)
		if err != nil {
			cancel(nil)
			_ = g.Wait()
			return fmt.Errorf("watch: metrics listener: %w", err)
		}
		a.Log.Info("serving metrics", slog.String("addr", ln.Addr().String()))
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("watch: metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		})
	}

	fmt.Fprintln(env.Err, "Watching unread counts. Press Enter to refresh, Ctrl+C to stop.")
	if err := g.Wait(); err != nil {
		return err
	}
	if cause := context.Cause(ctx); errors.Is(cause, domain.ErrSessionInvalidated) {
		return cause
	}
	return nil
}

func metricsMux(a *app.App) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Metrics.Handler())
	return mux
}
