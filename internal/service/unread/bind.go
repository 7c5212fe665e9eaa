package unread

import (
	"context"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/session"
)

type sessionSource interface {
	Current() domain.Session
	Subscribe(fn func(session.Event)) (unsubscribe func())
}

// Bind runs the poller for the current session and restarts it whenever the
// role or credential changes, cancelling the previous run first. It returns
// when ctx is cancelled.
func (p *Poller) Bind(ctx context.Context, sess sessionSource, fetcherFor func(domain.Session) Fetcher) error {
	changed := make(chan struct{}, 1)
	unsubscribe := sess.Subscribe(func(session.Event) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		cur := sess.Current()
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = p.Run(runCtx, fetcherFor(cur))
		}()

	wait:
		for {
			select {
			case <-ctx.Done():
				cancel()
				<-done
				return nil
			case <-changed:
				next := sess.Current()
				if next.Role == cur.Role && next.AccessToken == cur.AccessToken {
					continue
				}
				break wait
			}
		}

		cancel()
		<-done
		p.log.DebugContext(ctx, "session changed, poller restarted")
	}
}
