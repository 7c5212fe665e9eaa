package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/ctxutil"
)

// Logger returns middleware that logs each outbound request with method,
// path, status code, duration, request id and origin. Transport errors and 5xx
// responses log at warn; everything else at debug.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if origin := ctxutil.OriginFromCtx(r.Context()); origin != "" {
				attrs = append(attrs, slog.String("origin", origin))
			}

			level := slog.LevelDebug
			switch {
			case err != nil:
				level = slog.LevelWarn
				attrs = append(attrs, slog.String("error", err.Error()))
			case resp.StatusCode >= 500:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			default:
				attrs = append(attrs, slog.Int("status", resp.StatusCode))
			}
			logger.LogAttrs(r.Context(), level, "api.request", attrs...)

			return resp, err
		})
	}
}
