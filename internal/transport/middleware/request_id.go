package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/ctxutil"
)

// RequestIDHeader carries the correlation id of an outbound request.
const RequestIDHeader = "X-Request-Id"

// RequestID tags each request with an id taken from the context, or a fresh
// UUID, and stores it back in the request context for later middleware.
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		id := ctxutil.RequestIDFromCtx(r.Context())
		if id == "" {
			id = uuid.New().String()
		}
		ctx := ctxutil.WithRequestID(r.Context(), id)
		r = r.Clone(ctx)
		r.Header.Set(RequestIDHeader, id)
		return next.RoundTrip(r)
	})
}

// UserAgent sets the User-Agent header when ua is non-empty.
func UserAgent(ua string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if ua == "" {
			return next
		}
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())
			r.Header.Set("User-Agent", ua)
			return next.RoundTrip(r)
		})
	}
}
