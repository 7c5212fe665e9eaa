// Package middleware provides outbound http.RoundTripper middleware for the
// portal API client.
package middleware

import "net/http"

// Middleware is a function that wraps an http.RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain combines multiple middleware into a single Middleware.
// Middleware are applied in the order given: Chain(mw1, mw2)(rt)
// results in mw1(mw2(rt)), so mw1 sees the request first (outermost).
func Chain(mws ...Middleware) Middleware {
	return func(final http.RoundTripper) http.RoundTripper {
		if final == nil {
			final = http.DefaultTransport
		}
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
