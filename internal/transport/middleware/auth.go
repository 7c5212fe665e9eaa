package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type credentialSource interface {
	Token() string
	Invalidate(reason string)
}

// Auth attaches the bearer credential held by src to requests addressed to
// the backend at baseURL; requests to any other scheme or host go out
// without it. A 401 response to a request that carried a credential
// invalidates the session; the response is still returned to the caller.
func Auth(src credentialSource, baseURL string) Middleware {
	origin, _ := url.Parse(baseURL)
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			var token string
			if sameOrigin(origin, r.URL) {
				token = src.Token()
			}
			if token != "" {
				r = r.Clone(r.Context())
				r.Header.Set("Authorization", "Bearer "+token)
			}

			resp, err := next.RoundTrip(r)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode == http.StatusUnauthorized && token != "" {
				src.Invalidate(fmt.Sprintf("%s %s: status 401", r.Method, r.URL.Path))
			}
			return resp, nil
		})
	}
}

func sameOrigin(base, u *url.URL) bool {
	if base == nil || u == nil || base.Host == "" {
		return false
	}
	return strings.EqualFold(base.Scheme, u.Scheme) && strings.EqualFold(base.Host, u.Host)
}
