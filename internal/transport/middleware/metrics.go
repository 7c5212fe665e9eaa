package middleware

import (
	"net/http"
	"time"
)

type apiObserver interface {
	ObserveAPI(method string, status int, d time.Duration)
}

// Metrics records the method, status and latency of each request.
func Metrics(obs apiObserver) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			status := 0
			if err == nil {
				status = resp.StatusCode
			}
			obs.ObserveAPI(r.Method, status, time.Since(start))
			return resp, err
		})
	}
}
