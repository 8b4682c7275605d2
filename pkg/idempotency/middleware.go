package idempotency

import (
	"context"
	"log/slog"
	"net/http"
)

const Header = "Idempotency-Key"

type Checker interface {
	Seen(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Middleware rejects a repeated Idempotency-Key with 409. Requests without
// the header pass through. scope namespaces keys, typically per caller.
// A key is released again when the handler does not answer 2xx, so a
// failed request can be retried with the same key.
func Middleware(log *slog.Logger, checker Checker, scope func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(Header)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			full := "idem:http:" + scope(r) + ":" + r.URL.Path + ":" + key
			seen, err := checker.Seen(r.Context(), full)
			if err != nil {
				// Fail open on store errors.
				log.Warn("idempotency check failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"error":"duplicate request"}`))
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				if rec.status >= 200 && rec.status < 300 {
					return
				}
				// A panic leaves status unset; the key is released as well.
				if err := checker.Release(context.WithoutCancel(r.Context()), full); err != nil {
					log.Warn("idempotency release failed", "key", full, "err", err)
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
