package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/luxuryconcept/storefront-backend/api/responses"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
	pkgredis "github.com/luxuryconcept/storefront-backend/pkg/redis"
)

const (
	idempotencyHeader      = "Idempotency-Key"
	criticalIdempotencyTTL = 7 * 24 * time.Hour

	// Checkout payloads are a customer block plus a cart; anything larger is not a real order.
	maxIdempotentBody = 1 << 20
)

// idempotentRoutes maps "METHOD pattern" to how long a checkout outcome is replayable.
var idempotentRoutes = map[string]time.Duration{
	http.MethodPost + " /api/orders": criticalIdempotencyTTL,
}

// storedOutcome is the redis value kept per key.
type storedOutcome struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
	Fingerprint string `json:"fingerprint"`
}

// Idempotency lets a client retry checkout with the same Idempotency-Key and
// receive the first outcome instead of placing a second order. Requests
// without the header, routes outside idempotentRoutes, and every request when
// store is nil go straight to next. 5xx outcomes are never stored.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			ttl, covered := routeTTL(r.Method, routePattern(r))
			if store == nil || !covered || clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBody))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			fingerprint := fingerprintOf(body)
			key := store.IdempotencyKey(r.Method+"|"+r.URL.Path, clientKey)

			previous, err := lookupOutcome(ctx, store, key)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
				return
			}
			if previous != nil {
				if previous.Fingerprint != fingerprint {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
					return
				}
				previous.replay(w)
				return
			}

			capture := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(capture, r)

			outcome := storedOutcome{
				Status:      capture.statusOrOK(),
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.body.Bytes(),
				Fingerprint: fingerprint,
			}
			if outcome.Status >= http.StatusInternalServerError {
				return
			}
			if err := saveOutcome(ctx, store, key, outcome, ttl); err != nil && logg != nil {
				logg.Error(logg.WithField(ctx, "idempotency_key", clientKey), "idempotency.persist_failed", err)
			}
		})
	}
}

// lookupOutcome returns nil, nil when nothing is stored under key.
func lookupOutcome(ctx context.Context, store pkgredis.IdempotencyStore, key string) (*storedOutcome, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, redis.Nil) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var outcome storedOutcome
	if err := json.Unmarshal([]byte(raw), &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// saveOutcome keeps the first stored outcome when two retries race.
func saveOutcome(ctx context.Context, store pkgredis.IdempotencyStore, key string, outcome storedOutcome, ttl time.Duration) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	_, err = store.SetNX(ctx, key, string(payload), ttl)
	return err
}

func (o *storedOutcome) replay(w http.ResponseWriter) {
	if o.ContentType != "" {
		w.Header().Set("Content-Type", o.ContentType)
	}
	w.WriteHeader(o.Status)
	_, _ = w.Write(o.Body)
}

func fingerprintOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func routeTTL(method, pattern string) (time.Duration, bool) {
	ttl, ok := idempotentRoutes[method+" "+pattern]
	return ttl, ok
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (c *responseCapture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *responseCapture) statusOrOK() int {
	if c.status == 0 {
		return http.StatusOK
	}
	return c.status
}
