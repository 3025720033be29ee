package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"github.com/xdoubleu/essentia/v2/pkg/middleware"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"
	"golang.org/x/time/rate"

	"todo-api/app/config"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

const (
	rateLimitCleanup     = time.Minute
	rateLimitForgetAfter = 3 * time.Minute
)

type requestIDKey struct{}

// RequestID returns the id stored on ctx by Tag, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Chain builds the middleware stack in front of the router. Sentry is only
// installed when a DSN is configured, rate limiting only when enabled.
func Chain(logger *slog.Logger, cfg config.Config) (alice.Chain, error) {
	handlers := []alice.Constructor{
		middleware.Logger(logger),
		middleware.Recover(logger),
	}

	if cfg.SentryDsn != "" {
		sentryMiddleware, err := sentrytools.Middleware(
			cfg.Env,
			sentry.ClientOptions{
				Dsn:              cfg.SentryDsn,
				Environment:      cfg.Env,
				Release:          cfg.Release,
				SampleRate:       cfg.SampleRate,
				TracesSampleRate: cfg.SampleRate,
			},
		)
		if err != nil {
			return alice.Chain{}, err
		}
		handlers = append(handlers, sentryMiddleware)
	}

	handlers = append(handlers, Tag, CORS(cfg.AllowedOrigins))

	if cfg.Throttle {
		handlers = append(handlers, middleware.RateLimit(
			rate.Limit(cfg.RateLimit),
			cfg.RateBurst,
			rateLimitCleanup,
			rateLimitForgetAfter,
		))
	}

	return alice.New(handlers...), nil
}

// Tag assigns every request an id and echoes it in the response headers.
// When a Sentry hub is on the context the id is also set as a tag on its
// scope.
func Tag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.Scope().SetTag("request_id", id)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// CORS allows the configured origins to call the API from a browser.
func CORS(allowedOrigins []string) alice.Constructor {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{"Location", RequestIDHeader},
	})
	return c.Handler
}
