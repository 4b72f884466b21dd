package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/catalog-api/internal/api/metrics"
	"github.com/gamevault/catalog-api/internal/core/domain"
	"github.com/gamevault/catalog-api/internal/core/ports"
)

// identityKey is the echo context key the gate stores the Identity under.
// Request-scoped by construction: echo contexts are per-request, so
// concurrent requests can never observe each other's identity.
const identityKey = "auth.identity"

// AuthConfig configures the authentication gate.
type AuthConfig struct {
	Tokens     ports.TokenService
	CookieName string
	// Skipper reports whether a request bypasses the gate entirely
	// (documentation paths, the login endpoint). Nil skips nothing.
	Skipper func(c echo.Context) bool
	Logger  zerolog.Logger
	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

// Auth is the single authentication boundary: it extracts the token from the
// configured cookie, validates it, and establishes the request-scoped
// identity, or rejects the request before any downstream handler runs.
//
// A missing cookie and a bad token are rejected identically; only the log
// line and metric label tell them apart.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			cookie, err := c.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_cookie").Inc()
				cfg.Logger.Debug().Str("path", c.Request().URL.Path).Msg("auth cookie missing")
				return domain.ErrInvalidToken
			}

			claims, err := cfg.Tokens.Decode(cookie.Value)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("decode_failed").Inc()
				cfg.Logger.Debug().Str("path", c.Request().URL.Path).Msg("auth token failed to decode")
				return domain.ErrInvalidToken
			}

			if !claims.ValidAt(now().UTC()) {
				metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
				cfg.Logger.Debug().Str("subject", claims.Subject).Msg("auth token outside validity window")
				return domain.ErrInvalidToken
			}

			SetIdentity(c, claims.Identity())
			return next(c)
		}
	}
}

// SetIdentity attaches the authenticated principal to the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the identity the gate established for this request.
func CurrentIdentity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
