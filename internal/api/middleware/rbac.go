package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// Rule maps an inbound (method, path) onto a required role.
//
// Method "*" matches any method. A Pattern ending in '*' is a prefix match;
// anything else is exact. An empty Role marks the rule public.
type Rule struct {
	Method  string
	Pattern string
	Role    string
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "*" && r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(r.Pattern, "*"))
	}
	return path == r.Pattern
}

// Policy is an ordered rule list evaluated first-match-wins: list exact
// paths before wildcards and method-specific rules before blanket rules on
// the same pattern. Requests matching no rule are denied.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Authorize decides whether identity may perform method on path. A nil
// identity is only legal for public rules.
func (p *Policy) Authorize(identity *domain.Identity, method, path string) error {
	rule := p.match(method, path)
	if rule == nil {
		return domain.ErrForbidden
	}
	if rule.Role == "" {
		return nil
	}
	if identity == nil || !identity.Grants(rule.Role) {
		return domain.ErrForbidden
	}
	return nil
}

func (p *Policy) match(method, path string) *Rule {
	for i := range p.rules {
		if p.rules[i].matches(method, path) {
			return &p.rules[i]
		}
	}
	return nil
}

// Middleware enforces the policy after the authentication gate has run.
// Reaching a protected rule without an identity means the gate was bypassed
// or misordered; that is an invariant violation, not a client error.
func (p *Policy) Middleware(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			path := c.Request().URL.Path

			rule := p.match(method, path)
			if rule == nil {
				return domain.ErrForbidden
			}
			if rule.Role == "" {
				return next(c)
			}

			identity, ok := CurrentIdentity(c)
			if !ok {
				log.Error().Str("method", method).Str("path", path).
					Msg("protected route reached without identity")
				return echo.NewHTTPError(http.StatusInternalServerError, "authorization invariant violated")
			}

			if !identity.Grants(rule.Role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
