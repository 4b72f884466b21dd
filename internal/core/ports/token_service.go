package ports

import (
	"time"

	"github.com/gamevault/catalog-api/internal/core/domain"
)

// TokenService encodes and decodes signed claim sets. Decode verifies the
// signature and structure only; the validity window is checked separately by
// the caller via domain.Claims.ValidAt.
type TokenService interface {
	Issue(subject string, roles []string, now time.Time) (string, error)
	Decode(token string) (*domain.Claims, error)
}
