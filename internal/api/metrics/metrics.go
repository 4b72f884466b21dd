// Package metrics defines the custom Prometheus metrics for the GameVault
// API. It is the single source of truth for metric names, labels, and help
// strings; the default registry picks everything up via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gamevault"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "bad_credentials", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts requests the authentication gate turned away.
// Label:
//   - reason: "missing_cookie", "decode_failed", or "expired"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected at the authentication gate.",
	},
	[]string{"reason"},
)

// AccountsCreatedTotal counts successful registrations.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts registered.",
	},
)

// AccountsDeletedTotal counts administrative account deletions.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts deleted.",
	},
)

// GamesCreatedTotal counts catalog entries added, by genre.
var GamesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_created_total",
		Help:      "Total number of catalog entries created, by genre.",
	},
	[]string{"genre"},
)
