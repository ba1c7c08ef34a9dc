package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Interaction actions recorded by RecordInteraction.
const (
	ActionView      = "view"
	ActionDownload  = "download"
	ActionLike      = "like"
	ActionUnlike    = "unlike"
	ActionComment   = "comment"
	ActionUncomment = "uncomment"
)

var (
	// InteractionsTotal counts counter-changing interactions on models by action.
	InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modelhub_interactions_total",
		Help: "Total number of model interactions by action",
	}, []string{"action"})

	// TokensRevokedTotal counts bearer tokens written to the denylist.
	TokensRevokedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modelhub_tokens_revoked_total",
		Help: "Total number of access tokens revoked at logout",
	})
)

// RecordInteraction increments the interaction counter for action.
func RecordInteraction(action string) {
	InteractionsTotal.WithLabelValues(action).Inc()
}
