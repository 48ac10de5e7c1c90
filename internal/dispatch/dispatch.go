package dispatch

import (
	"log/slog"

	"github.com/example/helper-matching/internal/models"
)

// Dispatcher notifies a helper that a customer picked them. Dispatch is
// best-effort everywhere it is called: a failed notification never fails the
// assignment that triggered it.
type Dispatcher interface {
	Offer(helperID string, offer models.MatchOffer) error
}

// LogDispatcher only logs offers. Used when no push channel is configured
// and in local runs.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d *LogDispatcher) Offer(helperID string, offer models.MatchOffer) error {
	if d.Logger != nil {
		d.Logger.Info("offer dispatched",
			"helper_id", helperID,
			"assignment_id", offer.AssignmentID,
			"request_id", offer.RequestID,
			"match_score", offer.MatchScore,
		)
	}
	return nil
}
