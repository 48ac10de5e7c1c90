package pool

import (
	"context"
	"log/slog"

	"github.com/example/helper-matching/internal/models"
	"github.com/example/helper-matching/internal/observability"
)

// Provider supplies the candidate set of active helpers for one matching call.
type Provider interface {
	ActiveHelpers(ctx context.Context) ([]models.HelperProfile, error)
}

// Fallback is a two-tier provider: it serves from Primary and substitutes
// Secondary whenever Primary errors or comes back empty. The matching flow
// stays exercisable with no backend at all, which is why Secondary is
// normally the static sample set rather than a cache.
type Fallback struct {
	Primary   Provider
	Secondary Provider
	Logger    *slog.Logger
}

func (f *Fallback) ActiveHelpers(ctx context.Context) ([]models.HelperProfile, error) {
	if f.Primary != nil {
		helpers, err := f.Primary.ActiveHelpers(ctx)
		if err == nil && len(helpers) > 0 {
			return helpers, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		observability.PoolFallbacksTotal.Inc()
		if f.Logger != nil {
			f.Logger.Warn("helper pool primary unavailable, using fallback", "error", err, "primary_count", len(helpers))
		}
	}
	return f.Secondary.ActiveHelpers(ctx)
}
