package matcher

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/example/helper-matching/internal/geo"
	"github.com/example/helper-matching/internal/models"
	"github.com/example/helper-matching/internal/observability"
	"github.com/example/helper-matching/internal/pool"
)

// Service ranks active helpers against a service request. The pool fetch is
// the only suspension point; everything after it is pure arithmetic over the
// call's own inputs, so concurrent calls share no state.
type Service struct {
	Pool     pool.Provider
	Geocoder geo.Geocoder
	Logger   *slog.Logger
}

// FindMatches returns helpers eligible for the request, scored and sorted
// descending by score. An empty slice is a valid result meaning "no eligible
// helpers". With the pool wrapped in a fallback tier the only error that
// escapes is context cancellation.
func (s *Service) FindMatches(ctx context.Context, req models.ServiceRequest, opts models.MatchingOptions) ([]models.HelperCandidate, error) {
	start := time.Now()
	observability.MatchRequestsTotal.Inc()
	defer func() {
		observability.MatchLatency.Observe(time.Since(start).Seconds())
	}()

	helpers, err := s.Pool.ActiveHelpers(ctx)
	if err != nil {
		return nil, err
	}

	origin, originKnown := s.resolveOrigin(ctx, req.Location)

	cands := make([]models.HelperCandidate, 0, len(helpers))
	for _, h := range helpers {
		c := models.HelperCandidate{HelperProfile: h}
		if originKnown && h.Position != nil {
			d := geo.HaversineKm(origin.Lat, origin.Lon, h.Position.Lat, h.Position.Lon)
			c.DistanceKm = &d
		}
		cands = append(cands, c)
	}

	cands = filterMaxDistance(cands, opts.MaxDistanceKm)
	cands = filterMinRating(cands, opts.MinRating)
	cands = filterRequiredServices(cands, opts.RequiredServices)

	for i := range cands {
		cands[i].MatchScore = Score(cands[i], req, opts)
	}

	// Stable sort: equally-scored candidates keep their pool order, no
	// secondary tie-break key.
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].MatchScore > cands[j].MatchScore })

	observability.CandidatesReturned.Observe(float64(len(cands)))
	if len(cands) > 0 {
		observability.TopMatchScore.Observe(cands[0].MatchScore)
	}
	if s.Logger != nil {
		s.Logger.Debug("matching complete",
			"request_id", req.ID,
			"service_type", req.ServiceType,
			"pool_size", len(helpers),
			"candidates", len(cands),
		)
	}
	return cands, nil
}

// resolveOrigin turns the request's free-text location into coordinates via
// the configured geocoder chain. Failure is fail-soft: every candidate keeps
// a nil distance and the distance factor scores its neutral midpoint.
func (s *Service) resolveOrigin(ctx context.Context, location string) (models.Coord, bool) {
	if s.Geocoder == nil {
		return models.Coord{}, false
	}
	coord, err := s.Geocoder.Geocode(ctx, location)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("geocode failed, skipping distances", "location", location, "error", err)
		}
		return models.Coord{}, false
	}
	return coord, true
}

// filterMaxDistance drops candidates known to be farther than the limit.
// Candidates with no distance pass through unfiltered.
func filterMaxDistance(cands []models.HelperCandidate, maxKm *float64) []models.HelperCandidate {
	if maxKm == nil {
		return cands
	}
	out := cands[:0]
	for _, c := range cands {
		if c.DistanceKm != nil && *c.DistanceKm > *maxKm {
			continue
		}
		out = append(out, c)
	}
	return out
}

// filterMinRating drops candidates rated below the floor. Unrated candidates
// pass through unfiltered.
func filterMinRating(cands []models.HelperCandidate, min *float64) []models.HelperCandidate {
	if min == nil {
		return cands
	}
	out := cands[:0]
	for _, c := range cands {
		if c.AverageRating != nil && *c.AverageRating < *min {
			continue
		}
		out = append(out, c)
	}
	return out
}

// filterRequiredServices keeps candidates offering at least one of the
// required services. A candidate with no offered-services list is eliminated
// here, unlike the two filters above.
func filterRequiredServices(cands []models.HelperCandidate, required []string) []models.HelperCandidate {
	if len(required) == 0 {
		return cands
	}
	out := cands[:0]
	for _, c := range cands {
		offersAny := false
		for _, svc := range required {
			if containsFold(c.ServicesOffered, svc) {
				offersAny = true
				break
			}
		}
		if offersAny {
			out = append(out, c)
		}
	}
	return out
}
