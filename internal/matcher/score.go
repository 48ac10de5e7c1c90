package matcher

import (
	"math"
	"strings"

	"github.com/example/helper-matching/internal/models"
)

// Factor caps. Proximity and trust signals (distance, rating, reviews)
// deliberately outweigh soft-match attributes (language, availability): a
// nearby, well-reviewed helper is usually the right match even with imperfect
// skill overlap. These are heuristic constants, not values fitted to data.
const (
	distanceCap     = 25.0
	ratingCap       = 20.0
	serviceCap      = 20.0
	experienceCap   = 10.0
	skillsCap       = 10.0
	languageCap     = 5.0
	availabilityCap = 10.0

	// partialServiceCap bounds the credit a helper gets for a broad service
	// catalog that doesn't include the requested type.
	partialServiceCap = 10.0

	// defaultMaxDistanceKm anchors the distance factor when the caller sets
	// no MaxDistanceKm option.
	defaultMaxDistanceKm = 20.0
)

// Score rates one candidate against a request, 0..100 rounded to one decimal.
// It never errors: every missing profile field degrades to a neutral or zero
// contribution, so a half-filled profile is still rankable.
func Score(c models.HelperCandidate, req models.ServiceRequest, opts models.MatchingOptions) float64 {
	s := distanceFactor(c.DistanceKm, opts.MaxDistanceKm)
	s += ratingFactor(c.AverageRating)
	s += serviceFactor(c.ServicesOffered, req.ServiceType)
	s += experienceFactor(c.TotalReviews)
	s += skillsFactor(c.Skills, req.RequiredSkills)
	s += languageFactor(c.Languages, req.PreferredLanguage)
	s += availabilityFactor(c.Availability, opts.UseAvailability)
	if s > 100 {
		s = 100
	}
	return math.Round(s*10) / 10
}

// distanceFactor decays linearly from the cap at 0 km to 0 at maxDistance.
// Unknown distance scores the midpoint so incomplete data isn't penalized.
func distanceFactor(distanceKm *float64, maxDistanceKm *float64) float64 {
	if distanceKm == nil {
		return distanceCap / 2
	}
	maxKm := defaultMaxDistanceKm
	if maxDistanceKm != nil && *maxDistanceKm > 0 {
		maxKm = *maxDistanceKm
	}
	v := distanceCap - (*distanceKm/maxKm)*distanceCap
	if v < 0 {
		return 0
	}
	return v
}

func ratingFactor(avg *float64) float64 {
	if avg == nil {
		return ratingCap / 2
	}
	return (*avg / 5) * ratingCap
}

func serviceFactor(offered []string, serviceType string) float64 {
	if containsFold(offered, serviceType) {
		return serviceCap
	}
	return math.Min(partialServiceCap, float64(len(offered))*2)
}

func experienceFactor(totalReviews int) float64 {
	return math.Min(experienceCap, float64(totalReviews)/5)
}

// skillsFactor only applies when both sides declare skills; otherwise there
// is no overlap to compute and the factor stays at zero.
func skillsFactor(skills, required []string) float64 {
	if len(required) == 0 || len(skills) == 0 {
		return 0
	}
	matching := 0
	for _, want := range required {
		if containsFold(skills, want) {
			matching++
		}
	}
	return math.Min(skillsCap, float64(matching)/float64(len(required))*skillsCap)
}

func languageFactor(languages []string, preferred string) float64 {
	if preferred != "" && containsFold(languages, preferred) {
		return languageCap
	}
	return 0
}

// availabilityFactor is a presence check only: having any schedule at all
// earns the cap when the caller opted in. Matching the requested time slot
// against the schedule is not implemented.
func availabilityFactor(availability map[string][]models.TimeRange, useAvailability bool) float64 {
	if useAvailability && len(availability) > 0 {
		return availabilityCap
	}
	return 0
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}
