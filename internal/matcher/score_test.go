package matcher

import (
	"math"
	"testing"

	"github.com/example/helper-matching/internal/models"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func ptr(v float64) *float64 { return &v }

func baseCandidate() models.HelperCandidate {
	return models.HelperCandidate{
		HelperProfile: models.HelperProfile{
			ID:              "h1",
			ServicesOffered: []string{"shopping"},
			Languages:       []string{"en"},
			AverageRating:   ptr(4.0),
			TotalReviews:    25,
		},
		DistanceKm: ptr(5.0),
	}
}

func shoppingRequest() models.ServiceRequest {
	return models.ServiceRequest{ID: "r1", ServiceType: "shopping"}
}

func TestScoreBounds(t *testing.T) {
	cands := []models.HelperCandidate{
		{},
		baseCandidate(),
		{
			HelperProfile: models.HelperProfile{
				ServicesOffered: []string{"shopping", "medical", "transport", "companionship"},
				Skills:          []string{"first-aid", "driving"},
				Languages:       []string{"en", "de"},
				AverageRating:   ptr(5.0),
				TotalReviews:    1000,
				Availability:    map[string][]models.TimeRange{"monday": {{Start: "09:00", End: "17:00"}}},
			},
			DistanceKm: ptr(0.0),
		},
		{DistanceKm: ptr(5000.0)},
	}
	req := shoppingRequest()
	req.RequiredSkills = []string{"first-aid", "driving"}
	req.PreferredLanguage = "en"
	opts := models.MatchingOptions{UseAvailability: true}
	for i, c := range cands {
		s := Score(c, req, opts)
		if s < 0 || s > 100 {
			t.Fatalf("candidate %d: score out of bounds: %f", i, s)
		}
	}
}

func TestScoreMaxedOutCandidateClampsTo100(t *testing.T) {
	c := models.HelperCandidate{
		HelperProfile: models.HelperProfile{
			ServicesOffered: []string{"shopping"},
			Skills:          []string{"first-aid"},
			Languages:       []string{"en"},
			AverageRating:   ptr(5.0),
			TotalReviews:    500,
			Availability:    map[string][]models.TimeRange{"monday": {{Start: "08:00", End: "12:00"}}},
		},
		DistanceKm: ptr(0.0),
	}
	req := shoppingRequest()
	req.RequiredSkills = []string{"first-aid"}
	req.PreferredLanguage = "en"
	s := Score(c, req, models.MatchingOptions{UseAvailability: true})
	// 25 + 20 + 20 + 10 + 10 + 5 + 10 = 100 exactly at the caps.
	if s != 100 {
		t.Fatalf("expected 100, got %f", s)
	}
}

func TestServiceMatchBeatsPartialCredit(t *testing.T) {
	offering := baseCandidate()
	offering.ServicesOffered = []string{"shopping"}
	other := baseCandidate()
	other.ServicesOffered = []string{"medical"}

	req := shoppingRequest()
	opts := models.MatchingOptions{}
	// Full credit 20 vs partial credit min(10, 1*2) = 2.
	delta := Score(offering, req, opts) - Score(other, req, opts)
	if !almostEqual(delta, 18) {
		t.Fatalf("expected service-match delta of 18, got %f", delta)
	}
}

func TestHigherRatingScoresHigher(t *testing.T) {
	good := baseCandidate()
	good.AverageRating = ptr(4.8)
	mediocre := baseCandidate()
	mediocre.AverageRating = ptr(3.0)

	req := shoppingRequest()
	if Score(good, req, models.MatchingOptions{}) <= Score(mediocre, req, models.MatchingOptions{}) {
		t.Fatal("expected 4.8-rated helper to outscore 3.0-rated helper")
	}
}

func TestMissingRatingAndReviewsUseNeutralDefaults(t *testing.T) {
	c := models.HelperCandidate{}
	s := Score(c, shoppingRequest(), models.MatchingOptions{})
	// unknown distance 12.5 + neutral rating 10, everything else 0.
	if s != 22.5 {
		t.Fatalf("expected 22.5 from neutral defaults, got %f", s)
	}
}

func TestDistanceMonotonicity(t *testing.T) {
	req := shoppingRequest()
	opts := models.MatchingOptions{}
	prev := 101.0
	floorSeen := false
	for _, km := range []float64{0, 2, 5, 10, 15, 19.9, 25, 40} {
		c := baseCandidate()
		c.DistanceKm = ptr(km)
		s := Score(c, req, opts)
		if s > prev {
			t.Fatalf("score increased with distance at %f km: %f > %f", km, s, prev)
		}
		if floorSeen && s != prev {
			t.Fatalf("score changed past the distance floor at %f km", km)
		}
		if km >= 20 {
			floorSeen = true
		}
		prev = s
	}
}

func TestDistanceFactorRespectsMaxDistanceOption(t *testing.T) {
	c := baseCandidate()
	c.DistanceKm = ptr(10.0)
	req := shoppingRequest()

	wide := Score(c, req, models.MatchingOptions{MaxDistanceKm: ptr(40.0)})
	tight := Score(c, req, models.MatchingOptions{MaxDistanceKm: ptr(12.0)})
	if wide <= tight {
		t.Fatalf("larger max distance should soften the distance penalty: wide=%f tight=%f", wide, tight)
	}
}

func TestSkillsFactorNeedsBothSides(t *testing.T) {
	req := shoppingRequest()
	req.RequiredSkills = []string{"first-aid", "driving"}

	noSkills := baseCandidate()
	noSkills.Skills = nil
	withSkills := baseCandidate()
	withSkills.Skills = []string{"first-aid"}

	// One of two required skills -> 5 extra points.
	delta := Score(withSkills, req, models.MatchingOptions{}) - Score(noSkills, req, models.MatchingOptions{})
	if !almostEqual(delta, 5) {
		t.Fatalf("expected skills delta of 5, got %f", delta)
	}

	// No required skills on the request -> factor stays zero for everyone.
	reqNoSkills := shoppingRequest()
	if Score(withSkills, reqNoSkills, models.MatchingOptions{}) != Score(noSkills, reqNoSkills, models.MatchingOptions{}) {
		t.Fatal("skills factor applied without required skills on the request")
	}
}

func TestLanguageFactor(t *testing.T) {
	req := shoppingRequest()
	req.PreferredLanguage = "de"

	speaks := baseCandidate()
	speaks.Languages = []string{"de", "en"}
	doesNot := baseCandidate()
	doesNot.Languages = []string{"en"}

	delta := Score(speaks, req, models.MatchingOptions{}) - Score(doesNot, req, models.MatchingOptions{})
	if !almostEqual(delta, 5) {
		t.Fatalf("expected language delta of 5, got %f", delta)
	}
}

func TestAvailabilityFactorIsPresenceCheckBehindOption(t *testing.T) {
	withSchedule := baseCandidate()
	withSchedule.Availability = map[string][]models.TimeRange{"tuesday": {{Start: "10:00", End: "14:00"}}}
	without := baseCandidate()

	req := shoppingRequest()
	on := models.MatchingOptions{UseAvailability: true}
	off := models.MatchingOptions{}

	if d := Score(withSchedule, req, on) - Score(without, req, on); !almostEqual(d, 10) {
		t.Fatalf("expected availability delta of 10 when enabled, got %f", d)
	}
	if d := Score(withSchedule, req, off) - Score(without, req, off); !almostEqual(d, 0) {
		t.Fatalf("expected no availability delta when disabled, got %f", d)
	}
}

func TestReservedOptionsHaveNoEffect(t *testing.T) {
	c := baseCandidate()
	req := shoppingRequest()
	plain := Score(c, req, models.MatchingOptions{})
	reserved := Score(c, req, models.MatchingOptions{PrioritizeRating: true})
	if plain != reserved {
		t.Fatalf("PrioritizeRating changed the score: %f vs %f", plain, reserved)
	}
}
