package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/example/helper-matching/internal/models"
	"github.com/example/helper-matching/internal/pool"
)

type fakePool struct {
	helpers []models.HelperProfile
	err     error
}

func (f *fakePool) ActiveHelpers(ctx context.Context) ([]models.HelperProfile, error) {
	return f.helpers, f.err
}

type fixedGeocoder struct{ c models.Coord }

func (g fixedGeocoder) Geocode(ctx context.Context, address string) (models.Coord, error) {
	return g.c, nil
}

type failingGeocoder struct{}

func (failingGeocoder) Geocode(ctx context.Context, address string) (models.Coord, error) {
	return models.Coord{}, errors.New("geocoder down")
}

var origin = models.Coord{Lat: 52.52, Lon: 13.405}

// kmNorth returns a position roughly km kilometers due north of origin.
func kmNorth(km float64) *models.Coord {
	return &models.Coord{Lat: origin.Lat + km/111.19, Lon: origin.Lon}
}

func helper(id string, rating *float64, services []string, pos *models.Coord) models.HelperProfile {
	return models.HelperProfile{
		ID:              id,
		UserID:          "u-" + id,
		ServicesOffered: services,
		AverageRating:   rating,
		Position:        pos,
	}
}

func TestFindMatchesRanksByScoreDescending(t *testing.T) {
	p := &fakePool{helpers: []models.HelperProfile{
		helper("far-low", ptr(3.0), []string{"shopping"}, kmNorth(15)),
		helper("near-high", ptr(4.9), []string{"shopping"}, kmNorth(1)),
		helper("mid", ptr(4.0), []string{"shopping"}, kmNorth(8)),
	}}
	s := &Service{Pool: p, Geocoder: fixedGeocoder{origin}}

	got, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "shopping"}, models.MatchingOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	if got[0].ID != "near-high" {
		t.Fatalf("expected near-high first, got %s", got[0].ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].MatchScore > got[i-1].MatchScore {
			t.Fatalf("not sorted descending at %d: %f > %f", i, got[i].MatchScore, got[i-1].MatchScore)
		}
	}
	for _, c := range got {
		if c.DistanceKm == nil {
			t.Fatalf("candidate %s missing distance", c.ID)
		}
		if c.MatchScore < 0 || c.MatchScore > 100 {
			t.Fatalf("candidate %s score out of bounds: %f", c.ID, c.MatchScore)
		}
	}
}

func TestMaxDistanceExcludesFarHelpers(t *testing.T) {
	p := &fakePool{helpers: []models.HelperProfile{
		helper("near", ptr(4.0), []string{"shopping"}, kmNorth(2)),
		helper("far", ptr(5.0), []string{"shopping"}, kmNorth(12)),
		helper("unknown-pos", ptr(4.5), []string{"shopping"}, nil),
	}}
	s := &Service{Pool: p, Geocoder: fixedGeocoder{origin}}

	got, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "shopping"},
		models.MatchingOptions{MaxDistanceKm: ptr(5.0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range got {
		if c.ID == "far" {
			t.Fatal("helper at 12 km survived a 5 km max-distance filter")
		}
	}
	// A helper with no coordinates passes the distance filter untouched.
	if !containsID(got, "unknown-pos") {
		t.Fatal("helper without coordinates was filtered by max distance")
	}
}

func TestMinRatingFilter(t *testing.T) {
	p := &fakePool{helpers: []models.HelperProfile{
		helper("rated-high", ptr(4.7), []string{"shopping"}, nil),
		helper("rated-low", ptr(3.2), []string{"shopping"}, nil),
		helper("unrated", nil, []string{"shopping"}, nil),
	}}
	s := &Service{Pool: p}

	got, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "shopping"},
		models.MatchingOptions{MinRating: ptr(4.0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range got {
		if c.AverageRating != nil && *c.AverageRating < 4.0 {
			t.Fatalf("helper %s below min rating in output", c.ID)
		}
	}
	if !containsID(got, "unrated") {
		t.Fatal("unrated helper should pass the min-rating filter")
	}
	if containsID(got, "rated-low") {
		t.Fatal("low-rated helper should be filtered")
	}
}

func TestRequiredServicesFilter(t *testing.T) {
	p := &fakePool{helpers: []models.HelperProfile{
		helper("medic", ptr(4.0), []string{"medical"}, nil),
		helper("errands", ptr(4.8), []string{"shopping", "transport"}, nil),
		helper("blank", ptr(4.9), nil, nil),
	}}
	s := &Service{Pool: p}

	got, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "medical"},
		models.MatchingOptions{RequiredServices: []string{"medical"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "medic" {
		t.Fatalf("expected only medic to survive, got %v", ids(got))
	}
}

func TestEmptyPoolYieldsEmptyResult(t *testing.T) {
	s := &Service{Pool: &fakePool{}}
	got, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "shopping"}, models.MatchingOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestFallbackPoolKeepsMatchingAlive(t *testing.T) {
	p := &pool.Fallback{
		Primary:   &fakePool{err: errors.New("backend unreachable")},
		Secondary: pool.SamplePool{},
	}
	s := &Service{Pool: p, Geocoder: fixedGeocoder{origin}}

	got, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "shopping"}, models.MatchingOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected a non-empty result from the sample fallback set")
	}
	for i := 1; i < len(got); i++ {
		if got[i].MatchScore > got[i-1].MatchScore {
			t.Fatal("fallback result not sorted by score")
		}
	}

	// Same inputs, same ranking: the fallback set is static.
	again, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "shopping"}, models.MatchingOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != len(got) {
		t.Fatalf("fallback result size changed between calls: %d vs %d", len(got), len(again))
	}
	for i := range got {
		if got[i].ID != again[i].ID || got[i].MatchScore != again[i].MatchScore {
			t.Fatalf("fallback ranking not deterministic at %d", i)
		}
	}
}

func TestGeocoderFailureDegradesToUnknownDistance(t *testing.T) {
	p := &fakePool{helpers: []models.HelperProfile{
		helper("h1", ptr(4.0), []string{"shopping"}, kmNorth(3)),
	}}
	s := &Service{Pool: p, Geocoder: failingGeocoder{}}

	got, err := s.FindMatches(context.Background(), models.ServiceRequest{ServiceType: "shopping"}, models.MatchingOptions{})
	if err != nil {
		t.Fatalf("geocoder failure must not fail the match: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].DistanceKm != nil {
		t.Fatal("expected nil distance when the origin cannot be resolved")
	}
}

func containsID(cands []models.HelperCandidate, id string) bool {
	for _, c := range cands {
		if c.ID == id {
			return true
		}
	}
	return false
}

func ids(cands []models.HelperCandidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}
