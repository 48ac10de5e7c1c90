package geo

import (
	"math"
	"testing"
)

func TestHaversineIdentity(t *testing.T) {
	if d := HaversineKm(52.52, 13.405, 52.52, 13.405); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{52.52, 13.405, 48.8566, 2.3522},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 0, 10, 10},
	}
	for _, p := range pairs {
		ab := HaversineKm(p[0], p[1], p[2], p[3])
		ba := HaversineKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("asymmetric: %f vs %f", ab, ba)
		}
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Berlin -> Paris, roughly 878 km.
	d := HaversineKm(52.52, 13.405, 48.8566, 2.3522)
	if d < 870 || d > 890 {
		t.Fatalf("Berlin-Paris distance out of range: %f", d)
	}
}

func TestHaversineAntipodal(t *testing.T) {
	// Antipodal points sit half the circumference apart.
	d := HaversineKm(0, 0, 0, 180)
	if math.Abs(d-20015) > 5 {
		t.Fatalf("antipodal distance out of range: %f", d)
	}
}
