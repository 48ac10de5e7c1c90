package pool

import (
	"context"

	"github.com/example/helper-matching/internal/models"
)

// SamplePool serves a fixed set of sample helpers. It backs the fallback
// tier so matching keeps working in disconnected and demo setups. This is
// static sample data, not a cache of real state.
type SamplePool struct{}

func (SamplePool) ActiveHelpers(ctx context.Context) ([]models.HelperProfile, error) {
	return sampleHelpers(), nil
}

func rating(v float64) *float64 { return &v }

func sampleHelpers() []models.HelperProfile {
	weekdays := map[string][]models.TimeRange{
		"monday":    {{Start: "09:00", End: "17:00"}},
		"wednesday": {{Start: "09:00", End: "17:00"}},
		"friday":    {{Start: "09:00", End: "13:00"}},
	}
	return []models.HelperProfile{
		{
			ID:     "sample-helper-1",
			UserID: "sample-user-1",
			User:   models.User{ID: "sample-user-1", FullName: "Marta Keller"},
			Bio:    "Retired nurse, happy to accompany medical visits.",
			ServicesOffered: []string{"medical", "companionship"},
			Skills:          []string{"first-aid", "medication-management"},
			Languages:       []string{"de", "en"},
			AverageRating:   rating(4.8),
			TotalReviews:    52,
			Availability:    weekdays,
			Position:        &models.Coord{Lat: 52.5200, Lon: 13.4050},
			TrainingCompleted: true,
		},
		{
			ID:     "sample-helper-2",
			UserID: "sample-user-2",
			User:   models.User{ID: "sample-user-2", FullName: "Jonas Weber"},
			Bio:    "Student with a car, covers errands and rides.",
			ServicesOffered: []string{"shopping", "transport"},
			Skills:          []string{"driving", "heavy-lifting"},
			Languages:       []string{"de"},
			AverageRating:   rating(4.5),
			TotalReviews:    18,
			Availability: map[string][]models.TimeRange{
				"saturday": {{Start: "08:00", End: "18:00"}},
				"sunday":   {{Start: "10:00", End: "16:00"}},
			},
			Position:          &models.Coord{Lat: 52.4800, Lon: 13.4400},
			TrainingCompleted: true,
		},
		{
			ID:     "sample-helper-3",
			UserID: "sample-user-3",
			User:   models.User{ID: "sample-user-3", FullName: "Aylin Demir"},
			Bio:    "Companionship visits, board games and walks.",
			ServicesOffered: []string{"companionship"},
			Languages:       []string{"tr", "de", "en"},
			AverageRating:   rating(4.9),
			TotalReviews:    74,
			Availability:    weekdays,
			Position:        &models.Coord{Lat: 52.5100, Lon: 13.3900},
			TrainingCompleted: true,
		},
		{
			ID:     "sample-helper-4",
			UserID: "sample-user-4",
			User:   models.User{ID: "sample-user-4", FullName: "Piotr Nowak"},
			Bio:    "Weekly grocery runs, receipts photographed.",
			ServicesOffered: []string{"shopping"},
			Skills:          []string{"budget-tracking"},
			Languages:       []string{"pl", "de"},
			AverageRating:   rating(4.2),
			TotalReviews:    9,
			Position:        &models.Coord{Lat: 52.5500, Lon: 13.3600},
		},
		{
			ID:     "sample-helper-5",
			UserID: "sample-user-5",
			User:   models.User{ID: "sample-user-5", FullName: "Grace Obi"},
			Bio:    "New on the platform, transport and errands.",
			ServicesOffered: []string{"transport", "shopping", "companionship"},
			Languages:       []string{"en"},
			TotalReviews:    0,
			Position:        &models.Coord{Lat: 52.4900, Lon: 13.5200},
		},
	}
}
