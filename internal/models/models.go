package models

import "time"

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TimeRange is one availability window within a day, "HH:MM" local time.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// User carries the identity fields owned by the user record. Helper profiles
// reference a user instead of duplicating these.
type User struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// HelperProfile is a caregiver's capability record. Rating and position are
// pointers: a new helper has no rating yet, and not every helper shares a
// location. The matcher treats nil as "unknown", never as zero.
type HelperProfile struct {
	ID                string                 `json:"id"`
	UserID            string                 `json:"user_id"`
	User              User                   `json:"user"`
	Bio               string                 `json:"bio,omitempty"`
	ServicesOffered   []string               `json:"services_offered"`
	Skills            []string               `json:"skills,omitempty"`
	Languages         []string               `json:"languages,omitempty"`
	AverageRating     *float64               `json:"average_rating,omitempty"` // 0..5
	TotalReviews      int                    `json:"total_reviews"`
	Availability      map[string][]TimeRange `json:"availability,omitempty"` // weekday -> windows
	Position          *Coord                 `json:"position,omitempty"`
	TrainingCompleted bool                   `json:"training_completed"`
}

// HelperCandidate is the per-request view of a profile produced by one
// matching call: the profile plus a distance (nil when either side has no
// coordinates) and a 0..100 score. It is never persisted.
type HelperCandidate struct {
	HelperProfile
	DistanceKm *float64 `json:"distance_km,omitempty"`
	MatchScore float64  `json:"match_score"`
}

type ServiceRequest struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	ServiceType       string    `json:"service_type"` // shopping, medical, transport, companionship, ...
	Status            string    `json:"status"`
	Location          string    `json:"location"` // free-text address
	ScheduledTime     time.Time `json:"scheduled_time"`
	DurationMinutes   int       `json:"duration_minutes"`
	RequiredSkills    []string  `json:"required_skills,omitempty"`
	PreferredLanguage string    `json:"preferred_language,omitempty"`
}

// MatchingOptions is request-scoped search configuration. Nil filter fields
// mean "don't filter". PrioritizeRating and RequestDate are accepted for
// forward compatibility but have no effect on scoring yet.
type MatchingOptions struct {
	MaxDistanceKm    *float64   `json:"max_distance_km,omitempty"`
	MinRating        *float64   `json:"min_rating,omitempty"`
	PrioritizeRating bool       `json:"prioritize_rating,omitempty"`
	RequiredServices []string   `json:"required_services,omitempty"`
	UseAvailability  bool       `json:"use_availability,omitempty"`
	RequestDate      *time.Time `json:"request_date,omitempty"`
}

// MatchOffer is what gets dispatched to a helper when a customer picks them.
type MatchOffer struct {
	AssignmentID string  `json:"assignment_id"`
	RequestID    string  `json:"request_id"`
	ServiceType  string  `json:"service_type"`
	MatchScore   float64 `json:"match_score"`
}

// Assignment records a customer selecting a helper for a request.
type Assignment struct {
	ID            string
	RequestID     string
	HelperID      string
	CustomerID    string
	Status        string // offered, accepted, declined, completed, canceled
	MatchScore    float64
	PaymentHoldID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HelperLocationUpdate is the wire shape for live position events published
// on the ingest topic and folded into the Redis position set.
type HelperLocationUpdate struct {
	HelperID  string    `json:"helper_id"`
	Loc       Coord     `json:"loc"`
	Available bool      `json:"available"`
	Updated   time.Time `json:"updated"`
}
