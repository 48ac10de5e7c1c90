package pool

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/example/helper-matching/internal/models"
)

// PostgresPool reads active helper profiles, joined with their owning user
// record, from Postgres. Ordering by rating is advisory only: the matcher
// re-sorts by score regardless.
type PostgresPool struct {
	db *sql.DB
}

func NewPostgresPool(dsn string) (*PostgresPool, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresPool{db: db}, nil
}

// NewPostgresPoolFromDB wraps an existing handle, used by tests.
func NewPostgresPoolFromDB(db *sql.DB) *PostgresPool {
	return &PostgresPool{db: db}
}

const activeHelpersQuery = `SELECT h.id, h.user_id, u.full_name, u.avatar_url, u.phone, h.bio,
       h.services_offered, h.skills, h.languages,
       h.average_rating, h.total_reviews, h.availability,
       h.lat, h.lon, h.training_completed
FROM helper_profiles h
JOIN users u ON u.id = h.user_id
WHERE h.active = true
ORDER BY h.average_rating DESC NULLS LAST`

func (p *PostgresPool) ActiveHelpers(ctx context.Context) ([]models.HelperProfile, error) {
	rows, err := p.db.QueryContext(ctx, activeHelpersQuery)
	if err != nil {
		return nil, fmt.Errorf("query active helpers: %w", err)
	}
	defer rows.Close()

	var out []models.HelperProfile
	for rows.Next() {
		var (
			h            models.HelperProfile
			avatar       sql.NullString
			phone        sql.NullString
			bio          sql.NullString
			rating       sql.NullFloat64
			availability []byte
			lat, lon     sql.NullFloat64
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.User.FullName, &avatar, &phone, &bio,
			pq.Array(&h.ServicesOffered), pq.Array(&h.Skills), pq.Array(&h.Languages),
			&rating, &h.TotalReviews, &availability,
			&lat, &lon, &h.TrainingCompleted); err != nil {
			return nil, fmt.Errorf("scan helper: %w", err)
		}
		h.User.ID = h.UserID
		h.User.AvatarURL = avatar.String
		h.User.Phone = phone.String
		h.Bio = bio.String
		if rating.Valid {
			r := rating.Float64
			h.AverageRating = &r
		}
		if len(availability) > 0 {
			// Availability is stored as JSONB; a malformed blob just means
			// "no schedule" to the matcher, so decode errors are not fatal.
			_ = json.Unmarshal(availability, &h.Availability)
		}
		if lat.Valid && lon.Valid {
			h.Position = &models.Coord{Lat: lat.Float64, Lon: lon.Float64}
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate helpers: %w", err)
	}
	return out, nil
}

func (p *PostgresPool) Close() error { return p.db.Close() }
