package storage

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/example/helper-matching/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing handle, used by tests.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) SaveRequest(r *models.ServiceRequest) error {
	_, err := p.db.Exec(`INSERT INTO service_requests(id, customer_id, service_type, status, location, scheduled_time, duration_minutes, required_skills, preferred_language)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`,
		r.ID, r.CustomerID, r.ServiceType, r.Status, r.Location, r.ScheduledTime, r.DurationMinutes, pq.Array(r.RequiredSkills), r.PreferredLanguage)
	return err
}

func (p *PostgresStore) SaveAssignment(a *models.Assignment) error {
	_, err := p.db.Exec(`INSERT INTO assignments(id, request_id, helper_id, customer_id, status, match_score, payment_hold_id, created_at, updated_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.RequestID, a.HelperID, a.CustomerID, a.Status, a.MatchScore, a.PaymentHoldID, a.CreatedAt, a.UpdatedAt)
	return err
}

func (p *PostgresStore) UpdateAssignment(a *models.Assignment) error {
	_, err := p.db.Exec(`UPDATE assignments SET status=$1, payment_hold_id=$2, updated_at=$3 WHERE id=$4`,
		a.Status, a.PaymentHoldID, time.Now(), a.ID)
	return err
}
