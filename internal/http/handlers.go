package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/helper-matching/internal/config"
	"github.com/example/helper-matching/internal/dispatch"
	"github.com/example/helper-matching/internal/geo"
	"github.com/example/helper-matching/internal/ingest"
	"github.com/example/helper-matching/internal/matcher"
	"github.com/example/helper-matching/internal/models"
	"github.com/example/helper-matching/internal/observability"
	"github.com/example/helper-matching/internal/payments"
	"github.com/example/helper-matching/internal/pool"
	"github.com/example/helper-matching/internal/storage"
)

type Server struct {
	cfg       config.ServerConfig
	logger    *slog.Logger
	Matcher   *matcher.Service
	Store     storage.AssignmentStore
	Positions *pool.RedisPositions
	Kafka     *ingest.KafkaProducer
	Dispatch  dispatch.Dispatcher
	WSReg     *dispatch.WSRegistry
	Payments  *payments.StripeClient
	mux       *mux.Router
}

// NewServer wires the full service from configuration. Every external
// collaborator is optional: without Postgres the sample pool serves matches,
// without Redis positions come from stored profiles, without Kafka location
// reports only update Redis, without Stripe assignments skip the deposit.
func NewServer(cfg config.ServerConfig, logger *slog.Logger) *Server {
	var primary pool.Provider
	if cfg.PGDSN != "" {
		if pg, err := pool.NewPostgresPool(cfg.PGDSN); err == nil {
			primary = pg
		} else {
			logger.Warn("postgres pool unavailable", "error", err)
		}
	}
	var positions *pool.RedisPositions
	if cfg.RedisAddr != "" {
		base := primary
		if base == nil {
			// No Postgres: overlay live positions onto the sample set so the
			// demo wiring still reflects helper movement.
			base = pool.SamplePool{}
		}
		positions = pool.NewRedisPositions(base, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisGeoKey)
		primary = positions
	}
	candidates := &pool.Fallback{Primary: primary, Secondary: pool.SamplePool{}, Logger: logger}

	ref := models.Coord{Lat: cfg.ReferenceLat, Lon: cfg.ReferenceLon}
	var geocoder geo.Geocoder = geo.StaticGeocoder{Ref: ref}
	if cfg.GeocoderEndpoint != "" {
		cached := geo.NewCachedGeocoder(geo.NewHTTPGeocoder(cfg.GeocoderEndpoint), 10*time.Minute)
		geocoder = geo.Chain{cached, geo.StaticGeocoder{Ref: ref}}
	}

	var store storage.AssignmentStore
	if cfg.PGDSN != "" {
		if ps, err := storage.NewPostgresStore(cfg.PGDSN); err == nil {
			store = ps
		}
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}

	var kp *ingest.KafkaProducer
	if len(cfg.KafkaBrokers) > 0 {
		kp = ingest.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	wsreg := dispatch.NewWSRegistry()
	var disp dispatch.Dispatcher = dispatch.NewPushDispatcher(cfg.PushEndpoint, cfg.PushKey, wsreg)
	if cfg.PushEndpoint == "" {
		disp = &fallthroughDispatcher{ws: wsreg, log: &dispatch.LogDispatcher{Logger: logger}}
	}

	var pay *payments.StripeClient
	if cfg.StripeAPIKey != "" {
		pay = payments.NewStripeClient(cfg.StripeAPIKey)
	}

	m := &matcher.Service{Pool: candidates, Geocoder: geocoder, Logger: logger}
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		Matcher:   m,
		Store:     store,
		Positions: positions,
		Kafka:     kp,
		Dispatch:  disp,
		WSReg:     wsreg,
		Payments:  pay,
		mux:       mux.NewRouter(),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

// fallthroughDispatcher tries the live socket and logs otherwise.
type fallthroughDispatcher struct {
	ws  *dispatch.WSRegistry
	log *dispatch.LogDispatcher
}

func (d *fallthroughDispatcher) Offer(helperID string, offer models.MatchOffer) error {
	if err := d.ws.Offer(helperID, offer); err == nil {
		return nil
	}
	return d.log.Offer(helperID, offer)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/requests/match", s.handleFindMatches).Methods("POST")
	s.mux.HandleFunc("/api/v1/assignments", s.handleCreateAssignment).Methods("POST")
	s.mux.HandleFunc("/internal/helper/locations", s.handleHelperLocation).Methods("POST")
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/ws/{helper_id}", s.handleWS)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

type matchRequestBody struct {
	Request models.ServiceRequest  `json:"request"`
	Options models.MatchingOptions `json:"options"`
}

func (s *Server) handleFindMatches(w http.ResponseWriter, r *http.Request) {
	var body matchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Request.ServiceType == "" {
		http.Error(w, "service_type is required", http.StatusBadRequest)
		return
	}
	if body.Request.ID == "" {
		body.Request.ID = uuid.NewString()
	}
	// Persist best-effort; a matching call must not fail on storage trouble.
	if err := s.Store.SaveRequest(&body.Request); err != nil {
		s.logger.Warn("save request failed", "request_id", body.Request.ID, "error", err)
	}

	cands, err := s.Matcher.FindMatches(r.Context(), body.Request, body.Options)
	if err != nil {
		// Only context cancellation reaches here; the pool fallback absorbs
		// data-source failures.
		http.Error(w, "request canceled", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"request_id": body.Request.ID,
		"matches":    cands,
	})
}

type assignmentRequestBody struct {
	RequestID       string  `json:"request_id"`
	CustomerID      string  `json:"customer_id"`
	HelperID        string  `json:"helper_id"`
	ServiceType     string  `json:"service_type"`
	MatchScore      float64 `json:"match_score"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var body assignmentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.RequestID == "" || body.HelperID == "" {
		http.Error(w, "request_id and helper_id are required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	a := &models.Assignment{
		ID:         uuid.NewString(),
		RequestID:  body.RequestID,
		HelperID:   body.HelperID,
		CustomerID: body.CustomerID,
		Status:     "offered",
		MatchScore: body.MatchScore,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if s.Payments != nil && s.cfg.DepositCentsPerHour > 0 && body.DurationMinutes > 0 {
		amount := s.cfg.DepositCentsPerHour * int64(body.DurationMinutes) / 60
		if holdID, err := s.Payments.Hold(r.Context(), amount, s.cfg.DepositCurrency, body.CustomerID); err == nil {
			a.PaymentHoldID = holdID
		} else {
			s.logger.Warn("deposit hold failed", "assignment_id", a.ID, "error", err)
		}
	}

	if err := s.Store.SaveAssignment(a); err != nil {
		s.logger.Error("save assignment failed", "assignment_id", a.ID, "error", err)
		http.Error(w, "could not save assignment", http.StatusInternalServerError)
		return
	}
	observability.AssignmentsTotal.Inc()

	offer := models.MatchOffer{
		AssignmentID: a.ID,
		RequestID:    a.RequestID,
		ServiceType:  body.ServiceType,
		MatchScore:   a.MatchScore,
	}
	if err := s.Dispatch.Offer(a.HelperID, offer); err != nil {
		s.logger.Warn("offer dispatch failed", "assignment_id", a.ID, "helper_id", a.HelperID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"assignment_id": a.ID, "status": a.Status})
}

func (s *Server) handleHelperLocation(w http.ResponseWriter, r *http.Request) {
	var u models.HelperLocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if u.HelperID == "" {
		http.Error(w, "helper_id is required", http.StatusBadRequest)
		return
	}
	u.Updated = time.Now()
	if s.Kafka != nil {
		if err := s.Kafka.PublishLocation(u); err != nil {
			s.logger.Warn("location publish failed", "helper_id", u.HelperID, "error", err)
		}
	}
	if s.Positions != nil {
		if err := s.Positions.Upsert(r.Context(), u); err != nil {
			s.logger.Warn("position upsert failed", "helper_id", u.HelperID, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

var upgrader = websocket.Upgrader{}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["helper_id"]
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}
	s.WSReg.Add(id, conn)
}
