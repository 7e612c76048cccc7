// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bunrouter"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	votesTotal          *prometheus.CounterVec
	amenityOverwrites   *prometheus.CounterVec
	gateDecisions       *prometheus.CounterVec
	adminDecisions      *prometheus.CounterVec
	reportTransitions   *prometheus.CounterVec
	correctionProposals prometheus.Counter
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	requestDuration     *prometheus.HistogramVec
	requestsInFlight    prometheus.Gauge
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		votesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pintwise_votes_total",
				Help: "Total votes cast, by subject and outcome.",
			},
			[]string{"entity", "outcome"},
		),
		amenityOverwrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pintwise_amenity_overwrites_total",
				Help: "Total canonical amenity values changed by consensus.",
			},
			[]string{"amenity"},
		),
		gateDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pintwise_gate_decisions_total",
				Help: "Total submissions passed through the moderation gate, by resulting status.",
			},
			[]string{"entity", "status"},
		),
		adminDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pintwise_admin_decisions_total",
				Help: "Total admin decisions on queued content.",
			},
			[]string{"entity", "action"},
		),
		reportTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pintwise_report_transitions_total",
				Help: "Total reports created or moved to a terminal status.",
			},
			[]string{"status"},
		),
		correctionProposals: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pintwise_correction_proposals_total",
				Help: "Total confidence reads that surfaced a price correction proposal.",
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pintwise_cache_hits_total",
				Help: "Total Redis cache hits.",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pintwise_cache_misses_total",
				Help: "Total Redis cache misses.",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pintwise_api_request_duration_seconds",
				Help:    "HTTP request duration in seconds, by route and method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pintwise_requests_in_flight",
				Help: "Number of HTTP requests currently being served.",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.votesTotal,
		m.amenityOverwrites,
		m.gateDecisions,
		m.adminDecisions,
		m.reportTransitions,
		m.correctionProposals,
		m.cacheHits,
		m.cacheMisses,
		m.requestDuration,
		m.requestsInFlight,
	)

	return m
}

// RegisterDB exposes connection pool gauges for a database handle.
func (m *Metrics) RegisterDB(db *sql.DB) {
	if m == nil {
		return
	}

	m.registry.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "pintwise_db_connection_pool_in_use",
				Help: "Number of database connections in use.",
			},
			func() float64 { return float64(db.Stats().InUse) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "pintwise_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 { return float64(db.Stats().Idle) },
		),
	)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) VoteCast(entity enum.EntityType, outcome enum.VoteOutcome) {
	if m == nil {
		return
	}
	m.votesTotal.WithLabelValues(entity.String(), outcome.String()).Inc()
}

func (m *Metrics) AmenityOverwritten(amenity enum.Amenity) {
	if m == nil {
		return
	}
	m.amenityOverwrites.WithLabelValues(amenity.String()).Inc()
}

func (m *Metrics) GateDecided(entity enum.EntityType, status enum.ModerationStatus) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(entity.String(), status.String()).Inc()
}

func (m *Metrics) AdminDecided(entity enum.EntityType, action enum.ModerationAction) {
	if m == nil {
		return
	}
	m.adminDecisions.WithLabelValues(entity.String(), action.String()).Inc()
}

func (m *Metrics) ReportTransitioned(status enum.ReportStatus) {
	if m == nil {
		return
	}
	m.reportTransitions.WithLabelValues(status.String()).Inc()
}

func (m *Metrics) CorrectionProposed() {
	if m == nil {
		return
	}
	m.correctionProposals.Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// Middleware records request duration and in-flight count. The route label is the
// matched bunrouter pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		if m == nil {
			return next(w, req)
		}

		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		err := next(rec, req)

		m.requestDuration.
			WithLabelValues(req.Route(), req.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())

		return err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
