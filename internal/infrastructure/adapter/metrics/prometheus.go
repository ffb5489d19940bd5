package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
)

// DefaultNamespace prefixes every metric name
const DefaultNamespace = "schema_ledger"

var lockWaitBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// PrometheusMetrics records migration activity into its own registry
type PrometheusMetrics struct {
	registry *prometheus.Registry

	migrationsTotal   *prometheus.CounterVec
	migrationDuration *prometheus.HistogramVec
	lockWait          *prometheus.HistogramVec
	commandsTotal     *prometheus.CounterVec
	commandDuration   *prometheus.HistogramVec
}

var _ coreport.Metrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics creates the collectors on a fresh registry, together with
// the Go runtime and process collectors
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		migrationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migrations_total",
			Help:      "Total number of executed migrations",
		}, []string{"type", "success"}),
		migrationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "migration_duration_seconds",
			Help:      "Execution time of migrations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		lockWait: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting for the migration lock in seconds",
			Buckets:   lockWaitBuckets,
		}, []string{"acquired"}),
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of command invocations",
		}, []string{"command", "success"}),
		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command invocations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}
}

// ObserveMigration records one executed migration
func (m *PrometheusMetrics) ObserveMigration(migrationType string, success bool, duration time.Duration) {
	m.migrationsTotal.WithLabelValues(migrationType, strconv.FormatBool(success)).Inc()
	m.migrationDuration.WithLabelValues(migrationType).Observe(duration.Seconds())
}

// ObserveLockWait records the wait for the migration lock
func (m *PrometheusMetrics) ObserveLockWait(acquired bool, wait time.Duration) {
	m.lockWait.WithLabelValues(strconv.FormatBool(acquired)).Observe(wait.Seconds())
}

// ObserveCommand records one command invocation
func (m *PrometheusMetrics) ObserveCommand(command string, success bool, duration time.Duration) {
	m.commandsTotal.WithLabelValues(command, strconv.FormatBool(success)).Inc()
	m.commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RegisterDBStats exports the connection pool statistics of db under dbName
func (m *PrometheusMetrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// Registry returns the underlying registry
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// NoopMetrics discards every observation
type NoopMetrics struct{}

var _ coreport.Metrics = NoopMetrics{}

func (NoopMetrics) ObserveMigration(string, bool, time.Duration) {}
func (NoopMetrics) ObserveLockWait(bool, time.Duration)          {}
func (NoopMetrics) ObserveCommand(string, bool, time.Duration)   {}
