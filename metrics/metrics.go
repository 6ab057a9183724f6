// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels.
const (
	ResultAdvanced = "advanced"
	ResultSkipped  = "skipped"
	ResultFailed   = "failed"
	ResultSent     = "sent"
	ResultMigrated = "migrated"
)

// Metrics records service events. A nil *Metrics records nothing.
type Metrics struct {
	aggregations *prometheus.CounterVec
	writeBacks   *prometheus.CounterVec
	migrations   *prometheus.CounterVec
	reminders    *prometheus.CounterVec
}

// New registers the collectors on reg, or on the default registerer when reg
// is nil. Collectors that are already registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	aggregations, err := counterVec(reg, prometheus.CounterOpts{
		Name: "fueltrack_aggregations_total",
		Help: "Efficiency window aggregations computed, by caller",
	}, "source")
	if err != nil {
		return nil, err
	}
	writeBacks, err := counterVec(reg, prometheus.CounterOpts{
		Name: "fueltrack_odometer_writebacks_total",
		Help: "Odometer write-back attempts after an activity was added",
	}, "result")
	if err != nil {
		return nil, err
	}
	migrations, err := counterVec(reg, prometheus.CounterOpts{
		Name: "fueltrack_legacy_logs_total",
		Help: "Legacy fuel logs processed by the migration",
	}, "result")
	if err != nil {
		return nil, err
	}
	reminders, err := counterVec(reg, prometheus.CounterOpts{
		Name: "fueltrack_service_reminders_total",
		Help: "Service-due reminders raised",
	}, "result")
	if err != nil {
		return nil, err
	}

	// Known label values start at zero so they are exported before first use.
	for _, source := range []string{"dashboard", "analytics"} {
		aggregations.WithLabelValues(source)
	}
	for _, result := range []string{ResultAdvanced, ResultSkipped, ResultFailed} {
		writeBacks.WithLabelValues(result)
	}
	for _, result := range []string{ResultMigrated, ResultFailed} {
		migrations.WithLabelValues(result)
	}
	for _, result := range []string{ResultSent, ResultFailed} {
		reminders.WithLabelValues(result)
	}

	return &Metrics{
		aggregations: aggregations,
		writeBacks:   writeBacks,
		migrations:   migrations,
		reminders:    reminders,
	}, nil
}

func counterVec(reg prometheus.Registerer, opts prometheus.CounterOpts, labels ...string) (*prometheus.CounterVec, error) {
	c := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec), nil
		}
		return nil, err
	}
	return c, nil
}

func (m *Metrics) Aggregation(source string) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues(source).Inc()
}

func (m *Metrics) WriteBack(result string) {
	if m == nil {
		return
	}
	m.writeBacks.WithLabelValues(result).Inc()
}

func (m *Metrics) Migration(result string) {
	if m == nil {
		return
	}
	m.migrations.WithLabelValues(result).Inc()
}

func (m *Metrics) Reminder(result string) {
	if m == nil {
		return
	}
	m.reminders.WithLabelValues(result).Inc()
}
