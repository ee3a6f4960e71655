package observability

import (
	"errors"
	"net/http"

	"github.com/aretw0/vizscript/pkg/dispatch"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of vizscript_commands_total.
const (
	OutcomeOK               = "ok"
	OutcomeParseError       = "parse_error"
	OutcomeUnknownAction    = "unknown_action"
	OutcomeUnmetRequirement = "unmet_requirement"
	OutcomeUnsupported      = "unsupported_capability"
	OutcomeFault            = "fault"
	OutcomeDiscarded        = "discarded"
	OutcomeError            = "error"
)

// unknownAction labels commands that could not be attributed to an action,
// keeping label cardinality bounded by the registry.
const unknownAction = "unknown"

// Metrics holds the collectors fed by queue status events.
type Metrics struct {
	registry *prometheus.Registry

	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
	idle     prometheus.Counter
	depth    prometheus.Gauge
	busy     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vizscript_commands_total",
				Help: "Total number of processed commands",
			},
			[]string{"action", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vizscript_command_duration_seconds",
				Help:    "Duration of command dispatches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		idle: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vizscript_queue_idle_total",
			Help: "Number of times the queue drained",
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vizscript_queue_depth",
			Help: "Commands waiting in the queue",
		}),
		busy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vizscript_queue_processing",
			Help: "1 while a command is in flight",
		}),
	}
	m.registry.MustRegister(m.commands, m.duration, m.idle, m.depth, m.busy)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Listener returns the status listener updating the collectors.
func (m *Metrics) Listener() domain.StatusListener {
	return m.Observe
}

// Observe updates the collectors for one status event.
func (m *Metrics) Observe(ev domain.StatusEvent) {
	switch ev.Type {
	case domain.EventRunning:
		m.busy.Set(1)
		m.depth.Set(float64(ev.Pending))
	case domain.EventFinished:
		outcome := Outcome(ev.Err)
		action := actionOf(ev.Command, outcome)
		m.commands.WithLabelValues(action, outcome).Inc()
		if outcome != OutcomeParseError && outcome != OutcomeUnknownAction {
			m.duration.WithLabelValues(action).Observe(ev.Duration.Seconds())
		}
		m.depth.Set(float64(ev.Pending))
	case domain.EventIdle:
		m.busy.Set(0)
		m.depth.Set(0)
		m.idle.Inc()
	}
}

// Outcome maps a command error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrParse):
		return OutcomeParseError
	case errors.Is(err, domain.ErrUnknownAction):
		return OutcomeUnknownAction
	case errors.Is(err, domain.ErrUnmetRequirement):
		return OutcomeUnmetRequirement
	case errors.Is(err, domain.ErrUnsupportedCapability):
		return OutcomeUnsupported
	case errors.Is(err, domain.ErrHandlerFault):
		return OutcomeFault
	case errors.Is(err, domain.ErrDiscarded):
		return OutcomeDiscarded
	}
	return OutcomeError
}

func actionOf(cmd *domain.Command, outcome string) string {
	if cmd == nil || outcome == OutcomeParseError || outcome == OutcomeUnknownAction {
		return unknownAction
	}
	action, _, err := dispatch.Parse(cmd.Raw)
	if err != nil {
		return unknownAction
	}
	return action
}
