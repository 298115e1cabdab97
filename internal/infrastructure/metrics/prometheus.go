package metrics

import (
	"net/http"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ output.MetricsPort = (*Registry)(nil)

const namespace = "lindia"

// UpstreamModel labels answers whose model name came from the AI engine.
const UpstreamModel = "upstream"

var knownModels = map[string]struct{}{
	entity.ModelEnhancedChain:     {},
	entity.ModelResearchAssistant: {},
	entity.ModelJunior:            {},
	entity.ModelDynamicResearch:   {},
	entity.ModelFallback:          {},
	entity.ModelError:             {},
}

func modelLabel(model string) string {
	if _, ok := knownModels[model]; ok {
		return model
	}
	return UpstreamModel
}

// Registry owns a private prometheus registry so tests and multiple servers
// in one process never collide on the default one.
type Registry struct {
	registry         *prometheus.Registry
	researchOutcomes *prometheus.CounterVec
	juniorOutcomes   *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,
		researchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "research_outcomes_total",
			Help:      "Research answers served, by the model that produced them.",
		}, []string{"model_used"}),
		juniorOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "junior_outcomes_total",
			Help:      "Junior answers served, by the model that produced them.",
		}, []string{"model_used"}),
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Calls to upstream inference services.",
		}, []string{"service", "outcome"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream inference calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"service"}),
	}
}

func (r *Registry) ObserveUpstream(service string, outcome output.Outcome, elapsed time.Duration) {
	r.upstreamRequests.WithLabelValues(service, string(outcome)).Inc()
	if outcome != output.OutcomeSkipped {
		r.upstreamDuration.WithLabelValues(service).Observe(elapsed.Seconds())
	}
}

func (r *Registry) CountAnswer(route, modelUsed string) {
	switch route {
	case "research":
		r.researchOutcomes.WithLabelValues(modelLabel(modelUsed)).Inc()
	case "junior":
		r.juniorOutcomes.WithLabelValues(modelLabel(modelUsed)).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
