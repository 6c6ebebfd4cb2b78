// Package prometheus exposes the quest metrics of the process.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/questx-lab/questkit/internal/common"
)

// NewRegistry registers the runtime collectors and every quest counter and
// histogram declared in common.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	for _, counter := range common.PromCounters {
		registry.MustRegister(counter)
	}

	for _, histogram := range common.PromHistograms {
		registry.MustRegister(histogram)
	}

	return registry
}

func NewHandler() http.Handler {
	registry := NewRegistry()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry:      registry,
		ErrorHandling: promhttp.ContinueOnError,
	})
}
