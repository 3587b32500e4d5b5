// Package metrics expone los contadores Prometheus de la aplicación sobre un
// registry propio (sin colectores globales, para poder instanciar en tests).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	RecordsImported prometheus.Counter
	RecordsExported prometheus.Counter
	RecordsDeleted  prometheus.Counter
}

// New crea el registry con los colectores estándar de Go más los contadores
// propios.
func New(appName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP atendidas, por método, ruta y status.",
			ConstLabels: prometheus.Labels{
				"app": appName,
			},
		}, []string{"method", "path", "status"}),
		RecordsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Name:      "records_imported_total",
			Help:      "Clientes importados vía CSV.",
		}),
		RecordsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Name:      "records_exported_total",
			Help:      "Clientes exportados vía CSV.",
		}),
		RecordsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Name:      "records_deleted_total",
			Help:      "Clientes eliminados (individual o bulk).",
		}),
	}
	reg.MustRegister(m.HTTPRequests, m.RecordsImported, m.RecordsExported, m.RecordsDeleted)
	return m
}

// Handler devuelve el handler HTTP de /metrics para este registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
