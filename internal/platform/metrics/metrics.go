// Package metrics define las métricas Prometheus de la aplicación.
// Es la única fuente de verdad para nombres, labels y help strings;
// promauto las registra contra el registry por defecto al importar el paquete.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wellbeinglog"

// AccessDecisions cuenta decisiones del motor de roles y permisos.
// Labels:
//   - operation: "resolve", "grant", "promote"
//   - outcome: "allowed", "denied", "error"
var AccessDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Decisiones de autorización del motor de roles, por operación y resultado.",
	},
	[]string{"operation", "outcome"},
)

// LogEntriesCreated cuenta entradas de log persistidas, por categoría.
var LogEntriesCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "log_entries_created_total",
		Help:      "Entradas de log creadas, por categoría.",
	},
	[]string{"category"},
)
