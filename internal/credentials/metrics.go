// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TinyApp Contributors

package credentials

import "github.com/prometheus/client_golang/prometheus"

// Result label values for validation metrics.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Validations counts username and password validations.
// Use RegisterMetrics to register this with a Prometheus registry.
var Validations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tinyapp_credential_validations_total",
		Help: "Total number of credential field validations",
	},
	[]string{"field", "result"},
)

// RegisterMetrics registers credentials package metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Validations)
}

func recordValidation(field Field, err error) {
	result := ResultValid
	if err != nil {
		result = ResultInvalid
	}
	Validations.WithLabelValues(string(field), result).Inc()
}
