// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package backing

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "candidate_agreement"

// Metrics collects the prometheus metrics of the statement table.
type Metrics struct {
	statementsImported *prometheus.CounterVec
	statementsDropped  *prometheus.CounterVec
	misbehavior        *prometheus.CounterVec
}

// NewMetrics creates the statement table metrics and registers them with the
// given registerer. Collectors already registered are reused.
func NewMetrics(registerer prometheus.Registerer) (metrics *Metrics, err error) {
	metrics = &Metrics{
		statementsImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "statement_table",
			Name:      "statements_imported_total",
			Help:      "statements applied to the statement table, by statement kind",
		}, []string{"kind"}),
		statementsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "statement_table",
			Name:      "statements_dropped_total",
			Help:      "statements dropped before reaching the statement table, by reason",
		}, []string{"reason"}),
		misbehavior: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "statement_table",
			Name:      "misbehavior_total",
			Help:      "misbehavior proofs recorded by the statement table, by kind",
		}, []string{"kind"}),
	}

	collectorsToRegister := map[string]**prometheus.CounterVec{
		"statements imported counter": &metrics.statementsImported,
		"statements dropped counter":  &metrics.statementsDropped,
		"misbehavior counter":         &metrics.misbehavior,
	}

	for collectorName, collector := range collectorsToRegister {
		err = registerer.Register(*collector)
		if err == nil {
			continue
		}

		var alreadyRegistered prometheus.AlreadyRegisteredError
		if !errors.As(err, &alreadyRegistered) {
			return nil, fmt.Errorf("cannot register %s: %w", collectorName, err)
		}
		existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("cannot register %s: %w", collectorName, err)
		}
		*collector = existing
	}

	return metrics, nil
}

func (m *Metrics) statementImported(kind string) {
	if m == nil {
		return
	}
	m.statementsImported.WithLabelValues(kind).Inc()
}

func (m *Metrics) statementDropped(reason string) {
	if m == nil {
		return
	}
	m.statementsDropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) misbehaviorDetected(kind string) {
	if m == nil {
		return
	}
	m.misbehavior.WithLabelValues(kind).Inc()
}
