// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Causality bundles the metrics a single compile-and-execute pipeline
// reports: gas consumption, compiled program throughput, witness
// size, and the shape of the Temporal Effect Graph it feeds.
type Causality struct {
	Registry prometheus.Registerer

	GasUsed           Averager
	ProgramsCompiled  Counter
	CompileErrors     Counter
	WitnessBytes      Averager
	TEGNodes          Gauge
	TEGEdges          Gauge
	CapabilityDenials Counter
}

// NewCausality registers the two averagers (GasUsed, WitnessBytes)
// against reg; the counters and gauges are in-process only and are not
// registered. A registration error aborts construction, but metrics
// registered before the failure stay registered.
func NewCausality(reg prometheus.Registerer) (*Causality, error) {
	gasUsed, err := NewAverager("causality_gas_used", "gas consumed per execution", reg)
	if err != nil {
		return nil, err
	}
	witnessBytes, err := NewAverager("causality_witness_bytes", "witness trace size in bytes", reg)
	if err != nil {
		return nil, err
	}

	m := &Causality{
		Registry:          reg,
		GasUsed:           gasUsed,
		WitnessBytes:      witnessBytes,
		ProgramsCompiled:  NewCounter(),
		CompileErrors:     NewCounter(),
		TEGNodes:          NewGauge(),
		TEGEdges:          NewGauge(),
		CapabilityDenials: NewCounter(),
	}
	return m, nil
}

// Register registers an additional prometheus collector against the
// same registry, for callers instrumenting beyond the builtin set.
func (m *Causality) Register(collector prometheus.Collector) error {
	return m.Registry.Register(collector)
}
