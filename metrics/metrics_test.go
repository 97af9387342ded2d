// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewCausalityRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewCausality(reg)
	require.NoError(t, err)

	m.GasUsed.Observe(100)
	m.GasUsed.Observe(200)
	require.Equal(t, float64(150), m.GasUsed.Read())

	m.ProgramsCompiled.Inc()
	m.ProgramsCompiled.Inc()
	require.Equal(t, int64(2), m.ProgramsCompiled.Read())

	m.TEGNodes.Set(5)
	m.TEGNodes.Add(3)
	require.Equal(t, float64(8), m.TEGNodes.Read())
}

func TestNewCausalityDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCausality(reg)
	require.NoError(t, err)

	_, err = NewCausality(reg)
	require.Error(t, err)
}

func TestRegistryLookupMissingReturnsError(t *testing.T) {
	r := NewRegistry()
	_, err := r.GetCounter("missing")
	require.Error(t, err)
	_, err = r.GetGauge("missing")
	require.Error(t, err)
	_, err = r.GetAverager("missing")
	require.Error(t, err)
}

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("compiles")
	c.Add(4)
	got, err := r.GetCounter("compiles")
	require.NoError(t, err)
	require.Equal(t, int64(4), got.Read())
}
