// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicIntIncDec(t *testing.T) {
	a := NewAtomicInt(0)
	a.Inc()
	a.Inc()
	a.Dec()
	require.Equal(t, int64(1), a.Get())
}

func TestSortWithExplicitLess(t *testing.T) {
	xs := []int{3, 1, 2}
	Sort(xs, func(i, j int) bool { return xs[i] < xs[j] })
	require.Equal(t, []int{1, 2, 3}, xs)
}
