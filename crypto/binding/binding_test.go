// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package binding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWitness3Deterministic(t *testing.T) {
	a := Witness3([]byte("program"), []byte("trace"), []byte("public"))
	b := Witness3([]byte("program"), []byte("trace"), []byte("public"))
	require.Equal(t, a, b)
}

func TestWitness3DistinguishesLeafPosition(t *testing.T) {
	a := Witness3([]byte("x"), []byte("y"), []byte("z"))
	b := Witness3([]byte("y"), []byte("x"), []byte("z"))
	require.NotEqual(t, a, b)
}
