// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package choices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	require := require.New(t)

	require.True(Committed.Valid())
	require.True(Reverted.Valid())
	require.True(Pending.Valid())
	require.True(Unknown.Valid())
	require.False(Status(math.MaxInt32).Valid())
}

func TestStatusFinal(t *testing.T) {
	require := require.New(t)

	require.True(Committed.Final())
	require.True(Reverted.Final())
	require.False(Pending.Final())
	require.False(Unknown.Final())
	require.False(Status(math.MaxInt32).Final())
}

func TestStatusAttempted(t *testing.T) {
	require := require.New(t)

	require.True(Committed.Attempted())
	require.True(Reverted.Attempted())
	require.True(Pending.Attempted())
	require.False(Unknown.Attempted())
	require.False(Status(math.MaxInt32).Attempted())
}

func TestStatusString(t *testing.T) {
	require := require.New(t)

	require.Equal("Committed", Committed.String())
	require.Equal("Reverted", Reverted.String())
	require.Equal("Pending", Pending.String())
	require.Equal("Unknown", Unknown.String())
	require.Equal("Invalid status", Status(math.MaxInt32).String())
}
