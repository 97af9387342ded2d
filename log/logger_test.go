// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewBuildsLogger(t *testing.T) {
	l, err := New(zapcore.InfoLevel)
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("hello", zap.String("k", "v"))
}

func TestNoOpDiscardsWithoutPanicking(t *testing.T) {
	l := NewNoOp()
	l.Debug("x")
	l.With(zap.Int("n", 1)).Error("y")
}
