// Copyright (C) 2020-2026, Timewave Computer Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package log

import "go.uber.org/zap"

type noop struct{}

// NewNoOp returns a Logger that discards everything, used in tests and
// whenever a component is embedded as a library without a configured
// logger.
func NewNoOp() Logger { return noop{} }

func (noop) Debug(string, ...zap.Field) {}
func (noop) Info(string, ...zap.Field)  {}
func (noop) Warn(string, ...zap.Field)  {}
func (noop) Error(string, ...zap.Field) {}
func (n noop) With(...zap.Field) Logger { return n }
