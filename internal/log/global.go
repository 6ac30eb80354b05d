// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

var globalLogger = New()

// NewFromGlobal creates a child logger from the global logger.
func NewFromGlobal(options ...Option) *Logger {
	return globalLogger.New(options...)
}

// Patch patches the global package logger and all its children.
func Patch(options ...Option) {
	globalLogger.Patch(options...)
}
