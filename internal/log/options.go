// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

// Option is the type to specify settings modifier
// for the logger operation.
type Option func(s *settings)

type contextKeyValues struct {
	key    string
	values []string
}

type settings struct {
	writer  io.Writer
	level   *Level
	colour  *bool
	caller  callerSettings
	context []contextKeyValues
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// mergeWith sets values of the other settings on s when they are set.
// Context key values of other are appended after the ones of s.
func (s *settings) mergeWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}

	if other.level != nil {
		level := *other.level
		s.level = &level
	}

	overrideBool(&s.colour, other.colour)

	s.caller.mergeWith(other.caller)

	for _, kvs := range other.context {
		values := make([]string, len(kvs.values))
		copy(values, kvs.values)
		s.context = appendContext(s.context, kvs.key, values...)
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		level := Info
		s.level = &level
	}

	if s.colour == nil {
		colour := false
		s.colour = &colour
	}

	s.caller.setDefaults()
}

func appendContext(context []contextKeyValues, key string, values ...string) []contextKeyValues {
	for i := range context {
		if context[i].key == key {
			context[i].values = append(context[i].values, values...)
			return context
		}
	}
	return append(context, contextKeyValues{key: key, values: values})
}

// SetLevel sets the level for the logger.
// The level defaults to Info.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = &level
	}
}

// SetColour enables or disables the colouring of the level.
// The default is disabled.
func SetColour(enabled bool) Option {
	return func(s *settings) {
		s.colour = &enabled
	}
}

// SetCallerFile enables or disables logging the caller file.
// The default is disabled.
func SetCallerFile(enabled bool) Option {
	return func(s *settings) {
		s.caller.file = &enabled
	}
}

// SetCallerLine enables or disables logging the caller line number.
// The default is disabled.
func SetCallerLine(enabled bool) Option {
	return func(s *settings) {
		s.caller.line = &enabled
	}
}

// SetCallerFunc enables or disables logging the caller function.
// The default is disabled.
func SetCallerFunc(enabled bool) Option {
	return func(s *settings) {
		s.caller.funC = &enabled
	}
}

// SetWriter set the writer for the logger.
// The writer defaults to os.Stdout.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
	}
}

// AddContext adds the context for the logger as a key values pair.
// It adds them in order. If a key already exists, the value is added to the
// existing values.
func AddContext(key, value string) Option {
	return func(s *settings) {
		s.context = appendContext(s.context, key, value)
	}
}
