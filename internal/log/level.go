// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color" //nolint:misspell
)

// Level is the level of the logger.
type Level uint8

const (
	// Trace is the trace (trce) level.
	Trace Level = iota
	// Debug is the debug (dbug) level.
	Debug
	// Info is the info level.
	Info
	// Warn is the warn level.
	Warn
	// Error is the error (eror) level.
	Error
	// Critical is the critical (crit) level.
	Critical
)

func (level Level) String() (s string) {
	switch level {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Critical:
		return "CRIT"
	default:
		return "???"
	}
}

// ColouredString returns the corresponding coloured
// string for the level.
func (level Level) ColouredString() (s string) {
	attribute := color.Reset

	switch level {
	case Trace:
		attribute = color.FgHiCyan
	case Debug:
		attribute = color.FgHiBlue
	case Info:
		attribute = color.FgCyan
	case Warn:
		attribute = color.FgYellow
	case Error:
		attribute = color.FgHiRed
	case Critical:
		attribute = color.FgRed
	}

	c := color.New(attribute)
	return c.Sprint(level.String())
}

// ErrLevelNotRecognised is an error returned if the level string is
// not recognised by the ParseLevel function.
var ErrLevelNotRecognised = errors.New("level is not recognised")

// ParseLevel parses a string into a level, and returns an
// error if it fails.
func ParseLevel(s string) (level Level, err error) {
	switch strings.ToUpper(s) {
	case "TRACE", "TRCE":
		return Trace, nil
	case "DEBUG", "DBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARN":
		return Warn, nil
	case "ERROR", "EROR":
		return Error, nil
	case "CRIT", "CRITICAL":
		return Critical, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrLevelNotRecognised, s)
}
