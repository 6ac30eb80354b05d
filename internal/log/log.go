// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"fmt"
	"strings"
	"time"
)

// LeveledLogger is the logging interface consumed by packages
// which should not depend on the concrete logger.
type LeveledLogger interface {
	Trace(s string)
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
	Critical(s string)
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})
}

var _ LeveledLogger = (*Logger)(nil)

func (l *Logger) log(logLevel Level, s string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if *l.settings.level > logLevel {
		return
	}

	levelString := logLevel.String()
	if *l.settings.colour {
		levelString = logLevel.ColouredString()
	}

	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}

	line := time.Now().Format(time.RFC3339) + " " + padRight(levelString, logLevel) + " " + s

	if caller := callerString(l.settings.caller); caller != "" {
		line += "\t" + caller
	}

	if len(l.settings.context) > 0 {
		keyValues := make([]string, 0, len(l.settings.context))
		for _, kvs := range l.settings.context {
			keyValues = append(keyValues, kvs.key+"="+strings.Join(kvs.values, ","))
		}
		line += "\t" + strings.Join(keyValues, " ")
	}

	_, _ = l.settings.writer.Write([]byte(line + "\n"))
}

// padRight pads the level string so messages are aligned,
// ignoring the colour escape sequences.
func padRight(levelString string, level Level) string {
	const width = 8
	visible := len(level.String())
	if visible >= width {
		return levelString
	}
	return levelString + strings.Repeat(" ", width-visible)
}

// Trace logs with the TRACE level.
func (l *Logger) Trace(s string) { l.log(Trace, s) }

// Debug logs with the DEBUG level.
func (l *Logger) Debug(s string) { l.log(Debug, s) }

// Info logs with the INFO level.
func (l *Logger) Info(s string) { l.log(Info, s) }

// Warn logs with the WARN level.
func (l *Logger) Warn(s string) { l.log(Warn, s) }

// Error logs with the ERROR level.
func (l *Logger) Error(s string) { l.log(Error, s) }

// Critical logs with the CRIT level.
func (l *Logger) Critical(s string) { l.log(Critical, s) }

// Tracef formats and logs at the TRACE level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.log(Trace, format, args...)
}

// Debugf formats and logs at the DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(Debug, format, args...)
}

// Infof formats and logs at the INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(Info, format, args...)
}

// Warnf formats and logs at the WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(Warn, format, args...)
}

// Errorf formats and logs at the ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(Error, format, args...)
}

// Criticalf formats and logs at the CRIT level.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.log(Critical, format, args...)
}
