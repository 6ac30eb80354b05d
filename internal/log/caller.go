// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

type callerSettings struct {
	file *bool
	line *bool
	funC *bool
}

func (c *callerSettings) mergeWith(other callerSettings) {
	overrideBool(&c.file, other.file)
	overrideBool(&c.line, other.line)
	overrideBool(&c.funC, other.funC)
}

func (c *callerSettings) setDefaults() {
	for _, field := range []**bool{&c.file, &c.line, &c.funC} {
		if *field == nil {
			disabled := false
			*field = &disabled
		}
	}
}

// overrideBool copies the value of src into a new pointer stored in dst,
// unless src is nil.
func overrideBool(dst **bool, src *bool) {
	if src == nil {
		return
	}
	value := *src
	*dst = &value
}

// callerString returns the caller file, line and function
// depending on the settings given. The depth is relative to
// the caller of the exported logging method.
func callerString(settings callerSettings) (s string) {
	if !*settings.file && !*settings.line && !*settings.funC {
		return ""
	}

	const depth = 3
	pc, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "unknown caller"
	}

	fields := make([]string, 0, 3)
	if *settings.file {
		fields = append(fields, filepath.Base(file))
	}
	if *settings.line {
		fields = append(fields, fmt.Sprintf("L%d", line))
	}
	if details := runtime.FuncForPC(pc); *settings.funC && details != nil {
		fields = append(fields, strings.TrimPrefix(filepath.Ext(details.Name()), "."))
	}
	return strings.Join(fields, ":")
}
