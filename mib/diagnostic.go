package mib

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Diagnostic is a problem reported while tokenizing, compiling, or
// resolving. Diagnostics never abort processing; they describe what the
// best-effort result is missing.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Module   string
	Line     int
}

// String returns "[severity] module:line: message" with location parts
// omitted when unknown.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", d.Severity)
	if d.Module != "" {
		b.WriteString(d.Module)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}
