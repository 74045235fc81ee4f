package types

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityError marks input the compiler could not make sense of at all.
	SeverityError Severity = iota
	// SeverityWarning marks recoverable problems (missing END, missing imports).
	SeverityWarning
	// SeverityInfo marks advisory notices.
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

// Diagnostic represents an issue found during tokenizing, compiling, or resolution.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "missing-end", "import-module-not-found"
	Message  string
	Module   string // source module name
	Line     int    // 1-based line number, 0 if not applicable
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] module:line: message" with location parts omitted when zero.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteByte(']')
	b.WriteByte(' ')
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
