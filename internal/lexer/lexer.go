// Package lexer tokenizes MIB module source text.
//
// MIB syntax is ASN.1-derived, so the lexer is a per-character state
// machine rather than a regular scanner: double dashes open and close
// line comments, double quotes delimit free text that may span lines,
// and brace groups after "::=" carry whitespace-significant OBJECT
// IDENTIFIER expressions that must survive as single tokens.
package lexer

import (
	"log/slog"
	"slices"

	"github.com/golangsnmp/mibtext/internal/types"
)

// Row is one emitted line of tokens with its originating source line.
// Rows advance only when tokens are actually flushed, so blank and
// comment-only lines produce no row.
type Row struct {
	Line   int
	Tokens []string
}

// Lexer tokenizes one module's text. State is owned by the instance and
// discarded after Tokenize returns; a Lexer must not be reused across
// concurrent compiles.
type Lexer struct {
	module      string
	diagnostics []types.Diagnostic
	types.Logger

	buf       []byte // pending partial token
	comment   bool   // inside a -- line comment
	inComment bool   // saw '-' inside the comment (possible close)
	inString  bool   // inside double-quoted text
	nesting   int    // bracket/brace/paren depth
	oidMode   bool   // current brace group is an object-identifier expression
	listMode  bool   // current group is a generic value list
	grouping  int    // groups opened on the current line
	line      int    // 1-based source line
	rowLine   int    // source line of the current row's first token
	last      string // most recently flushed token
	rows      []Row
	cur       []string
}

// New returns a Lexer for the named module.
func New(module string, logger *slog.Logger) *Lexer {
	return &Lexer{
		module: module,
		line:   1,
		Logger: types.Logger{L: logger},
	}
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.Diagnostic {
	return slices.Clone(l.diagnostics)
}

// Tokenize consumes the whole text and returns the token rows.
func (l *Lexer) Tokenize(text string) []Row {
	for i := 0; i < len(text); i++ {
		l.step(text[i])
	}
	if l.inString {
		l.diagnostics = append(l.diagnostics, types.Diagnostic{
			Severity: types.SeverityWarning,
			Code:     types.DiagStringUnterminated,
			Message:  "quoted string not terminated before end of file",
			Module:   l.module,
			Line:     l.line,
		})
		l.flushString()
	}
	l.flushToken()
	l.flushRow()
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.String("module", l.module),
		slog.Int("rows", len(l.rows)),
		slog.Int("lines", l.line))
	return l.rows
}

// step dispatches a single character against the current lexer state.
func (l *Lexer) step(c byte) {
	if l.inString {
		l.stepString(c)
		return
	}

	switch c {
	case '\n', '\r':
		if l.nesting > 0 && (l.oidMode || l.listMode) {
			// Inside a bracketed expression a line break is just a
			// separator; a trailing comment ends here either way.
			l.appendSeparator()
		} else {
			l.flushToken()
			l.flushRow()
		}
		if c == '\n' {
			l.line++
		}
		l.comment = false
		l.inComment = false
		l.grouping = 0

	case '-':
		if l.comment {
			// A second double dash closes the comment on the same line.
			if l.inComment {
				l.comment = false
				l.inComment = false
			} else {
				l.inComment = true
			}
			return
		}
		l.buf = append(l.buf, c)
		if n := len(l.buf); n >= 2 && l.buf[n-2] == '-' {
			// Retroactively strip the "--" and flush what preceded it.
			l.buf = l.buf[:n-2]
			if l.nesting == 0 {
				l.flushToken()
			}
			l.comment = true
		}

	case '"':
		if l.comment {
			return
		}
		l.flushToken()
		l.inString = true

	case '{', '[', '(':
		if l.comment {
			return
		}
		if l.nesting == 0 {
			l.flushToken()
			if c == '{' && l.last == "::=" {
				l.oidMode = true
			} else {
				l.listMode = true
			}
			l.grouping++
		}
		l.nesting++
		l.buf = append(l.buf, c)

	case '}', ']', ')':
		if l.comment {
			return
		}
		if l.nesting == 0 {
			// Stray closer; isolate it as its own token.
			l.flushToken()
			l.emit(string(c))
			return
		}
		l.buf = append(l.buf, c)
		l.nesting--
		if l.nesting == 0 {
			l.flushToken()
			l.oidMode = false
			l.listMode = false
		}

	case ',', ';':
		if l.comment {
			return
		}
		if l.nesting > 0 {
			l.buf = append(l.buf, c)
			return
		}
		l.flushToken()
		l.emit(string(c))

	case ' ', '\t':
		if l.comment {
			l.inComment = false
			return
		}
		if l.nesting > 0 {
			l.appendSeparator()
			return
		}
		l.flushToken()

	default:
		if l.comment {
			l.inComment = false
			return
		}
		l.buf = append(l.buf, c)
	}

	if c != '-' {
		l.inComment = false
	}
}

// stepString handles characters while inside double-quoted text.
// Quoted text may span lines; line breaks are preserved.
func (l *Lexer) stepString(c byte) {
	switch c {
	case '"':
		l.flushString()
	case '\r':
		// normalized away
	case '\n':
		l.buf = append(l.buf, c)
		l.line++
	default:
		l.buf = append(l.buf, c)
	}
}

// appendSeparator appends a single space to the pending buffer, collapsing
// runs of whitespace inside bracketed expressions.
func (l *Lexer) appendSeparator() {
	if n := len(l.buf); n > 0 && l.buf[n-1] != ' ' {
		l.buf = append(l.buf, ' ')
	}
}

// flushToken emits the pending buffer as a token if it is non-empty.
func (l *Lexer) flushToken() {
	if len(l.buf) == 0 {
		return
	}
	l.emit(string(l.buf))
	l.buf = l.buf[:0]
}

// flushString emits the pending buffer as a token even when empty, so a
// declaration like DESCRIPTION "" still yields a value token.
func (l *Lexer) flushString() {
	l.emit(string(l.buf))
	l.buf = l.buf[:0]
	l.inString = false
}

func (l *Lexer) emit(tok string) {
	if len(l.cur) == 0 {
		l.rowLine = l.line
	}
	l.cur = append(l.cur, tok)
	l.last = tok
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("module", l.module),
			slog.Int("line", l.rowLine),
			slog.String("text", tok))
	}
}

func (l *Lexer) flushRow() {
	if len(l.cur) == 0 {
		return
	}
	l.rows = append(l.rows, Row{Line: l.rowLine, Tokens: l.cur})
	l.cur = nil
}
