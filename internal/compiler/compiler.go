// Package compiler walks token rows produced by the lexer and
// materializes modules: object declarations, MACRO definitions, and
// import lists. OID resolution is the resolver's job; the compiler only
// records each object's raw parent-chain expression.
package compiler

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/golangsnmp/mibtext/internal/lexer"
	"github.com/golangsnmp/mibtext/internal/types"
	"github.com/golangsnmp/mibtext/mib"
)

// token is one lexer token with its source line, flattened out of rows
// so declaration scanning can move freely across line boundaries.
type token struct {
	text string
	line int
}

// Compiler builds modules from token rows. One Compiler compiles one
// input start-to-finish; it is not safe for concurrent use.
type Compiler struct {
	// LookupMacro finds a MACRO registered by an earlier-loaded module.
	// May be nil when compiling the first module of a store.
	LookupMacro func(name string) *mib.Macro

	// KnownModule reports whether a module is already present in the
	// store; unknown imports produce a warning, not an error.
	KnownModule func(name string) bool

	diagnostics []types.Diagnostic
	types.Logger
}

// New returns a Compiler logging through the given logger (nil disables).
func New(logger *slog.Logger) *Compiler {
	return &Compiler{Logger: types.Logger{L: logger}}
}

// Diagnostics returns a copy of all collected diagnostics.
func (c *Compiler) Diagnostics() []types.Diagnostic {
	return slices.Clone(c.diagnostics)
}

// Compile materializes every module found in the token rows. A file
// usually holds one module, but multiple DEFINITIONS blocks are legal.
func (c *Compiler) Compile(rows []lexer.Row, origin mib.Origin, sourcePath string) []*mib.Module {
	tokens := flatten(rows)
	var modules []*mib.Module

	for i := 0; i < len(tokens); i++ {
		if tokens[i].text != "DEFINITIONS" || i == 0 {
			continue
		}
		name := tokens[i-1].text
		body := skipModuleHeader(tokens, i)
		mod := mib.NewModule(name, origin)
		mod.SourcePath = sourcePath
		next := c.compileBody(mod, tokens, body)
		modules = append(modules, mod)
		c.Log(slog.LevelDebug, "module compiled",
			slog.String("module", name),
			slog.Int("objects", len(mod.Objects)),
			slog.Int("macros", len(mod.Macros)))
		i = next - 1
	}
	return modules
}

func flatten(rows []lexer.Row) []token {
	var out []token
	for _, r := range rows {
		for _, t := range r.Tokens {
			out = append(out, token{text: t, line: r.Line})
		}
	}
	return out
}

// skipModuleHeader advances past "DEFINITIONS ::= BEGIN" and returns the
// index of the first body token.
func skipModuleHeader(tokens []token, defIdx int) int {
	for i := defIdx + 1; i < len(tokens); i++ {
		if tokens[i].text == "BEGIN" {
			return i + 1
		}
	}
	return len(tokens)
}

// compileBody walks one module's body and returns the index just past
// its END terminator (or len(tokens) when END is missing).
func (c *Compiler) compileBody(mod *mib.Module, tokens []token, start int) int {
	lastDecl := ""

	for i := start; i < len(tokens); i++ {
		switch tokens[i].text {
		case "END":
			return i + 1

		case "DEFINITIONS":
			// Next module began without this one terminating.
			c.warnMissingEnd(mod, lastDecl)
			return i - 1

		case "IMPORTS":
			i = c.compileImports(mod, tokens, i+1)

		case "MACRO":
			i = c.compileMacro(mod, tokens, i)

		case "::=":
			name, next := c.compileDeclaration(mod, tokens, i)
			if name != "" {
				lastDecl = name
			}
			i = next
		}
	}

	c.warnMissingEnd(mod, lastDecl)
	return len(tokens)
}

func (c *Compiler) warnMissingEnd(mod *mib.Module, lastDecl string) {
	msg := fmt.Sprintf("module %s has no END terminator", mod.Name)
	if lastDecl != "" {
		msg += fmt.Sprintf("; last well-formed declaration is %s", lastDecl)
	}
	c.diagnostics = append(c.diagnostics, types.Diagnostic{
		Severity: types.SeverityWarning,
		Code:     types.DiagMissingEnd,
		Message:  msg,
		Module:   mod.Name,
	})
}

// compileImports consumes "symbol, symbol FROM Module ... ;" and records
// one Import per source module. Missing source modules are a warning:
// objects needing them will simply fail OID resolution later.
func (c *Compiler) compileImports(mod *mib.Module, tokens []token, start int) int {
	var pending []string
	for i := start; i < len(tokens); i++ {
		switch tokens[i].text {
		case ";":
			return i
		case ",":
			// separator
		case "FROM":
			if i+1 >= len(tokens) {
				return i
			}
			from := tokens[i+1].text
			mod.Imports = append(mod.Imports, mib.Import{Module: from, Symbols: pending})
			if c.KnownModule != nil && !c.KnownModule(from) {
				c.diagnostics = append(c.diagnostics, types.Diagnostic{
					Severity: types.SeverityWarning,
					Code:     types.DiagImportModuleNotFound,
					Message:  fmt.Sprintf("imported module %s is not loaded", from),
					Module:   mod.Name,
					Line:     tokens[i+1].line,
				})
			}
			pending = nil
			i++
		default:
			pending = append(pending, tokens[i].text)
		}
	}
	return len(tokens)
}

// findMacro resolves a macro name against the current module first, then
// earlier-loaded modules.
func (c *Compiler) findMacro(mod *mib.Module, name string) *mib.Macro {
	if m, ok := mod.Macros[name]; ok {
		return m
	}
	if c.LookupMacro != nil {
		return c.LookupMacro(name)
	}
	return nil
}

// compileDeclaration handles a "::=" boundary at module scope. It returns
// the declared name (or "" when the boundary declares nothing of
// interest) and the token index to resume scanning from.
func (c *Compiler) compileDeclaration(mod *mib.Module, tokens []token, at int) (string, int) {
	if at+1 >= len(tokens) {
		return "", at
	}
	next := tokens[at+1].text

	if strings.HasPrefix(next, "{") {
		// Plain OID alias: name OBJECT IDENTIFIER ::= { parent n }
		if at >= 3 && tokens[at-1].text == "IDENTIFIER" && tokens[at-2].text == "OBJECT" {
			obj := &mib.Object{
				Name:    tokens[at-3].text,
				Macro:   "OBJECT IDENTIFIER",
				OidExpr: braceInner(next),
				Line:    tokens[at-3].line,
			}
			mod.AddObject(obj)
			return obj.Name, at + 1
		}
		return c.compileMacroObject(mod, tokens, at, braceInner(next)), at + 1
	}

	// Type declaration deriving a macro, e.g. Name ::= TEXTUAL-CONVENTION.
	if m := c.findMacro(mod, next); m != nil && at >= 1 {
		name := tokens[at-1].text
		end := fieldScanEnd(mod, c, tokens, at+2)
		obj := c.buildObject(mod, name, m, tokens, at+2, end)
		obj.Line = tokens[at-1].line
		mod.AddObject(obj)
		return name, at + 1
	}

	// Anything else (value assignments, tagged-type definitions) is
	// intentionally ignored.
	return "", at
}

// compileMacroObject synthesizes an object for a declaration of the form
// "name SOME-MACRO field... ::= { parent n }" by locating the nearest
// preceding registered MACRO name and pulling that macro's TYPE NOTATION
// keys from the tokens between the macro name and the boundary.
func (c *Compiler) compileMacroObject(mod *mib.Module, tokens []token, at int, oidExpr string) string {
	macroIdx, m := c.findPrecedingMacro(mod, tokens, at)
	if macroIdx < 1 {
		macroIdx, name := fallbackDeclStart(tokens, at)
		if name == "" {
			return ""
		}
		c.diagnostics = append(c.diagnostics, types.Diagnostic{
			Severity: types.SeverityWarning,
			Code:     types.DiagUnknownMacro,
			Message:  fmt.Sprintf("declaration %s uses unknown macro %s", name, tokens[macroIdx].text),
			Module:   mod.Name,
			Line:     tokens[macroIdx].line,
		})
		obj := c.buildObject(mod, name, &mib.Macro{Name: tokens[macroIdx].text}, tokens, macroIdx+1, at)
		obj.OidExpr = oidExpr
		obj.Line = tokens[macroIdx].line
		mod.AddObject(obj)
		return name
	}

	name := tokens[macroIdx-1].text
	obj := c.buildObject(mod, name, m, tokens, macroIdx+1, at)
	obj.OidExpr = oidExpr
	obj.Line = tokens[macroIdx-1].line
	mod.AddObject(obj)
	return name
}

// findPrecedingMacro searches backward from the declaration boundary for
// the nearest token naming a registered macro. The search stops at the
// previous declaration's boundary so an unknown macro cannot steal field
// tokens from an earlier object.
func (c *Compiler) findPrecedingMacro(mod *mib.Module, tokens []token, at int) (int, *mib.Macro) {
	for i := at - 1; i >= 0; i-- {
		switch tokens[i].text {
		case "::=", "BEGIN", ";", "END":
			return -1, nil
		}
		if m := c.findMacro(mod, tokens[i].text); m != nil {
			return i, m
		}
	}
	return -1, nil
}

// fallbackDeclStart guesses the start of a declaration with an
// unregistered macro: the earliest all-caps token after the previous
// declaration boundary whose predecessor looks like an object name.
// Field keys inside the declaration also match the shape, so the scan
// runs all the way back to the boundary and keeps the last candidate.
func fallbackDeclStart(tokens []token, at int) (int, string) {
	idx, name := -1, ""
	for i := at - 1; i >= 1; i-- {
		switch tokens[i].text {
		case "::=", "BEGIN", ";", "END":
			return idx, name
		}
		if isMacroShaped(tokens[i].text) && isIdentifier(tokens[i-1].text) {
			idx, name = i, tokens[i-1].text
		}
	}
	return idx, name
}

func isMacroShaped(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !(ch >= 'A' && ch <= 'Z') && ch != '-' {
			return false
		}
	}
	return s[0] >= 'A' && s[0] <= 'Z'
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	ch := s[0]
	return ch >= 'a' && ch <= 'z'
}

// fieldScanEnd bounds the forward field scan of a declaration that has no
// trailing OID expression (textual conventions): the scan stops at the
// next declaration boundary, the next macro invocation, or END.
func fieldScanEnd(mod *mib.Module, c *Compiler, tokens []token, start int) int {
	for i := start; i < len(tokens); i++ {
		switch tokens[i].text {
		case "::=", "END", "IMPORTS":
			return i
		}
		if i > start && c.findMacro(mod, tokens[i].text) != nil {
			return i - 1
		}
	}
	return len(tokens)
}

// braceInner strips the surrounding bracket pair from a group token.
func braceInner(tok string) string {
	if len(tok) >= 2 {
		return strings.TrimSpace(tok[1 : len(tok)-1])
	}
	return strings.TrimSpace(tok)
}
