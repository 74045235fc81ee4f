package types

// Diagnostic codes emitted by the lexer, compiler, and resolver phases.
// Centralizing these prevents silent breakage from typos in string literals.

// Lexer diagnostic codes.
const (
	DiagStringUnterminated = "string-unterminated"
)

// Compiler diagnostic codes.
const (
	DiagMissingEnd           = "missing-end"
	DiagImportModuleNotFound = "import-module-not-found"
	DiagUnknownMacro         = "unknown-macro"
)

// Resolver diagnostic codes.
const (
	DiagOidParentNotFound = "oid-parent-not-found"
	DiagOidCycle          = "oid-cycle"
)
