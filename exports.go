package mibtext

import "github.com/golangsnmp/mibtext/mib"

// Type aliases for the public API - all types come from the mib subpackage.

// Module is a compiled MIB module.
type Module = mib.Module

// Object is one named MIB object or OID definition.
type Object = mib.Object

// ObjectFlat is the flattened metadata record handed to consumers.
type ObjectFlat = mib.ObjectFlat

// Macro is a MACRO definition's field template.
type Macro = mib.Macro

// Import records one IMPORTS dependency.
type Import = mib.Import

// NamedNumber is one member of an integer enumeration.
type NamedNumber = mib.NamedNumber

// Range is a numeric or size constraint.
type Range = mib.Range

// RevisionEntry is one DESCRIPTION or REVISION history entry.
type RevisionEntry = mib.RevisionEntry

// Origin identifies where a module's text came from.
type Origin = mib.Origin

// Diagnostic is a non-fatal problem found while loading.
type Diagnostic = mib.Diagnostic

// Severity classifies a diagnostic.
type Severity = mib.Severity
