package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/mibtext/internal/lexer"
	"github.com/golangsnmp/mibtext/internal/types"
	"github.com/golangsnmp/mibtext/mib"
)

// objectTypeMacro is the field template modules under test compile
// against, standing in for the SNMPv2-SMI OBJECT-TYPE macro.
var objectTypeMacro = &mib.Macro{
	Name: "OBJECT-TYPE",
	Keys: []string{
		"SYNTAX", "UNITS", "MAX-ACCESS", "ACCESS", "STATUS",
		"DESCRIPTION", "REFERENCE", "INDEX", "AUGMENTS",
	},
}

func compile(t *testing.T, src string) (*Compiler, []*mib.Module) {
	t.Helper()
	rows := lexer.New("test", nil).Tokenize(src)
	c := New(nil)
	c.LookupMacro = func(name string) *mib.Macro {
		if name == "OBJECT-TYPE" {
			return objectTypeMacro
		}
		return nil
	}
	return c, c.Compile(rows, mib.OriginFile, "test.mib")
}

func compileOne(t *testing.T, src string) (*Compiler, *mib.Module) {
	t.Helper()
	c, mods := compile(t, src)
	require.Len(t, mods, 1)
	return c, mods[0]
}

func TestOidAliasDeclaration(t *testing.T) {
	_, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
foo OBJECT IDENTIFIER ::= { mib-2 1 }
END`)

	require.Equal(t, "FOO-MIB", mod.Name)
	obj := mod.Object("foo")
	require.NotNil(t, obj)
	require.Equal(t, "OBJECT IDENTIFIER", obj.Macro)
	require.Equal(t, "mib-2 1", obj.OidExpr)
	require.Empty(t, obj.OID)
}

func TestObjectTypeFieldExtraction(t *testing.T) {
	_, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
fooCount OBJECT-TYPE
    SYNTAX      Counter32
    UNITS       "packets"
    MAX-ACCESS  read-only
    STATUS      current
    DESCRIPTION "The number of things counted."
    ::= { foo 2 }
END`)

	obj := mod.Object("fooCount")
	require.NotNil(t, obj)
	require.Equal(t, "OBJECT-TYPE", obj.Macro)
	require.Equal(t, "Counter32", obj.Syntax)
	require.Equal(t, "packets", obj.Units)
	require.Equal(t, "read-only", obj.MaxAccess)
	require.Equal(t, "current", obj.Status)
	require.Equal(t, "The number of things counted.", obj.Description)
	require.Equal(t, "foo 2", obj.OidExpr)
}

func TestEnumSyntax(t *testing.T) {
	_, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
fooState OBJECT-TYPE
    SYNTAX      INTEGER { up(1), down(2), testing(3) }
    MAX-ACCESS  read-only
    STATUS      current
    DESCRIPTION "Operational state."
    ::= { foo 3 }
END`)

	obj := mod.Object("fooState")
	require.NotNil(t, obj)
	require.Equal(t, "INTEGER", obj.Syntax)
	require.Equal(t, []mib.NamedNumber{
		{Name: "up", Value: 1},
		{Name: "down", Value: 2},
		{Name: "testing", Value: 3},
	}, obj.Enums)
}

func TestRangeSyntax(t *testing.T) {
	tests := []struct {
		name   string
		syntax string
		base   string
		want   []mib.Range
	}{
		{name: "size", syntax: "OCTET STRING (SIZE (0..255))", base: "OCTET STRING",
			want: []mib.Range{{Min: 0, Max: 255}}},
		{name: "value range", syntax: "INTEGER (1..2147483647)", base: "INTEGER",
			want: []mib.Range{{Min: 1, Max: 2147483647}}},
		{name: "alternated ranges", syntax: "Integer32 (1..10 | 20..30)", base: "Integer32",
			want: []mib.Range{{Min: 1, Max: 10}, {Min: 20, Max: 30}}},
		{name: "singleton", syntax: "OCTET STRING (SIZE (4))", base: "OCTET STRING",
			want: []mib.Range{{Min: 4, Max: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
fooValue OBJECT-TYPE
    SYNTAX      `+tt.syntax+`
    MAX-ACCESS  read-only
    STATUS      current
    DESCRIPTION "d"
    ::= { foo 4 }
END`)
			obj := mod.Object("fooValue")
			require.NotNil(t, obj)
			require.Equal(t, tt.base, obj.Syntax)
			require.Equal(t, tt.want, obj.Ranges)
		})
	}
}

func TestTableDetection(t *testing.T) {
	_, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
fooTable OBJECT-TYPE
    SYNTAX      SEQUENCE OF FooEntry
    MAX-ACCESS  not-accessible
    STATUS      current
    DESCRIPTION "A table."
    ::= { foo 5 }
fooEntry OBJECT-TYPE
    SYNTAX      FooEntry
    MAX-ACCESS  not-accessible
    STATUS      current
    DESCRIPTION "A row."
    INDEX       { fooIndex }
    ::= { fooTable 1 }
END`)

	table := mod.Object("fooTable")
	require.NotNil(t, table)
	require.Equal(t, "SEQUENCE OF FooEntry", table.Syntax)
	require.True(t, table.Table())

	entry := mod.Object("fooEntry")
	require.NotNil(t, entry)
	require.Equal(t, "fooIndex", entry.Index)
	require.False(t, entry.Table())
}

func TestImportsRecorded(t *testing.T) {
	c, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
IMPORTS
    mgmt, TimeTicks FROM RFC1155-SMI
    OBJECT-TYPE FROM RFC1212-MIB;
END`)

	require.Equal(t, []mib.Import{
		{Module: "RFC1155-SMI", Symbols: []string{"mgmt", "TimeTicks"}},
		{Module: "RFC1212-MIB", Symbols: []string{"OBJECT-TYPE"}},
	}, mod.Imports)

	// No KnownModule hook means no missing-import warnings.
	require.Empty(t, c.Diagnostics())
}

func TestMissingImportWarns(t *testing.T) {
	rows := lexer.New("test", nil).Tokenize(`
FOO-MIB DEFINITIONS ::= BEGIN
IMPORTS mgmt FROM NO-SUCH-MIB;
END`)
	c := New(nil)
	c.KnownModule = func(string) bool { return false }
	c.Compile(rows, mib.OriginFile, "test.mib")

	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, types.DiagImportModuleNotFound, diags[0].Code)
	require.Equal(t, types.SeverityWarning, diags[0].Severity)
	require.Contains(t, diags[0].Message, "NO-SUCH-MIB")
}

func TestMissingEndWarnsWithLastDeclaration(t *testing.T) {
	c, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
foo OBJECT IDENTIFIER ::= { mib-2 1 }
bar OBJECT IDENTIFIER ::= { foo 1 }`)

	// Partial results are retained.
	require.NotNil(t, mod.Object("foo"))
	require.NotNil(t, mod.Object("bar"))

	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, types.DiagMissingEnd, diags[0].Code)
	require.Contains(t, diags[0].Message, "bar")
}

func TestUnknownMacroFallsBackToEmptyTemplate(t *testing.T) {
	c, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
fooTrap VENDOR-TRAP
    SEVERITY    major
    DESCRIPTION "Vendor-specific declaration."
    ::= { foo 6 }
END`)

	obj := mod.Object("fooTrap")
	require.NotNil(t, obj)
	require.Equal(t, "VENDOR-TRAP", obj.Macro)
	require.Equal(t, "foo 6", obj.OidExpr)
	// DESCRIPTION is always recognized; the unknown SEVERITY key is not.
	require.Equal(t, "Vendor-specific declaration.", obj.Description)
	require.Empty(t, obj.Extra)

	var codes []string
	for _, d := range c.Diagnostics() {
		codes = append(codes, d.Code)
	}
	require.Contains(t, codes, types.DiagUnknownMacro)
}

func TestMacroDefinitionAndCompatPatch(t *testing.T) {
	_, mod := compileOne(t, `
SNMPv2-SMI DEFINITIONS ::= BEGIN
OBJECT-TYPE MACRO ::=
BEGIN
    TYPE NOTATION ::=
                  "SYNTAX" Syntax
                  "MAX-ACCESS" Access
                  "STATUS" Status
                  "DESCRIPTION" Text
    VALUE NOTATION ::=
                  value(VALUE ObjectName)
END
END`)

	m := mod.Macros["OBJECT-TYPE"]
	require.NotNil(t, m)
	require.True(t, m.HasKey("SYNTAX"))
	require.True(t, m.HasKey("MAX-ACCESS"))
	require.True(t, m.HasKey("DESCRIPTION"))
	// The compatibility table patches the historically incomplete macro.
	require.True(t, m.HasKey("INDEX"))
	require.True(t, m.HasKey("AUGMENTS"))
	require.True(t, m.HasKey("ACCESS"))
}

func TestTextualConventionDeclaration(t *testing.T) {
	_, mods := compile(t, `
FOO-TC DEFINITIONS ::= BEGIN
TEXTUAL-CONVENTION MACRO ::=
BEGIN
    TYPE NOTATION ::=
                  "DISPLAY-HINT" Text
                  "STATUS" Status
                  "DESCRIPTION" Text
                  "SYNTAX" Syntax
    VALUE NOTATION ::=
                  value(VALUE Syntax)
END

FooString ::= TEXTUAL-CONVENTION
    DISPLAY-HINT "255a"
    STATUS       current
    DESCRIPTION  "A printable string."
    SYNTAX       OCTET STRING (SIZE (0..255))
END`)

	require.Len(t, mods, 1)
	obj := mods[0].Object("FooString")
	require.NotNil(t, obj)
	require.Equal(t, "TEXTUAL-CONVENTION", obj.Macro)
	require.Equal(t, "OCTET STRING", obj.Syntax)
	require.Equal(t, []mib.Range{{Min: 0, Max: 255}}, obj.Ranges)
	require.Equal(t, "255a", obj.Extra["DISPLAY-HINT"])
	require.Empty(t, obj.OidExpr)
}

func TestSingleDescriptionCollapse(t *testing.T) {
	_, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
fooCount OBJECT-TYPE
    SYNTAX      Counter32
    MAX-ACCESS  read-only
    STATUS      current
    DESCRIPTION "Only description."
    ::= { foo 2 }
END`)

	obj := mod.Object("fooCount")
	require.NotNil(t, obj)
	require.Equal(t, "Only description.", obj.Description)
	require.Nil(t, obj.Revisions)
}

func TestRevisionHistoryRetained(t *testing.T) {
	_, mod := compileOne(t, `
FOO-MIB DEFINITIONS ::= BEGIN
MODULE-IDENTITY MACRO ::=
BEGIN
    TYPE NOTATION ::=
                  "LAST-UPDATED" value(Update ExtUTCTime)
                  "ORGANIZATION" Text
                  "CONTACT-INFO" Text
                  "DESCRIPTION" Text
                  "REVISION" value(Update ExtUTCTime)
    VALUE NOTATION ::=
                  value(VALUE OBJECT IDENTIFIER)
END

fooMIB MODULE-IDENTITY
    LAST-UPDATED "200210160000Z"
    ORGANIZATION "Example Org"
    CONTACT-INFO "foo@example.org"
    DESCRIPTION  "The primary description."
    REVISION     "200210160000Z"
    DESCRIPTION  "Second revision."
    REVISION     "199511090000Z"
    DESCRIPTION  "Initial revision."
    ::= { mgmt 99 }
END`)

	obj := mod.Object("fooMIB")
	require.NotNil(t, obj)
	require.Equal(t, "The primary description.", obj.Description)
	require.Equal(t, []mib.RevisionEntry{
		{Kind: mib.RevisionDescription, Value: "The primary description."},
		{Kind: mib.RevisionRevision, Value: "200210160000Z"},
		{Kind: mib.RevisionDescription, Value: "Second revision."},
		{Kind: mib.RevisionRevision, Value: "199511090000Z"},
		{Kind: mib.RevisionDescription, Value: "Initial revision."},
	}, obj.Revisions)
}

func TestMultipleModulesInOneFile(t *testing.T) {
	_, mods := compile(t, `
A-MIB DEFINITIONS ::= BEGIN
a OBJECT IDENTIFIER ::= { mib-2 1 }
END
B-MIB DEFINITIONS ::= BEGIN
b OBJECT IDENTIFIER ::= { a 1 }
END`)

	require.Len(t, mods, 2)
	require.Equal(t, "A-MIB", mods[0].Name)
	require.Equal(t, "B-MIB", mods[1].Name)
	require.NotNil(t, mods[0].Object("a"))
	require.NotNil(t, mods[1].Object("b"))
}
