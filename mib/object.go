package mib

// RevisionKind distinguishes entries in an object's revision history.
type RevisionKind string

const (
	RevisionDescription RevisionKind = "DESCRIPTION"
	RevisionRevision    RevisionKind = "REVISION"
)

// RevisionEntry is one DESCRIPTION or REVISION clause, in declaration order.
type RevisionEntry struct {
	Kind  RevisionKind
	Value string
}

// NamedNumber is one member of an integer enumeration, e.g. up(1).
type NamedNumber struct {
	Name  string
	Value int64
}

// Range is a numeric or size constraint. A singleton has Min == Max.
type Range struct {
	Min int64
	Max int64
}

// Object represents one named MIB object or OID definition.
//
// OID and Namespace are empty until resolution succeeds for the object;
// their absence is the unresolved signal, not an error state.
type Object struct {
	Name       string
	ModuleName string
	Macro      string // MACRO template the declaration derives from
	OidExpr    string // raw parent-chain expression, e.g. "mib-2 1"
	OID        string // resolved dotted-numeric path, e.g. "1.3.6.1.2.1.1"
	Namespace  string // symbolic mirror of OID, e.g. "iso.org.dod.internet.mgmt.mib-2.system"

	Syntax      string
	Enums       []NamedNumber
	Ranges      []Range
	MaxAccess   string
	Status      string
	Description string
	Index       string
	Augments    string
	Units       string
	Revisions   []RevisionEntry

	// Extra holds values for genuinely macro-specific keys that have no
	// well-known field above.
	Extra map[string]string

	Line int // source row of the declaration, for diagnostics
}

// Resolved reports whether the object's OID has been computed.
func (o *Object) Resolved() bool {
	return o.OID != ""
}

// Table reports whether the object's syntax declares a conceptual table.
func (o *Object) Table() bool {
	return len(o.Syntax) >= len("SEQUENCE OF") && o.Syntax[:len("SEQUENCE OF")] == "SEQUENCE OF"
}

// SetExtra records a macro-specific key/value pair.
func (o *Object) SetExtra(key, value string) {
	if o.Extra == nil {
		o.Extra = make(map[string]string)
	}
	o.Extra[key] = value
}

// Macro is a MACRO definition: the template that determines which
// metadata keys an object declaration of that macro may carry.
type Macro struct {
	Name       string
	ModuleName string
	Keys       []string // TYPE NOTATION field keys, in declaration order
}

// HasKey reports whether the macro's TYPE NOTATION declares the given key.
func (m *Macro) HasKey(key string) bool {
	for _, k := range m.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// AddKey appends a TYPE NOTATION key if not already present.
func (m *Macro) AddKey(key string) {
	if !m.HasKey(key) {
		m.Keys = append(m.Keys, key)
	}
}
