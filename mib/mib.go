// Package mib defines the data model produced by MIB compilation:
// modules, objects, macros, and the flattened metadata records exposed
// to downstream consumers.
package mib

// Origin identifies where a module's text came from.
type Origin int

const (
	// OriginBase marks a module from the bundled base set, loaded at startup.
	OriginBase Origin = iota
	// OriginFile marks a module loaded from a user-supplied file.
	OriginFile
)

func (o Origin) String() string {
	if o == OriginFile {
		return "file"
	}
	return "base"
}

// Import records one dependency declared in a module's IMPORTS clause.
type Import struct {
	Module  string   // module the symbols come from
	Symbols []string // imported symbol names, in declaration order
}

// Module is a named collection of object declarations plus metadata.
// Modules persist for the lifetime of the store that compiled them.
type Module struct {
	Name       string
	Imports    []Import
	Objects    []*Object
	Macros     map[string]*Macro
	Origin     Origin
	SourcePath string // file path for OriginFile modules, "" for base modules

	byName map[string]*Object
}

// NewModule returns an empty module with the given name and origin.
func NewModule(name string, origin Origin) *Module {
	return &Module{
		Name:   name,
		Macros: make(map[string]*Macro),
		Origin: origin,
		byName: make(map[string]*Object),
	}
}

// AddObject appends an object and indexes it by name.
// The first declaration of a name wins; duplicates are ignored.
func (m *Module) AddObject(o *Object) {
	if _, dup := m.byName[o.Name]; dup {
		return
	}
	o.ModuleName = m.Name
	m.Objects = append(m.Objects, o)
	m.byName[o.Name] = o
}

// Object returns the named object, or nil.
func (m *Module) Object(name string) *Object {
	return m.byName[name]
}

// Source returns the value reported in flattened records: the file path
// for user-supplied modules, or the module name for bundled base modules.
func (m *Module) Source() string {
	if m.Origin == OriginFile && m.SourcePath != "" {
		return m.SourcePath
	}
	return m.Name
}
