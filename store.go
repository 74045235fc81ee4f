package mibtext

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/golangsnmp/mibtext/basemibs"
	"github.com/golangsnmp/mibtext/internal/compiler"
	"github.com/golangsnmp/mibtext/internal/lexer"
	"github.com/golangsnmp/mibtext/internal/resolver"
	"github.com/golangsnmp/mibtext/internal/types"
	"github.com/golangsnmp/mibtext/mib"
)

// Store holds all compiled modules, keyed by module name. It is created
// once with the bundled base module set and grows as callers load
// additional files. The compile pipeline itself is single-threaded; the
// store serializes loads and queries so embedding hosts may share one
// instance across goroutines.
type Store struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	baseDir string
	modules map[string]*mib.Module
	order   []string
	diags   []mib.Diagnostic
	warned  map[string]bool
}

// New creates a Store and loads the bundled base module set.
func New(opts ...Option) (*Store, error) {
	var cfg storeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Store{
		logger:  cfg.logger,
		baseDir: cfg.baseDir,
		modules: make(map[string]*mib.Module),
		warned:  make(map[string]bool),
	}

	for _, name := range basemibs.Names() {
		text, err := s.readBase(name)
		if err != nil {
			return nil, err
		}
		s.compile(name, string(text), mib.OriginBase, "")
	}
	if s.logger != nil {
		s.logger.Info("base modules loaded", slog.Int("modules", len(s.order)))
	}
	return s, nil
}

// readBase returns a base module's text, preferring an override file in
// the configured base directory over the embedded copy.
func (s *Store) readBase(name string) ([]byte, error) {
	if s.baseDir != "" {
		path := filepath.Join(s.baseDir, name+".mib")
		if text, err := os.ReadFile(path); err == nil {
			return text, nil
		}
	}
	return basemibs.ReadModule(name)
}

// LoadFile reads a MIB file and compiles every module it defines.
// Malformed content is not an error: whatever compiles is kept and the
// problems are reported through Diagnostics.
func (s *Store) LoadFile(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mibtext: %w", err)
	}
	label := filepath.Base(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.compile(label, string(text), mib.OriginFile, path)
	return nil
}

// LoadString compiles module text already held in memory, e.g. an unsaved
// editor buffer. The label names the source in diagnostics.
func (s *Store) LoadString(label, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compile(label, text, mib.OriginFile, "")
}

// compile runs the tokenize/compile pipeline for one text blob and adds
// the resulting modules. Callers must hold the write lock (or be New).
func (s *Store) compile(label, text string, origin mib.Origin, path string) {
	l := lexer.New(label, componentLogger(s.logger, "lexer"))
	rows := l.Tokenize(text)
	s.record(l.Diagnostics())

	c := compiler.New(componentLogger(s.logger, "compiler"))
	c.KnownModule = func(name string) bool { _, ok := s.modules[name]; return ok }
	c.LookupMacro = s.lookupMacro
	mods := c.Compile(rows, origin, path)
	s.record(c.Diagnostics())

	for _, mod := range mods {
		if _, dup := s.modules[mod.Name]; dup {
			continue
		}
		s.modules[mod.Name] = mod
		s.order = append(s.order, mod.Name)
	}
}

func (s *Store) record(diags []types.Diagnostic) {
	for _, d := range diags {
		// Re-running resolution repeats soft failures; report each once.
		key := d.Code + "|" + d.Module + "|" + d.Message
		if s.warned[key] {
			continue
		}
		s.warned[key] = true
		pub := mib.Diagnostic{
			Severity: mib.Severity(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			Module:   d.Module,
			Line:     d.Line,
		}
		s.diags = append(s.diags, pub)
		if s.logger != nil {
			s.logger.Warn(pub.Message,
				slog.String("code", pub.Code),
				slog.String("module", pub.Module))
		}
	}
}

// lookupMacro finds a MACRO across all loaded modules, in load order.
func (s *Store) lookupMacro(name string) *mib.Macro {
	for _, modName := range s.order {
		if m, ok := s.modules[modName].Macros[name]; ok {
			return m
		}
	}
	return nil
}

// lookupObject finds a named object across all loaded modules, in load
// order. The first declaration of a name wins.
func (s *Store) lookupObject(name string) *mib.Object {
	for _, modName := range s.order {
		if o := s.modules[modName].Object(name); o != nil {
			return o
		}
	}
	return nil
}

// Module returns the named module, or nil.
func (s *Store) Module(name string) *mib.Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modules[name]
}

// Modules returns all loaded modules in load order.
func (s *Store) Modules() []*mib.Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*mib.Module, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.modules[name])
	}
	return out
}

// Object finds a named object across all loaded modules.
func (s *Store) Object(name string) *mib.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupObject(name)
}

// Diagnostics returns all diagnostics collected so far.
func (s *Store) Diagnostics() []mib.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.diags)
}

// Flatten resolves every object's OID and returns the flat metadata list
// for all objects with a resolved OID, across all modules in load order.
// Objects whose parent chain cannot be completed are excluded; their
// absence is the failure signal.
func (s *Store) Flatten() []mib.ObjectFlat {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := resolver.New(s.lookupObject, componentLogger(s.logger, "resolver"))
	var out []mib.ObjectFlat
	for _, name := range s.order {
		mod := s.modules[name]
		source := mod.Source()
		for _, obj := range mod.Objects {
			if !r.Resolve(obj) {
				continue
			}
			out = append(out, mib.Flatten(obj, source))
		}
	}
	s.record(r.Diagnostics())
	return out
}
