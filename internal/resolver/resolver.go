// Package resolver converts an object's raw parent-chain expression
// (e.g. "mib-2 1" or "iso org(3) dod(6) 1") into a fully qualified
// numeric OID and its symbolic namespace path.
//
// Resolution walks the declared parent chain recursively across all
// loaded modules. Failure is soft: an object whose chain cannot be
// completed simply keeps an empty OID and is excluded from flattened
// output. Results are cached on the object, so re-resolution is
// idempotent given unchanged inputs.
package resolver

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/golangsnmp/mibtext/internal/types"
	"github.com/golangsnmp/mibtext/mib"
)

// Resolver resolves OIDs against a lookup over every loaded module.
type Resolver struct {
	// Lookup finds a named object across all loaded modules, in module
	// load order. Required.
	Lookup func(name string) *mib.Object

	diagnostics []types.Diagnostic
	types.Logger
}

// New returns a Resolver using the given cross-module lookup.
func New(lookup func(name string) *mib.Object, logger *slog.Logger) *Resolver {
	return &Resolver{Lookup: lookup, Logger: types.Logger{L: logger}}
}

// Diagnostics returns a copy of all collected diagnostics.
func (r *Resolver) Diagnostics() []types.Diagnostic {
	return slices.Clone(r.diagnostics)
}

// Resolve computes and caches the object's OID and namespace path.
// It reports whether the object is resolved afterwards.
func (r *Resolver) Resolve(obj *mib.Object) bool {
	return r.resolve(obj, make(map[*mib.Object]bool))
}

func (r *Resolver) resolve(obj *mib.Object, visiting map[*mib.Object]bool) bool {
	if obj.Resolved() {
		return true
	}
	if obj.OidExpr == "" {
		return false
	}

	members := strings.Fields(obj.OidExpr)
	if len(members) == 0 {
		return false
	}

	// Degenerate root: ::= { 0 0 } maps to the null node.
	if obj.OidExpr == "0 0" || (len(members) == 2 && members[0] == "0" && members[1] == "0") {
		obj.OID = "0.0"
		obj.Namespace = "null"
		return true
	}

	if len(members) < 2 {
		return false
	}

	parent, middles, suffix := members[0], members[1:len(members)-1], members[len(members)-1]

	var ids, names []string
	if parent == "iso" {
		// Well-known root; no module declares it.
		ids = append(ids, "1")
		names = append(names, "iso")
	} else {
		parentObj := r.Lookup(parent)
		if parentObj == nil {
			r.warn(obj, types.DiagOidParentNotFound,
				fmt.Sprintf("%s: parent %s not found in any loaded module", obj.Name, parent))
			return false
		}
		if visiting[parentObj] {
			r.warn(obj, types.DiagOidCycle,
				fmt.Sprintf("%s: cyclic parent chain through %s", obj.Name, parent))
			return false
		}
		visiting[obj] = true
		if !r.resolve(parentObj, visiting) {
			return false
		}
		ids = append(ids, parentObj.OID)
		names = append(names, parentObj.Namespace)
	}

	for _, m := range middles {
		name, num, ok := parseMember(m)
		if !ok {
			return false
		}
		ids = append(ids, num)
		names = append(names, name)
	}

	_, num, ok := parseMember(suffix)
	if !ok {
		return false
	}
	ids = append(ids, num)
	names = append(names, obj.Name)

	obj.OID = strings.Join(ids, ".")
	obj.Namespace = strings.Join(names, ".")
	if r.TraceEnabled() {
		r.Trace("resolved",
			slog.String("object", obj.Name),
			slog.String("oid", obj.OID),
			slog.String("namespace", obj.Namespace))
	}
	return true
}

func (r *Resolver) warn(obj *mib.Object, code, msg string) {
	r.diagnostics = append(r.diagnostics, types.Diagnostic{
		Severity: types.SeverityWarning,
		Code:     code,
		Message:  msg,
		Module:   obj.ModuleName,
		Line:     obj.Line,
	})
}

// parseMember interprets one chain member: either a bare non-negative
// number or the name(number) form used under the iso root.
func parseMember(m string) (name, num string, ok bool) {
	if isNumber(m) {
		return m, m, true
	}
	open := strings.IndexByte(m, '(')
	closing := strings.LastIndexByte(m, ')')
	if open <= 0 || closing <= open {
		return "", "", false
	}
	inner := m[open+1 : closing]
	if !isNumber(inner) {
		return "", "", false
	}
	return m[:open], inner, true
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
