package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/mibtext/internal/types"
	"github.com/golangsnmp/mibtext/mib"
)

func lookupIn(objects ...*mib.Object) func(string) *mib.Object {
	return func(name string) *mib.Object {
		for _, o := range objects {
			if o.Name == name {
				return o
			}
		}
		return nil
	}
}

func TestIsoRootResolution(t *testing.T) {
	obj := &mib.Object{Name: "foo", OidExpr: "iso 3 6 1 2 1 1"}
	r := New(lookupIn(), nil)

	require.True(t, r.Resolve(obj))
	require.Equal(t, "1.3.6.1.2.1.1", obj.OID)
	require.Equal(t, "iso.3.6.1.2.1.foo", obj.Namespace)
}

func TestIsoRootWithNamedMembers(t *testing.T) {
	obj := &mib.Object{Name: "internet", OidExpr: "iso org(3) dod(6) 1"}
	r := New(lookupIn(), nil)

	require.True(t, r.Resolve(obj))
	require.Equal(t, "1.3.6.1", obj.OID)
	require.Equal(t, "iso.org.dod.internet", obj.Namespace)
}

func TestZeroRootSpecialCase(t *testing.T) {
	obj := &mib.Object{Name: "zeroDotZero", OidExpr: "0 0"}
	r := New(lookupIn(), nil)

	require.True(t, r.Resolve(obj))
	require.Equal(t, "0.0", obj.OID)
	require.Equal(t, "null", obj.Namespace)
}

func TestCrossModuleChain(t *testing.T) {
	internet := &mib.Object{Name: "internet", ModuleName: "A-MIB", OidExpr: "iso org(3) dod(6) 1"}
	mgmt := &mib.Object{Name: "mgmt", ModuleName: "B-MIB", OidExpr: "internet 2"}
	mib2 := &mib.Object{Name: "mib-2", ModuleName: "B-MIB", OidExpr: "mgmt 1"}
	r := New(lookupIn(internet, mgmt, mib2), nil)

	require.True(t, r.Resolve(mib2))
	require.Equal(t, "1.3.6.1.2.1", mib2.OID)
	require.Equal(t, "iso.org.dod.internet.mgmt.mib-2", mib2.Namespace)

	// Parents resolved along the way are cached.
	require.Equal(t, "1.3.6.1.2", mgmt.OID)
}

func TestResolutionIsDeterministic(t *testing.T) {
	parent := &mib.Object{Name: "parent", OidExpr: "iso 3 6 1 4 1"}
	child := &mib.Object{Name: "child", OidExpr: "parent 7"}
	r := New(lookupIn(parent, child), nil)

	require.True(t, r.Resolve(child))
	first := child.OID

	require.True(t, r.Resolve(child))
	require.Equal(t, first, child.OID)
	require.Equal(t, "1.3.6.1.4.1.7", child.OID)
}

func TestIntermediateNumericArcs(t *testing.T) {
	parent := &mib.Object{Name: "enterprises", OidExpr: "iso 3 6 1 4 1"}
	obj := &mib.Object{Name: "deep", OidExpr: "enterprises 9 9 42"}
	r := New(lookupIn(parent, obj), nil)

	require.True(t, r.Resolve(obj))
	require.Equal(t, "1.3.6.1.4.1.9.9.42", obj.OID)
	require.Equal(t, "iso.3.6.1.4.enterprises.9.9.deep", obj.Namespace)
}

func TestMissingParentIsSoftFailure(t *testing.T) {
	obj := &mib.Object{Name: "orphan", ModuleName: "X-MIB", OidExpr: "noSuchParent 1"}
	r := New(lookupIn(), nil)

	require.False(t, r.Resolve(obj))
	require.Empty(t, obj.OID)
	require.Empty(t, obj.Namespace)

	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, types.DiagOidParentNotFound, diags[0].Code)
	require.Contains(t, diags[0].Message, "noSuchParent")
}

func TestCyclicParentChainTerminates(t *testing.T) {
	a := &mib.Object{Name: "a", OidExpr: "b 1"}
	b := &mib.Object{Name: "b", OidExpr: "a 1"}
	r := New(lookupIn(a, b), nil)

	require.False(t, r.Resolve(a))
	require.Empty(t, a.OID)

	diags := r.Diagnostics()
	require.NotEmpty(t, diags)
	require.Equal(t, types.DiagOidCycle, diags[0].Code)
}

func TestUnparseableExpressionFails(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "empty", expr: ""},
		{name: "single member", expr: "lonely"},
		{name: "non-numeric suffix", expr: "iso bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := &mib.Object{Name: "x", OidExpr: tt.expr}
			r := New(lookupIn(), nil)
			require.False(t, r.Resolve(obj))
			require.Empty(t, obj.OID)
		})
	}
}
