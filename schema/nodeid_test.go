package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idryzhov/libyang/lyerr"
)

func TestResolveNodeIDAbsolute(t *testing.T) {
	ex := testModule()

	for _, tc := range []struct {
		name   string
		nodeid string
		filter NodeKind
		want   string
		flags  ResultFlags
		kind   lyerr.Kind
		hasErr bool
	}{
		{name: "container", nodeid: "/ex:top", want: "top"},
		{name: "unprefixed", nodeid: "/top/foo", want: "foo"},
		{name: "list leaf", nodeid: "/ex:top/ex:l/ex:k1", want: "k1"},
		{name: "choice explicit", nodeid: "/ex:top/ex:ch/ex:a/ex:ca", want: "ca"},
		{name: "obsolete reachable", nodeid: "/ex:top/ex:old", want: "old"},
		{name: "notification flag", nodeid: "/ex:event/ex:reason", want: "reason", flags: FlagNotification},
		{name: "filter ok", nodeid: "/ex:top/ex:l", filter: List, want: "l"},
		{name: "filter denied", nodeid: "/ex:top/ex:l", filter: Leaf, hasErr: true, kind: lyerr.KindDenied},
		{name: "missing slash", nodeid: "ex:top", hasErr: true, kind: lyerr.KindReference},
		{name: "unknown prefix", nodeid: "/nope:top", hasErr: true, kind: lyerr.KindReference},
		{name: "unknown child", nodeid: "/ex:top/ex:nope", hasErr: true, kind: lyerr.KindReference},
		{name: "imported module top", nodeid: "/ot:oleaf", want: "oleaf"},
		// a trailing separator is tolerated, matching the resolver's
		// historically permissive end-of-string handling
		{name: "trailing slash", nodeid: "/ex:top/", want: "top"},
		{name: "bad separator", nodeid: "/ex:top!foo", hasErr: true, kind: lyerr.KindReference},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			node, flags, err := ResolveNodeID(tc.nodeid, nil, ex, tc.filter)
			if tc.hasErr {
				require.Error(t, err)
				check.True(lyerr.IsKind(err, tc.kind), "want %v, got %v", tc.kind, err)
				return
			}
			require.NoError(t, err)
			check.Equal(tc.want, node.Name)
			check.Equal(tc.flags, flags)
		})
	}
}

func TestResolveNodeIDDescendant(t *testing.T) {
	ex := testModule()
	top := ex.Data[0]
	run := ex.RPCs[0]

	t.Run("relative to container", func(t *testing.T) {
		node, flags, err := ResolveNodeID("l/k2", top, ex, 0)
		require.NoError(t, err)
		assert.Equal(t, "k2", node.Name)
		assert.Zero(t, flags)
	})

	t.Run("absolute form rejected", func(t *testing.T) {
		_, _, err := ResolveNodeID("/ex:top", top, ex, 0)
		assert.True(t, lyerr.IsKind(err, lyerr.KindReference))
	})

	t.Run("rpc input traversal", func(t *testing.T) {
		node, flags, err := ResolveNodeID("input/arg", run, ex, Leaf)
		require.NoError(t, err)
		assert.Equal(t, "arg", node.Name)
		assert.Equal(t, FlagRPCInput, flags)
	})

	t.Run("rpc output traversal", func(t *testing.T) {
		node, flags, err := ResolveNodeID("output/res", run, ex, 0)
		require.NoError(t, err)
		assert.Equal(t, "res", node.Name)
		assert.Equal(t, FlagRPCOutput, flags)
	})

	t.Run("rpc input filter denied", func(t *testing.T) {
		_, _, err := ResolveNodeID("input/arg", run, ex, Container)
		assert.True(t, lyerr.IsKind(err, lyerr.KindDenied))
	})

	// an RPC context followed by anything but input/output resolves to
	// nothing; this is reported as not found, not as a syntax error
	t.Run("rpc other child", func(t *testing.T) {
		_, _, err := ResolveNodeID("arg", run, ex, 0)
		assert.True(t, lyerr.IsKind(err, lyerr.KindReference))
	})

	t.Run("rpc foreign module", func(t *testing.T) {
		_, _, err := ResolveNodeID("ot:input/arg", run, ex, 0)
		assert.True(t, lyerr.IsKind(err, lyerr.KindReference))
	})
}

// resolving a node-id, formatting the result and resolving again must
// land on the same node
func TestResolveFormatRoundTrip(t *testing.T) {
	ex := testModule()
	for _, nodeid := range []string{
		"/ex:top",
		"/ex:top/ex:foo",
		"/ex:top/ex:l/ex:k1",
	} {
		t.Run(nodeid, func(t *testing.T) {
			first, _, err := ResolveNodeID(nodeid, nil, ex, 0)
			require.NoError(t, err)
			again, _, err := ResolveNodeID(first.Path(), nil, ex, 0)
			require.NoError(t, err)
			assert.Same(t, first, again)
		})
	}
}

func TestCheckStatus(t *testing.T) {
	ex := testModule()
	ot := ex.Imports[0].Module

	check := assert.New(t)
	check.NoError(CheckStatus(Current, ex, "a", Current, ex, "b"))
	check.NoError(CheckStatus(Obsolete, ex, "a", Current, ex, "b"))
	check.NoError(CheckStatus(Deprecated, ex, "a", Deprecated, ex, "b"))
	// cross-module references are unrestricted
	check.NoError(CheckStatus(Current, ex, "a", Obsolete, ot, "b"))

	err := CheckStatus(Current, ex, "a", Deprecated, ex, "b")
	check.True(lyerr.IsKind(err, lyerr.KindDenied))
	err = CheckStatus(Deprecated, ex, "a", Obsolete, ex, "b")
	check.True(lyerr.IsKind(err, lyerr.KindDenied))
}
