package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idryzhov/libyang/value"
)

// testModule builds the schema tree used across the package tests:
//
//	module example (prefix ex) imports other (prefix ot)
//	  +--rw top
//	  |  +--rw l* [k1 k2]
//	  |  |  +--rw k1 string
//	  |  |  +--rw k2 int32
//	  |  |  +--rw val int32
//	  |  +--rw foo string
//	  |  +--rw ll* int32
//	  |  +--rw (ch)
//	  |  |  +--:(a) ca string
//	  |  |  +--:(b) cb string
//	  |  +--rw old string {status obsolete}
//	  +--x run { input { arg } output { res } }
//	  +--n event { reason }
func testModule() *Module {
	other := &Module{Name: "other", Namespace: "urn:example:other", Prefix: "ot"}
	other.Data = []*Node{{Kind: Leaf, Name: "oleaf", Module: other, Type: value.TypeString}}

	ex := &Module{
		Name:      "example",
		Namespace: "urn:example:ex",
		Prefix:    "ex",
		Revisions: []string{"2020-02-02", "2019-01-01"},
		Imports:   []Import{{Prefix: "ot", Module: other}},
	}

	top := &Node{Kind: Container, Name: "top", Module: ex}
	l := &Node{Kind: List, Name: "l", Module: ex, Parent: top}
	k1 := &Node{Kind: Leaf, Name: "k1", Module: ex, Parent: l, Type: value.TypeString}
	k2 := &Node{Kind: Leaf, Name: "k2", Module: ex, Parent: l, Type: value.TypeInt32}
	val := &Node{Kind: Leaf, Name: "val", Module: ex, Parent: l, Type: value.TypeInt32}
	l.Children = []*Node{k1, k2, val}
	l.Keys = []*Node{k1, k2}

	foo := &Node{Kind: Leaf, Name: "foo", Module: ex, Parent: top, Type: value.TypeString}
	ll := &Node{Kind: LeafList, Name: "ll", Module: ex, Parent: top, Type: value.TypeInt32}

	ch := &Node{Kind: Choice, Name: "ch", Module: ex, Parent: top}
	ca := &Node{Kind: Case, Name: "a", Module: ex, Parent: ch}
	caLeaf := &Node{Kind: Leaf, Name: "ca", Module: ex, Parent: ca, Type: value.TypeString}
	ca.Children = []*Node{caLeaf}
	cb := &Node{Kind: Case, Name: "b", Module: ex, Parent: ch}
	cbLeaf := &Node{Kind: Leaf, Name: "cb", Module: ex, Parent: cb, Type: value.TypeString}
	cb.Children = []*Node{cbLeaf}
	ch.Children = []*Node{ca, cb}

	old := &Node{Kind: Leaf, Name: "old", Module: ex, Parent: top, Type: value.TypeString, Status: Obsolete}

	top.Children = []*Node{l, foo, ll, ch, old}

	run := &Node{Kind: RPC, Name: "run", Module: ex}
	in := &Node{Kind: Input, Name: "input", Module: ex, Parent: run}
	arg := &Node{Kind: Leaf, Name: "arg", Module: ex, Parent: in, Type: value.TypeString}
	in.Children = []*Node{arg}
	out := &Node{Kind: Output, Name: "output", Module: ex, Parent: run}
	res := &Node{Kind: Leaf, Name: "res", Module: ex, Parent: out, Type: value.TypeInt32}
	out.Children = []*Node{res}
	run.Input, run.Output = in, out

	event := &Node{Kind: Notification, Name: "event", Module: ex}
	reason := &Node{Kind: Leaf, Name: "reason", Module: ex, Parent: event, Type: value.TypeString}
	event.Children = []*Node{reason}

	ex.Data = []*Node{top}
	ex.RPCs = []*Node{run}
	ex.Notifications = []*Node{event}
	return ex
}

func TestModulePrefixes(t *testing.T) {
	check := assert.New(t)
	ex := testModule()
	ot := ex.Imports[0].Module

	check.Equal(ex, ex.ModuleForPrefix("ex"))
	check.Equal(ex, ex.ModuleForPrefix(""))
	check.Equal(ot, ex.ModuleForPrefix("ot"))
	check.Nil(ex.ModuleForPrefix("nope"))

	check.Equal("ex", ex.PrefixForModule(ex))
	check.Equal("ot", ex.PrefixForModule(ot))
	check.Equal("", ot.PrefixForModule(ex))

	check.Equal("2020-02-02", ex.Revision())
	check.Equal("", ot.Revision())
}

func TestNodeHelpers(t *testing.T) {
	check := assert.New(t)
	ex := testModule()
	top := ex.Data[0]
	l := top.Children[0]
	k1, val := l.Children[0], l.Children[2]
	caLeaf := top.Children[3].Children[0].Children[0]

	check.True(k1.IsKey())
	check.False(val.IsKey())
	check.False(top.IsKey())

	// ".." from inside a choice steps over the choice/case levels
	check.Equal(top, caLeaf.DataParent())
	check.Equal(l, val.DataParent())
	check.Nil(top.DataParent())

	check.Equal("/ex:top/ex:l/ex:k1", k1.Path())
	check.Equal("/ex:top", top.Path())
}

func TestFindChild(t *testing.T) {
	ex := testModule()
	top := ex.Data[0]

	for _, tc := range []struct {
		name   string
		parent *Node
		child  string
		filter NodeKind
		flags  LookupFlags
		want   string
	}{
		{name: "top level", parent: nil, child: "top", want: "top"},
		{name: "top level rpc", parent: nil, child: "run", want: "run"},
		{name: "top level notification", parent: nil, child: "event", want: "event"},
		{name: "plain child", parent: top, child: "foo", want: "foo"},
		{name: "filter match", parent: top, child: "l", filter: List | LeafList, want: "l"},
		{name: "filter mismatch", parent: top, child: "l", filter: Leaf},
		{name: "choice transparency", parent: top, child: "ca", want: "ca"},
		{name: "choice opaque", parent: top, child: "ca", flags: WithChoice | WithCase},
		{name: "choice addressable", parent: top, child: "ch", flags: WithChoice, want: "ch"},
		{name: "obsolete hidden", parent: top, child: "old"},
		{name: "obsolete visible", parent: top, child: "old", flags: NoStateCheck, want: "old"},
		{name: "rpc input child", parent: ex.RPCs[0], child: "arg", want: "arg"},
		{name: "rpc output child", parent: ex.RPCs[0], child: "res", flags: OutputOnly, want: "res"},
		{name: "rpc wrong direction", parent: ex.RPCs[0], child: "res"},
		{name: "unknown", parent: top, child: "nope"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := FindChild(tc.parent, ex, tc.child, tc.filter, tc.flags)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tc.want, got.Name)
			}
		})
	}

	// module identity is part of the lookup key
	ot := ex.Imports[0].Module
	assert.Nil(t, FindChild(nil, ot, "top", 0, 0))
	assert.NotNil(t, FindChild(nil, ot, "oleaf", 0, 0))
}

func TestMatchKeyword(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Statement
		n    int
	}{
		{in: "input", want: StmtInput, n: 5},
		{in: "input {", want: StmtInput, n: 5},
		{in: "inputx", want: StmtNone},
		{in: "in", want: StmtNone},
		{in: "leaf-list", want: StmtLeafList, n: 9},
		{in: "leaf ", want: StmtLeaf, n: 4},
		{in: "leaf-listx", want: StmtNone},
		{in: "belongs-to;", want: StmtBelongsTo, n: 10},
		{in: "", want: StmtNone},
		{in: "42", want: StmtNone},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, n := MatchKeyword(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.n, n)
		})
	}
}

func TestStatementString(t *testing.T) {
	check := assert.New(t)
	check.Equal("leaf-list", StmtLeafList.String())
	check.Equal("unknown", StmtNone.String())
	check.Contains(Keywords(), "augment")
}

func TestNodeKindString(t *testing.T) {
	check := assert.New(t)
	check.Equal("container", Container.String())
	check.Equal("leaf-list", LeafList.String())
	check.Equal("RPC", RPC.String())
	check.Equal("unknown", (List | Leaf).String())
}
