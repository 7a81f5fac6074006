package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idryzhov/libyang/lyerr"
	"github.com/idryzhov/libyang/value"
)

func modWithTypedefs(top []Typedef, sub1, sub2 []Typedef, scoped map[string][]Typedef) *Module {
	m := &Module{Name: "m", Namespace: "urn:m", Prefix: "m", Typedefs: top}
	if sub1 != nil || sub2 != nil {
		m.Includes = []Include{
			{Submodule: &Submodule{Name: "m-sub1", BelongsTo: "m", Typedefs: sub1}},
			{Submodule: &Submodule{Name: "m-sub2", BelongsTo: "m", Typedefs: sub2}},
		}
	}

	c := &Node{Kind: Container, Name: "c", Module: m, Typedefs: scoped["c"]}
	inner := &Node{Kind: Container, Name: "inner", Module: m, Parent: c, Typedefs: scoped["inner"]}
	c.Children = []*Node{inner}
	m.Data = []*Node{c}
	return m
}

func TestCheckTypedefs(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mod    *Module
		hasErr bool
	}{
		{
			name: "distinct names",
			mod: modWithTypedefs(
				[]Typedef{{Name: "a", Base: value.TypeString}},
				[]Typedef{{Name: "b", Base: value.TypeInt32}},
				nil,
				map[string][]Typedef{"c": {{Name: "d"}}, "inner": {{Name: "e"}}}),
		},
		{
			name:   "builtin collision top-level",
			mod:    modWithTypedefs([]Typedef{{Name: "string"}}, nil, nil, nil),
			hasErr: true,
		},
		{
			name: "builtin collision scoped",
			mod: modWithTypedefs(nil, nil, nil,
				map[string][]Typedef{"inner": {{Name: "string"}}}),
			hasErr: true,
		},
		{
			name:   "two top-level",
			mod:    modWithTypedefs([]Typedef{{Name: "dup"}, {Name: "dup"}}, nil, nil, nil),
			hasErr: true,
		},
		{
			name: "same name in two submodules",
			mod: modWithTypedefs(nil,
				[]Typedef{{Name: "dup"}},
				[]Typedef{{Name: "dup"}},
				nil),
			hasErr: true,
		},
		{
			name: "module vs submodule",
			mod: modWithTypedefs([]Typedef{{Name: "dup"}},
				[]Typedef{{Name: "dup"}}, nil, nil),
			hasErr: true,
		},
		{
			name: "sibling collision",
			mod: modWithTypedefs(nil, nil, nil,
				map[string][]Typedef{"c": {{Name: "dup"}, {Name: "dup"}}}),
			hasErr: true,
		},
		{
			name: "descendant shadows ancestor",
			mod: modWithTypedefs(nil, nil, nil,
				map[string][]Typedef{"c": {{Name: "t"}}, "inner": {{Name: "t"}}}),
			hasErr: true,
		},
		{
			name: "scoped shadows top-level",
			mod: modWithTypedefs([]Typedef{{Name: "t"}}, nil, nil,
				map[string][]Typedef{"inner": {{Name: "t"}}}),
			hasErr: true,
		},
		{
			name: "same name different scopes allowed nowhere",
			mod: modWithTypedefs(nil, nil, nil,
				map[string][]Typedef{"c": {{Name: "a"}}, "inner": {{Name: "b"}}}),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTypedefs(tc.mod)
			if tc.hasErr {
				assert.True(t, lyerr.IsKind(err, lyerr.KindDuplicateName), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckTypedefsRPCScopes(t *testing.T) {
	// typedefs inside rpc input/output participate in scope checking
	m := &Module{Name: "m", Namespace: "urn:m", Prefix: "m",
		Typedefs: []Typedef{{Name: "t"}}}
	rpc := &Node{Kind: RPC, Name: "r", Module: m}
	in := &Node{Kind: Input, Name: "input", Module: m, Parent: rpc,
		Typedefs: []Typedef{{Name: "t"}}}
	rpc.Input = in
	m.RPCs = []*Node{rpc}

	err := CheckTypedefs(m)
	assert.True(t, lyerr.IsKind(err, lyerr.KindDuplicateName))
}

func TestCheckGroupings(t *testing.T) {
	check := assert.New(t)

	m := &Module{Name: "m", Namespace: "urn:m", Prefix: "m",
		Groupings: []Grouping{{Name: "g1"}, {Name: "g2"}}}
	c := &Node{Kind: Container, Name: "c", Module: m, Groupings: []Grouping{{Name: "g3"}}}
	m.Data = []*Node{c}
	check.NoError(CheckGroupings(m))

	c.Groupings = append(c.Groupings, Grouping{Name: "g1"})
	check.True(lyerr.IsKind(CheckGroupings(m), lyerr.KindDuplicateName))

	c.Groupings = []Grouping{{Name: "dup"}, {Name: "dup"}}
	check.True(lyerr.IsKind(CheckGroupings(m), lyerr.KindDuplicateName))
}
