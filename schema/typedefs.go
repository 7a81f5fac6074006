package schema

import (
	"github.com/idryzhov/libyang/lyerr"

	"github.com/idryzhov/libyang/value"
)

// CheckTypedefs verifies that no two typedefs visible within mod share
// a name.  Two typedefs collide when either matches a built-in type
// name, both live in the same node's local set, one shadows an
// ancestor's definition, or both are top-level (including typedefs
// pulled in from submodules).
//
// The check runs in two phases over temporary name sets: all top-level
// and submodule typedefs populate a global set first, then every node
// carrying local typedefs is checked against its ancestors and against
// the fully populated global set.  The ordering makes the collision
// direction deterministic.
func CheckTypedefs(mod *Module) error {
	global := map[string]struct{}{}
	scoped := map[string]struct{}{}

	for i := range mod.Typedefs {
		if err := checkTypedef(mod.Typedefs, i, nil, global, scoped); err != nil {
			return err
		}
	}
	for _, inc := range mod.Includes {
		for i := range inc.Submodule.Typedefs {
			if err := checkTypedef(inc.Submodule.Typedefs, i, nil, global, scoped); err != nil {
				return err
			}
		}
	}
	return walkTypedefNodes(mod, func(n *Node) error {
		for i := range n.Typedefs {
			if err := checkTypedef(n.Typedefs, i, n, global, scoped); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkTypedef checks set[i] for collisions.  node is the schema node
// carrying the local typedef set, nil for a top-level typedef.
func checkTypedef(set []Typedef, i int, node *Node, global, scoped map[string]struct{}) error {
	name := set[i].Name

	if value.IsBuiltin(name) {
		return lyerr.DuplicateName(lyerr.WithMessagef(
			"invalid name %q of typedef - name collision with a built-in type", name))
	}

	if node != nil {
		// avoid name shadowing among locally scoped typedefs
		for _, prev := range set[:i] {
			if prev.Name == name {
				return lyerr.DuplicateName(lyerr.WithMessagef(
					"invalid name %q of typedef - name collision with sibling type", name))
			}
		}
		for parent := node.Parent; parent != nil; parent = parent.Parent {
			for _, t := range parent.Typedefs {
				if t.Name == name {
					return lyerr.DuplicateName(lyerr.WithMessagef(
						"invalid name %q of typedef - name collision with another scoped type", name))
				}
			}
		}

		scoped[name] = struct{}{}
		if _, clash := global[name]; clash {
			return lyerr.DuplicateName(lyerr.WithMessagef(
				"invalid name %q of typedef - scoped type collides with a top-level type", name))
		}
		return nil
	}

	if _, clash := global[name]; clash {
		return lyerr.DuplicateName(lyerr.WithMessagef(
			"invalid name %q of typedef - name collision with another top-level type", name))
	}
	global[name] = struct{}{}
	// collisions with scoped types need no test here: top-level
	// typedefs enter the tables before any scoped typedef, so the
	// scoped branch above reports them
	return nil
}

// CheckGroupings verifies grouping name uniqueness with the same
// scoping rules as CheckTypedefs, minus the built-in name class
func CheckGroupings(mod *Module) error {
	global := map[string]struct{}{}

	check := func(name string, node *Node) error {
		if node != nil {
			for parent := node.Parent; parent != nil; parent = parent.Parent {
				for _, g := range parent.Groupings {
					if g.Name == name {
						return lyerr.DuplicateName(lyerr.WithMessagef(
							"invalid name %q of grouping - name collision with another scoped grouping", name))
					}
				}
			}
			if _, clash := global[name]; clash {
				return lyerr.DuplicateName(lyerr.WithMessagef(
					"invalid name %q of grouping - scoped grouping collides with a top-level grouping", name))
			}
			return nil
		}
		if _, clash := global[name]; clash {
			return lyerr.DuplicateName(lyerr.WithMessagef(
				"invalid name %q of grouping - name collision with another top-level grouping", name))
		}
		global[name] = struct{}{}
		return nil
	}

	for _, g := range mod.Groupings {
		if err := check(g.Name, nil); err != nil {
			return err
		}
	}
	for _, inc := range mod.Includes {
		for _, g := range inc.Submodule.Groupings {
			if err := check(g.Name, nil); err != nil {
				return err
			}
		}
	}
	return walkTypedefNodes(mod, func(n *Node) error {
		for i, g := range n.Groupings {
			for _, prev := range n.Groupings[:i] {
				if prev.Name == g.Name {
					return lyerr.DuplicateName(lyerr.WithMessagef(
						"invalid name %q of grouping - name collision with sibling grouping", g.Name))
				}
			}
			if err := check(g.Name, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// walkTypedefNodes visits every node of mod's tree that can carry
// locally scoped typedefs or groupings, depth first
func walkTypedefNodes(mod *Module, fn func(*Node) error) error {
	var walk func(nodes []*Node) error
	walk = func(nodes []*Node) error {
		for _, n := range nodes {
			if len(n.Typedefs) > 0 || len(n.Groupings) > 0 {
				if err := fn(n); err != nil {
					return err
				}
			}
			if n.Kind&(RPC|Action) != 0 {
				for _, op := range []*Node{n.Input, n.Output} {
					if op == nil {
						continue
					}
					if len(op.Typedefs) > 0 || len(op.Groupings) > 0 {
						if err := fn(op); err != nil {
							return err
						}
					}
					if err := walk(op.Children); err != nil {
						return err
					}
				}
				continue
			}
			if err := walk(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(mod.Data); err != nil {
		return err
	}
	if err := walk(mod.RPCs); err != nil {
		return err
	}
	return walk(mod.Notifications)
}
