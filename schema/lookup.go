package schema

// LookupFlags control FindChild traversal
type LookupFlags uint

const (
	// WithChoice makes choice nodes addressable instead of looking
	// through them
	WithChoice LookupFlags = 1 << iota
	// WithCase makes case nodes addressable instead of looking
	// through them
	WithCase
	// OutputOnly descends into the output subtree of a traversed RPC
	// or action instead of the input subtree
	OutputOnly
	// NoStateCheck ignores status-based visibility restrictions
	NoStateCheck
)

// FindChild looks up the child of parent named (mod, name).  A nil
// parent searches the top-level nodes of mod, including its RPCs and
// notifications.  filter restricts the result's nodetype; a zero
// filter matches any nodetype.
//
// Without WithChoice/WithCase, choice and case levels are transparent:
// their contents are searched as if they were direct children of
// parent.  Without NoStateCheck, obsolete nodes are invisible.
func FindChild(parent *Node, mod *Module, name string, filter NodeKind, flags LookupFlags) *Node {
	return findIn(childSet(parent, mod, flags), mod, name, filter, flags)
}

func childSet(parent *Node, mod *Module, flags LookupFlags) []*Node {
	if parent == nil {
		set := make([]*Node, 0, len(mod.Data)+len(mod.RPCs)+len(mod.Notifications))
		set = append(set, mod.Data...)
		set = append(set, mod.RPCs...)
		return append(set, mod.Notifications...)
	}
	if parent.Kind&(RPC|Action) != 0 {
		op := parent.Input
		if flags&OutputOnly != 0 {
			op = parent.Output
		}
		if op == nil {
			return nil
		}
		return op.Children
	}
	return parent.Children
}

func findIn(nodes []*Node, mod *Module, name string, filter NodeKind, flags LookupFlags) *Node {
	for _, n := range nodes {
		if n.Kind == Choice && flags&WithChoice == 0 || n.Kind == Case && flags&WithCase == 0 {
			if m := findIn(n.Children, mod, name, filter, flags); m != nil {
				return m
			}
			continue
		}
		if flags&NoStateCheck == 0 && n.Status == Obsolete {
			continue
		}
		if n.Module != mod || n.Name != name {
			continue
		}
		if filter != 0 && n.Kind&filter == 0 {
			continue
		}
		return n
	}
	return nil
}
