package schema

import (
	"fmt"

	"github.com/idryzhov/libyang/value"
)

// NodeKind is a schema nodetype bitmask. Kinds combine into filter
// masks for lookups, e.g. List|LeafList.
type NodeKind uint16

const (
	Container NodeKind = 1 << iota
	Choice
	Leaf
	LeafList
	List
	AnyXML
	AnyData
	Case
	RPC
	Action
	Notification
	Uses
	Input
	Output
)

// AnyNodeKind matches every nodetype in a filter mask
const AnyNodeKind = NodeKind(1<<14 - 1)

func (k NodeKind) String() string {
	switch k {
	case Container:
		return "container"
	case Choice:
		return "choice"
	case Leaf:
		return "leaf"
	case LeafList:
		return "leaf-list"
	case List:
		return "list"
	case AnyXML:
		return "anyxml"
	case AnyData:
		return "anydata"
	case Case:
		return "case"
	case RPC:
		return "RPC"
	case Action:
		return "action"
	case Notification:
		return "notification"
	case Uses:
		return "uses"
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// Status is the YANG definition status
type Status uint8

const (
	Current Status = iota
	Deprecated
	Obsolete
)

func (s Status) String() string {
	switch s {
	case Current:
		return "current"
	case Deprecated:
		return "deprecated"
	case Obsolete:
		return "obsolete"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Import binds an imported module to its local prefix
type Import struct {
	Prefix string
	Module *Module
}

// Include binds an included submodule
type Include struct {
	Submodule *Submodule
}

// Submodule is a submodule included by its main module.  Only the
// parsed-tree parts that participate in scope checking are kept.
type Submodule struct {
	Name      string
	BelongsTo string
	Revisions []string
	Typedefs  []Typedef
	Groupings []Grouping
}

// Typedef is a parsed-tree typedef entry
type Typedef struct {
	Name string
	Base value.Type
}

// Grouping is a parsed-tree grouping entry
type Grouping struct {
	Name string
}

// Module is a YANG module: the unit of namespace assignment.
type Module struct {
	Name      string
	Namespace string
	Prefix    string
	// Revisions is sorted newest first; see SortRevisions
	Revisions []string

	Imports  []Import
	Includes []Include

	// parsed-tree representation used before compilation
	Typedefs  []Typedef
	Groupings []Grouping

	Data          []*Node
	RPCs          []*Node
	Notifications []*Node
}

// Revision returns the module's newest revision date, or the empty
// string when the module carries no revision statement
func (m *Module) Revision() string {
	if len(m.Revisions) == 0 {
		return ""
	}
	return m.Revisions[0]
}

// ModuleForPrefix returns the module bound to prefix in m's scope: m
// itself for m's own prefix or the empty prefix, otherwise the import
// bound to that prefix.  Returns nil for an unknown prefix.
func (m *Module) ModuleForPrefix(prefix string) *Module {
	if prefix == "" || prefix == m.Prefix {
		return m
	}
	for _, imp := range m.Imports {
		if imp.Prefix == prefix {
			return imp.Module
		}
	}
	return nil
}

// PrefixForModule returns the prefix bound to imp in m's scope: m's
// own prefix when imp is m, otherwise the import prefix.  Returns the
// empty string when imp is not imported by m.
func (m *Module) PrefixForModule(imp *Module) string {
	if imp == m {
		return m.Prefix
	}
	for _, i := range m.Imports {
		if i.Module == imp {
			return i.Prefix
		}
	}
	return ""
}

// Node is a single schema tree node.
//
// The Parent link is navigational only; a Node never owns its parent.
// Consumers holding node references (such as compiled paths) must not
// outlive the schema tree.
type Node struct {
	Kind   NodeKind
	Name   string
	Module *Module
	Parent *Node
	Status Status

	// Type is the declared value type of a leaf or leaf-list
	Type value.Type

	// Children holds the nodetype-specific child collection.  For RPC
	// and action nodes the children live under Input and Output
	// instead.
	Children []*Node
	// Keys are the declared key leaves of a list, in key statement
	// order; each entry is also present in Children
	Keys []*Node

	// Input and Output are the synthetic operation subtrees of an RPC
	// or action node
	Input  *Node
	Output *Node

	// locally scoped parsed-tree definitions
	Typedefs  []Typedef
	Groupings []Grouping
}

// IsKey reports whether n is a declared key leaf of its parent list
func (n *Node) IsKey() bool {
	if n.Parent == nil || n.Parent.Kind != List {
		return false
	}
	for _, k := range n.Parent.Keys {
		if k == n {
			return true
		}
	}
	return false
}

// DataParent returns the closest ancestor of n that instantiates a
// data node, looking through choice and case levels
func (n *Node) DataParent() *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind&(Choice|Case) == 0 {
			return p
		}
	}
	return nil
}

// Path returns the schema-qualified absolute path of n, such as
// "/mod:top/mod:list". Used in diagnostics and for the canonical form
// of compiled paths.
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	var s string
	for ; n != nil; n = n.Parent {
		s = "/" + n.Module.Prefix + ":" + n.Name + s
	}
	return s
}
