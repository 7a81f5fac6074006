package data

import (
	"strings"

	"github.com/idryzhov/libyang/lyerr"
	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/value"
	"github.com/idryzhov/libyang/xmlutil"
)

// Tree is an instance-data tree: an ordered forest of top-level
// nodes.
type Tree struct {
	Roots []*Node
}

// Node is one instance-data node.  Leaf and leaf-list nodes carry a
// Value; interior nodes carry Children in document order.
type Node struct {
	Schema   *schema.Node
	Parent   *Node
	Children []*Node
	Value    value.Value

	// Namespaces holds the XML namespace declarations that were in
	// scope at the element this node was loaded from.  The XML loader
	// fills it for leafs whose value embeds prefixed names, so the
	// prefixes can be resolved after the document is gone.
	Namespaces xmlutil.PrefixMap

	tree *Tree
}

// Add appends a node for sn under parent, or at the top level when
// parent is nil.  literal is parsed against the schema type for leaf
// kinds and must be empty otherwise.
func (t *Tree) Add(parent *Node, sn *schema.Node, literal string) (*Node, error) {
	n := &Node{Schema: sn, Parent: parent}
	if sn.Kind&(schema.Leaf|schema.LeafList) != 0 {
		v, err := value.Parse(sn.Type, literal)
		if err != nil {
			return nil, lyerr.Validation(
				value.WithInvalidLiteral(sn.Type, literal),
				lyerr.WithPath(sn.Path()),
			)
		}
		n.Value = v
	} else if literal != "" {
		return nil, lyerr.Validation(
			lyerr.WithMessagef("%s %q cannot carry a value", sn.Kind, sn.Name),
			lyerr.WithPath(sn.Path()),
		)
	}
	if parent == nil {
		n.tree = t
		t.Roots = append(t.Roots, n)
	} else {
		parent.Children = append(parent.Children, n)
	}
	return n, nil
}

// Tree returns the tree the node belongs to.
func (n *Node) Tree() *Tree {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r.tree
}

// ChildBySchema returns the first child bound to sn, or nil.
func (n *Node) ChildBySchema(sn *schema.Node) *Node {
	for _, c := range n.Children {
		if c.Schema == sn {
			return c
		}
	}
	return nil
}

// Path renders the node's instance path with list keys and leaf-list
// values, suitable for error reports.
func (n *Node) Path() string {
	var segs []string
	for at := n; at != nil; at = at.Parent {
		var b strings.Builder
		b.WriteString(at.Schema.Module.Prefix)
		b.WriteByte(':')
		b.WriteString(at.Schema.Name)
		switch at.Schema.Kind {
		case schema.List:
			for _, k := range at.Schema.Keys {
				if kc := at.ChildBySchema(k); kc != nil {
					b.WriteByte('[')
					b.WriteString(k.Name)
					b.WriteString("='")
					b.WriteString(kc.Value.String())
					b.WriteString("']")
				}
			}
		case schema.LeafList:
			b.WriteString("[.='")
			b.WriteString(at.Value.String())
			b.WriteString("']")
		}
		segs = append(segs, b.String())
	}
	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(segs[i])
	}
	return b.String()
}
