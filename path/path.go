package path

import (
	"fmt"
	"strings"

	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/value"
)

// PredKind discriminates the predicate payload of a Segment.
type PredKind int

const (
	// PredNone marks a segment without predicates.
	PredNone PredKind = iota
	// PredPosition marks a positional predicate, [N].
	PredPosition
	// PredKeyList marks one or more key predicates, [k='v'].
	PredKeyList
	// PredLeafListValue marks a leaf-list value predicate, [.='v'].
	PredLeafListValue
)

var predKindNames = map[PredKind]string{
	PredNone:          "none",
	PredPosition:      "position",
	PredKeyList:       "key-list",
	PredLeafListValue: "leaf-list-value",
}

func (k PredKind) String() string {
	if s, ok := predKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PredKind(%d)", int(k))
}

// Predicate is one compiled predicate.  Which fields are meaningful
// is determined by the owning segment's PredKind.
type Predicate struct {
	// Key is the list key leaf a key predicate constrains.
	Key *schema.Node
	// Value is the comparison value of key and leaf-list predicates.
	Value value.Value
	// Position is the 1-based instance index of a position predicate.
	Position int
}

// Segment is one step of a compiled path: a schema node plus its
// predicates.
type Segment struct {
	Node       *schema.Node
	PredKind   PredKind
	Predicates []Predicate
}

// Path is a compiled path: an ordered list of schema-resolved
// segments.  Paths reference but do not own their schema nodes.
type Path struct {
	Segments []Segment

	leafref bool
}

// Absolute reports whether the path starts at a tree root.
func (p *Path) Absolute() bool {
	return len(p.Segments) > 0 && p.Segments[0].Node.DataParent() == nil
}

// Leafref reports whether the path was compiled in leafref mode and
// carries predicates that must be resolved against a context node
// before evaluation.
func (p *Path) Leafref() bool { return p.leafref }

// Dup returns an independent deep copy of the path.  The copy shares
// schema node references but no mutable state with the original.
func (p *Path) Dup() *Path {
	if p == nil {
		return nil
	}
	d := &Path{leafref: p.leafref}
	if p.Segments != nil {
		d.Segments = make([]Segment, len(p.Segments))
		for i, s := range p.Segments {
			d.Segments[i] = Segment{Node: s.Node, PredKind: s.PredKind}
			if s.Predicates != nil {
				d.Segments[i].Predicates = make([]Predicate, len(s.Predicates))
				copy(d.Segments[i].Predicates, s.Predicates)
			}
		}
	}
	return d
}

// String renders the path in canonical schema format, each segment
// prefixed with its module prefix and predicates in compiled order.
func (p *Path) String() string {
	var b strings.Builder
	for _, s := range p.Segments {
		b.WriteByte('/')
		b.WriteString(s.Node.Module.Prefix)
		b.WriteByte(':')
		b.WriteString(s.Node.Name)
		switch s.PredKind {
		case PredPosition:
			fmt.Fprintf(&b, "[%d]", s.Predicates[0].Position)
		case PredKeyList:
			for _, pr := range s.Predicates {
				fmt.Fprintf(&b, "[%s:%s='%s']", pr.Key.Module.Prefix, pr.Key.Name, pr.Value.String())
			}
		case PredLeafListValue:
			fmt.Fprintf(&b, "[.='%s']", s.Predicates[0].Value.String())
		}
	}
	return b.String()
}
