package path

import (
	"github.com/idryzhov/libyang/data"
	"github.com/idryzhov/libyang/lyerr"
)

// Eval walks the data tree holding start along the compiled path and
// returns the addressed node.  It fails with a not-found error when
// any segment has no matching instance.
func Eval(p *Path, start *data.Node) (*data.Node, error) {
	_, match, err := EvalPartial(p, start)
	if err != nil {
		if lyerr.IsKind(err, lyerr.KindPartial) {
			return nil, lyerr.NotFound(
				lyerr.WithMessagef("no instance of %q", p.String()),
			)
		}
		return nil, err
	}
	return match, nil
}

// EvalPartial walks the data tree as far as the path matches.  On a
// full match it returns the number of segments and the final node.
// When a deeper segment has no instance it returns how many segments
// matched, the deepest matched node, and a partial-match error
// carrying the index of the first unmatched segment.  When even the
// first segment has no instance the match is nil and the error is
// not-found.
func EvalPartial(p *Path, start *data.Node) (int, *data.Node, error) {
	if p.leafref {
		return 0, nil, lyerr.NotSupported(
			lyerr.WithMessage("leafref paths cannot be evaluated directly, resolve them against a context node first"),
		)
	}
	if len(p.Segments) == 0 {
		return 0, nil, lyerr.NotFound(lyerr.WithMessage("empty path"))
	}
	if start == nil {
		return 0, nil, lyerr.Reference(lyerr.WithMessage("no starting node for evaluation"))
	}

	var candidates []*data.Node
	if p.Absolute() {
		t := start.Tree()
		if t == nil {
			return 0, nil, lyerr.Reference(lyerr.WithMessage("starting node is not part of a tree"))
		}
		candidates = t.Roots
	} else {
		candidates = start.Children
	}

	var match *data.Node
	for i, seg := range p.Segments {
		found := matchSegment(seg, candidates)
		if found == nil {
			if i == 0 {
				return 0, nil, lyerr.NotFound(
					lyerr.WithMessagef("no instance of %q", p.String()),
				)
			}
			return i, match, lyerr.Partial(
				lyerr.WithMessagef("path matched only %d of %d segments", i, len(p.Segments)),
				lyerr.WithSegment(i),
				lyerr.WithPath(match.Path()),
			)
		}
		match = found
		candidates = found.Children
	}
	return len(p.Segments), match, nil
}

// matchSegment scans candidates in document order for the first node
// satisfying the segment's schema and predicates.
func matchSegment(seg Segment, candidates []*data.Node) *data.Node {
	pos := 0
	for _, c := range candidates {
		if c.Schema != seg.Node {
			continue
		}
		switch seg.PredKind {
		case PredNone:
			return c
		case PredPosition:
			pos++
			if pos == seg.Predicates[0].Position {
				return c
			}
		case PredKeyList:
			if matchKeys(seg.Predicates, c) {
				return c
			}
		case PredLeafListValue:
			if c.Value.Equal(seg.Predicates[0].Value) {
				return c
			}
		}
	}
	return nil
}

func matchKeys(preds []Predicate, c *data.Node) bool {
	for _, p := range preds {
		kc := c.ChildBySchema(p.Key)
		if kc == nil || !kc.Value.Equal(p.Value) {
			return false
		}
	}
	return true
}
