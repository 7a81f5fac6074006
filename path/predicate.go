package path

import (
	"strconv"

	"github.com/idryzhov/libyang/lyerr"
	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/value"
)

// compilePredicates consumes the bracket groups of the current
// segment and compiles them into typed predicates.  All groups of a
// segment must share one predicate kind, and key predicates may not
// repeat a key.
func (c *compiler) compilePredicates(node *schema.Node) (PredKind, []Predicate, error) {
	kind := PredNone
	var preds []Predicate

	for c.i < c.e.Len() && c.e.Token(c.i).Kind == TokBracketOpen {
		c.i++
		t := c.e.Token(c.i)

		var gk PredKind
		var pred Predicate
		var err error
		switch t.Kind {
		case TokNumber:
			gk = PredPosition
			pred, err = c.compilePosition(node, t)
		case TokDot:
			gk = PredLeafListValue
			pred, err = c.compileLeafListValue(node, t)
		case TokNameTest:
			gk = PredKeyList
			pred, err = c.compileKey(node, t, preds)
		default:
			return PredNone, nil, lyerr.Syntax(
				lyerr.WithMessagef("unexpected %q as a predicate subject", t.Text),
				lyerr.WithPath(c.e.src[t.Pos:]),
			)
		}
		if err != nil {
			return PredNone, nil, err
		}

		if kind == PredNone {
			kind = gk
		} else if kind != gk {
			return PredNone, nil, lyerr.Syntax(
				lyerr.WithMessagef("cannot mix %s and %s predicates on one node", kind, gk),
				lyerr.WithPath(c.e.src[t.Pos:]),
			)
		} else if gk != PredKeyList {
			return PredNone, nil, lyerr.Syntax(
				lyerr.WithMessagef("duplicate %s predicate", gk),
				lyerr.WithPath(c.e.src[t.Pos:]),
			)
		}
		preds = append(preds, pred)

		if c.i >= c.e.Len() || c.e.Token(c.i).Kind != TokBracketClose {
			return PredNone, nil, lyerr.Syntax(
				lyerr.WithMessage("expected a closing bracket"),
				lyerr.WithPath(c.e.String()),
			)
		}
		c.i++
	}
	return kind, preds, nil
}

// compilePosition compiles a 1-based instance index, [N].
func (c *compiler) compilePosition(node *schema.Node, t Token) (Predicate, error) {
	if node.Kind&(schema.List|schema.LeafList) == 0 {
		return Predicate{}, lyerr.Syntax(
			lyerr.WithMessagef("position predicate on %s %q", node.Kind, node.Name),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	pos, err := strconv.Atoi(t.Text)
	if err != nil || pos < 1 {
		return Predicate{}, lyerr.Syntax(
			lyerr.WithMessagef("invalid position %q, positions start at 1", t.Text),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	c.i++
	return Predicate{Position: pos}, nil
}

// compileLeafListValue compiles a [.='value'] predicate against the
// leaf-list's own type.
func (c *compiler) compileLeafListValue(node *schema.Node, t Token) (Predicate, error) {
	if node.Kind != schema.LeafList {
		return Predicate{}, lyerr.Syntax(
			lyerr.WithMessagef("leaf-list value predicate on %s %q", node.Kind, node.Name),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	c.i++ // '.'
	lit, err := c.predicateValue()
	if err != nil {
		return Predicate{}, err
	}
	v, err := value.Parse(node.Type, lit.Text)
	if err != nil {
		return Predicate{}, lyerr.Validation(
			value.WithInvalidLiteral(node.Type, lit.Text),
			lyerr.WithPath(c.e.src[lit.Pos:]),
		)
	}
	return Predicate{Value: v}, nil
}

// compileKey compiles a [key='value'] predicate: the subject must
// resolve to a declared key leaf of the list, unseen so far.
func (c *compiler) compileKey(node *schema.Node, t Token, seen []Predicate) (Predicate, error) {
	if node.Kind != schema.List {
		return Predicate{}, lyerr.Syntax(
			lyerr.WithMessagef("key predicate on %s %q", node.Kind, node.Name),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	prefix, name := splitNameTest(t.Text)
	mod := node.Module
	if prefix != "" || c.opts.Format == FormatSchema {
		var err error
		mod, err = c.stepModule(prefix, node.Module, false, t)
		if err != nil {
			return Predicate{}, err
		}
	}
	key := schema.FindChild(node, mod, name, schema.Leaf, 0)
	if key == nil {
		return Predicate{}, lyerr.Reference(
			lyerr.WithMessagef("leaf %q not found in list %q", name, node.Name),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	if !key.IsKey() {
		return Predicate{}, lyerr.Reference(
			lyerr.WithMessagef("leaf %q is not a key of list %q", name, node.Name),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	for _, p := range seen {
		if p.Key == key {
			return Predicate{}, lyerr.Syntax(
				lyerr.WithMessagef("duplicate predicate for key %q", name),
				lyerr.WithPath(c.e.src[t.Pos:]),
			)
		}
	}
	c.i++ // name test
	lit, err := c.predicateValue()
	if err != nil {
		return Predicate{}, err
	}
	v, err := value.Parse(key.Type, lit.Text)
	if err != nil {
		return Predicate{}, lyerr.Validation(
			value.WithInvalidLiteral(key.Type, lit.Text),
			lyerr.WithPath(c.e.src[lit.Pos:]),
		)
	}
	return Predicate{Key: key, Value: v}, nil
}

// predicateValue consumes "='literal'" and returns the literal token.
func (c *compiler) predicateValue() (Token, error) {
	if c.i >= c.e.Len() || c.e.Token(c.i).Kind != TokEquals {
		return Token{}, lyerr.Syntax(
			lyerr.WithMessage("expected '=' after the predicate subject"),
			lyerr.WithPath(c.e.String()),
		)
	}
	c.i++
	if c.i >= c.e.Len() || c.e.Token(c.i).Kind != TokLiteral {
		return Token{}, lyerr.Syntax(
			lyerr.WithMessage("expected a quoted value in the predicate"),
			lyerr.WithPath(c.e.String()),
		)
	}
	t := c.e.Token(c.i)
	c.i++
	return t, nil
}
