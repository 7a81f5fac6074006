package path

import (
	"github.com/idryzhov/libyang/lyerr"
)

// Begin selects how a path may start.
type Begin int

const (
	// BeginAbsolute requires a leading '/'.
	BeginAbsolute Begin = iota
	// BeginEither accepts both absolute and descendant paths.
	BeginEither
)

// PrefixMode selects whether name tests require a prefix.
type PrefixMode int

const (
	// PrefixOptional accepts both prefixed and unprefixed names.
	PrefixOptional PrefixMode = iota
	// PrefixMandatory requires every name test to carry a prefix.
	PrefixMandatory
)

// PredMode selects the accepted predicate grammar.
type PredMode int

const (
	// PredKeys accepts key predicates only: [name='value'].
	PredKeys PredMode = iota
	// PredSimple additionally accepts position ([1]) and leaf-list
	// value ([.='value']) predicates.
	PredSimple
	// PredLeafref accepts leafref predicates:
	// [name=current()/../.../name].
	PredLeafref
)

// ParseOptions selects the grammar variant for Parse.
type ParseOptions struct {
	Begin   Begin
	Leafref bool
	Prefix  PrefixMode
	Pred    PredMode
}

// Parse tokenizes src and validates it against the grammar variant
// selected by opts.  The returned expression is ready for Compile.
func Parse(src string, opts ParseOptions) (*Expr, error) {
	e, err := scan(src)
	if err != nil {
		return nil, err
	}
	i := 0
	if err := parsePath(e, &i, opts); err != nil {
		return nil, err
	}
	if i < e.Len() {
		return nil, unexpectedToken(e, i, "end of path")
	}
	return e, nil
}

// ParsePredicate tokenizes and validates a bare predicate sequence,
// the form list keys appear in outside a full path.
func ParsePredicate(src string, opts ParseOptions) (*Expr, error) {
	e, err := scan(src)
	if err != nil {
		return nil, err
	}
	i := 0
	if err := parsePredicates(e, &i, opts); err != nil {
		return nil, err
	}
	if i < e.Len() {
		return nil, unexpectedToken(e, i, "end of predicate")
	}
	return e, nil
}

func parsePath(e *Expr, i *int, opts ParseOptions) error {
	if e.Len() == 0 {
		return lyerr.Syntax(lyerr.WithMessage("empty path"))
	}
	if e.Token(0).Kind == TokSlash {
		*i = 1
	} else if opts.Begin == BeginAbsolute {
		return unexpectedToken(e, 0, "path separator '/'")
	}
	// Leafref paths may climb with a leading run of parent steps.
	if opts.Leafref {
		for *i < e.Len() && e.Token(*i).Kind == TokDotDot {
			*i++
			if err := expect(e, i, TokSlash); err != nil {
				return err
			}
		}
	}
	for {
		if err := parseStep(e, i, opts); err != nil {
			return err
		}
		if *i >= e.Len() {
			return nil
		}
		if e.Token(*i).Kind != TokSlash {
			return unexpectedToken(e, *i, "path separator '/'")
		}
		*i++
	}
}

func parseStep(e *Expr, i *int, opts ParseOptions) error {
	if *i >= e.Len() {
		return lyerr.Syntax(lyerr.WithMessage("unexpected end of path, expected a node name"))
	}
	t := e.Token(*i)
	if t.Kind != TokNameTest {
		return unexpectedToken(e, *i, "node name")
	}
	if opts.Prefix == PrefixMandatory {
		if prefix, _ := splitNameTest(t.Text); prefix == "" {
			return lyerr.Syntax(
				lyerr.WithMessagef("missing mandatory prefix in %q", t.Text),
				lyerr.WithPath(e.src[t.Pos:]),
			)
		}
	}
	*i++
	return parsePredicates(e, i, opts)
}

func parsePredicates(e *Expr, i *int, opts ParseOptions) error {
	for *i < e.Len() && e.Token(*i).Kind == TokBracketOpen {
		*i++
		if err := parsePredicate(e, i, opts); err != nil {
			return err
		}
		if err := expect(e, i, TokBracketClose); err != nil {
			return err
		}
	}
	return nil
}

func parsePredicate(e *Expr, i *int, opts ParseOptions) error {
	if *i >= e.Len() {
		return lyerr.Syntax(lyerr.WithMessage("unexpected end of path inside a predicate"))
	}
	t := e.Token(*i)
	switch t.Kind {
	case TokNumber:
		if opts.Pred != PredSimple {
			return unexpectedToken(e, *i, "predicate subject")
		}
		*i++
		return nil
	case TokDot:
		if opts.Pred != PredSimple {
			return unexpectedToken(e, *i, "predicate subject")
		}
		*i++
		if err := expect(e, i, TokEquals); err != nil {
			return err
		}
		return expect(e, i, TokLiteral)
	case TokNameTest:
		if opts.Prefix == PrefixMandatory {
			if prefix, _ := splitNameTest(t.Text); prefix == "" {
				return lyerr.Syntax(
					lyerr.WithMessagef("missing mandatory prefix in %q", t.Text),
					lyerr.WithPath(e.src[t.Pos:]),
				)
			}
		}
		*i++
		if err := expect(e, i, TokEquals); err != nil {
			return err
		}
		if opts.Pred == PredLeafref {
			return parseLeafrefValue(e, i, opts)
		}
		return expect(e, i, TokLiteral)
	default:
		return unexpectedToken(e, *i, "predicate subject")
	}
}

// parseLeafrefValue parses the right-hand side of a leafref predicate:
// current() followed by one or more parent steps and one or more
// descendant name steps.
func parseLeafrefValue(e *Expr, i *int, opts ParseOptions) error {
	if err := expect(e, i, TokCurrent); err != nil {
		return err
	}
	if err := expect(e, i, TokSlash); err != nil {
		return err
	}
	if err := expect(e, i, TokDotDot); err != nil {
		return err
	}
	for *i < e.Len() && e.Token(*i).Kind == TokSlash {
		*i++
		t, err := peek(e, i)
		if err != nil {
			return err
		}
		if t.Kind == TokDotDot {
			*i++
			continue
		}
		if t.Kind != TokNameTest {
			return unexpectedToken(e, *i, "node name or '..'")
		}
		if opts.Prefix == PrefixMandatory {
			if prefix, _ := splitNameTest(t.Text); prefix == "" {
				return lyerr.Syntax(
					lyerr.WithMessagef("missing mandatory prefix in %q", t.Text),
					lyerr.WithPath(e.src[t.Pos:]),
				)
			}
		}
		*i++
	}
	return nil
}

func peek(e *Expr, i *int) (Token, error) {
	if *i >= e.Len() {
		return Token{}, lyerr.Syntax(lyerr.WithMessage("unexpected end of path"))
	}
	return e.Token(*i), nil
}

func expect(e *Expr, i *int, kind TokenKind) error {
	if *i >= e.Len() {
		return lyerr.Syntax(lyerr.WithMessagef("unexpected end of path, expected %q", kind.String()))
	}
	if e.Token(*i).Kind != kind {
		return unexpectedToken(e, *i, kind.String())
	}
	*i++
	return nil
}

func unexpectedToken(e *Expr, i int, want string) error {
	t := e.Token(i)
	return lyerr.Syntax(
		lyerr.WithMessagef("unexpected %q, expected %s", t.Text, want),
		lyerr.WithPath(e.src[t.Pos:]),
	)
}
