package path

import (
	"github.com/idryzhov/libyang/lyerr"
	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/xmlutil"
)

// Format selects the prefix interpretation used while compiling.
type Format int

const (
	// FormatSchema resolves prefixes through the context module's
	// import table; unprefixed names belong to the context module.
	FormatSchema Format = iota
	// FormatXML resolves prefixes as XML namespace prefixes through
	// the caller's resolver.
	FormatXML
	// FormatJSON treats prefixes as module names; an unprefixed name
	// inherits the module of the previous segment.
	FormatJSON
)

// ResolvePrefixFunc maps a prefix to a module.  cur is the module the
// compilation started from.  A nil result means the prefix is
// unknown.
type ResolvePrefixFunc func(cur *schema.Module, prefix string, format Format) *schema.Module

// Oper selects which side of an RPC or action a path addresses.
type Oper int

const (
	// OperInput traverses RPC and action input children.
	OperInput Oper = iota
	// OperOutput traverses RPC and action output children.
	OperOutput
)

// Target selects how many instances a compiled path may address.
type Target int

const (
	// TargetSingle requires the path to identify at most one
	// instance; every list and leaf-list needs predicates.
	TargetSingle Target = iota
	// TargetMany allows the final segment to address a whole list or
	// leaf-list without predicates.
	TargetMany
)

// CompileOptions steers Compile.
type CompileOptions struct {
	// Leafref compiles in leafref mode: parent steps are followed
	// and predicates are carried without value compilation.
	Leafref bool
	// Oper selects RPC input or output traversal.
	Oper Oper
	// Target selects single- or many-instance cardinality.
	Target Target
	// Format selects the prefix interpretation.
	Format Format
	// Resolve maps prefixes to modules.  When nil, FormatSchema
	// resolution through the context module's imports is used.
	Resolve ResolvePrefixFunc
}

// SchemaResolver resolves prefixes through the import table of the
// module compilation started from.  It is the default resolver.
func SchemaResolver() ResolvePrefixFunc {
	return func(cur *schema.Module, prefix string, _ Format) *schema.Module {
		return cur.ModuleForPrefix(prefix)
	}
}

// XMLResolver resolves XML namespace prefixes to modules: ns holds
// the declarations in scope at the point the path was written, and
// ctx maps the bound namespace URI to a loaded module.
func XMLResolver(ctx *schema.Context, ns xmlutil.PrefixMap) ResolvePrefixFunc {
	return func(_ *schema.Module, prefix string, _ Format) *schema.Module {
		uri := ns.Namespace(prefix)
		if uri == "" {
			return nil
		}
		return ctx.ModuleByNamespace(uri)
	}
}

// JSONResolver resolves prefixes as module names per RFC7951.
func JSONResolver(ctx *schema.Context) ResolvePrefixFunc {
	return func(_ *schema.Module, prefix string, _ Format) *schema.Module {
		return ctx.Module(prefix)
	}
}

// Compile resolves a parsed expression against the schema tree and
// returns the compiled path.  curMod is the module prefixes resolve
// from; ctxNode is the starting node for descendant expressions and
// may be nil for absolute ones.
func Compile(curMod *schema.Module, ctxNode *schema.Node, e *Expr, opts CompileOptions) (*Path, error) {
	if curMod == nil {
		return nil, lyerr.Reference(lyerr.WithMessage("no context module for path compilation"))
	}
	resolve := opts.Resolve
	if resolve == nil {
		resolve = SchemaResolver()
	}

	c := &compiler{curMod: curMod, e: e, opts: opts, resolve: resolve}
	p := &Path{leafref: opts.Leafref}

	ctx := ctxNode
	if e.Len() > 0 && e.Token(0).Kind == TokSlash {
		ctx = nil
		c.i = 1
	} else if ctxNode == nil {
		return nil, lyerr.Reference(lyerr.WithMessage("no context node for a descendant path"), lyerr.WithPath(e.String()))
	}

	// Leading parent steps of a leafref path move the context up
	// without producing segments.
	for c.i < e.Len() && e.Token(c.i).Kind == TokDotDot {
		if !opts.Leafref {
			return nil, lyerr.NotSupported(lyerr.WithMessage("parent steps are only valid in leafref paths"), lyerr.WithPath(e.String()))
		}
		if ctx == nil {
			return nil, lyerr.Reference(lyerr.WithMessage("leafref path went above the schema root"), lyerr.WithPath(e.String()))
		}
		ctx = ctx.DataParent()
		c.i++
		if err := c.expectSlash(); err != nil {
			return nil, err
		}
	}

	prevMod := curMod
	for {
		node, err := c.step(ctx, prevMod, len(p.Segments) == 0)
		if err != nil {
			return nil, err
		}
		prevMod = node.Module

		seg := Segment{Node: node}
		if c.i < e.Len() && e.Token(c.i).Kind == TokBracketOpen {
			if opts.Leafref {
				if err := c.skipPredicates(); err != nil {
					return nil, err
				}
			} else {
				seg.PredKind, seg.Predicates, err = c.compilePredicates(node)
				if err != nil {
					return nil, err
				}
			}
		}

		last := c.i >= e.Len()
		if !opts.Leafref {
			if err := c.checkCardinality(node, seg, last); err != nil {
				return nil, err
			}
		}
		p.Segments = append(p.Segments, seg)
		if last {
			return p, nil
		}
		if err := c.expectSlash(); err != nil {
			return nil, err
		}
		ctx = node
	}
}

type compiler struct {
	curMod  *schema.Module
	e       *Expr
	i       int
	opts    CompileOptions
	resolve ResolvePrefixFunc
}

// step resolves one name test against the children of ctx.
func (c *compiler) step(ctx *schema.Node, prevMod *schema.Module, first bool) (*schema.Node, error) {
	t := c.e.Token(c.i)
	prefix, name := splitNameTest(t.Text)

	mod, err := c.stepModule(prefix, prevMod, first, t)
	if err != nil {
		return nil, err
	}

	var flags schema.LookupFlags
	if c.opts.Oper == OperOutput {
		flags |= schema.OutputOnly
	}
	node := schema.FindChild(ctx, mod, name, schema.AnyNodeKind, flags)
	if node == nil {
		return nil, lyerr.Reference(
			lyerr.WithMessagef("node %q not found in module %q", name, mod.Name),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	c.i++
	return node, nil
}

func (c *compiler) stepModule(prefix string, prevMod *schema.Module, first bool, t Token) (*schema.Module, error) {
	if prefix == "" {
		switch c.opts.Format {
		case FormatSchema:
			return c.curMod, nil
		case FormatJSON:
			if first {
				return nil, lyerr.Reference(
					lyerr.WithMessagef("the first node %q must carry a module name", t.Text),
					lyerr.WithPath(c.e.src[t.Pos:]),
				)
			}
			return prevMod, nil
		}
	}
	mod := c.resolve(c.curMod, prefix, c.opts.Format)
	if mod == nil {
		return nil, lyerr.Reference(
			lyerr.WithMessagef("prefix %q does not resolve to a module", prefix),
			lyerr.WithPath(c.e.src[t.Pos:]),
		)
	}
	return mod, nil
}

// checkCardinality enforces that multi-instance nodes carry the
// predicates their position in the path requires.
func (c *compiler) checkCardinality(node *schema.Node, seg Segment, last bool) error {
	many := last && c.opts.Target == TargetMany
	switch node.Kind {
	case schema.List:
		if seg.PredKind == PredNone && !many {
			return lyerr.Denied(
				lyerr.WithMessagef("list %q requires a predicate here", node.Name),
				lyerr.WithPath(c.e.String()),
			)
		}
		if seg.PredKind == PredKeyList && !coversAllKeys(node, seg.Predicates) && !many {
			return lyerr.Denied(
				lyerr.WithMessagef("predicates of list %q do not cover all its keys", node.Name),
				lyerr.WithPath(c.e.String()),
			)
		}
	case schema.LeafList:
		if seg.PredKind == PredNone && !many {
			return lyerr.Denied(
				lyerr.WithMessagef("leaf-list %q requires a predicate here", node.Name),
				lyerr.WithPath(c.e.String()),
			)
		}
	}
	return nil
}

func coversAllKeys(list *schema.Node, preds []Predicate) bool {
	for _, k := range list.Keys {
		found := false
		for _, p := range preds {
			if p.Key == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// skipPredicates advances past predicate tokens without compiling
// them, used in leafref mode where values resolve at validation time.
func (c *compiler) skipPredicates() error {
	for c.i < c.e.Len() && c.e.Token(c.i).Kind == TokBracketOpen {
		for {
			if c.i >= c.e.Len() {
				return lyerr.Syntax(lyerr.WithMessage("unexpected end of path inside a predicate"))
			}
			if c.e.Token(c.i).Kind == TokBracketClose {
				c.i++
				break
			}
			c.i++
		}
	}
	return nil
}

func (c *compiler) expectSlash() error {
	if c.i >= c.e.Len() || c.e.Token(c.i).Kind != TokSlash {
		return lyerr.Syntax(
			lyerr.WithMessage("expected a path separator"),
			lyerr.WithPath(c.e.String()),
		)
	}
	c.i++
	return nil
}
