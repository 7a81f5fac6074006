package path

import (
	"github.com/idryzhov/libyang/data"
	"github.com/idryzhov/libyang/lyerr"
	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/value"
)

// CompileInstanceID compiles the instance-identifier held by n, a
// leaf loaded from an XML document.  Prefixes in the value resolve
// against the namespace declarations that were in scope at the leaf
// element, which the XML loader records on the node.
func CompileInstanceID(ctx *schema.Context, n *data.Node) (*Path, error) {
	if n.Schema.Type != value.TypeInstanceID {
		return nil, lyerr.Validation(lyerr.WithMessagef(
			"node %q does not hold an instance-identifier", n.Schema.Name))
	}
	e, err := Parse(n.Value.String(), ParseOptions{
		Begin:  BeginAbsolute,
		Prefix: PrefixMandatory,
		Pred:   PredSimple,
	})
	if err != nil {
		return nil, err
	}
	return Compile(n.Schema.Module, nil, e, CompileOptions{
		Target:  TargetSingle,
		Format:  FormatXML,
		Resolve: XMLResolver(ctx, n.Namespaces),
	})
}
