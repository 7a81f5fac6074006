package data

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"

	"github.com/idryzhov/libyang/lyerr"
	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/value"
	"github.com/idryzhov/libyang/xmlutil"
)

// LoadXML parses an XML document and binds it to the schemas loaded
// in ctx.  Elements are matched to schema nodes by namespace and
// local name; an element in no or an unknown namespace inherits its
// parent's module.  Values of non-string leafs are trimmed of
// surrounding whitespace before parsing.
func LoadXML(ctx *schema.Context, r io.Reader) (*Tree, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing XML document")
	}
	t := &Tree{}
	for el := doc.FirstChild; el != nil; el = el.NextSibling {
		if el.Type != xmlquery.ElementNode {
			continue
		}
		if err := loadElement(ctx, t, nil, nil, el); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func loadElement(ctx *schema.Context, t *Tree, parent *Node, parentMod *schema.Module, el *xmlquery.Node) error {
	mod := parentMod
	if el.NamespaceURI != "" {
		mod = ctx.ModuleByNamespace(el.NamespaceURI)
		if mod == nil {
			return lyerr.Reference(lyerr.WithMessagef(
				"element %q is in namespace %q of no loaded module", el.Data, el.NamespaceURI))
		}
	}
	if mod == nil {
		return lyerr.Reference(lyerr.WithMessagef(
			"top-level element %q carries no namespace", el.Data))
	}

	var psn *schema.Node
	if parent != nil {
		psn = parent.Schema
	}
	sn := schema.FindChild(psn, mod, el.Data, schema.AnyNodeKind, 0)
	if sn == nil {
		return lyerr.Reference(lyerr.WithMessagef(
			"element %q does not match a node of module %q", el.Data, mod.Name))
	}

	var literal string
	if sn.Kind&(schema.Leaf|schema.LeafList) != 0 {
		literal = el.InnerText()
		if sn.Type != value.TypeString {
			// surrounding indentation is not part of a typed value
			literal = strings.TrimSpace(literal)
		}
	}
	n, err := t.Add(parent, sn, literal)
	if err != nil {
		return err
	}
	if sn.Kind&(schema.Leaf|schema.LeafList) != 0 {
		if sn.Type == value.TypeInstanceID {
			n.Namespaces = xmlutil.CollectNamespaces(el)
		}
		return nil
	}
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if err := loadElement(ctx, t, n, mod, c); err != nil {
			return err
		}
	}
	return nil
}
