package yin

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/idryzhov/libyang/lyerr"
	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/value"
)

// Namespace is the YIN XML namespace.
const Namespace = "urn:ietf:params:xml:ns:yang:yin:1"

var xpDocumentRoot = xpath.MustCompile(
	`/*[(local-name()='module' or local-name()='submodule') and namespace-uri()='` + Namespace + `']`)

// Parser loads YIN module documents into a schema context.
type Parser struct {
	// Context receives loaded modules and resolves already-loaded
	// imports.
	Context *schema.Context
	// Loader locates module and submodule sources by name and
	// revision.
	Loader *schema.Loader
	// Log receives warnings about skipped statements.  Defaults to
	// slog.Default.
	Log *slog.Logger

	loading map[string]bool
}

func (p *Parser) log() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

// LoadModule returns the module with the given name and revision,
// loading and parsing it if the context does not hold it yet.  An
// empty revision means the latest available.
func (p *Parser) LoadModule(name, revision string) (*schema.Module, error) {
	if revision == "" {
		if m := p.Context.Module(name); m != nil {
			return m, nil
		}
	} else if m := p.Context.ModuleRevision(name, revision); m != nil {
		return m, nil
	}

	if p.loading[name] {
		return nil, lyerr.Reference(lyerr.WithMessagef("circular dependency on module %q", name))
	}
	if p.loading == nil {
		p.loading = map[string]bool{}
	}
	p.loading[name] = true
	defer delete(p.loading, name)

	data, path, err := p.Loader.Load(name, revision)
	if err != nil {
		return nil, err
	}
	pr, err := p.parse(data)
	if err != nil {
		return nil, err
	}
	if pr.mod == nil {
		return nil, lyerr.Reference(lyerr.WithMessagef(
			"%q is a submodule and cannot be loaded as a module", name))
	}
	m := pr.mod
	if err := schema.CheckModuleSource(m, name, revision, path, p.log()); err != nil {
		return nil, err
	}

	for _, dep := range pr.imports {
		im, err := p.LoadModule(dep.name, dep.revision)
		if err != nil {
			return nil, err
		}
		if err := schema.CheckPrefix(m.Prefix, m.Imports, dep.prefix); err != nil {
			return nil, err
		}
		m.Imports = append(m.Imports, schema.Import{Prefix: dep.prefix, Module: im})
	}
	for _, dep := range pr.includes {
		sub, err := p.loadSubmodule(dep, m)
		if err != nil {
			return nil, err
		}
		m.Includes = append(m.Includes, schema.Include{Submodule: sub})
	}

	if err := p.resolveTypes(m, pr); err != nil {
		return nil, err
	}
	if err := schema.CheckTypedefs(m); err != nil {
		return nil, err
	}
	if err := schema.CheckGroupings(m); err != nil {
		return nil, err
	}
	if err := p.Context.AddModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) loadSubmodule(dep dependency, main *schema.Module) (*schema.Submodule, error) {
	data, _, err := p.Loader.Load(dep.name, dep.revision)
	if err != nil {
		return nil, err
	}
	pr, err := p.parse(data)
	if err != nil {
		return nil, err
	}
	if pr.sub == nil {
		return nil, lyerr.Reference(lyerr.WithMessagef(
			"%q is a module and cannot be included as a submodule", dep.name))
	}
	if err := schema.CheckSubmoduleSource(pr.sub, main.Name); err != nil {
		return nil, err
	}
	return pr.sub, nil
}

type dependency struct {
	name     string
	prefix   string
	revision string
}

// typeRef is a leaf type statement waiting for resolution; typedef
// chains may point forward in the document.
type typeRef struct {
	node *schema.Node
	name string
}

type parsed struct {
	mod *schema.Module
	sub *schema.Submodule

	imports  []dependency
	includes []dependency
	types    []typeRef
	// typedefBases maps a typedef name to the raw name of its base
	// type statement
	typedefBases map[string]string
}

func (p *Parser) parse(data []byte) (*parsed, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "parsing YIN document")
	}
	root := xmlquery.QuerySelector(doc, xpDocumentRoot)
	if root == nil {
		return nil, lyerr.Syntax(lyerr.WithMessage("document has no YIN module or submodule root"))
	}
	name := attrOf(root, "name")
	if name == "" {
		return nil, lyerr.Syntax(lyerr.WithMessage("module root carries no name"))
	}

	pr := &parsed{typedefBases: map[string]string{}}
	stmt, _ := schema.MatchKeyword(root.Data)
	switch stmt {
	case schema.StmtModule:
		pr.mod = &schema.Module{Name: name}
		err = p.parseModuleBody(pr, root)
	case schema.StmtSubmodule:
		pr.sub = &schema.Submodule{Name: name}
		err = p.parseSubmoduleBody(pr, root)
	}
	if err != nil {
		return nil, err
	}
	return pr, nil
}

func (p *Parser) parseModuleBody(pr *parsed, root *xmlquery.Node) error {
	m := pr.mod
	for _, el := range elements(root) {
		stmt, _ := schema.MatchKeyword(el.Data)
		switch stmt {
		case schema.StmtNamespace:
			m.Namespace = attrOf(el, "uri")
		case schema.StmtPrefix:
			m.Prefix = attrOf(el, "value")
		case schema.StmtImport:
			pr.imports = append(pr.imports, parseDependency(el))
		case schema.StmtInclude:
			pr.includes = append(pr.includes, parseDependency(el))
		case schema.StmtRevision:
			date := attrOf(el, "date")
			if err := schema.CheckRevisionDate(date); err != nil {
				return err
			}
			m.Revisions = append(m.Revisions, date)
		case schema.StmtTypedef:
			td, err := p.parseTypedef(pr, el)
			if err != nil {
				return err
			}
			m.Typedefs = append(m.Typedefs, td)
		case schema.StmtGrouping:
			m.Groupings = append(m.Groupings, schema.Grouping{Name: attrOf(el, "name")})
		case schema.StmtContainer, schema.StmtLeaf, schema.StmtLeafList, schema.StmtList,
			schema.StmtChoice, schema.StmtAnyxml, schema.StmtAnydata, schema.StmtUses:
			n, err := p.parseNode(m, nil, el, stmt, pr)
			if err != nil {
				return err
			}
			m.Data = append(m.Data, n)
		case schema.StmtRPC:
			n, err := p.parseNode(m, nil, el, stmt, pr)
			if err != nil {
				return err
			}
			m.RPCs = append(m.RPCs, n)
		case schema.StmtNotification:
			n, err := p.parseNode(m, nil, el, stmt, pr)
			if err != nil {
				return err
			}
			m.Notifications = append(m.Notifications, n)
		case schema.StmtYangVersion, schema.StmtOrganization, schema.StmtContact,
			schema.StmtDescription, schema.StmtReference:
			// header and meta statements do not affect path resolution
		case schema.StmtNone:
			p.log().Warn("skipping unknown statement", "statement", el.Data, "module", m.Name)
		}
	}
	schema.SortRevisions(m.Revisions)
	return nil
}

func (p *Parser) parseSubmoduleBody(pr *parsed, root *xmlquery.Node) error {
	sub := pr.sub
	for _, el := range elements(root) {
		stmt, _ := schema.MatchKeyword(el.Data)
		switch stmt {
		case schema.StmtBelongsTo:
			sub.BelongsTo = attrOf(el, "module")
		case schema.StmtRevision:
			date := attrOf(el, "date")
			if err := schema.CheckRevisionDate(date); err != nil {
				return err
			}
			sub.Revisions = append(sub.Revisions, date)
		case schema.StmtTypedef:
			td, err := p.parseTypedef(pr, el)
			if err != nil {
				return err
			}
			sub.Typedefs = append(sub.Typedefs, td)
		case schema.StmtGrouping:
			sub.Groupings = append(sub.Groupings, schema.Grouping{Name: attrOf(el, "name")})
		}
	}
	schema.SortRevisions(sub.Revisions)
	return nil
}

func parseDependency(el *xmlquery.Node) dependency {
	dep := dependency{name: attrOf(el, "module")}
	for _, c := range elements(el) {
		switch stmt, _ := schema.MatchKeyword(c.Data); stmt {
		case schema.StmtPrefix:
			dep.prefix = attrOf(c, "value")
		case schema.StmtRevisionDate:
			dep.revision = attrOf(c, "date")
		}
	}
	return dep
}

func (p *Parser) parseTypedef(pr *parsed, el *xmlquery.Node) (schema.Typedef, error) {
	td := schema.Typedef{Name: attrOf(el, "name")}
	for _, c := range elements(el) {
		if stmt, _ := schema.MatchKeyword(c.Data); stmt == schema.StmtType {
			base := attrOf(c, "name")
			td.Base = value.BuiltinType(base)
			pr.typedefBases[td.Name] = base
		}
	}
	if _, ok := pr.typedefBases[td.Name]; !ok {
		return td, lyerr.Syntax(lyerr.WithMessagef("typedef %q has no type statement", td.Name))
	}
	return td, nil
}

var nodeKinds = map[schema.Statement]schema.NodeKind{
	schema.StmtContainer:    schema.Container,
	schema.StmtLeaf:         schema.Leaf,
	schema.StmtLeafList:     schema.LeafList,
	schema.StmtList:         schema.List,
	schema.StmtChoice:       schema.Choice,
	schema.StmtCase:         schema.Case,
	schema.StmtAnyxml:       schema.AnyXML,
	schema.StmtAnydata:      schema.AnyData,
	schema.StmtUses:         schema.Uses,
	schema.StmtRPC:          schema.RPC,
	schema.StmtAction:       schema.Action,
	schema.StmtNotification: schema.Notification,
}

func (p *Parser) parseNode(m *schema.Module, parent *schema.Node, el *xmlquery.Node, stmt schema.Statement, pr *parsed) (*schema.Node, error) {
	n := &schema.Node{
		Kind:   nodeKinds[stmt],
		Name:   attrOf(el, "name"),
		Module: m,
		Parent: parent,
	}
	var keyExpr string
	for _, c := range elements(el) {
		cs, _ := schema.MatchKeyword(c.Data)
		switch cs {
		case schema.StmtContainer, schema.StmtLeaf, schema.StmtLeafList, schema.StmtList,
			schema.StmtChoice, schema.StmtCase, schema.StmtAnyxml, schema.StmtAnydata,
			schema.StmtUses, schema.StmtAction, schema.StmtNotification:
			child, err := p.parseNode(m, n, c, cs, pr)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case schema.StmtInput:
			in, err := p.parseOperationSide(m, n, c, schema.Input, pr)
			if err != nil {
				return nil, err
			}
			n.Input = in
		case schema.StmtOutput:
			out, err := p.parseOperationSide(m, n, c, schema.Output, pr)
			if err != nil {
				return nil, err
			}
			n.Output = out
		case schema.StmtType:
			if err := p.parseType(n, c, pr); err != nil {
				return nil, err
			}
		case schema.StmtKey:
			keyExpr = attrOf(c, "value")
		case schema.StmtStatus:
			st, err := parseStatus(attrOf(c, "value"))
			if err != nil {
				return nil, err
			}
			n.Status = st
		case schema.StmtTypedef:
			td, err := p.parseTypedef(pr, c)
			if err != nil {
				return nil, err
			}
			n.Typedefs = append(n.Typedefs, td)
		case schema.StmtGrouping:
			n.Groupings = append(n.Groupings, schema.Grouping{Name: attrOf(c, "name")})
		}
	}
	if n.Kind == schema.List {
		if err := resolveKeys(n, keyExpr); err != nil {
			return nil, err
		}
	}
	// RPCs and actions always have both operation sides, implicitly
	// empty when not declared
	if n.Kind&(schema.RPC|schema.Action) != 0 {
		if n.Input == nil {
			n.Input = &schema.Node{Kind: schema.Input, Name: "input", Module: m, Parent: n}
		}
		if n.Output == nil {
			n.Output = &schema.Node{Kind: schema.Output, Name: "output", Module: m, Parent: n}
		}
	}
	return n, nil
}

func (p *Parser) parseOperationSide(m *schema.Module, rpc *schema.Node, el *xmlquery.Node, kind schema.NodeKind, pr *parsed) (*schema.Node, error) {
	side := &schema.Node{Kind: kind, Name: kind.String(), Module: m, Parent: rpc}
	for _, c := range elements(el) {
		cs, _ := schema.MatchKeyword(c.Data)
		switch cs {
		case schema.StmtContainer, schema.StmtLeaf, schema.StmtLeafList, schema.StmtList,
			schema.StmtChoice, schema.StmtAnyxml, schema.StmtAnydata, schema.StmtUses:
			child, err := p.parseNode(m, side, c, cs, pr)
			if err != nil {
				return nil, err
			}
			side.Children = append(side.Children, child)
		case schema.StmtTypedef:
			td, err := p.parseTypedef(pr, c)
			if err != nil {
				return nil, err
			}
			side.Typedefs = append(side.Typedefs, td)
		case schema.StmtGrouping:
			side.Groupings = append(side.Groupings, schema.Grouping{Name: attrOf(c, "name")})
		}
	}
	return side, nil
}

func (p *Parser) parseType(n *schema.Node, el *xmlquery.Node, pr *parsed) error {
	name := attrOf(el, "name")
	pr.types = append(pr.types, typeRef{node: n, name: name})
	if name == value.TypeEnumeration.String() {
		for _, c := range elements(el) {
			if stmt, _ := schema.MatchKeyword(c.Data); stmt == schema.StmtEnum {
				if err := schema.CheckEnumName(attrOf(c, "name"), p.log()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func parseStatus(v string) (schema.Status, error) {
	switch v {
	case "current":
		return schema.Current, nil
	case "deprecated":
		return schema.Deprecated, nil
	case "obsolete":
		return schema.Obsolete, nil
	}
	return schema.Current, lyerr.Syntax(lyerr.WithMessagef("invalid status %q", v))
}

func resolveKeys(list *schema.Node, keyExpr string) error {
	for _, name := range strings.Fields(keyExpr) {
		key := schema.FindChild(list, list.Module, name, schema.Leaf, schema.NoStateCheck)
		if key == nil {
			return lyerr.Reference(lyerr.WithMessagef(
				"key %q is not a leaf of list %q", name, list.Name))
		}
		list.Keys = append(list.Keys, key)
	}
	return nil
}

// resolveTypes replaces the recorded raw type names with base types,
// following typedef chains across the module and its imports.
func (p *Parser) resolveTypes(m *schema.Module, pr *parsed) error {
	for _, tr := range pr.types {
		t, err := p.resolveTypeName(m, tr.name, pr)
		if err != nil {
			return err
		}
		tr.node.Type = t
	}
	for i := range m.Typedefs {
		t, err := p.resolveTypeName(m, pr.typedefBases[m.Typedefs[i].Name], pr)
		if err != nil {
			return err
		}
		m.Typedefs[i].Base = t
	}
	return nil
}

func (p *Parser) resolveTypeName(m *schema.Module, name string, pr *parsed) (value.Type, error) {
	seen := map[string]bool{}
	for {
		if i := strings.IndexByte(name, ':'); i >= 0 {
			prefix, local := name[:i], name[i+1:]
			dep := m.ModuleForPrefix(prefix)
			if dep == nil {
				return value.TypeUnknown, lyerr.Reference(lyerr.WithMessagef(
					"prefix %q of type %q does not resolve to a module", prefix, name))
			}
			if dep == m {
				name = local
				continue
			}
			for _, td := range dep.Typedefs {
				if td.Name == local {
					return td.Base, nil
				}
			}
			return value.TypeUnknown, lyerr.Reference(lyerr.WithMessagef(
				"type %q not found in module %q", local, dep.Name))
		}
		if t := value.BuiltinType(name); t != value.TypeUnknown {
			return t, nil
		}
		base, ok := pr.typedefBases[name]
		if !ok {
			return value.TypeUnknown, lyerr.Reference(lyerr.WithMessagef("unknown type %q", name))
		}
		if seen[name] {
			return value.TypeUnknown, lyerr.Reference(lyerr.WithMessagef(
				"typedef %q is part of a circular chain", name))
		}
		seen[name] = true
		name = base
	}
}

func elements(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func attrOf(n *xmlquery.Node, name string) string {
	for _, a := range n.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}
