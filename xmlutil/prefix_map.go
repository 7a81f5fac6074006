// Package xmlutil tracks XML namespace declarations.  Prefix maps
// back the XML prefix-resolution format of path compilation, where a
// document prefix names a namespace URI and the namespace names a
// module.
package xmlutil

import (
	"encoding/xml"
	"sort"

	"github.com/antchfx/xmlquery"
)

// PrefixMap maps XML namespace prefixes to namespace URIs.  The
// empty-string key holds the default namespace.
type PrefixMap map[string]string

// NewPrefixMap collects the xmlns declarations among attrs.  Both
// prefixed (xmlns:p="uri") and default (xmlns="uri") declarations are
// kept.
func NewPrefixMap(attrs ...xml.Attr) PrefixMap {
	pmap := PrefixMap{}
	pmap.add(attrs)
	return pmap
}

// Push returns a derived map for a nested element: a copy of m with
// the xmlns declarations among attrs layered on top.  When attrs
// declare nothing, m itself is returned.
func (m PrefixMap) Push(attrs ...xml.Attr) PrefixMap {
	var derived PrefixMap
	for _, attr := range attrs {
		if !isXMLNS(attr.Name) {
			continue
		}
		if derived == nil {
			derived = make(PrefixMap, len(m)+1)
			for k, v := range m {
				derived[k] = v
			}
		}
		derived[prefixOf(attr.Name)] = attr.Value
	}
	if derived == nil {
		return m
	}
	return derived
}

// Namespace returns the namespace URI bound to prefix, or the empty
// string.  The empty prefix reads the default namespace.
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

// Prefix returns the prefixes bound to the namespace URI.
func (m PrefixMap) Prefix(nsURI string) (pfxes []string) {
	for k, v := range m {
		if nsURI == v {
			pfxes = append(pfxes, k)
		}
	}
	sort.Strings(pfxes)
	return pfxes
}

// Attr renders the map as xmlns attributes, sorted by prefix with the
// default declaration first.
func (m PrefixMap) Attr() (a []xml.Attr) {
	for k, v := range m {
		if k == "" {
			a = append(a, xml.Attr{Name: xml.Name{Local: "xmlns"}, Value: v})
			continue
		}
		a = append(a, xml.Attr{Name: xml.Name{Space: "xmlns", Local: k}, Value: v})
	}
	if len(a) > 0 {
		sort.Slice(a, func(i, j int) bool {
			if a[i].Name.Space != a[j].Name.Space {
				return a[i].Name.Space < a[j].Name.Space
			}
			return a[i].Name.Local < a[j].Name.Local
		})
	}
	return a
}

// CollectNamespaces gathers the namespace declarations in scope at n,
// walking the element's ancestor chain so that outer declarations are
// visible and inner ones shadow them.
func CollectNamespaces(n *xmlquery.Node) PrefixMap {
	var chain []*xmlquery.Node
	for at := n; at != nil; at = at.Parent {
		if at.Type == xmlquery.ElementNode {
			chain = append(chain, at)
		}
	}
	pmap := PrefixMap{}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, attr := range chain[i].Attr {
			a := xml.Attr{Name: attr.Name, Value: attr.Value}
			if isXMLNS(a.Name) {
				pmap[prefixOf(a.Name)] = a.Value
			}
		}
	}
	return pmap
}

func (m PrefixMap) add(attrs []xml.Attr) {
	for _, attr := range attrs {
		if isXMLNS(attr.Name) {
			m[prefixOf(attr.Name)] = attr.Value
		}
	}
}

// isXMLNS recognizes both declaration spellings: the parsed form
// xmlns:p (Space "xmlns") and the bare default form xmlns.
func isXMLNS(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}

func prefixOf(n xml.Name) string {
	if n.Space == "xmlns" {
		return n.Local
	}
	return ""
}
