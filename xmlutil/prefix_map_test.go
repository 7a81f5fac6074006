package xmlutil

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nsAttr(prefix, uri string) xml.Attr {
	if prefix == "" {
		return xml.Attr{Name: xml.Name{Local: "xmlns"}, Value: uri}
	}
	return xml.Attr{Name: xml.Name{Space: "xmlns", Local: prefix}, Value: uri}
}

func TestPrefixMap(t *testing.T) {
	pmap := NewPrefixMap(
		nsAttr("b", "urn:b"),
		nsAttr("a", "urn:a"),
		nsAttr("", "urn:default"),
		xml.Attr{Name: xml.Name{Local: "operation"}, Value: "merge"},
	)

	assert.Equal(t, "urn:a", pmap.Namespace("a"))
	assert.Equal(t, "urn:b", pmap.Namespace("b"))
	assert.Equal(t, "urn:default", pmap.Namespace(""))
	assert.Equal(t, "", pmap.Namespace("nope"))

	assert.Equal(t, []string{"a"}, pmap.Prefix("urn:a"))
	assert.Nil(t, pmap.Prefix("urn:nope"))

	assert.Equal(t, []xml.Attr{
		nsAttr("", "urn:default"),
		nsAttr("a", "urn:a"),
		nsAttr("b", "urn:b"),
	}, pmap.Attr())
}

func TestPrefixMapPush(t *testing.T) {
	outer := NewPrefixMap(nsAttr("p", "urn:outer"), nsAttr("q", "urn:q"))

	// no declarations keeps the same map
	same := outer.Push(xml.Attr{Name: xml.Name{Local: "operation"}, Value: "merge"})
	assert.Equal(t, "urn:outer", same.Namespace("p"))

	inner := outer.Push(nsAttr("p", "urn:inner"))
	assert.Equal(t, "urn:inner", inner.Namespace("p"))
	assert.Equal(t, "urn:q", inner.Namespace("q"))
	// the outer scope is untouched
	assert.Equal(t, "urn:outer", outer.Namespace("p"))
}

func TestCollectNamespaces(t *testing.T) {
	const doc = `<root xmlns="urn:default" xmlns:a="urn:a">` +
		`<mid xmlns:b="urn:b"><leaf xmlns:a="urn:shadow"/></mid></root>`
	top, err := xmlquery.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	leaf := xmlquery.FindOne(top, "//leaf")
	require.NotNil(t, leaf)

	pmap := CollectNamespaces(leaf)
	assert.Equal(t, "urn:default", pmap.Namespace(""))
	assert.Equal(t, "urn:shadow", pmap.Namespace("a"))
	assert.Equal(t, "urn:b", pmap.Namespace("b"))
}
