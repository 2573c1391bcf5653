package xml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbc-technology/vxml/xml"
)

func buildTree(t *testing.T) *xml.Node {
	t.Helper()
	doc, err := xml.ParseString(`<root><a><b><c>x</c></b></a><item id="1"/><Item id="2"/><other/></root>`)
	require.NoError(t, err)
	return doc.Root
}

func TestNodeFindAll(t *testing.T) {
	root := buildTree(t)
	items := root.FindAll("ITEM")
	require.Len(t, items, 2, "tag lookup is case-insensitive")
	assert.Equal(t, "item", items[0].Tag)
	assert.Equal(t, "Item", items[1].Tag)
	assert.Empty(t, root.FindAll("zzz"))
}

func TestNodeFindPath(t *testing.T) {
	root := buildTree(t)
	node := root.Find("a", "b", "c")
	require.NotNil(t, node)
	assert.Equal(t, "x", node.Value)

	assert.Nil(t, root.Find("a", "zzz"))
	assert.Nil(t, root.Find())
}

func TestNodeFindStrict(t *testing.T) {
	root := buildTree(t)
	node, err := root.FindStrict("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "b", node.Tag)

	_, err = root.FindStrict("a", "zzz")
	assert.ErrorIs(t, err, xml.ErrNotFound)
}

func TestNodeIndex(t *testing.T) {
	root := buildTree(t)
	assert.Equal(t, 1, root.Index("item"))
	assert.Equal(t, -1, root.Index("zzz"))
}

func TestNodeValues(t *testing.T) {
	root := buildTree(t)
	assert.Equal(t, "x", root.GetValue("a", "b", "c"))
	assert.Equal(t, "", root.GetValue("a", "zzz"))

	root.SetValue("text &amp; more", "a", "b", "c")
	assert.Equal(t, "text & more", root.GetValue("a", "b", "c"), "SetValue decodes entity references")

	root.SetValue("ignored", "a", "zzz")
}

func TestNodeAttributes(t *testing.T) {
	root := buildTree(t)
	attrs := root.GetAttributes("item")
	require.Len(t, attrs, 1)
	assert.Equal(t, "1", attrs[0].Value)

	node := root.Find("item")
	node.SetAttr("zeta", "z")
	node.SetAttr("alpha", "a")
	node.SetAttr("id", "9")
	want := []xml.Attribute{{Name: "id", Value: "9"}, {Name: "zeta", Value: "z"}, {Name: "alpha", Value: "a"}}
	assert.Equal(t, want, node.Attrs, "attribute order is insertion order, never sorted")

	node.DelAttr("zeta")
	_, ok := node.GetAttr("zeta")
	assert.False(t, ok)

	root.SetAttributes([]xml.Attribute{{Name: "k", Value: "v"}}, "other")
	v, ok := root.Find("other").GetAttr("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestNodeInsert(t *testing.T) {
	root := buildTree(t)

	root.InsertBefore(xml.NewNode("first"), "a")
	require.Equal(t, "first", root.Nodes[0].Tag)

	root.InsertAfter(xml.NewNode("last"), "other")
	require.Equal(t, "last", root.Nodes[len(root.Nodes)-1].Tag)

	// path form: anchor c inside a > b
	root.InsertBefore(xml.NewNode("sibling"), "a", "b", "c")
	b := root.Find("a", "b")
	require.Equal(t, "sibling", b.Nodes[0].Tag)
	require.Equal(t, "c", b.Nodes[1].Tag)

	// unresolved anchors and empty paths are no-ops
	before := len(root.Nodes)
	root.InsertBefore(xml.NewNode("nope"), "zzz")
	root.InsertAfter(xml.NewNode("nope"), "a", "zzz", "c")
	root.InsertBefore(xml.NewNode("nope"))
	assert.Len(t, root.Nodes, before)
}

func TestNodeSetNodes(t *testing.T) {
	root := buildTree(t)
	root.SetNodes([]*xml.Node{xml.NewNode("only")}, "a")
	nodes := root.GetNodes("a")
	require.Len(t, nodes, 1)
	assert.Equal(t, "only", nodes[0].Tag)
}

func TestNodeNamespaces(t *testing.T) {
	node := xml.NewNode("root")
	node.Attrs = []xml.Attribute{
		{Name: "xmlns", Value: "urn:default"},
		{Name: "xmlns:h", Value: "urn:h"},
		{Name: "xmlns:a:b", Value: "urn:odd"},
		{Name: "id", Value: "1"},
	}
	ns := node.Namespaces()
	assert.Equal(t, map[string]string{
		xml.DefaultNS: "urn:default",
		"h":           "urn:h",
		"a:b":         "urn:odd",
	}, ns)
}

func TestNodeIsEmpty(t *testing.T) {
	node := xml.NewNode("a")
	assert.True(t, node.IsEmpty())

	node.Nodes = append(node.Nodes, xml.NewNode("b"))
	assert.True(t, node.IsEmpty(), "a node whose only child is empty is empty")

	node.Nodes[0].Value = "v"
	assert.False(t, node.IsEmpty())

	node.Nodes[0].Value = ""
	node.Nodes[0].Attrs = []xml.Attribute{{Name: "k", Value: "v"}}
	assert.False(t, node.IsEmpty(), "attributes alone make a node non-empty")
}

func TestDocumentVersionNeverEmpty(t *testing.T) {
	doc := xml.NewDocument()
	assert.Equal(t, "1.0", doc.Version)

	doc.Version = ""
	str, err := doc.WriteString()
	require.NoError(t, err)
	assert.Contains(t, str, `version="1.0"`)
}

func TestErrNotFoundWrapping(t *testing.T) {
	root := buildTree(t)
	_, err := root.FindStrict("zzz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xml.ErrNotFound))
}
