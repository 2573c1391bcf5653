package xml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

const (
	DefaultVersion  = "1.0"
	DefaultEncoding = "utf-8"
)

// DefaultNS is the reserved prefix key under which a bare xmlns attribute
// is reported by Namespaces. The leading dollar keeps it from colliding
// with a declared prefix.
const DefaultNS = "$default"

var ErrNotFound = errors.New("node not found")

// Attribute is one name/value pair of an element. Attributes keep the
// order in which they were parsed or set.
type Attribute struct {
	Name  string
	Value string
}

// Document represents one XML file. Version is never empty: it falls back
// to DefaultVersion whenever it is unset.
type Document struct {
	Version    string
	Encoding   string
	Standalone string
	Root       *Node
}

func NewDocument() *Document {
	doc := Document{
		Version:  DefaultVersion,
		Encoding: DefaultEncoding,
	}
	return &doc
}

func (d *Document) version() string {
	if d.Version == "" {
		return DefaultVersion
	}
	return d.Version
}

// ParseString parses the given text into the document, updating it in
// place. The previous root, if any, is replaced once a new root element
// is seen.
func (d *Document) ParseString(str string) error {
	p := NewParser(strings.NewReader(str))
	return p.ParseInto(d)
}

func (d *Document) Write(w io.Writer) error {
	return NewWriter(w).Write(d)
}

func (d *Document) WriteString() (string, error) {
	var (
		buf bytes.Buffer
		err = d.Write(&buf)
	)
	return buf.String(), err
}

// Node represents one element. A Node owns its children exclusively and
// holds no reference to its parent. An empty Value means the node carries
// no text content.
type Node struct {
	Tag   string
	Attrs []Attribute
	Value string
	Nodes []*Node
}

func NewNode(tag string) *Node {
	return &Node{
		Tag: tag,
	}
}

// FindAll returns the direct children whose tag matches, comparing
// case-insensitively, in document order.
func (n *Node) FindAll(tag string) []*Node {
	var nodes []*Node
	for _, c := range n.Nodes {
		if strings.EqualFold(c.Tag, tag) {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Find resolves a path of tag names, one level per segment, and returns
// the first match of the final segment. It returns nil as soon as any
// segment has no match, and nil for an empty path.
func (n *Node) Find(path ...string) *Node {
	if len(path) == 0 {
		return nil
	}
	ix := n.index(path[0])
	if ix < 0 {
		return nil
	}
	if len(path) == 1 {
		return n.Nodes[ix]
	}
	return n.Nodes[ix].Find(path[1:]...)
}

// FindStrict behaves like Find but reports which segment failed to
// resolve instead of returning nil.
func (n *Node) FindStrict(path ...string) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	ix := n.index(path[0])
	if ix < 0 {
		return nil, fmt.Errorf("%w: %s has no child %s", ErrNotFound, n.Tag, path[0])
	}
	if len(path) == 1 {
		return n.Nodes[ix], nil
	}
	return n.Nodes[ix].FindStrict(path[1:]...)
}

// Index returns the position of the first direct child matching tag, or
// -1 when there is none.
func (n *Node) Index(tag string) int {
	return n.index(tag)
}

func (n *Node) index(tag string) int {
	return slices.IndexFunc(n.Nodes, func(c *Node) bool {
		return strings.EqualFold(c.Tag, tag)
	})
}

// GetValue returns the value of the node at the given path, or the empty
// string when the path does not resolve.
func (n *Node) GetValue(path ...string) string {
	node := n.Find(path...)
	if node == nil {
		return ""
	}
	return node.Value
}

// SetValue decodes the given text and assigns it to the node at the given
// path. It is a no-op when the path does not resolve.
func (n *Node) SetValue(value string, path ...string) {
	node := n.Find(path...)
	if node != nil {
		node.Value = DecodeText(value)
	}
}

func (n *Node) GetNodes(path ...string) []*Node {
	node := n.Find(path...)
	if node == nil {
		return nil
	}
	return node.Nodes
}

func (n *Node) SetNodes(nodes []*Node, path ...string) {
	node := n.Find(path...)
	if node != nil {
		node.Nodes = nodes
	}
}

func (n *Node) GetAttributes(path ...string) []Attribute {
	node := n.Find(path...)
	if node == nil {
		return nil
	}
	return node.Attrs
}

func (n *Node) SetAttributes(attrs []Attribute, path ...string) {
	node := n.Find(path...)
	if node != nil {
		node.Attrs = attrs
	}
}

// GetAttr returns the value of the named attribute of this node.
func (n *Node) GetAttr(name string) (string, bool) {
	ix := slices.IndexFunc(n.Attrs, func(a Attribute) bool {
		return a.Name == name
	})
	if ix < 0 {
		return "", false
	}
	return n.Attrs[ix].Value, true
}

// SetAttr replaces the named attribute in place or appends it.
func (n *Node) SetAttr(name, value string) {
	ix := slices.IndexFunc(n.Attrs, func(a Attribute) bool {
		return a.Name == name
	})
	if ix < 0 {
		n.Attrs = append(n.Attrs, Attribute{Name: name, Value: value})
	} else {
		n.Attrs[ix].Value = value
	}
}

func (n *Node) DelAttr(name string) {
	n.Attrs = slices.DeleteFunc(n.Attrs, func(a Attribute) bool {
		return a.Name == name
	})
}

// InsertBefore inserts node immediately before the anchor addressed by
// path. The last segment names the anchor; the segments before it locate
// the anchor's parent, self when there are none. No-op when the path is
// empty or does not resolve.
func (n *Node) InsertBefore(node *Node, path ...string) {
	n.insert(node, path, 0)
}

// InsertAfter inserts node immediately after the anchor addressed by
// path. Resolution follows InsertBefore.
func (n *Node) InsertAfter(node *Node, path ...string) {
	n.insert(node, path, 1)
}

func (n *Node) insert(node *Node, path []string, offset int) {
	if len(path) == 0 {
		return
	}
	var (
		parent = n
		anchor = path[len(path)-1]
	)
	if len(path) > 1 {
		parent = n.Find(path[:len(path)-1]...)
	}
	if parent == nil {
		return
	}
	ix := parent.index(anchor)
	if ix < 0 {
		return
	}
	parent.Nodes = slices.Insert(parent.Nodes, ix+offset, node)
}

// Namespaces maps namespace prefixes to URIs by scanning the attributes
// declared on this node. A bare xmlns attribute is reported under
// DefaultNS. Prefixes that themselves contain colons are joined back
// together.
func (n *Node) Namespaces() map[string]string {
	ns := make(map[string]string)
	for _, a := range n.Attrs {
		if !strings.HasPrefix(a.Name, "xmlns") {
			continue
		}
		parts := strings.Split(a.Name, ":")
		var prefix string
		switch len(parts) {
		case 1:
			prefix = DefaultNS
		case 2:
			prefix = parts[1]
		default:
			prefix = strings.Join(parts[1:], ":")
		}
		ns[prefix] = a.Value
	}
	return ns
}

// IsEmpty reports whether the node carries no value, no attributes, and
// only (recursively) empty children. Empty nodes are elided entirely on
// serialization.
func (n *Node) IsEmpty() bool {
	if n.Value != "" || len(n.Attrs) > 0 {
		return false
	}
	return n.nodesEmpty()
}

func (n *Node) nodesEmpty() bool {
	for _, c := range n.Nodes {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	return n.Tag
}
