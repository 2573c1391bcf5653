package xml

import (
	"bufio"
	"io"
	"strings"

	"github.com/cbc-technology/vxml/casing"
)

const (
	langle   = '<'
	rangle   = '>'
	slash    = '/'
	quote    = '"'
	question = '?'
	equal    = '='
)

// Writer renders a document tree as indented text. Output is always
// canonically re-indented; nothing of the source formatting survives a
// parse/write round trip.
type Writer struct {
	writer *bufio.Writer

	// Indent is written once per nesting level.
	Indent string
	// CaseType, when set, rewrites element tags to the given case family
	// on output. Attribute names are left untouched.
	CaseType casing.CaseType
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: bufio.NewWriter(w),
		Indent: "\t",
	}
}

func (w *Writer) Write(doc *Document) error {
	w.writeProlog(doc)
	if doc.Root != nil {
		w.writeNode(doc.Root, 0)
	}
	return w.writer.Flush()
}

func (w *Writer) writeProlog(doc *Document) {
	attrs := []Attribute{
		{Name: "version", Value: doc.version()},
		{Name: "encoding", Value: doc.Encoding},
		{Name: "standalone", Value: doc.Standalone},
	}
	w.writer.WriteRune(langle)
	w.writer.WriteRune(question)
	w.writer.WriteString("xml ")
	for _, a := range attrs {
		if a.Value == "" {
			continue
		}
		w.writeAttr(a)
		w.writer.WriteRune(' ')
	}
	w.writer.WriteRune(question)
	w.writer.WriteRune(rangle)
	w.writer.WriteRune('\n')
}

func (w *Writer) writeNode(node *Node, depth int) {
	if node.IsEmpty() {
		return
	}
	prefix := strings.Repeat(w.Indent, depth)
	tag := w.rewriteTag(node.Tag)

	w.writer.WriteString(prefix)
	w.writer.WriteRune(langle)
	w.writer.WriteString(tag)
	for _, a := range node.Attrs {
		w.writer.WriteRune(' ')
		w.writeAttr(a)
	}
	if node.Value == "" && node.nodesEmpty() {
		w.writer.WriteRune(slash)
		w.writer.WriteRune(rangle)
		return
	}
	w.writer.WriteRune(rangle)
	if len(node.Nodes) > 0 {
		for _, c := range node.Nodes {
			w.writer.WriteRune('\n')
			w.writeNode(c, depth+1)
		}
		w.writer.WriteRune('\n')
		w.writer.WriteString(prefix)
	} else {
		w.writer.WriteString(EncodeText(node.Value))
	}
	w.writer.WriteRune(langle)
	w.writer.WriteRune(slash)
	w.writer.WriteString(tag)
	w.writer.WriteRune(rangle)
}

// writeAttr quotes the value with double quotes; a literal double quote
// inside the value is the only character escaped here.
func (w *Writer) writeAttr(a Attribute) {
	w.writer.WriteString(a.Name)
	w.writer.WriteRune(equal)
	w.writer.WriteRune(quote)
	w.writer.WriteString(strings.ReplaceAll(a.Value, `"`, "&quot;"))
	w.writer.WriteRune(quote)
}

func (w *Writer) rewriteTag(tag string) string {
	if w.CaseType == casing.DefaultCase {
		return tag
	}
	return casing.To(w.CaseType, tag)
}
