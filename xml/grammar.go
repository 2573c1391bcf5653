// Package xml reads configuration-style XML into a mutable document tree
// and writes the tree back as canonically indented text. Parsing is shallow
// and lenient: the input is split into markup and text spans by a composed
// regular expression grammar before any structural checks happen.
package xml

import (
	"fmt"
	"os"
	"regexp"
)

// The shallow tokenizing grammar follows "REX: XML Shallow Parsing with
// Regular Expressions", Robert D. Cameron, Markup Languages: Theory and
// Applications, Summer 1999, pp. 61-88. Each fragment may reference only
// fragments defined before it, written as ${Frag}.
var fragments = []struct {
	Name    string
	Pattern string
}{
	{"GetAttr", `(\S+?)=(?:"([^<"]*)"|'([^<']*)')`},
	{"TextSE", `[^<]+`},
	{"UntilHyphen", `[^-]*-`},
	{"Until2Hyphens", `${UntilHyphen}(?:[^-]${UntilHyphen})*-`},
	{"CommentCE", `${Until2Hyphens}>?`},
	{"UntilRSBs", `[^\]]*](?:[^\]]+])*]+`},
	{"CDATA_CE", `${UntilRSBs}(?:[^\]>]${UntilRSBs})*>`},
	{"S", "[ \\n\\t\\r]+"},
	{"NameStrt", `[A-Za-z_:]|[^\x00-\x7F]`},
	{"NameChar", `[A-Za-z0-9_:.-]|[^\x00-\x7F]`},
	{"Name", `(?:${NameStrt})(?:${NameChar})*`},
	{"QuoteSE", `"[^"]*"|'[^']*'`},
	{"DT_IdentSE", `${S}${Name}(?:${S}(?:${Name}|${QuoteSE}))*`},
	{"MarkupDeclCE", `(?:[^\]"'><]+|${QuoteSE})*>`},
	{"S1", "[\\n\\r\\t ]"},
	{"UntilQMs", `[^?]*\?+`},
	{"PI_Tail", `\?>|${S1}${UntilQMs}(?:[^>?]${UntilQMs})*>`},
	{"DT_ItemSE", `<(?:!(?:--${Until2Hyphens}>|[^-]${MarkupDeclCE})|\?${Name}(?:${PI_Tail}))|%${Name};|${S}`},
	{"DocTypeCE", `${DT_IdentSE}(?:${S})?(?:\[(?:${DT_ItemSE})*](?:${S})?)?>?`},
	{"DeclCE", `--(?:${CommentCE})?|\[CDATA\[(?:${CDATA_CE})?|DOCTYPE(?:${DocTypeCE})?`},
	{"PI_CE", `${Name}(?:${PI_Tail})?`},
	{"EndTagCE", `${Name}(?:${S})?>?`},
	{"AttValSE", `"[^<"]*"|'[^<']*'`},
	{"ElemTagCE", `${Name}(?:${S}${Name}(?:${S})?=(?:${S})?(?:${AttValSE}))*(?:${S})?/?>?`},
	{"MarkupSPE", `<(?:!(?:${DeclCE})?|\?(?:${PI_CE})?|/(?:${EndTagCE})?|(?:${ElemTagCE})?)`},
	{"XML_SPE", `${TextSE}|${MarkupSPE}`},
}

// Grammar holds the compiled shallow-parsing patterns. A Grammar is
// immutable once built and safe to share between concurrent parses.
type Grammar struct {
	// Tokenizer splits a document into an exact sequence of markup and
	// text spans.
	Tokenizer *regexp.Regexp
	// Attr extracts name="value" and name='value' pairs from a tag span.
	Attr *regexp.Regexp
	// Name extracts the first bare name from a tag span.
	Name *regexp.Regexp

	sources map[string]string
}

// NewGrammar expands and compiles the fragment table in order. Any
// fragment that references an unknown name or fails to compile aborts the
// construction.
func NewGrammar() (*Grammar, error) {
	sources := make(map[string]string, len(fragments))
	for _, f := range fragments {
		var missing []string
		expanded := os.Expand(f.Pattern, func(ref string) string {
			src, ok := sources[ref]
			if !ok {
				missing = append(missing, ref)
			}
			return src
		})
		if len(missing) > 0 {
			return nil, fmt.Errorf("grammar: fragment %s references undefined fragment %s", f.Name, missing[0])
		}
		if _, err := regexp.Compile(expanded); err != nil {
			return nil, fmt.Errorf("grammar: fragment %s: %w", f.Name, err)
		}
		sources[f.Name] = expanded
	}
	g := Grammar{
		Tokenizer: regexp.MustCompile(sources["XML_SPE"]),
		Attr:      regexp.MustCompile(sources["GetAttr"]),
		Name:      regexp.MustCompile(sources["Name"]),
		sources:   sources,
	}
	return &g, nil
}

// Fragment returns the expanded source of a named fragment.
func (g *Grammar) Fragment(name string) (string, bool) {
	src, ok := g.sources[name]
	return src, ok
}

// attributes extracts the attribute pairs of a tag span, in order of
// appearance. Values keep their raw, still-encoded form.
func (g *Grammar) attributes(span string) []Attribute {
	var attrs []Attribute
	for _, m := range g.Attr.FindAllStringSubmatch(span, -1) {
		value := m[2]
		if value == "" && m[3] != "" {
			value = m[3]
		}
		attrs = append(attrs, Attribute{Name: m[1], Value: value})
	}
	return attrs
}

// name extracts the first bare name of a tag span. It returns false when
// the span contains none.
func (g *Grammar) name(span string) (string, bool) {
	tag := g.Name.FindString(span)
	return tag, tag != ""
}

var grammar = mustGrammar()

// DefaultGrammar returns the shared grammar used by the package-level
// parse functions.
func DefaultGrammar() *Grammar {
	return grammar
}

func mustGrammar() *Grammar {
	g, err := NewGrammar()
	if err != nil {
		panic(err)
	}
	return g
}
