package xml_test

import (
	"testing"

	"github.com/cbc-technology/vxml/xml"
)

func TestEncodeDecode(t *testing.T) {
	data := []struct {
		Value   string
		Encoded string
	}{
		{Value: `text & more`, Encoded: `text &amp; more`},
		{Value: `a < b > c`, Encoded: `a &lt; b &gt; c`},
		{Value: `say "hi" & 'bye'`, Encoded: `say &quot;hi&quot; &amp; &apos;bye&apos;`},
		{Value: `nothing special`, Encoded: `nothing special`},
	}
	for _, d := range data {
		if got := xml.EncodeText(d.Value); got != d.Encoded {
			t.Errorf("encode %q: got %q, want %q", d.Value, got, d.Encoded)
		}
		if got := xml.DecodeText(d.Encoded); got != d.Value {
			t.Errorf("decode %q: got %q, want %q", d.Encoded, got, d.Value)
		}
	}
}

// The five reserved characters in arbitrary combination must survive an
// encode/decode round trip unchanged, in particular ampersands next to
// freshly produced entities.
func TestEncodeDecodeInverse(t *testing.T) {
	chars := []string{`"`, `'`, `<`, `>`, `&`}
	var walk func(prefix string, depth int)
	walk = func(prefix string, depth int) {
		if prefix != "" {
			if got := xml.DecodeText(xml.EncodeText(prefix)); got != prefix {
				t.Errorf("round trip of %q gives %q", prefix, got)
			}
		}
		if depth == 0 {
			return
		}
		for _, c := range chars {
			walk(prefix+c, depth-1)
		}
	}
	walk("", 3)
}

func TestDecodeDoesNotRescan(t *testing.T) {
	// &amp;lt; decodes to &lt; and stops there; the produced ampersand
	// must not feed a second substitution.
	if got := xml.DecodeText(`&amp;lt;`); got != `&lt;` {
		t.Errorf("got %q, want &lt;", got)
	}
}
