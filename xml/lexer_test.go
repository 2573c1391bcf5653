package xml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cbc-technology/vxml/xml"
)

func TestLexLossless(t *testing.T) {
	data := []string{
		``,
		`plain text, no markup at all`,
		`<a b="1">text</a>`,
		`<a><!-- a - comment --><b/></a>`,
		`<a><![CDATA[x ]] y]]></a>`,
		`<?xml version="1.0"?><r/>`,
		`<!DOCTYPE greeting SYSTEM "hello.dtd"><r/>`,
		`<r>< </r>`,
		`<r>text &amp; more &unknown; text</r>`,
		`<a`,
		`<!`,
		`stray ]]> markers <a/> and more`,
		"<a>\n\t<b attr='multi\nline'/>\n</a>",
	}
	g := xml.DefaultGrammar()
	for _, input := range data {
		tokens, err := g.Lex(input)
		if err != nil {
			t.Errorf("%q: unexpected lex error: %s", input, err)
			continue
		}
		if got := strings.Join(tokens, ""); got != input {
			t.Errorf("token stream does not reproduce input")
			t.Logf("want: %q", input)
			t.Logf("got : %q", got)
		}
	}
}

func TestLexSampleFile(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "sample.xml"))
	if err != nil {
		t.Fatalf("fail to read sample file: %s", err)
	}
	tokens, err := xml.DefaultGrammar().Lex(string(input))
	if err != nil {
		t.Fatalf("fail to lex sample file: %s", err)
	}
	if strings.Join(tokens, "") != string(input) {
		t.Errorf("token stream does not reproduce sample file")
	}
}
