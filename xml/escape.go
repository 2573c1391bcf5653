package xml

import "strings"

// entities maps the five reserved characters to their references. The
// declared order is part of the contract: both replacers are built from it
// and apply all substitutions in a single pass, so text produced by one
// entry is never rescanned by a later one.
var entities = []struct {
	Char   string
	Entity string
}{
	{`"`, "&quot;"},
	{`'`, "&apos;"},
	{`<`, "&lt;"},
	{`>`, "&gt;"},
	{`&`, "&amp;"},
}

var (
	encoder = newReplacer(false)
	decoder = newReplacer(true)
)

func newReplacer(decode bool) *strings.Replacer {
	pairs := make([]string, 0, len(entities)*2)
	for _, e := range entities {
		if decode {
			pairs = append(pairs, e.Entity, e.Char)
		} else {
			pairs = append(pairs, e.Char, e.Entity)
		}
	}
	return strings.NewReplacer(pairs...)
}

// DecodeText replaces entity references with their literal characters. It
// is invoked on every value assignment done by the parser and by SetValue.
func DecodeText(raw string) string {
	return decoder.Replace(raw)
}

// EncodeText replaces reserved characters with their entity references.
// DecodeText(EncodeText(s)) == s for any s.
func EncodeText(value string) string {
	return encoder.Replace(value)
}
