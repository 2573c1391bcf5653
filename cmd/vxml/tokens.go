package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cbc-technology/vxml/xml"
)

type TokensCmd struct{}

var tokensCmd TokensCmd

// Run dumps the raw token stream of a document with its classification,
// one token per line. Useful to see what the shallow grammar makes of an
// input before the tree is built.
func (t *TokensCmd) Run(args []string) error {
	set := flag.NewFlagSet("tokens", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}

	r, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	input, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	tokens, err := xml.DefaultGrammar().Lex(string(input))
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Fprintf(os.Stdout, "%-22s %q\n", xml.Classify(tok), tok)
	}
	return nil
}
