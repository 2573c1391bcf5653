package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

type GetCmd struct {
	Attrs  bool
	Strict bool
	ParserOptions
}

var getCmd GetCmd

// Run resolves a dotted tag path against the document root and prints the
// value (or attributes) of the matching node. The first path segment must
// name the root itself.
func (g *GetCmd) Run(args []string) error {
	set := flag.NewFlagSet("get", flag.ContinueOnError)

	set.BoolVar(&g.Attrs, "attrs", false, "print the attributes of the node instead of its value")
	set.BoolVar(&g.Strict, "strict", false, "fail when the path does not resolve")
	set.BoolVar(&g.StrictMarkup, "strict-markup", false, "fail on unrecognized markup instead of skipping it")
	set.BoolVar(&g.Quiet, "quiet", false, "suppress diagnostics for skipped tokens")

	if err := set.Parse(args); err != nil {
		return err
	}

	doc, err := parseDocument(set.Arg(1), g.ParserOptions)
	if err != nil {
		return err
	}
	if doc.Root == nil {
		return fmt.Errorf("document has no root element")
	}

	path := strings.Split(set.Arg(0), ".")
	if len(path) == 0 || path[0] == "" {
		return fmt.Errorf("empty path")
	}

	node := doc.Root
	if !strings.EqualFold(path[0], doc.Root.Tag) {
		return fmt.Errorf("root element is %s, not %s", doc.Root.Tag, path[0])
	}
	if rest := path[1:]; len(rest) > 0 {
		if g.Strict {
			node, err = doc.Root.FindStrict(rest...)
			if err != nil {
				return err
			}
		} else if node = doc.Root.Find(rest...); node == nil {
			return errFail
		}
	}

	if g.Attrs {
		for _, a := range node.Attrs {
			fmt.Fprintf(os.Stdout, "%s=%s\n", a.Name, a.Value)
		}
		return nil
	}
	fmt.Fprintln(os.Stdout, node.Value)
	return nil
}
