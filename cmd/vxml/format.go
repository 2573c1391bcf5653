package main

import (
	"flag"
)

type FormatCmd struct {
	ParserOptions
	WriterOptions
}

var formatCmd FormatCmd

func (f *FormatCmd) Run(args []string) error {
	set := flag.NewFlagSet("format", flag.ContinueOnError)

	set.StringVar(&f.OutFile, "f", "", "specify the path to the file where the document will be written")
	set.StringVar(&f.CaseType, "case-type", "", "rewrite element tags to given case family (snake, kebab, lower)")
	set.BoolVar(&f.StrictMarkup, "strict-markup", false, "fail on unrecognized markup instead of skipping it")
	set.BoolVar(&f.Quiet, "quiet", false, "suppress diagnostics for skipped tokens")

	if err := set.Parse(args); err != nil {
		return err
	}

	doc, err := parseDocument(set.Arg(0), f.ParserOptions)
	if err != nil {
		return err
	}
	return writeDocument(doc, f.WriterOptions)
}
