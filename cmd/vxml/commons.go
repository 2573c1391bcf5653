package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cbc-technology/vxml/casing"
	"github.com/cbc-technology/vxml/xml"
)

const (
	snakeCaseType = "snake"
	kebabCaseType = "kebab"
	lowerCaseType = "lower"
)

type ParserOptions struct {
	StrictMarkup bool
	Quiet        bool
}

type WriterOptions struct {
	OutFile  string
	CaseType string
}

func parseDocument(file string, options ParserOptions) (*xml.Document, error) {
	r, err := openFile(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	p := xml.NewParser(r)
	p.StrictMarkup = options.StrictMarkup
	if !options.Quiet {
		p.Diagnostic = printDiagnostic
	}
	return p.Parse()
}

func printDiagnostic(d xml.Diagnostic) {
	fmt.Fprintf(os.Stderr, "%d:%d: %s: %s\n", d.Line, d.Column, d.Kind, d.Token)
}

func writeDocument(doc *xml.Document, options WriterOptions) error {
	if doc == nil {
		return fmt.Errorf("no document to be written")
	}
	var w io.Writer = os.Stdout
	if options.OutFile != "" {
		f, err := os.Create(options.OutFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	ws := xml.NewWriter(w)
	switch options.CaseType {
	case snakeCaseType:
		ws.CaseType = casing.SnakeCase
	case kebabCaseType:
		ws.CaseType = casing.KebabCase
	case lowerCaseType:
		ws.CaseType = casing.LowerCase
	default:
	}
	if err := ws.Write(doc); err != nil {
		return err
	}
	if options.OutFile == "" {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func openFile(file string) (io.ReadCloser, error) {
	if file == "" || file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(file)
}
