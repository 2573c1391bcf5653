package xml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrTagNotFound   = errors.New("no tag name found")
	ErrMismatchedTag = errors.New("mismatched closing tag")
	ErrUnknownMarkup = errors.New("unrecognized markup")
)

// Position locates a fault in the source text. It points at the end of
// the last token successfully consumed before the fault, not necessarily
// at the offending character itself.
type Position struct {
	Line   int
	Column int
}

type ParseError struct {
	Position
	Token   string
	Open    string
	Message string
	Err     error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Message, e.Token)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// TokenKind classifies one lexed span.
type TokenKind int8

const (
	KindText TokenKind = iota
	KindComment
	KindCDATA
	KindDoctype
	KindDecl
	KindXMLDecl
	KindProcInst
	KindCloseTag
	KindSelfClosing
	KindStartTag
	KindUnknown
)

func (k TokenKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindCDATA:
		return "cdata"
	case KindDoctype:
		return "doctype"
	case KindDecl:
		return "declaration"
	case KindXMLDecl:
		return "xml-declaration"
	case KindProcInst:
		return "processing-instruction"
	case KindCloseTag:
		return "close-tag"
	case KindSelfClosing:
		return "self-closing-tag"
	case KindStartTag:
		return "start-tag"
	default:
		return "unknown"
	}
}

// Classify determines the kind of a token from its literal prefix and
// suffix. The order of the checks matters: a comment also starts with <!
// and an end tag also ends with >.
func Classify(token string) TokenKind {
	if !strings.HasPrefix(token, "<") {
		return KindText
	}
	switch {
	case strings.HasPrefix(token, "<!--"):
		return KindComment
	case strings.HasPrefix(token, "<![CDATA"):
		return KindCDATA
	case strings.HasPrefix(token, "<!DOCTYPE"):
		return KindDoctype
	case strings.HasPrefix(token, "<!"):
		return KindDecl
	case strings.HasPrefix(token, "<?xml"):
		return KindXMLDecl
	case strings.HasPrefix(token, "<?"):
		return KindProcInst
	case strings.HasPrefix(token, "</"):
		return KindCloseTag
	case strings.HasSuffix(token, "/>"):
		return KindSelfClosing
	case strings.HasSuffix(token, ">"):
		return KindStartTag
	default:
		return KindUnknown
	}
}

const (
	DiagInstruction = "processing-instruction"
	DiagMarkup      = "unrecognized-markup"
)

// Diagnostic is a non-fatal notice about a token the parser consumed but
// did not store in the tree.
type Diagnostic struct {
	Kind  string
	Token string
	Position
}

type DiagnosticFunc func(Diagnostic)

// Parser builds a document tree from a token sequence. Tokens the parser
// does not understand are reported through Diagnostic and skipped unless
// StrictMarkup is set. Non-whitespace text outside of any open element is
// discarded silently.
type Parser struct {
	reader  io.Reader
	grammar *Grammar

	// StrictMarkup turns unrecognized markup tokens into fatal errors.
	StrictMarkup bool
	// Diagnostic, when set, receives processing-instruction and
	// unrecognized-markup notices.
	Diagnostic DiagnosticFunc

	doc       *Document
	stack     []*Node
	current   *Node
	processed strings.Builder
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		reader:  r,
		grammar: grammar,
	}
}

func ParseString(str string) (*Document, error) {
	return ParseReader(strings.NewReader(str))
}

func ParseReader(r io.Reader) (*Document, error) {
	return NewParser(r).Parse()
}

func ParseFile(file string) (*Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseReader(r)
}

// Parse reads the whole input and builds a new document from it.
func (p *Parser) Parse() (*Document, error) {
	doc := NewDocument()
	if err := p.ParseInto(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseInto reads the whole input and builds the tree into doc, updating
// it in place.
func (p *Parser) ParseInto(doc *Document) error {
	input, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	tokens, err := p.grammar.Lex(string(input))
	if err != nil {
		return err
	}
	p.doc = doc
	p.stack = p.stack[:0]
	p.current = nil
	p.processed.Reset()

	for _, tok := range tokens {
		if err := p.processToken(tok); err != nil {
			return err
		}
		p.processed.WriteString(tok)
	}
	return nil
}

func (p *Parser) processToken(tok string) error {
	switch Classify(tok) {
	case KindComment, KindCDATA, KindDoctype, KindDecl:
		// recognized but not stored
	case KindXMLDecl:
		p.processDeclaration(tok)
	case KindProcInst:
		p.report(DiagInstruction, tok)
	case KindCloseTag:
		return p.processEndNode(tok)
	case KindSelfClosing:
		if err := p.processStartNode(tok); err != nil {
			return err
		}
		return p.processEndNode(tok)
	case KindStartTag:
		return p.processStartNode(tok)
	case KindText:
		p.processText(tok)
	default:
		p.report(DiagMarkup, tok)
		if p.StrictMarkup {
			return ParseError{
				Position: p.position(),
				Token:    tok,
				Message:  "unrecognized markup",
				Err:      ErrUnknownMarkup,
			}
		}
	}
	return nil
}

func (p *Parser) processDeclaration(tok string) {
	for _, a := range p.grammar.attributes(tok) {
		switch a.Name {
		case "version":
			if a.Value != "" {
				p.doc.Version = a.Value
			}
		case "encoding":
			p.doc.Encoding = a.Value
		case "standalone":
			p.doc.Standalone = a.Value
		}
	}
}

func (p *Parser) processStartNode(tok string) error {
	tag, ok := p.grammar.name(tok)
	if !ok {
		return ParseError{
			Position: p.position(),
			Token:    tok,
			Message:  "no tag name found",
			Err:      ErrTagNotFound,
		}
	}
	node := NewNode(tag)
	node.Attrs = p.grammar.attributes(tok)
	if len(p.stack) == 0 {
		p.doc.Root = node
	} else {
		top := p.stack[len(p.stack)-1]
		top.Nodes = append(top.Nodes, node)
	}
	p.stack = append(p.stack, node)
	p.current = node
	return nil
}

func (p *Parser) processEndNode(tok string) error {
	tag, ok := p.grammar.name(tok)
	if !ok {
		return ParseError{
			Position: p.position(),
			Token:    tok,
			Message:  "no tag name found",
			Err:      ErrTagNotFound,
		}
	}
	if p.current == nil {
		return ParseError{
			Position: p.position(),
			Token:    tok,
			Message:  fmt.Sprintf("closing tag %s found, but no node is open", tag),
			Err:      ErrMismatchedTag,
		}
	}
	if p.current.Tag != tag {
		return ParseError{
			Position: p.position(),
			Token:    tok,
			Open:     p.current.Tag,
			Message:  fmt.Sprintf("closing tag %s does not match open tag %s", tag, p.current.Tag),
			Err:      ErrMismatchedTag,
		}
	}
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) > 0 {
		p.current = p.stack[len(p.stack)-1]
	} else {
		p.current = nil
	}
	return nil
}

func (p *Parser) processText(tok string) {
	if p.current == nil || tok == "" || strings.TrimSpace(tok) == "" {
		return
	}
	p.current.Value = DecodeText(tok)
}

func (p *Parser) report(kind, tok string) {
	if p.Diagnostic == nil {
		return
	}
	p.Diagnostic(Diagnostic{
		Kind:     kind,
		Token:    tok,
		Position: p.position(),
	})
}

// position is derived from the buffer of tokens already consumed: the
// number of lines it spans and the length of its last line.
func (p *Parser) position() Position {
	str := p.processed.String()
	if str == "" {
		return Position{}
	}
	lines := strings.Split(str, "\n")
	return Position{
		Line:   len(lines),
		Column: len(lines[len(lines)-1]),
	}
}
