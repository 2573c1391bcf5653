package xml

import (
	"errors"
	"fmt"
)

// ErrLexIntegrity reports that the token stream, concatenated back
// together, no longer matches the source text. It signals a mismatch
// between the grammar and the input, never a recoverable condition.
var ErrLexIntegrity = errors.New("token stream does not reproduce input")

type LexError struct {
	Offset int
}

func (e LexError) Error() string {
	return fmt.Sprintf("lexer: %s (byte %d)", ErrLexIntegrity, e.Offset)
}

func (e LexError) Unwrap() error {
	return ErrLexIntegrity
}

// Lex splits the input into an ordered sequence of markup and text spans.
// The sequence is lossless: joining the tokens reproduces the input
// exactly. Classification of the spans is left to the parser.
func (g *Grammar) Lex(input string) ([]string, error) {
	tokens := g.Tokenizer.FindAllString(input, -1)
	var size int
	for _, tok := range tokens {
		size += len(tok)
	}
	if size == len(input) {
		return tokens, nil
	}
	var offset int
	for _, tok := range tokens {
		if input[offset:offset+len(tok)] != tok {
			break
		}
		offset += len(tok)
	}
	return nil, LexError{Offset: offset}
}
