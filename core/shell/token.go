package shell

import (
	"fmt"

	"github.com/jbqwizera/pipesh/core/seq"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// Word is a run of non-operator characters, possibly containing
	// backslash escapes.
	Word TokenKind = iota
	// QuotedWord is a double-quoted string, quotes included.
	QuotedWord
	// LessThan is the input redirection operator "<".
	LessThan
	// GreaterThan is the output redirection operator ">".
	GreaterThan
	// Pipe is the pipeline operator "|".
	Pipe
	// End marks the end of the token stream. It is never stored in a
	// sequence, only returned when one is exhausted.
	End
)

func (k TokenKind) String() string {
	switch k {
	case Word:
		return "WORD"
	case QuotedWord:
		return "QUOTED_WORD"
	case LessThan:
		return "LESSTHAN"
	case GreaterThan:
		return "GREATERTHAN"
	case Pipe:
		return "PIPE"
	case End:
		return "(end)"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one lexical unit of an input line. Only Word and QuotedWord
// carry text; for QuotedWord the text keeps its surrounding quotes.
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	if t.Kind == Word || t.Kind == QuotedWord {
		return fmt.Sprintf("%s %s", t.Kind, t.Text)
	}
	return t.Kind.String()
}

// Tokens is the ordered stream the tokenizer produces and the parser
// consumes from the front.
type Tokens = seq.Seq[Token]

// peekKind reports the kind of the front token, or End if the stream is
// exhausted.
func peekKind(tokens *Tokens) TokenKind {
	tok, ok := tokens.At(0)
	if !ok {
		return End
	}
	return tok.Kind
}

// consume removes and returns the front token. It must only be called
// after peekKind reported something other than End.
func consume(tokens *Tokens) Token {
	tok, _ := tokens.Remove(0)
	return tok
}
