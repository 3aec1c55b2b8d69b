package shell

import "github.com/jbqwizera/pipesh/core/seq"

// isEscapable reports whether ch may legally follow a backslash. Escape
// pairs are kept verbatim in token text; the tokenizer only checks
// legality, interpretation is deferred to whatever runs the command.
func isEscapable(ch byte) bool {
	switch ch {
	case 'n', 'r', 't', ' ', '"', '>', '<', '|', '\\':
		return true
	default:
		return false
	}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// Tokenize scans one input line into an ordered token stream. Word and
// QuotedWord tokens carry the literal source substring: quotes and
// backslashes are validated but never stripped here.
func Tokenize(line string) (*Tokens, error) {
	tokens := seq.New[Token]()

	// start marks the beginning of an in-progress bare word, -1 if none.
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens.Append(Token{Kind: Word, Text: line[start:end]})
			start = -1
		}
	}

	i := 0
	for i < len(line) {
		switch ch := line[i]; {
		case ch == '"':
			flush(i)
			open := i
			i++
			for i < len(line) && line[i] != '"' {
				if line[i] == '\\' {
					var next byte
					if i+1 < len(line) {
						next = line[i+1]
					}
					if !isEscapable(next) {
						return nil, syntaxErrorf("Illegal escape character %c", next)
					}
					i += 2
					continue
				}
				i++
			}
			if i == len(line) {
				return nil, &SyntaxError{Msg: "Unterminated quote"}
			}
			i++ // past the closing quote
			tokens.Append(Token{Kind: QuotedWord, Text: line[open:i]})

		case ch == '<' || ch == '>' || ch == '|':
			flush(i)
			kind := LessThan
			switch ch {
			case '>':
				kind = GreaterThan
			case '|':
				kind = Pipe
			}
			tokens.Append(Token{Kind: kind})
			i++

		case isSpace(ch):
			flush(i)
			i++

		case ch == '\\':
			if start < 0 {
				start = i
			}
			var next byte
			if i+1 < len(line) {
				next = line[i+1]
			}
			if !isEscapable(next) {
				return nil, syntaxErrorf("Illegal escape character %c", next)
			}
			i += 2 // the pair stays in the word verbatim

		default:
			if start < 0 {
				start = i
			}
			i++
		}
	}
	flush(len(line))

	return tokens, nil
}
