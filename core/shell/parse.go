package shell

// Parse consumes tokens from the front of the stream and builds one
// pipeline AST, or fails with a *SyntaxError carrying a stable message.
// Word tokens (including redirection targets) pass through the expander
// and may fan out into several nodes; quoted words are kept verbatim.
// Grammar is validated before any operand is expanded. On error no
// partial tree is returned.
func Parse(tokens *Tokens, expander Expander) (*Node, error) {
	if expander == nil {
		expander = IdentityExpander{}
	}

	var (
		root   *Node
		sawIn  bool
		sawOut bool
	)

	for {
		switch kind := peekKind(tokens); kind {
		case End:
			return root, nil

		case Word:
			tok := consume(tokens)
			for _, text := range expander.Expand(tok.Text) {
				root = root.Append(NewWord(NodeWord, nil, text))
			}

		case QuotedWord:
			tok := consume(tokens)
			root = root.Append(NewWord(NodeQuotedWord, nil, tok.Text))

		case LessThan, GreaterThan:
			consume(tokens)

			if root == nil || chainTail(root).Kind == NodeRedirectIn ||
				chainTail(root).Kind == NodeRedirectOut {
				return nil, &SyntaxError{Msg: "No command specified"}
			}
			if (kind == LessThan && sawIn) || (kind == GreaterThan && sawOut) {
				return nil, &SyntaxError{Msg: "Multiple redirection"}
			}
			if peekKind(tokens) != Word {
				return nil, &SyntaxError{Msg: "Expect filename after redirection"}
			}

			if kind == LessThan {
				sawIn = true
			} else {
				sawOut = true
			}

			target := consume(tokens)
			nodeKind := NodeRedirectIn
			if kind == GreaterThan {
				nodeKind = NodeRedirectOut
			}
			root = root.Append(NewRedirect(nodeKind, wordChain(expander, target.Text)))

		case Pipe:
			consume(tokens)

			if root == nil {
				return nil, &SyntaxError{Msg: "No command specified"}
			}
			next := peekKind(tokens)
			if next != Word && next != QuotedWord {
				return nil, &SyntaxError{Msg: "No command specified"}
			}

			tok := consume(tokens)
			var head *Node
			if tok.Kind == Word {
				head = wordChain(expander, tok.Text)
			} else {
				head = NewWord(NodeQuotedWord, nil, tok.Text)
			}
			root = NewPipe(root, head)

		default:
			return nil, syntaxErrorf("Unexpected token %s", kind)
		}
	}
}

// wordChain expands one word and links the results into a right-leaning
// chain of plain word nodes.
func wordChain(expander Expander, text string) *Node {
	words := expander.Expand(text)

	var chain *Node
	for i := len(words) - 1; i >= 0; i-- {
		chain = NewWord(NodeWord, chain, words[i])
	}
	return chain
}

// chainTail returns the last node of the pipeline's current top-level
// command chain.
func chainTail(p *Node) *Node {
	for p.Right != nil {
		p = p.Right
	}
	return p
}
