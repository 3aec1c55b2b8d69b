package shell

import "strings"

// NodeKind identifies the variant of a pipeline node.
type NodeKind int

const (
	// NodeWord is a command name or argument.
	NodeWord NodeKind = iota
	// NodeQuotedWord is an argument that was double-quoted in the source,
	// quotes retained.
	NodeQuotedWord
	// NodeRedirectIn routes standard input from a file.
	NodeRedirectIn
	// NodeRedirectOut routes standard output to a file.
	NodeRedirectOut
	// NodePipe joins a left pipeline to a right command.
	NodePipe
)

func (k NodeKind) isWord() bool {
	return k == NodeWord || k == NodeQuotedWord
}

// Node is one element of a pipeline AST. Word and quoted word nodes form
// right-linked argument chains through Right. A redirect's Right is the
// word holding its target filename, and the command's remaining arguments
// continue from that word. Only pipe nodes use Left: it holds everything
// parsed before the pipe, so `a | b | c` nests as Pipe(Pipe(a,b),c) and
// the leftmost command is reached by walking Left links.
//
// Nodes own their text and are never shared between two parent links.
type Node struct {
	Kind  NodeKind
	Text  string
	Left  *Node
	Right *Node
}

// NewWord builds a word or quoted-word node with the given continuation.
func NewWord(kind NodeKind, next *Node, text string) *Node {
	if !kind.isWord() {
		panic("shell: NewWord requires a word kind")
	}
	return &Node{Kind: kind, Text: text, Right: next}
}

// NewRedirect builds a redirection node. The target must be a plain word
// holding the filename.
func NewRedirect(kind NodeKind, target *Node) *Node {
	if kind != NodeRedirectIn && kind != NodeRedirectOut {
		panic("shell: NewRedirect requires a redirect kind")
	}
	if target == nil || target.Kind != NodeWord {
		panic("shell: redirect target must be a word")
	}
	return &Node{Kind: kind, Right: target}
}

// NewPipe joins an existing pipeline and the first node of the next
// command.
func NewPipe(left, right *Node) *Node {
	if left == nil || right == nil {
		panic("shell: pipe requires both sides")
	}
	return &Node{Kind: NodePipe, Left: left, Right: right}
}

// Append links n as the new tail of the pipeline's current top-level
// command chain and returns the (possibly new) root. A nil n is a no-op;
// appending to a nil pipeline returns n as the root.
func (p *Node) Append(n *Node) *Node {
	if n == nil {
		return p
	}
	if p == nil {
		return n
	}

	tail := p
	for tail.Right != nil {
		tail = tail.Right
	}
	tail.Right = n
	return p
}

// CountNodes reports the total number of nodes in the pipeline.
func (p *Node) CountNodes() int {
	if p == nil {
		return 0
	}
	n := 1
	if p.Kind == NodePipe {
		n += p.Left.CountNodes()
	}
	return n + p.Right.CountNodes()
}

// CountPipes reports the number of pipe operators in the pipeline.
func (p *Node) CountPipes() int {
	if p == nil || p.Kind != NodePipe {
		return 0
	}
	return 1 + p.Left.CountPipes()
}

// CountCommands reports the number of commands joined by the pipeline.
func (p *Node) CountCommands() int {
	return 1 + p.CountPipes()
}

func (p *Node) render(b *strings.Builder) {
	if p == nil {
		return
	}

	switch p.Kind {
	case NodePipe:
		p.Left.render(b)
		b.WriteString("| ")
		p.Right.render(b)
	case NodeWord, NodeQuotedWord:
		b.WriteString(p.Text)
		b.WriteByte(' ')
		p.Right.render(b)
	case NodeRedirectIn:
		b.WriteString("< ")
		p.Right.render(b)
	case NodeRedirectOut:
		b.WriteString("> ")
		p.Right.render(b)
	}
}

// String renders the pipeline back into shell-like form: literal words,
// operators surrounded by single spaces, no trailing space.
func (p *Node) String() string {
	var b strings.Builder
	p.render(&b)
	return strings.TrimRight(b.String(), " ")
}

// Render is String bounded to at most limit bytes. A truncated result
// ends with a '$' marker in its final byte.
func (p *Node) Render(limit int) string {
	s := p.String()
	if len(s) <= limit {
		return s
	}
	if limit < 1 {
		return ""
	}
	return s[:limit-1] + "$"
}
