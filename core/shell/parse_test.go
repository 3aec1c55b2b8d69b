package shell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapExpander fans out the patterns it knows and leaves the rest alone.
type mapExpander map[string][]string

func (m mapExpander) Expand(pattern string) []string {
	if out, ok := m[pattern]; ok {
		return out
	}
	return []string{pattern}
}

func mustParse(t *testing.T, input string, expander Expander) *Node {
	t.Helper()

	tokens, err := Tokenize(input)
	require.NoError(t, err)

	p, err := Parse(tokens, expander)
	require.NoError(t, err)
	return p
}

func TestParseRoundTrip(t *testing.T) {
	cases := []struct {
		input string
		nodes int
	}{
		{"ls", 1},
		{"ls --color", 2},
		{`cd Plaid\ Shell\ Playground`, 2},
		{"echo $PATH", 2},
		{`author | sed -e "s/^/Written by /"`, 5},
		{"grep Happy *.txt", 3},
		{`cat "best sitcoms.txt" | grep Seinfield`, 5},
		{`sed -ne "s/The Simpsons/I Love Lucy/p" < best\ sitcoms.txt > output`, 7},
		{`cat "best sitcoms.txt" | grep Seinfield | wc -l`, 8},
		{"this is not a command", 5},
		{"cd ~", 2},
		{`seq 10 | wc "-l"`, 5},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			p := mustParse(t, tc.input, IdentityExpander{})
			assert.Equal(t, tc.nodes, p.CountNodes())

			// Rendering reproduces the normalized input: operators spaced,
			// no trailing space.
			assert.Equal(t, tc.input, p.String())
		})
	}
}

func TestParsePipeGrammar(t *testing.T) {
	p := mustParse(t, "cat file | grep x | wc -l", IdentityExpander{})

	assert.Equal(t, 2, p.CountPipes())
	assert.Equal(t, 3, p.CountCommands())
	assert.Equal(t, "cat file | grep x | wc -l", p.String())

	// Pipes are left-associative: the tree leans right, earlier commands
	// hang off Left links.
	require.Equal(t, NodePipe, p.Kind)
	require.Equal(t, NodePipe, p.Left.Kind)
	assert.Equal(t, "cat file", p.Left.Left.String())
	assert.Equal(t, "wc -l", p.Right.String())
}

func TestParseTree(t *testing.T) {
	got := mustParse(t, `echo "hi" > out`, IdentityExpander{})

	want := NewWord(NodeWord, nil, "echo").
		Append(NewWord(NodeQuotedWord, nil, `"hi"`)).
		Append(NewRedirect(NodeRedirectOut, NewWord(NodeWord, nil, "out")))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExpansionFanOut(t *testing.T) {
	expander := mapExpander{"*.txt": {"a.txt", "b.txt"}}

	p := mustParse(t, "grep Happy *.txt", expander)
	assert.Equal(t, "grep Happy a.txt b.txt", p.String())
	assert.Equal(t, 4, p.CountNodes())

	// Quoted words never expand.
	p = mustParse(t, `grep Happy "*.txt"`, expander)
	assert.Equal(t, `grep Happy "*.txt"`, p.String())
}

func TestParseExpandsRedirectTarget(t *testing.T) {
	expander := mapExpander{"out*": {"out.txt"}}

	p := mustParse(t, "ls > out*", expander)
	assert.Equal(t, "ls > out.txt", p.String())
}

func TestParseEmptyTokens(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)

	p, err := Parse(tokens, IdentityExpander{})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestParseConsumesAllTokens(t *testing.T) {
	tokens, err := Tokenize("a b | c")
	require.NoError(t, err)

	_, err = Parse(tokens, IdentityExpander{})
	require.NoError(t, err)
	assert.Equal(t, 0, tokens.Len())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"|", "No command specified"},
		{"cat |", "No command specified"},
		{"ls | < file", "No command specified"},
		{"ls | > file", "No command specified"},
		{">", "No command specified"},
		{"<", "No command specified"},
		{"ls > file > file", "Multiple redirection"},
		{"ls < file < file", "Multiple redirection"},
		{"cat a | wc > x > y", "Multiple redirection"},
		{"ls <", "Expect filename after redirection"},
		{"ls >", "Expect filename after redirection"},
		{`ls < "file.txt"`, "Expect filename after redirection"},
		{"ls > > file", "Expect filename after redirection"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			tokens, err := Tokenize(tc.input)
			require.NoError(t, err)

			p, err := Parse(tokens, IdentityExpander{})
			assert.Nil(t, p)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())

			var synErr *SyntaxError
			assert.ErrorAs(t, err, &synErr)
		})
	}
}

func TestParseRedirectThenOppositeDirection(t *testing.T) {
	// One of each direction is fine, in either order.
	p := mustParse(t, "sed -n p < in > out", IdentityExpander{})
	assert.Equal(t, "sed -n p < in > out", p.String())

	p = mustParse(t, "sed -n p > out < in", IdentityExpander{})
	assert.Equal(t, "sed -n p > out < in", p.String())
}
