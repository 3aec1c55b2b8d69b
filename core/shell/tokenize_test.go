package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, tokens *Tokens) []Token {
	t.Helper()

	var out []Token
	tokens.ForEach(func(_ int, tok Token) { out = append(out, tok) })
	return out
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t ", nil},
		{"single word", "ls", []Token{{Word, "ls"}}},
		{"two words", "ls --color", []Token{{Word, "ls"}, {Word, "--color"}}},
		{"escaped n", `a\nb`, []Token{{Word, `a\nb`}}},
		{"escaped r", `a\rb`, []Token{{Word, `a\rb`}}},
		{"escaped t", `a\tb`, []Token{{Word, `a\tb`}}},
		{"escaped quote", `a\"b`, []Token{{Word, `a\"b`}}},
		{"escaped backslash", `a\\b`, []Token{{Word, `a\\b`}}},
		{"escaped space", `a\ b`, []Token{{Word, `a\ b`}}},
		{"escaped pipe", `a\|b`, []Token{{Word, `a\|b`}}},
		{"escaped less", `a\<b`, []Token{{Word, `a\<b`}}},
		{"escaped greater", `a\>b`, []Token{{Word, `a\>b`}}},
		{"consecutive escapes", `\n\r\t\"\\\ \|\<\>`,
			[]Token{{Word, `\n\r\t\"\\\ \|\<\>`}}},
		{"escaped spaces keep one word", `cd Plaid\ Shell\ Playground`,
			[]Token{{Word, "cd"}, {Word, `Plaid\ Shell\ Playground`}}},
		{"glob pattern is ordinary text", "ls *.txt",
			[]Token{{Word, "ls"}, {Word, "*.txt"}}},
		{"quotes retained in payload", `echo "a b"`,
			[]Token{{Word, "echo"}, {QuotedWord, `"a b"`}}},
		{"escape within quotes", `"you can\n\tdo it"`,
			[]Token{{QuotedWord, `"you can\n\tdo it"`}}},
		{"quoted then bare words", `"To be, or not to be," that is the question!`,
			[]Token{
				{QuotedWord, `"To be, or not to be,"`},
				{Word, "that"}, {Word, "is"}, {Word, "the"}, {Word, "question!"},
			}},
		{"quote splits an open word", `seq 10 | wc"-l"`,
			[]Token{
				{Word, "seq"}, {Word, "10"}, {Pipe, ""},
				{Word, "wc"}, {QuotedWord, `"-l"`},
			}},
		{"operators emit their own tokens", `sed -ne "s/x/y/p" < in > out`,
			[]Token{
				{Word, "sed"}, {Word, "-ne"}, {QuotedWord, `"s/x/y/p"`},
				{LessThan, ""}, {Word, "in"}, {GreaterThan, ""}, {Word, "out"},
			}},
		{"operators without spaces", `cat "a b.txt"|grep x|wc -l`,
			[]Token{
				{Word, "cat"}, {QuotedWord, `"a b.txt"`}, {Pipe, ""},
				{Word, "grep"}, {Word, "x"}, {Pipe, ""},
				{Word, "wc"}, {Word, "-l"},
			}},
		{"lone pipe", "|", []Token{{Pipe, ""}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Tokenize(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, collect(t, tokens))
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"illegal escape", `echo \c`, "Illegal escape character c"},
		{"illegal escape in quotes", `echo "\b"`, "Illegal escape character b"},
		{"trailing backslash", `echo \`, "Illegal escape character \x00"},
		{"unterminated quote", `echo "hi`, "Unterminated quote"},
		{"bare quote", `"`, "Unterminated quote"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Tokenize(tc.input)
			assert.Nil(t, tokens)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())

			var synErr *SyntaxError
			assert.ErrorAs(t, err, &synErr)
		})
	}
}

func TestTokenizeEndIsSynthetic(t *testing.T) {
	tokens, err := Tokenize("ls -l")
	require.NoError(t, err)

	assert.Equal(t, 2, tokens.Len())
	assert.Equal(t, Word, peekKind(tokens))

	consume(tokens)
	consume(tokens)

	// An exhausted stream reports End without ever storing it.
	assert.Equal(t, 0, tokens.Len())
	assert.Equal(t, End, peekKind(tokens))
}
