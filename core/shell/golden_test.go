package shell

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestParseGolden locks down the token stream and the rendered pipeline
// for a spread of representative lines.
func TestParseGolden(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	lines := []string{
		"ls",
		"ls --color",
		`echo "a b"`,
		"cat file | grep x | wc -l",
		`sed -ne "s/a/b/p" < in > out`,
	}

	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "$ %s\n", line)

		tokens, err := Tokenize(line)
		require.NoError(t, err)
		tokens.Copy().ForEach(func(_ int, tok Token) {
			fmt.Fprintln(&b, tok)
		})

		p, err := Parse(tokens, IdentityExpander{})
		require.NoError(t, err)
		fmt.Fprintf(&b, "-> %s\n\n", p)
	}

	g.Assert(t, "dump", []byte(b.String()))
}
