package shell

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobExpander(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"a.txt", "b.txt", "notes.md"} {
		require.NoError(t, afero.WriteFile(fs, name, []byte("x"), 0644))
	}

	g := NewGlobExpander(fs)

	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, g.Expand("*.txt"))
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, g.Expand("?.txt"))
	assert.ElementsMatch(t, []string{"a.txt"}, g.Expand("[a].txt"))
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, g.Expand("[ab].txt"))

	// No metacharacters: returned as-is, even when the file exists.
	assert.Equal(t, []string{"notes.md"}, g.Expand("notes.md"))
	assert.Equal(t, []string{"no such file"}, g.Expand("no such file"))

	// No match: the pattern survives unchanged.
	assert.Equal(t, []string{"*.log"}, g.Expand("*.log"))

	// Malformed pattern: same.
	assert.Equal(t, []string{"[unclosed"}, g.Expand("[unclosed"))
}

func TestIdentityExpander(t *testing.T) {
	e := IdentityExpander{}
	assert.Equal(t, []string{"*.txt"}, e.Expand("*.txt"))
	assert.Equal(t, []string{""}, e.Expand(""))
}
