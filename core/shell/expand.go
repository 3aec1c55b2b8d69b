package shell

import (
	"strings"

	"github.com/spf13/afero"
)

// Expander turns one word into the literal strings it stands for. An
// implementation that matches nothing must return the pattern unchanged
// as a single element, never an empty result.
type Expander interface {
	Expand(pattern string) []string
}

// GlobExpander expands glob patterns against a filesystem, in the
// filesystem's enumeration order.
type GlobExpander struct {
	Fs afero.Fs
}

// NewGlobExpander returns an Expander backed by fs.
func NewGlobExpander(fs afero.Fs) *GlobExpander {
	return &GlobExpander{Fs: fs}
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// Expand returns the paths matching pattern, or the pattern itself when
// it contains no metacharacters, matches nothing, or is malformed.
func (g *GlobExpander) Expand(pattern string) []string {
	if !hasGlobMeta(pattern) {
		return []string{pattern}
	}

	matches, err := afero.Glob(g.Fs, pattern)
	if err != nil || len(matches) == 0 {
		return []string{pattern}
	}
	return matches
}

// IdentityExpander performs no expansion at all.
type IdentityExpander struct{}

func (IdentityExpander) Expand(pattern string) []string {
	return []string{pattern}
}
