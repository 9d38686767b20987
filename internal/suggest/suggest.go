// Package suggest finds near-miss directory names for mistyped paths.
package suggest

import (
	"os"
	"path/filepath"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinScore is the lowest Jaro-Winkler similarity reported as a suggestion.
const MinScore = 0.85

// Match is the closest candidate to a name.
type Match struct {
	Name  string
	Score float64
}

// Best returns the candidate most similar to name, or a zero Match when no
// candidate reaches MinScore. Comparison ignores case and accents.
// Jaro-Winkler favors shared prefixes, which suits typos in path names.
func Best(name string, candidates []string) Match {
	want := normalize(name)

	var best Match
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(want, normalize(candidate)))
		if score > best.Score {
			best = Match{Name: candidate, Score: score}
		}
	}

	if best.Score < MinScore {
		return Match{}
	}
	return best
}

// Directory suggests an existing sibling directory for a path that does not
// exist, e.g. "~/Dowloads" -> "~/Downloads".
func Directory(path string) (string, bool) {
	parent := filepath.Dir(filepath.Clean(path))
	entries, err := os.ReadDir(parent)
	if err != nil {
		return "", false
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}

	m := Best(filepath.Base(path), dirs)
	if m.Name == "" {
		return "", false
	}
	return filepath.Join(parent, m.Name), true
}

func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
