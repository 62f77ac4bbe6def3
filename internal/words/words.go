// internal/words/words.go
//
// Candidate word list management.
//
// Responsibilities:
//   - Load the candidate list from a file or fall back to the embedded default.
//   - Supply Candidates (for filtering) and RandomAnswer (for play sessions).
//
// Word list rules:
//   - One word per line; blank lines and lines starting with '#' are ignored.
//   - Words are trimmed and upper-cased; only five ASCII letters are kept.
//   - Duplicates are dropped, first occurrence wins.
//
// The list is a source of candidates only. Guesses are never rejected for
// being absent from it.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Length is the word length the provider keeps.
const Length = 5

var (
	initOnce   sync.Once
	candidates []string
	initialErr error
)

// Init loads the word list exactly once. An empty path selects the embedded
// default list. Returns an error if the resulting list is empty.
func Init(path string) error {
	initOnce.Do(func() {
		candidates, initialErr = Load(path)
		if initialErr == nil && len(candidates) == 0 {
			initialErr = errors.New("words: candidate list is empty")
		}
	})
	return initialErr
}

// Load reads and normalizes a word list without touching package state.
func Load(path string) ([]string, error) {
	if path == "" {
		raw, err := assets.WordList()
		if err != nil {
			return nil, fmt.Errorf("words: embedded list: %w", err)
		}
		return Normalize(raw), nil
	}
	raw, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return Normalize(raw), nil
}

// readWordFile loads one entry per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// Normalize upper-cases, validates and de-duplicates a list, keeping order.
func Normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) != Length || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all upper-case ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Candidates returns a copy of the loaded list.
func Candidates() []string {
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}

// RandomAnswer returns a cryptographically random word from the list.
// If the list is not loaded yet, falls back to "CRANE".
func RandomAnswer() string {
	if len(candidates) == 0 {
		return "CRANE"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	return candidates[nBig.Int64()]
}

// Stats returns the number of loaded candidates.
func Stats() int {
	return len(candidates)
}
