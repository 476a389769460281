// Package guess decides whether free-text input names a spawned character.
package guess

import (
	"sort"
	"strings"
)

const (
	minPrefixLen      = 3
	minContainLen     = 4
	containRatioFloor = 0.7
)

// Matches reports whether guess names the character called name.
//
// Rules, first satisfied wins: reject "()" or "&" outright; full-name match
// as an order-independent word multiset; exact match of any single name part;
// prefix of a part (guess >= 3 chars); substring of a part covering at least
// 70% of it (guess >= 4 chars). An empty guess never matches.
func Matches(guess, name string) bool {
	if strings.Contains(guess, "()") || strings.Contains(guess, "&") {
		return false
	}

	guess = strings.ToLower(strings.TrimSpace(guess))
	if guess == "" {
		return false
	}

	parts := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(parts) == 0 {
		return false
	}

	if wordsEqual(strings.Fields(guess), parts) {
		return true
	}

	for _, part := range parts {
		if guess == part {
			return true
		}
	}

	if len(guess) >= minPrefixLen {
		for _, part := range parts {
			if strings.HasPrefix(part, guess) {
				return true
			}
		}
	}

	// Containment is one-directional and ratio-gated so that a short guess
	// buried inside a long part does not count.
	if len(guess) >= minContainLen {
		for _, part := range parts {
			if strings.Contains(part, guess) && float64(len(guess)) >= containRatioFloor*float64(len(part)) {
				return true
			}
		}
	}

	return false
}

// wordsEqual compares two word lists as multisets.
func wordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
